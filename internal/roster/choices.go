package roster

import "github.com/san-kum/viewbind/internal/choice"

// Categories are the age categories a skater competes in.
var Categories = choice.Set[string]{
	{Key: "pupil", Text: "Pupil"},
	{Key: "junior", Text: "Junior"},
	{Key: "senior", Text: "Senior"},
	{Key: "master", Text: "Master"},
}

// Clubs are the known clubs by id.
var Clubs = choice.Set[int]{
	{Key: 1, Text: "IJsclub Thialf"},
	{Key: 2, Text: "IJsvereniging Haarlem"},
	{Key: 3, Text: "Schaatsclub Amsterdam"},
	{Key: 4, Text: "IJsclub Leeuwarden"},
	{Key: 5, Text: "Schaatsvereniging Deventer"},
	{Key: 6, Text: "IJsclub Hollandia"},
}

// ClubProvider suggests clubs by name prefix.
var ClubProvider choice.Provider[int] = choice.PrefixProvider[int]{Set: Clubs}

// CategoriesFor returns the categories open to skaters at level. Pupils stop
// at level 3 and masters start at level 5.
func CategoriesFor(level int) choice.Set[string] {
	var set choice.Set[string]
	for _, c := range Categories {
		switch {
		case c.Key == "pupil" && level > 3:
		case c.Key == "master" && level < 5:
		default:
			set = append(set, c)
		}
	}
	return set
}
