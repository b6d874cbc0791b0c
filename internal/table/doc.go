// Package table presents rows of Go structs in grid and list widgets.
//
// A Table holds the rows and maps columns onto row attributes. Edits made in
// a grid are committed through the Save methods at the granularity chosen
// with CommitOn: a rejected commit keeps the cursor where it is. Structural
// changes are announced to subscribers so that bound widgets stay in sync.
package table
