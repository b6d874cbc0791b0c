package choice

import (
	"iter"
	"strings"
)

// Item is one choice: a model key and the text shown for it.
type Item[K comparable] struct {
	Key  K
	Text string
}

// Set is an ordered list of choices.
type Set[K comparable] []Item[K]

// Strings builds a set whose keys are also the display texts.
func Strings(keys ...string) Set[string] {
	s := make(Set[string], len(keys))
	for i, k := range keys {
		s[i] = Item[string]{Key: k, Text: k}
	}
	return s
}

// Keys returns the keys in order.
func (s Set[K]) Keys() []K {
	keys := make([]K, len(s))
	for i, it := range s {
		keys[i] = it.Key
	}
	return keys
}

// Texts returns the display texts in order.
func (s Set[K]) Texts() []string {
	texts := make([]string, len(s))
	for i, it := range s {
		texts[i] = it.Text
	}
	return texts
}

// Index returns the position of k, or -1.
func (s Set[K]) Index(k K) int {
	for i, it := range s {
		if it.Key == k {
			return i
		}
	}
	return -1
}

// Text returns the display text of k.
func (s Set[K]) Text(k K) (string, bool) {
	if i := s.Index(k); i >= 0 {
		return s[i].Text, true
	}
	return "", false
}

// Choices makes a Set usable as its own Source.
func (s Set[K]) Choices() Set[K] { return s }

// Source provides a choice set.
type Source[K comparable] interface {
	Choices() Set[K]
}

// SourceFunc adapts a function to Source.
type SourceFunc[K comparable] func() Set[K]

func (f SourceFunc[K]) Choices() Set[K] { return f() }

// Provider supplies combo suggestions for typed text.
type Provider[K comparable] interface {
	// Suggest yields the choices matching text. It is called again for every
	// change of the text.
	Suggest(text string) iter.Seq[Item[K]]
	// DisplayText returns the text shown for k.
	DisplayText(k K) string
}

// PrefixProvider suggests the items of Set whose text starts with the typed
// text, ignoring case.
type PrefixProvider[K comparable] struct {
	Set Set[K]
}

func (p PrefixProvider[K]) Suggest(text string) iter.Seq[Item[K]] {
	prefix := strings.ToLower(text)
	return func(yield func(Item[K]) bool) {
		for _, it := range p.Set {
			if !strings.HasPrefix(strings.ToLower(it.Text), prefix) {
				continue
			}
			if !yield(it) {
				return
			}
		}
	}
}

func (p PrefixProvider[K]) DisplayText(k K) string {
	text, _ := p.Set.Text(k)
	return text
}
