// Package choice binds single-selection widgets to model attributes through
// an ordered set of keys and display texts.
//
// A Set can be fixed, come from a Source, or be read from another attribute
// and follow its changes. Combo bindings instead work on free text and ask a
// Provider for suggestions on every keystroke.
package choice
