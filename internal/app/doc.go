// Package app is the roster editor: a grid of skaters, a list to pick one
// and a form editing the picked skater through a buffered model.
package app
