// Package roster is the skating club member list edited by the viewbind
// application: the Skater record, its attribute table and choice sets.
package roster
