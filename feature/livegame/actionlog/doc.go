// Package actionlog records and undoes the in-game events of a point.
//
// Appends and undos run in one store transaction together with the substitution
// roster side effect. Numbering is pluggable: offline games number locally, online
// games keep the number assigned by the remote authority.
package actionlog
