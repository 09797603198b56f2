// Package report renders the merged fabric configuration into MkDocs
// markdown pages.
//
// Each page builder turns one section of the configuration into a small
// view model (titled sections made of key/value rows) and executes the
// matching template from templates/pages.md.tmpl. Templates have the sprig
// function set plus humanize and cell.
//
// A builder returns a nil page when its section is missing from the
// configuration; the caller simply does not write that file.
package report
