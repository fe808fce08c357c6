// Package document is the document-rendering collaborator of the viewer.
//
// Library opens PDF sources once (local or remote, through an Opener) and
// answers the two questions the page controller asks: how many pages a
// document has, and what a given page looks like once materialised. Printer
// is the generic print primitive; CommandPrinter spools to lp(1) by default.
package document
