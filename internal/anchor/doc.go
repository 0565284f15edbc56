// Package anchor merges the volume list of a freshly generated newspaper anchor
// into an anchor that already exists in the export folder.
//
// An anchor accumulates one volume div per exported year. Merging keeps every
// previously exported volume, refuses to add a volume whose URL is already
// listed, sorts the result and renumbers the divs LOG_0001, LOG_0002, ...
package anchor
