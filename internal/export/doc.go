// Package export writes the METS export of a newspaper process.
//
// One export produces three kinds of documents: the newspaper anchor
// (<identifier>.xml) listing every exported year, the year document
// (<yearIdentifier>.xml) with its month/day calendar of issues, and one document
// per issue. Documents are staged in a per-run directory and moved to the export
// folder at the end. When the anchor already exists there, the new year is merged
// into it under a per-newspaper lock.
package export
