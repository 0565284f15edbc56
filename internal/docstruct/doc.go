// Package docstruct is the structured document model the export reads and writes.
//
// A Document owns one logical tree and one physical tree of Nodes. Every Node is
// tagged with a DocStructType from the document's Ruleset, and the Ruleset decides
// which types may be nested and which metadata types a node may carry. Nodes never
// move between documents; Clone copies one into another document instead.
package docstruct
