// Package mets renders documents as METS/MODS XML.
//
// Three shapes are produced from the same writer: the full document (a year
// volume or an issue, with fileSec, PHYSICAL structMap and structLink), and the
// anchor document that only lists the volumes of a newspaper as pointer divs.
// The package also exposes the structMap lookups used when an existing anchor is
// merged.
package mets
