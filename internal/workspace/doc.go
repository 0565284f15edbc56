// Package workspace manages the process-isolated staging directory of an export.
//
// Every export run gets its own directory (e.g., mets_export-<run id>) below the
// configured staging base. Generated documents are written there first and only
// moved to the export folder once every issue has been serialized.
package workspace
