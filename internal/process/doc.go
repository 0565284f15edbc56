// Package process reads the workflow process an export runs for: the process
// record with its folders and project defaults, the ruleset and the metadata file.
//
// Records are YAML files:
//
//	id: "42"
//	title: zeitung_1923
//	project: Zeitungen
//	step: Export
//	ruleset: ruleset.yaml        # optional, the built-in newspaper ruleset otherwise
//	metadata_file: meta.yaml
//	folders:
//	  media: images/zeitung_1923_media
//	  alto: ocr/zeitung_1923_alto
//	defaults:
//	  mets: {rights_owner: ..., mets_pointer_path: ...}
//	  filegroups: [{name: PRESENTATION, path: ..., mimetype: image/jpeg, suffix: jpg}]
//
// Relative paths are resolved against the directory of the record file.
package process
