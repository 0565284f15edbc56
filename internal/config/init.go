package config

import (
	"fmt"
	"os"
)

const exampleConfig = `# Newspaper export configuration
log:
  level: info
  format: text

journal:
  path: ${HOME}/.newspaperexport/journal.db

metrics:
  textfile: ""

# Role mappings default to the built-in newspaper ruleset. Override single
# entries to match a custom ruleset.
metadata:
  identifier: CatalogIDDigital
  issueDate: DateIssued

docstruct:
  newspaper: Newspaper
  year: NewspaperVolume

projects:
  - project: "*"
    step: "*"
    export:
      subfolder_per_issue: false
      images: false
      fulltext: false
      export_folder: /opt/digiverso/viewer/hotfolder
      export_image_folder: /opt/digiverso/viewer/hotfolder/$(meta.CatalogIDDigital)_media
      export_alto_folder: /opt/digiverso/viewer/hotfolder/$(meta.CatalogIDDigital)_alto
    mets_url:
      url: https://viewer.example.org/viewer/sourcefile?id=
      add_file_extension: true
    resolver_url: https://viewer.example.org/viewer/piresolver?id=
    rights_owner: Example Library
    purl: https://viewer.example.org/viewer/piresolver?id=$(meta.CatalogIDDigital)
    mets_pointer_path: https://viewer.example.org/viewer/sourcefile?id=$(meta.CatalogIDDigital).xml
    mets_pointer_path_anchor: https://viewer.example.org/viewer/sourcefile?id=$(meta.topstruct.CatalogIDDigital).xml
    filegroups:
      - name: PRESENTATION
        path: https://viewer.example.org/viewer/content/$(meta.CatalogIDDigital)/800/0/
        mimetype: image/jpeg
        suffix: jpg
        folder: media
      - name: FULLTEXT
        path: https://viewer.example.org/viewer/api/v1/records/$(meta.CatalogIDDigital)/files/alto/
        mimetype: text/xml
        suffix: xml
        folder: alto
`

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
