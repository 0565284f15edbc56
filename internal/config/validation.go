package config

import (
	"fmt"

	"git.home.luguber.info/inful/newspaperexport/internal/foundation/errors"
)

// Validate checks that every project block can drive an export.
func (c *Config) Validate() error {
	if len(c.Projects) == 0 {
		return errors.ConfigError("no project settings configured").Build()
	}

	seen := map[[2]string]bool{}
	for i, p := range c.Projects {
		key := [2]string{p.Project, p.Step}
		if seen[key] {
			return errors.ConfigError(fmt.Sprintf("duplicate settings for project %q and step %q", p.Project, p.Step)).
				WithContext("index", i).Build()
		}
		seen[key] = true

		if p.Export.ExportFolder == "" {
			return errors.ConfigError(fmt.Sprintf("project %q step %q: export_folder is required", p.Project, p.Step)).
				WithContext("index", i).Build()
		}
		if p.Export.Images && p.Export.ExportImageFolder == "" {
			return errors.ConfigError(fmt.Sprintf("project %q step %q: export_image_folder is required when images are exported", p.Project, p.Step)).
				WithContext("index", i).Build()
		}
		if p.Export.Fulltext && p.Export.ExportAltoFolder == "" {
			return errors.ConfigError(fmt.Sprintf("project %q step %q: export_alto_folder is required when fulltext is exported", p.Project, p.Step)).
				WithContext("index", i).Build()
		}
		for _, fg := range p.FileGroups {
			if fg.Name == "" || fg.Path == "" {
				return errors.ConfigError(fmt.Sprintf("project %q step %q: file groups need a name and a path", p.Project, p.Step)).
					WithContext("index", i).Build()
			}
		}
	}
	return nil
}
