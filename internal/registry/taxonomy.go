package registry

import (
	"fmt"
	"os"

	"github.com/avolkova/xbrlgen/internal/model"
	"gopkg.in/yaml.v3"
)

type entrypointsFile struct {
	Entrypoint model.SchemaRef   `yaml:"entrypoint"`
	Namespaces map[string]string `yaml:"namespaces"`
}

// LoadTaxonomy reads an entrypoints.yml file: the schema entry point href
// and the namespace table written onto the instance root. The three
// structural namespaces (xbrli, link, xlink) must be present.
func LoadTaxonomy(path string) (*model.Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy entrypoints: %w", err)
	}
	var file entrypointsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse taxonomy entrypoints %s: %w", path, err)
	}

	if file.Entrypoint.Href == "" {
		return nil, fmt.Errorf("taxonomy entrypoints %s: missing entrypoint href", path)
	}
	for _, prefix := range []string{"xbrli", "link", "xlink"} {
		if file.Namespaces[prefix] == "" {
			return nil, fmt.Errorf("taxonomy entrypoints %s: missing required namespace %q", path, prefix)
		}
	}

	return &model.Taxonomy{
		Entrypoint: file.Entrypoint,
		Namespaces: file.Namespaces,
	}, nil
}
