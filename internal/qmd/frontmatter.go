// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package qmd

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// decodeFrontMatter parses the YAML between the header delimiters. The
// mapping is kept as-is; only the title is lifted out, since the converter
// and catalog need it.
func decodeFrontMatter(body string) (*FrontMatter, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("decoding YAML header: %w", err)
	}

	fm := &FrontMatter{Raw: raw}
	if title, ok := raw["title"].(string); ok {
		fm.Title = title
	}
	return fm, nil
}
