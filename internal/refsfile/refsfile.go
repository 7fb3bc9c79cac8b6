// Package refsfile loads reference lists from JSON or YAML files.
//
// Both formats accept either a bare list of references or a document with a
// top-level "references" key, so files exported from different upstream
// analysis tools load without reshaping.
package refsfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/sqlmark/pkg/annotate"
	"gopkg.in/yaml.v3"
)

// Load reads references from path, selecting the format by file extension
// (.json, .yaml, .yml). Unknown extensions are tried as JSON.
func Load(path string) ([]annotate.Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read references file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON decodes a reference list from JSON.
func ParseJSON(data []byte) ([]annotate.Reference, error) {
	var refs []annotate.Reference
	if err := json.Unmarshal(data, &refs); err == nil {
		return refs, nil
	}

	var doc struct {
		References []annotate.Reference `json:"references"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse references JSON: %w", err)
	}
	return doc.References, nil
}

// yamlRef mirrors annotate.Reference for YAML decoding. referenceNum is
// decoded loosely so numeric and string identifiers both work.
type yamlRef struct {
	Num      any    `yaml:"referenceNum"`
	Type     string `yaml:"type"`
	Snippet  string `yaml:"sqlSnippet"`
	Location *struct {
		Line int `yaml:"line"`
	} `yaml:"sqlLocation"`
}

func (r yamlRef) toReference() annotate.Reference {
	ref := annotate.Reference{
		Type:    r.Type,
		Snippet: r.Snippet,
	}
	if r.Num != nil {
		ref.Num = fmt.Sprintf("%v", r.Num)
	}
	if r.Location != nil {
		ref.Location = &annotate.Location{Line: r.Location.Line}
	}
	return ref
}

func parseYAML(data []byte) ([]annotate.Reference, error) {
	var list []yamlRef
	if err := yaml.Unmarshal(data, &list); err == nil {
		return convert(list), nil
	}

	var doc struct {
		References []yamlRef `yaml:"references"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse references YAML: %w", err)
	}
	return convert(doc.References), nil
}

func convert(list []yamlRef) []annotate.Reference {
	refs := make([]annotate.Reference, len(list))
	for i, r := range list {
		refs[i] = r.toReference()
	}
	return refs
}
