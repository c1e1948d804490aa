// Package config loads the YAML conversion description and turns it
// into the ordered table descriptions the renderer consumes.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/salmonumbrella/csvtex/internal/table"
)

// Load reads and parses the conversion description at path.
func Load(path string) ([]table.Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading description: %w", err)
	}
	return Parse(data)
}

// Parse turns the raw YAML description into table descriptions,
// preserving table and column order. The description must carry a
// `workdir` string and a `tables` sequence of single-entry mappings
// keyed by CSV filename. Unknown keys anywhere are rejected.
func Parse(data []byte) ([]table.Description, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, table.ConfigError{Message: fmt.Sprintf("parsing description: %v", err)}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, table.ConfigError{Message: "empty description"}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, table.ConfigError{Message: "description must be a mapping"}
	}

	var workdir string
	var tablesNode *yaml.Node
	haveWorkdir := false

	for i := 0; i < len(root.Content); i += 2 {
		key := root.Content[i].Value
		value := root.Content[i+1]
		switch key {
		case "workdir":
			if err := value.Decode(&workdir); err != nil {
				return nil, table.ConfigError{Message: fmt.Sprintf("workdir: %v", err)}
			}
			haveWorkdir = true
		case "tables":
			tablesNode = value
		default:
			return nil, table.ConfigError{Message: fmt.Sprintf("unknown key %q in description", key)}
		}
	}

	if !haveWorkdir {
		return nil, table.ConfigError{Message: "description is missing required key \"workdir\""}
	}
	if tablesNode == nil {
		return nil, table.ConfigError{Message: "description is missing required key \"tables\""}
	}
	if tablesNode.Kind != yaml.SequenceNode {
		return nil, table.ConfigError{Message: "\"tables\" must be a sequence"}
	}

	descs := make([]table.Description, 0, len(tablesNode.Content))
	for _, entry := range tablesNode.Content {
		desc, err := parseTable(workdir, entry)
		if err != nil {
			return nil, err
		}
		descs = append(descs, desc)
	}
	return descs, nil
}

func parseTable(workdir string, entry *yaml.Node) (table.Description, error) {
	if entry.Kind != yaml.MappingNode || len(entry.Content) != 2 {
		return table.Description{}, table.ConfigError{
			Message: "each tables entry must be a single filename-keyed mapping",
		}
	}

	filename := entry.Content[0].Value
	body := entry.Content[1]
	if body.Kind != yaml.MappingNode {
		return table.Description{}, table.ConfigError{
			Message: fmt.Sprintf("table %q: entry must be a mapping", filename),
		}
	}

	desc := table.NewDescription(filepath.Join(workdir, filename))
	var columnsNode *yaml.Node

	for i := 0; i < len(body.Content); i += 2 {
		key := body.Content[i].Value
		value := body.Content[i+1]
		var err error
		switch key {
		case "columns":
			columnsNode = value
		case "border":
			err = value.Decode(&desc.Border)
		case "header_hline":
			err = value.Decode(&desc.HeaderHline)
		case "row_hline":
			err = value.Decode(&desc.RowHline)
		default:
			return table.Description{}, table.ConfigError{
				Message: fmt.Sprintf("table %q: unknown key %q", filename, key),
			}
		}
		if err != nil {
			return table.Description{}, table.ConfigError{
				Message: fmt.Sprintf("table %q: %s: %v", filename, key, err),
			}
		}
	}

	if columnsNode == nil {
		return table.Description{}, table.ConfigError{
			Message: fmt.Sprintf("table %q is missing required key \"columns\"", filename),
		}
	}
	if columnsNode.Kind != yaml.SequenceNode {
		return table.Description{}, table.ConfigError{
			Message: fmt.Sprintf("table %q: \"columns\" must be a sequence", filename),
		}
	}

	for _, colNode := range columnsNode.Content {
		col, err := parseColumn(filename, colNode)
		if err != nil {
			return table.Description{}, err
		}
		desc.Columns = append(desc.Columns, col)
	}
	return desc, nil
}

// parseColumn merges one column-option mapping over the defaults,
// field by field against the fixed set of recognized option names.
func parseColumn(filename string, node *yaml.Node) (table.Column, error) {
	if node.Kind != yaml.MappingNode {
		return table.Column{}, table.ConfigError{
			Message: fmt.Sprintf("table %q: each column must be a mapping", filename),
		}
	}

	col := table.DefaultColumn()
	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]
		var err error
		switch key {
		case "label":
			err = value.Decode(&col.Label)
		case "numerical":
			err = value.Decode(&col.Numerical)
		case "significant_digits":
			err = value.Decode(&col.SignificantDigits)
		case "convert":
			err = value.Decode(&col.Convert)
		case "render":
			err = value.Decode(&col.Render)
		default:
			return table.Column{}, table.ConfigError{
				Message: fmt.Sprintf("table %q: unknown column key %q", filename, key),
			}
		}
		if err != nil {
			return table.Column{}, table.ConfigError{
				Message: fmt.Sprintf("table %q: column %s: %v", filename, key, err),
			}
		}
	}

	if col.SignificantDigits < 1 {
		return table.Column{}, table.ConfigError{
			Message: fmt.Sprintf("table %q: significant_digits must be at least 1, got %d",
				filename, col.SignificantDigits),
		}
	}
	return col, nil
}
