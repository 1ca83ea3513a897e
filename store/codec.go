package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/wrqqqr/todoList/models"
)

// Format names a serialization format for a task list.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat validates a format name from configuration.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %s. Supported formats are json, yaml, toml", s)
	}
}

// Extension is the file extension used by the file backend.
func (f Format) Extension() string {
	return "." + string(f)
}

// tomlDocument wraps the list because TOML has no top-level arrays.
type tomlDocument struct {
	Tasks []models.Task `toml:"tasks"`
}

// EncodeTasks serializes an ordered task list. JSON and YAML encode a plain
// list of {id, text, completed} records.
func EncodeTasks(f Format, tasks []models.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}

	switch f {
	case FormatJSON, "":
		return json.MarshalIndent(tasks, "", "  ")
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTOML:
		return toml.Marshal(tomlDocument{Tasks: tasks})
	default:
		return nil, fmt.Errorf("unsupported format: %s", f)
	}
}

// DecodeTasks parses data produced by EncodeTasks. Empty input decodes to an
// empty list.
func DecodeTasks(f Format, data []byte) ([]models.Task, error) {
	tasks := []models.Task{}
	if len(bytes.TrimSpace(data)) == 0 {
		return tasks, nil
	}

	switch f {
	case FormatJSON, "":
		if err := json.Unmarshal(data, &tasks); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &tasks); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		var doc tomlDocument
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		tasks = doc.Tasks
	default:
		return nil, fmt.Errorf("unsupported format: %s", f)
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}
