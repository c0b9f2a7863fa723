// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package tables

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed data/tables.schema.json
var embeddedSchemaFS embed.FS

// ErrInvalidTablesFile is returned when a tables file fails schema validation
// or declares a value of an unsupported type.
var ErrInvalidTablesFile = errors.New("invalid tables file")

// tablesFile is the YAML document shape of an on-disk tables file.
type tablesFile struct {
	Decisions map[string]any    `yaml:"decisions"`
	Literals  map[string]string `yaml:"literals"`
}

// Load reads a YAML tables file, validates it against the embedded schema,
// and returns the decision and literal tables it declares. Either section may
// be omitted; the corresponding table is returned empty.
//
// Decision values must be booleans, strings, or null. Numeric literal values
// must be quoted in the file, since literals are inserted into documents as
// text.
func Load(path string) (DecisionTable, LiteralTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading tables file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates and converts raw YAML tables content. See Load.
func Parse(data []byte) (DecisionTable, LiteralTable, error) {
	if err := validateSchema(data); err != nil {
		return nil, nil, err
	}

	var file tablesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidTablesFile, err)
	}

	decisions := make(DecisionTable, len(file.Decisions))
	for name, raw := range file.Decisions {
		v, err := decisionValue(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: decision %q: %w", ErrInvalidTablesFile, name, err)
		}
		decisions[name] = v
	}

	literals := make(LiteralTable, len(file.Literals))
	for name, text := range file.Literals {
		literals[name] = text
	}

	return decisions, literals, nil
}

// decisionValue converts a raw YAML value into a decision Value.
func decisionValue(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}

// validateSchema validates raw YAML tables content against the embedded JSON
// schema, reporting every violation in a single error.
func validateSchema(data []byte) error {
	schemaData, err := embeddedSchemaFS.ReadFile("data/tables.schema.json")
	if err != nil {
		return fmt.Errorf("reading embedded tables schema: %w", err)
	}

	// gojsonschema operates on JSON, so round-trip the YAML document first.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTablesFile, err)
	}
	if doc == nil {
		// An empty document declares empty tables.
		return nil
	}
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTablesFile, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(jsonData),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTablesFile, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidTablesFile, strings.Join(msgs, "; "))
}

// TablesPath returns the tables file location within the given config home
// directory. This is the injectable, testable form. For the standard XDG
// location, use DefaultTablesPath.
func TablesPath(configHome string) string {
	return filepath.Join(configHome, "promptbake", "tables.yaml")
}

// DefaultTablesPath returns the default tables file location using XDG base
// directory conventions.
func DefaultTablesPath() string {
	return TablesPath(xdg.ConfigHome)
}
