// Package validate checks request payloads against embedded JSON Schemas.
package validate

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Schema names.
const (
	Contact = "contact"
	Project = "project"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	loadOnce sync.Once
	schemas  map[string]*gojsonschema.Schema
	loadErr  error
)

// FieldError is a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned when a document fails validation.
type Error struct {
	Schema string
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Schema, strings.Join(msgs, "; "))
}

func load() {
	schemas = make(map[string]*gojsonschema.Schema)
	for _, name := range []string{Contact, Project} {
		data, err := schemaFS.ReadFile("schemas/" + name + ".json")
		if err != nil {
			loadErr = err
			return
		}
		s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			loadErr = fmt.Errorf("compile schema %s: %w", name, err)
			return
		}
		schemas[name] = s
	}
}

// Validate checks doc against the named schema. doc is any value that
// marshals to JSON. It returns *Error when the document is invalid.
func Validate(schema string, doc any) error {
	loadOnce.Do(load)
	if loadErr != nil {
		return loadErr
	}

	s, ok := schemas[schema]
	if !ok {
		return fmt.Errorf("unknown schema %q", schema)
	}

	result, err := s.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validate %s: %w", schema, err)
	}
	if result.Valid() {
		return nil
	}

	verr := &Error{Schema: schema}
	for _, re := range result.Errors() {
		field := re.Field()
		if field == "(root)" {
			if p, ok := re.Details()["property"].(string); ok {
				field = p
			}
		}
		verr.Fields = append(verr.Fields, FieldError{Field: field, Message: re.Description()})
	}
	sort.Slice(verr.Fields, func(i, j int) bool {
		return verr.Fields[i].Field < verr.Fields[j].Field
	})
	return verr
}
