package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// compileJqFilter parses and compiles a jq filter expression.
func compileJqFilter(filter string) (*gojq.Code, error) {
	query, err := gojq.Parse(filter)
	if err != nil {
		return nil, err
	}
	return gojq.Compile(query)
}

// applyJq runs code against v and returns every value it emits. v is
// round-tripped through JSON first so struct tags decide the field names.
func applyJq(code *gojq.Code, v any) ([]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, err
	}

	var results []any
	iter := code.Run(input)
	for {
		r, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := r.(error); isErr {
			if haltErr, ok := err.(*gojq.HaltError); ok && haltErr.Value() == nil {
				break
			}
			return results, fmt.Errorf("jq: %w", err)
		}
		results = append(results, r)
	}
	return results, nil
}

// printJSON writes v as JSON, filtered through --jq when set.
func printJSON(v any) {
	if jqFilter == "" {
		out.JSON(v)
		return
	}

	code, err := compileJqFilter(jqFilter)
	if err != nil {
		out.JSON(map[string]any{"error": fmt.Sprintf("invalid jq filter: %v", err)})
		return
	}
	results, err := applyJq(code, v)
	for _, r := range results {
		out.JSON(r)
	}
	if err != nil {
		out.JSON(map[string]any{"error": err.Error()})
	}
}
