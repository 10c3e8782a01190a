package schema

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/kaptinlin/jsonschema"
)

var (
	//go:embed results.schema.json
	resultsSchemaJSON []byte
	//go:embed record.schema.json
	recordSchemaJSON []byte
)

var (
	compileOnce sync.Once
	results     *jsonschema.Schema
	record      *jsonschema.Schema
	compileErr  error
)

func load() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		results, compileErr = compiler.Compile(resultsSchemaJSON)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile results schema: %w", compileErr)
			return
		}
		record, compileErr = compiler.Compile(recordSchemaJSON)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile record schema: %w", compileErr)
		}
	})
	return compileErr
}

// ValidateResults checks a combined results artifact (JSON array of records).
func ValidateResults(data []byte) error {
	if err := load(); err != nil {
		return err
	}
	return validateJSON(results, data)
}

// ValidateRecord checks a single per-run summary.json.
func ValidateRecord(data []byte) error {
	if err := load(); err != nil {
		return err
	}
	return validateJSON(record, data)
}

func validateJSON(schema *jsonschema.Schema, data []byte) error {
	result := schema.ValidateJSON(data)
	if result.IsValid() {
		return nil
	}
	messages := make([]string, 0, len(result.Errors))
	for path, evalErr := range result.Errors {
		messages = append(messages, fmt.Sprintf("%s: %s", path, evalErr.Message))
	}
	sort.Strings(messages)
	return fmt.Errorf("schema validation failed: %s", strings.Join(messages, "; "))
}
