package caltable

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// tableSchema is the embedded JSON Schema for exported tables.
//
//go:embed table-schema.json
var tableSchema []byte

// Report summarizes a schema validation run.
type Report struct {
	Valid  bool
	Errors []string
}

// Validate checks an exported JSON calibration table against the
// embedded schema. A schema violation is reported through the Report,
// not the error; the error covers malformed input only.
func Validate(data []byte) (*Report, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(tableSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate table: %w", err)
	}

	report := &Report{Valid: result.Valid()}

	for _, desc := range result.Errors() {
		report.Errors = append(report.Errors, desc.String())
	}

	return report, nil
}
