//go:build ignore

// Regenerates schema.json from the SchemaConfig type below:
//
//	go run schema_gen.go schema.json
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
)

// SchemaConfig mirrors the keys read by config.Load
type SchemaConfig struct {
	Prefix   string         `json:"prefix,omitempty" jsonschema:"minLength=1,description=Prefix of the sampling environment variables,default=LOOPTIMER_TIMER_"`
	All      int            `json:"all,omitempty" jsonschema:"minimum=0,description=Report interval applied to every timer without its own setting (0 disables)"`
	Timers   map[string]int `json:"timers,omitempty" jsonschema:"description=Report interval per timer name (0 disables)"`
	Margin   string         `json:"margin,omitempty" jsonschema:"description=Trace events closer than this share one timestamp,default=10us"`
	Summary  string         `json:"summary,omitempty" jsonschema:"description=Go template printed after each report (sprig functions available)"`
	LogLevel string         `json:"log_level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,description=Diagnostic log level"`
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

func main() {
	r := &jsonschema.Reflector{
		DoNotReference:             true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
	}

	schema := r.Reflect(&SchemaConfig{})

	if timers, ok := schema.Properties.Get("timers"); ok && timers.AdditionalProperties != nil {
		timers.AdditionalProperties.Minimum = json.Number("0")
	}
	if margin, ok := schema.Properties.Get("margin"); ok {
		margin.Pattern = `^[0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h)$`
	}
	if prefix, ok := schema.Properties.Get("prefix"); ok {
		prefix.MinLength = uint64Ptr(1)
	}

	// Use draft-07 for IDE compatibility
	schema.Version = "http://json-schema.org/draft-07/schema#"
	schema.ID = "https://github.com/NikitaCOEUR/looptimer/schema.json"
	schema.Title = "looptimer configuration"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling schema: %v\n", err)
		os.Exit(1)
	}

	outputPath := "schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	if err := os.WriteFile(outputPath, append(data, '\n'), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing schema: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Schema generated: %s\n", outputPath)
}
