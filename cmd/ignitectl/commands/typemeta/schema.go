package typemeta

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/marmos91/ignitego/pkg/igniteclient"
)

var schemaOutput string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate a JSON schema for type descriptor files",
	Long: `Generate a JSON schema describing igniteclient.Type, the document
shape expected by "type put --from-file".

The schema can be used for:
  - IDE autocompletion when hand-writing a type descriptor
  - Validating a descriptor file before registering it
  - Documentation generation

Examples:
  # Print schema to stdout
  ignitectl type schema

  # Save schema to file
  ignitectl type schema --output type.schema.json`,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().StringVarP(&schemaOutput, "output", "o", "", "Output file (default: stdout)")
	Cmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	schema := reflector.Reflect(&igniteclient.Type{})
	schema.Version = "https://json-schema.org/draft/2020-12/schema"
	schema.Title = "Ignite Binary Type Descriptor"
	schema.Description = "Schema for files accepted by 'ignitectl type put --from-file'"

	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if schemaOutput != "" {
		if err := os.WriteFile(schemaOutput, schemaJSON, 0o644); err != nil {
			return fmt.Errorf("failed to write schema file: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "JSON schema written to %s\n", schemaOutput)
		return nil
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(schemaJSON))
	return nil
}
