// Package schema generates the JSON schema of the ptserve configuration file.
package schema

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/invopop/jsonschema"
	"github.com/yeisme/ptserve/pkg/configs"
)

// ConfigSchema reflects configs.Config using the mapstructure field names, so
// the schema matches the keys viper reads.
func ConfigSchema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               "mapstructure",
	}
	return reflector.Reflect(configs.Config{})
}

// GenConfigSchema writes the indented schema to out.
func GenConfigSchema(out io.Writer) error {
	schemaJSON, err := json.MarshalIndent(ConfigSchema(), "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(schemaJSON))
	return err
}
