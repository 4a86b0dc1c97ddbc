// Package schema emits the JSON schema of the policy configuration file, so
// editors and CI linters can validate licensedeny.toml before a run.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/licensedeny/licensedeny/infrastructure/tomlcfg"
)

// ForConfig reflects the policy file layout into a JSON schema
// (Draft 2020-12). The top-level struct is expanded inline so the schema
// validates a policy document directly rather than through a $ref.
func ForConfig() ([]byte, error) {
	reflector := jsonschema.Reflector{ExpandedStruct: true}
	s := reflector.Reflect(tomlcfg.File{})

	encoded, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema: %w", err)
	}
	return encoded, nil
}
