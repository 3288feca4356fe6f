package stats

import (
	"fmt"
	"reflect"

	"ticketlens/internal/ticket"

	"github.com/google/jsonschema-go/jsonschema"
)

// Schema returns the JSON Schema of Dashboard as it marshals. Ordered maps and
// rows marshal as objects, so their reflected slice shape is overridden.
func Schema() (*jsonschema.Schema, error) {
	opts := &jsonschema.ForOptions{
		TypeSchemas: map[reflect.Type]*jsonschema.Schema{
			reflect.TypeFor[Counts]():     objectOf("integer"),
			reflect.TypeFor[Averages]():   objectOf("number"),
			reflect.TypeFor[ticket.Row](): objectOf("string"),
		},
	}
	s, err := jsonschema.For[Dashboard](opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard schema: %w", err)
	}
	s.Title = "ticketlens dashboard"
	s.Description = "Aggregate metrics computed from one issue tracker CSV export."
	return s, nil
}

func objectOf(valueType string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		AdditionalProperties: &jsonschema.Schema{Type: valueType},
	}
}
