package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// ToJSONSchema reflects t into an inlined JSON schema document.
func ToJSONSchema[T any](t T) (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	s := r.Reflect(t)

	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
