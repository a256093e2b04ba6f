package utils

import (
	"bytes"
	"encoding/json"
)

// EncodeJSON renders v without HTML escaping, so payloads read the same as the
// JSON clients already receive. A non-empty indent pretty-prints the output.
func EncodeJSON(v any, indent string) ([]byte, error) {
	buf := Get()
	defer Put(buf)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(Detach(buf), []byte("\n")), nil
}
