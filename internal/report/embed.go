package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
)

// Embed marshals v for use inside an inline <script> block. Every "</" is
// written as "<\/" so no value can close the script element early.
func Embed(v any) (template.JS, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode embedded data: %w", err)
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	out = bytes.ReplaceAll(out, []byte("</"), []byte(`<\/`))
	return template.JS(out), nil
}
