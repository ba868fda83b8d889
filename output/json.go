package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON encodes v as a single JSON document followed by a newline.
// Non-ASCII text is written as-is and pretty output is indented by two spaces.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
