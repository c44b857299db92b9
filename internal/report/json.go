package report

import (
	"encoding/json"
	"io"
)

// RenderJSON writes plan as an indented JSON document.
func RenderJSON(w io.Writer, plan Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}
