// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"papercalc/internal/display"
)

// WriteJSON writes one indented v1 result object. HTML escaping stays off
// so conflict identities like "μm = bulk × gsm" remain readable.
func WriteJSON(w io.Writer, r display.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(ToAPIResult(r))
}
