package handle

import (
	"encoding/json"
	"net/http"
)

// Error kinds of the unified error envelope. Every endpoint reports failures
// as {kind, message, details?} so clients parse one shape.
const (
	KindClientInput = "client_input"
	KindNotFound    = "not_found"
	KindPersistence = "persistence"
	KindInternal    = "internal"
)

type errorEnvelope struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// jsonResponse writes data as a JSON-encoded HTTP response with the given status.
func jsonResponse(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// jsonError writes the unified error envelope.
func jsonError(w http.ResponseWriter, code int, kind string, err error) {
	jsonErrorDetails(w, code, kind, err, nil)
}

func jsonErrorDetails(w http.ResponseWriter, code int, kind string, err error, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		Kind:    kind,
		Message: err.Error(),
		Details: details,
	})
}
