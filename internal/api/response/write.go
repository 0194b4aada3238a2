package response

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
)

const encodeFailure = `{"error":{"code":"INTERNAL_ERROR","message":"Internal server error"}}` + "\n"

// JSON encodes data before touching w, so an unencodable value still
// yields a clean 500 instead of a truncated body
func JSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(encodeFailure))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// Empty writes a status with a zero-length body
func Empty(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(status)
}
