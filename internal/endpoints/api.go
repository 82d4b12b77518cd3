package endpoints

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the envelope for error responses. Successful payloads
// are written bare so dashboards can read fields directly.
type APIResponse struct {
	Status    bool        `json:"status"`
	Value     interface{} `json:"value,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorCode int         `json:"error_code"`
}

func (res APIResponse) WriteErrorResponseWithStatusCode(w http.ResponseWriter, err error, statusCode int) {
	res.Status = false
	res.Error = err.Error()
	res.ErrorCode = GetErrorCode(err)

	errJson, _ := json.Marshal(res)

	setJSONHeaders(w)
	w.WriteHeader(statusCode)
	w.Write(errJson)
}

// WriteJSON writes body with status 200.
func WriteJSON(w http.ResponseWriter, body interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	setJSONHeaders(w)
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(data)
	return err
}

func setJSONHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
}
