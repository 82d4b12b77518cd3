package endpoints

import (
	"net/http"
)

const RootMessage = "Monitoring Dashboard backend is running"

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Healthz is the liveness probe.
func Healthz(w http.ResponseWriter, r *http.Request) {
	_ = WriteJSON(w, StatusResponse{Status: "ok"})
}

// Readyz is the readiness probe.
func Readyz(w http.ResponseWriter, r *http.Request) {
	_ = WriteJSON(w, StatusResponse{Status: "ready"})
}

func Root(w http.ResponseWriter, r *http.Request) {
	_ = WriteJSON(w, StatusResponse{Status: "ok", Message: RootMessage})
}
