package api

import (
	"encoding/json"
	"net/http"
)

// errorBody matches the original API contract: failures carry a single
// user-facing "detail" string.
type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, errorBody{Detail: detail})
}

func badRequest(w http.ResponseWriter, detail string) {
	writeDetail(w, http.StatusBadRequest, detail)
}

func notFound(w http.ResponseWriter, detail string) {
	writeDetail(w, http.StatusNotFound, detail)
}

func badGateway(w http.ResponseWriter, detail string) {
	writeDetail(w, http.StatusBadGateway, detail)
}

func serviceUnavailable(w http.ResponseWriter, detail string) {
	writeDetail(w, http.StatusServiceUnavailable, detail)
}
