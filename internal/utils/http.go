package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON marshals data and writes it as the response body with the given
// status. Every success path of the API (accounts, funding results, logout
// outcomes, profile views) goes through here so the Content-Type and
// status-before-body ordering stay uniform.
//
// Marshal-ability of the response models is a build-time property; a
// marshaling failure is answered with a plain 500 and returned wrapped.
//
// Example usage:
//
//	utils.WriteJSON(w, fundResult, http.StatusOK)
//	utils.WriteJSON(w, account, http.StatusCreated)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}
