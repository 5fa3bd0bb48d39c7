package controllers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

const (
	activityJSON = "application/activity+json"
	problemJSON  = "application/problem+json"
)

// writeJSON marshals data structure to encoded JSON response.
func writeJSON(log *zap.Logger, w http.ResponseWriter, status int, contentType string, data any,
	headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}

	js = append(js, '\n')
	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(js); err != nil {
		log.Error("failed to write JSON response", zap.Error(err))
		return err
	}

	return nil
}
