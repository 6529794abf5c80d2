/*
Package resp provides helper functions for constructing and sending standardized HTTP JSON responses.

Successful responses always carry "success": true alongside the operation's payload fields;
error responses carry a single "error" field with a client-friendly message.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"dealchat/internal/pkg/errs"
	"dealchat/internal/pkg/logx"
)

// RespondJSON is a generic response function used to set the Content-Type and send the JSON payload.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Error(
			err,
			"Error encoding JSON response",
			"http_status", httpStatus,
		)

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(response)
}

// RespondSuccess sends an HTTP 200 response with "success": true merged into the given fields.
func RespondSuccess(w http.ResponseWriter, r *http.Request, data map[string]any) {
	payload := make(map[string]any, len(data)+1)
	payload["success"] = true
	for k, v := range data {
		payload[k] = v
	}
	RespondJSON(w, r, http.StatusOK, payload)
}

// RespondError sends an HTTP response containing the error's client-facing message.
// Internal detail never reaches the wire; it is the caller's job to log it.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	RespondJSON(w, r, customErr.Status, map[string]any{"error": customErr.Message})
}
