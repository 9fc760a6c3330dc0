package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jharden/parley/internal/apperr"
	"github.com/jharden/parley/internal/guard"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// respondError maps an error to its status and a JSON message body. Internal
// faults are logged and answered with a generic message.
func respondError(w http.ResponseWriter, err error) {
	status := apperr.Status(err)
	message := "internal server error"

	var e *apperr.Error
	if errors.As(err, &e) && status != http.StatusInternalServerError {
		message = e.Message
	}
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "err", err)
	}

	respondJSON(w, status, map[string]string{"message": message})
}

// pathParams parses the numeric path variables a route declares into guard
// params. Body-sourced ids (recipient) are filled in by the handler.
func pathParams(r *http.Request) (guard.Params, error) {
	vars := mux.Vars(r)
	var p guard.Params

	for name, dst := range map[string]*int{
		"userId":         &p.UserID,
		"conversationId": &p.ConversationID,
		"messageId":      &p.MessageID,
	} {
		raw, ok := vars[name]
		if !ok {
			continue
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			return p, apperr.InvalidArg("invalid " + name)
		}
		*dst = id
	}
	return p, nil
}
