package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jharden/parley/internal/apperr"
	"github.com/jharden/parley/internal/guard"
	"github.com/jharden/parley/internal/middleware"
	"github.com/jharden/parley/internal/models"
	"github.com/jharden/parley/internal/store"
)

type MessageHandler struct {
	Store  store.Store
	Guards *guard.Guards
}

type MessageRequest struct {
	Content string `json:"content"`
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())
	p, err := pathParams(r)
	if err != nil {
		respondError(w, err)
		return
	}

	chain := guard.Chain(h.Guards.IDBelongsToUser, h.Guards.ConversationExists)
	if err := chain(principal, p); err != nil {
		respondError(w, err)
		return
	}

	messages, err := h.Store.GetMessagesByConversation(p.ConversationID)
	if err != nil {
		respondError(w, err)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	respondJSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())
	p, err := pathParams(r)
	if err != nil {
		respondError(w, err)
		return
	}

	chain := guard.Chain(h.Guards.IDBelongsToUser, h.Guards.ConversationExists)
	if err := chain(principal, p); err != nil {
		respondError(w, err)
		return
	}

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.InvalidArg("invalid request body"))
		return
	}
	if req.Content == "" {
		respondError(w, apperr.InvalidArg("content is missing"))
		return
	}

	message, err := h.Store.CreateMessage(p.ConversationID, p.UserID, req.Content)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, message)
}

func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())
	p, err := pathParams(r)
	if err != nil {
		respondError(w, err)
		return
	}

	chain := guard.Chain(h.Guards.IDBelongsToUser, h.Guards.ConversationExists, h.Guards.MessageExists)
	if err := chain(principal, p); err != nil {
		respondError(w, err)
		return
	}

	message, err := h.Store.GetMessage(p.MessageID, p.ConversationID, p.UserID)
	if errors.Is(err, store.ErrNotFound) {
		// Deleted between guard check and here.
		respondError(w, apperr.ErrMessageNotFound)
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, message)
}

func (h *MessageHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())
	p, err := pathParams(r)
	if err != nil {
		respondError(w, err)
		return
	}

	chain := guard.Chain(h.Guards.IDBelongsToUser, h.Guards.ConversationExists, h.Guards.MessageExists)
	if err := chain(principal, p); err != nil {
		respondError(w, err)
		return
	}

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.InvalidArg("invalid request body"))
		return
	}
	if req.Content == "" {
		respondError(w, apperr.InvalidArg("content is missing"))
		return
	}

	message, err := h.Store.UpdateMessage(p.MessageID, p.ConversationID, p.UserID, req.Content)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, apperr.ErrMessageNotFound)
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, message)
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())
	p, err := pathParams(r)
	if err != nil {
		respondError(w, err)
		return
	}

	chain := guard.Chain(h.Guards.IDBelongsToUser, h.Guards.ConversationExists, h.Guards.MessageExists)
	if err := chain(principal, p); err != nil {
		respondError(w, err)
		return
	}

	err = h.Store.DeleteMessage(p.MessageID, p.ConversationID, p.UserID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, apperr.ErrMessageNotFound)
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
