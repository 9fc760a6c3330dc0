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

type ConversationHandler struct {
	Store  store.Store
	Guards *guard.Guards
}

type CreateConversationRequest struct {
	RecipientID int `json:"recipient_id"`
}

func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())
	p, err := pathParams(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := guard.Chain(h.Guards.IDBelongsToUser)(principal, p); err != nil {
		respondError(w, err)
		return
	}

	conversations, err := h.Store.GetConversationsByUser(p.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	if conversations == nil {
		conversations = []models.Conversation{}
	}
	respondJSON(w, http.StatusOK, conversations)
}

// Create starts a pairwise conversation between the path user and a distinct,
// existing recipient. The self check runs before the existence lookup.
func (h *ConversationHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())
	p, err := pathParams(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.InvalidArg("invalid request body"))
		return
	}
	p.RecipientID = req.RecipientID

	chain := guard.Chain(h.Guards.IDBelongsToUser, guard.RecipientNotSelf, h.Guards.RecipientExists)
	if err := chain(principal, p); err != nil {
		respondError(w, err)
		return
	}

	conversation, err := h.Store.CreateConversation(p.UserID, p.RecipientID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, conversation)
}

func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	conversation, err := h.Store.GetConversationForUser(p.ConversationID, p.UserID)
	if errors.Is(err, store.ErrNotFound) {
		// Deleted between guard check and here.
		respondError(w, apperr.ErrConversationNotFound)
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, conversation)
}

func (h *ConversationHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	err = h.Store.DeleteConversation(p.ConversationID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, apperr.ErrConversationNotFound)
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
