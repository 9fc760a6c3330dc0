package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jharden/parley/internal/guard"
	"github.com/jharden/parley/internal/middleware"
	"github.com/jharden/parley/internal/store"
	"github.com/jharden/parley/internal/token"
)

// NewRouter builds the API route table. Guard ordering per route lives in the
// individual handlers; identity resolution wraps everything nested under a
// user id.
func NewRouter(st store.Store, tokens *token.Service) *mux.Router {
	guards := &guard.Guards{Store: st}
	users := &UserHandler{Store: st, Tokens: tokens, Guards: guards}
	conversations := &ConversationHandler{Store: st, Guards: guards}
	messages := &MessageHandler{Store: st, Guards: guards}

	r := mux.NewRouter()
	r.Use(middleware.Recovery, middleware.Logging)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, map[string]string{"message": "endpoint not found"})
	})

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/users", users.List).Methods("GET")
	api.HandleFunc("/users", users.Register).Methods("POST")
	api.HandleFunc("/users/login", users.Login).Methods("POST")

	owned := api.PathPrefix("/users/{userId:[0-9]+}").Subrouter()
	owned.Use(middleware.Identity(tokens, st))
	owned.HandleFunc("", users.Get).Methods("GET")
	owned.HandleFunc("", users.Update).Methods("PUT")
	owned.HandleFunc("/conversations", conversations.List).Methods("GET")
	owned.HandleFunc("/conversations", conversations.Create).Methods("POST")
	owned.HandleFunc("/conversations/{conversationId:[0-9]+}", conversations.Get).Methods("GET")
	owned.HandleFunc("/conversations/{conversationId:[0-9]+}", conversations.Delete).Methods("DELETE")
	owned.HandleFunc("/conversations/{conversationId:[0-9]+}/messages", messages.List).Methods("GET")
	owned.HandleFunc("/conversations/{conversationId:[0-9]+}/messages", messages.Create).Methods("POST")
	owned.HandleFunc("/conversations/{conversationId:[0-9]+}/messages/{messageId:[0-9]+}", messages.Get).Methods("GET")
	owned.HandleFunc("/conversations/{conversationId:[0-9]+}/messages/{messageId:[0-9]+}", messages.Update).Methods("PUT")
	owned.HandleFunc("/conversations/{conversationId:[0-9]+}/messages/{messageId:[0-9]+}", messages.Delete).Methods("DELETE")

	return r
}
