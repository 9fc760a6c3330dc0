package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/jharden/parley/internal/apperr"
	"github.com/jharden/parley/internal/guard"
	"github.com/jharden/parley/internal/middleware"
	"github.com/jharden/parley/internal/models"
	"github.com/jharden/parley/internal/store"
	"github.com/jharden/parley/internal/token"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserHandler struct {
	Store  store.Store
	Tokens *token.Service
	Guards *guard.Guards
}

// List returns all users. Password hashes never serialize.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.GetUsers()
	if err != nil {
		respondError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	type RegisterRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.InvalidArg("invalid request body"))
		return
	}

	username := normalize(req.Username)
	email := normalize(req.Email)
	if username == "" {
		respondError(w, apperr.InvalidArg("username is missing"))
		return
	}
	if err := validatePassword(req.Password); err != nil {
		respondError(w, err)
		return
	}
	if err := validateEmail(email); err != nil {
		respondError(w, err)
		return
	}

	// Uniqueness, checked before creation on the folded values.
	if _, err := h.Store.GetUserByUsername(username); err == nil {
		respondError(w, apperr.ErrUsernameTaken)
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		respondError(w, err)
		return
	}
	if _, err := h.Store.GetUserByEmail(email); err == nil {
		respondError(w, apperr.ErrEmailTaken)
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		respondError(w, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, err)
		return
	}

	user := &models.User{Username: username, Email: email, Password: string(hashed)}
	if err := h.Store.CreateUser(user); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Login authenticates username and password and issues a bearer token bound
// to the user's id. Unknown username answers 404 and a wrong password 400;
// neither issues a token.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, apperr.InvalidArg("invalid request body"))
		return
	}

	user, err := h.Store.GetUserByUsername(normalize(creds.Username))
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, apperr.ErrUserNotFound)
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		respondError(w, apperr.ErrInvalidCredentials)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"token": h.Tokens.Issue(user.ID)})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	user, err := h.Store.GetUserByID(p.UserID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, apperr.ErrUserNotFound)
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Update replaces the user's email and password. Partial updates are
// rejected; both fields are required and validated.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	type UpdateRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.InvalidArg("invalid request body"))
		return
	}

	email := normalize(req.Email)
	if err := validatePassword(req.Password); err != nil {
		respondError(w, err)
		return
	}
	if err := validateEmail(email); err != nil {
		respondError(w, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := h.Store.UpdateUser(p.UserID, email, string(hashed))
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, apperr.ErrUserNotFound)
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
