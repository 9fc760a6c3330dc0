// Package guard implements the access checks that gate every nested resource
// route: ownership of the path user id, recipient validity for conversation
// creation, and conversation/message containment. Guards compose into an
// explicit ordered chain with short-circuit evaluation; the order is part of
// the contract (cheap checks before store lookups, ownership before anything
// that could reveal whether a resource exists).
package guard

import (
	"errors"

	"github.com/jharden/parley/internal/apperr"
	"github.com/jharden/parley/internal/models"
	"github.com/jharden/parley/internal/store"
)

// Params holds the identifiers a request's path and body resolve to. Fields
// a route doesn't use stay zero.
type Params struct {
	UserID         int
	ConversationID int
	MessageID      int
	RecipientID    int
}

// A Guard inspects the authenticated principal and the request's identifiers
// and either allows continuation (nil) or terminates the request with an
// apperr error.
type Guard func(principal *models.User, p Params) error

// Chain runs guards strictly left to right. The first failure is returned
// immediately; later guards never execute.
func Chain(guards ...Guard) Guard {
	return func(principal *models.User, p Params) error {
		for _, g := range guards {
			if err := g(principal, p); err != nil {
				return err
			}
		}
		return nil
	}
}

// Guards bundles the predicates that need store access. The store is injected
// so each guard is testable in isolation against a fake.
type Guards struct {
	Store store.Store
}

// IDBelongsToUser requires the path user id to be the principal's own id. It
// runs first on every owner-scoped route, before any resource lookup, so a
// non-owner learns nothing about what exists under another user.
func (g *Guards) IDBelongsToUser(principal *models.User, p Params) error {
	if principal == nil {
		return apperr.ErrUnauthenticated
	}
	if principal.ID != p.UserID {
		return apperr.ErrNotOwner
	}
	return nil
}

// RecipientNotSelf rejects conversation creation where the recipient is the
// path user. No store access; ordered before the existence check.
func RecipientNotSelf(principal *models.User, p Params) error {
	if p.RecipientID == p.UserID {
		return apperr.ErrInvalidRecipient
	}
	return nil
}

// RecipientExists requires the recipient id to resolve to a stored user.
func (g *Guards) RecipientExists(principal *models.User, p Params) error {
	_, err := g.Store.GetUserByID(p.RecipientID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.ErrUserNotFound
	}
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "recipient lookup failed", err)
	}
	return nil
}

// ConversationExists requires the path conversation to exist AND contain the
// path user. Both failures surface as the same not-found error so a
// non-member cannot confirm the conversation exists.
func (g *Guards) ConversationExists(principal *models.User, p Params) error {
	_, err := g.Store.GetConversationForUser(p.ConversationID, p.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.ErrConversationNotFound
	}
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "conversation lookup failed", err)
	}
	return nil
}

// MessageExists requires the path message to exist under the path
// conversation with the path user as sender. The triple matches jointly; any
// single mismatch is the same not-found error.
func (g *Guards) MessageExists(principal *models.User, p Params) error {
	_, err := g.Store.GetMessage(p.MessageID, p.ConversationID, p.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.ErrMessageNotFound
	}
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "message lookup failed", err)
	}
	return nil
}
