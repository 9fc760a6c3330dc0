package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/jharden/parley/internal/models"
)

// TestMessageExchange walks the whole nested flow: two users start a
// conversation, one sends a message, the other reads it, and outsiders are
// rejected on both the ownership and the membership path.
func TestMessageExchange(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	// Alice starts the conversation over the API.
	rr := env.do(t, "POST", userPath(alice.ID, "/conversations"),
		CreateConversationRequest{RecipientID: bob.ID}, alice)
	if rr.Code != http.StatusCreated {
		t.Fatalf("conversation create: got %v, body %s", rr.Code, rr.Body.String())
	}
	var conv models.Conversation
	json.NewDecoder(rr.Body).Decode(&conv)

	// Alice sends a message.
	rr = env.do(t, "POST", userPath(alice.ID, fmt.Sprintf("/conversations/%d/messages", conv.ID)),
		MessageRequest{Content: "hi"}, alice)
	if rr.Code != http.StatusCreated {
		t.Fatalf("message create: got %v, body %s", rr.Code, rr.Body.String())
	}
	var msg models.Message
	json.NewDecoder(rr.Body).Decode(&msg)
	if msg.SenderID != alice.ID || msg.ConversationID != conv.ID {
		t.Errorf("Message stored with wrong references: %+v", msg)
	}

	// Bob, the other participant, reads it through his own path.
	rr = env.do(t, "GET", userPath(bob.ID, fmt.Sprintf("/conversations/%d/messages", conv.ID)), nil, bob)
	if rr.Code != http.StatusOK {
		t.Fatalf("participant read: got %v, body %s", rr.Code, rr.Body.String())
	}
	var messages []models.Message
	json.NewDecoder(rr.Body).Decode(&messages)
	if len(messages) != 1 || messages[0].Content != "hi" {
		t.Errorf("Expected the one message, got %+v", messages)
	}

	// Carol through Bob's path: ownership fails first.
	rr = env.do(t, "GET", userPath(bob.ID, fmt.Sprintf("/conversations/%d/messages", conv.ID)), nil, carol)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("foreign path read: got %v want %v", rr.Code, http.StatusUnauthorized)
	}

	// Carol through her own path: membership masked as not found.
	rr = env.do(t, "GET", userPath(carol.ID, fmt.Sprintf("/conversations/%d/messages", conv.ID)), nil, carol)
	if rr.Code != http.StatusNotFound {
		t.Errorf("non-member read: got %v want %v", rr.Code, http.StatusNotFound)
	}
}

func TestCreateMessageValidation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	conv, _ := env.store.CreateConversation(alice.ID, bob.ID)

	rr := env.do(t, "POST", userPath(alice.ID, fmt.Sprintf("/conversations/%d/messages", conv.ID)),
		MessageRequest{Content: ""}, alice)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("empty content: got %v want %v", rr.Code, http.StatusBadRequest)
	}
}

func TestMessageLifecycle(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	conv, _ := env.store.CreateConversation(alice.ID, bob.ID)
	msg, _ := env.store.CreateMessage(conv.ID, alice.ID, "hello")
	msgPath := fmt.Sprintf("/conversations/%d/messages/%d", conv.ID, msg.ID)

	// Sender reads it.
	rr := env.do(t, "GET", userPath(alice.ID, msgPath), nil, alice)
	if rr.Code != http.StatusOK {
		t.Fatalf("sender read: got %v, body %s", rr.Code, rr.Body.String())
	}

	// Bob is a participant but not the sender: the triple doesn't match.
	rr = env.do(t, "GET", userPath(bob.ID, msgPath), nil, bob)
	if rr.Code != http.StatusNotFound {
		t.Errorf("non-sender read: got %v want %v", rr.Code, http.StatusNotFound)
	}

	// Sender edits it.
	rr = env.do(t, "PUT", userPath(alice.ID, msgPath), MessageRequest{Content: "edited"}, alice)
	if rr.Code != http.StatusOK {
		t.Fatalf("update: got %v, body %s", rr.Code, rr.Body.String())
	}
	var updated models.Message
	json.NewDecoder(rr.Body).Decode(&updated)
	if updated.Content != "edited" {
		t.Errorf("Expected edited content, got %q", updated.Content)
	}

	// Sender deletes it.
	rr = env.do(t, "DELETE", userPath(alice.ID, msgPath), nil, alice)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete: got %v", rr.Code)
	}
	rr = env.do(t, "GET", userPath(alice.ID, msgPath), nil, alice)
	if rr.Code != http.StatusNotFound {
		t.Errorf("read after delete: got %v want %v", rr.Code, http.StatusNotFound)
	}
}

func TestMessageWrongConversation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	convAB, _ := env.store.CreateConversation(alice.ID, bob.ID)
	convAC, _ := env.store.CreateConversation(alice.ID, carol.ID)
	msg, _ := env.store.CreateMessage(convAB.ID, alice.ID, "hello")

	// Right message id, wrong containing conversation.
	rr := env.do(t, "GET",
		userPath(alice.ID, fmt.Sprintf("/conversations/%d/messages/%d", convAC.ID, msg.ID)), nil, alice)
	if rr.Code != http.StatusNotFound {
		t.Errorf("wrong conversation: got %v want %v", rr.Code, http.StatusNotFound)
	}
}
