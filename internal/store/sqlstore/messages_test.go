package sqlstore

import (
	"errors"
	"testing"

	"github.com/jharden/parley/internal/store"
)

func TestCreateAndListMessages(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	alice := mustCreateUser(t, "alice")
	bob := mustCreateUser(t, "bob")
	conv, _ := testStore.CreateConversation(alice.ID, bob.ID)

	first, err := testStore.CreateMessage(conv.ID, alice.ID, "hello")
	if err != nil {
		t.Fatalf("CreateMessage failed: %v", err)
	}
	if first.ID == 0 {
		t.Error("Expected non-zero message ID")
	}
	testStore.CreateMessage(conv.ID, bob.ID, "hey")

	messages, err := testStore.GetMessagesByConversation(conv.ID)
	if err != nil {
		t.Fatalf("GetMessagesByConversation failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if messages[0].Content != "hello" || messages[1].Content != "hey" {
		t.Errorf("Messages out of creation order: %+v", messages)
	}
}

func TestGetMessageTripleMatch(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	alice := mustCreateUser(t, "alice")
	bob := mustCreateUser(t, "bob")
	conv, _ := testStore.CreateConversation(alice.ID, bob.ID)
	other, _ := testStore.CreateConversation(bob.ID, alice.ID)

	msg, _ := testStore.CreateMessage(conv.ID, alice.ID, "hello")

	if _, err := testStore.GetMessage(msg.ID, conv.ID, alice.ID); err != nil {
		t.Fatalf("GetMessage failed for exact match: %v", err)
	}

	// Any single mismatch in the triple is not found.
	mismatches := []struct {
		name                        string
		messageID, convID, senderID int
	}{
		{"wrong message", 9999, conv.ID, alice.ID},
		{"wrong conversation", msg.ID, other.ID, alice.ID},
		{"wrong sender", msg.ID, conv.ID, bob.ID},
	}
	for _, tt := range mismatches {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := testStore.GetMessage(tt.messageID, tt.convID, tt.senderID); !errors.Is(err, store.ErrNotFound) {
				t.Errorf("Expected store.ErrNotFound, got %v", err)
			}
		})
	}
}

func TestUpdateMessage(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	alice := mustCreateUser(t, "alice")
	bob := mustCreateUser(t, "bob")
	conv, _ := testStore.CreateConversation(alice.ID, bob.ID)
	msg, _ := testStore.CreateMessage(conv.ID, alice.ID, "hello")

	updated, err := testStore.UpdateMessage(msg.ID, conv.ID, alice.ID, "edited")
	if err != nil {
		t.Fatalf("UpdateMessage failed: %v", err)
	}
	if updated.Content != "edited" {
		t.Errorf("Expected content 'edited', got '%s'", updated.Content)
	}

	if _, err := testStore.UpdateMessage(msg.ID, conv.ID, bob.ID, "x"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected store.ErrNotFound for wrong sender, got %v", err)
	}
}

func TestDeleteMessage(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	alice := mustCreateUser(t, "alice")
	bob := mustCreateUser(t, "bob")
	conv, _ := testStore.CreateConversation(alice.ID, bob.ID)
	msg, _ := testStore.CreateMessage(conv.ID, alice.ID, "hello")

	if err := testStore.DeleteMessage(msg.ID, conv.ID, bob.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected store.ErrNotFound for wrong sender, got %v", err)
	}

	if err := testStore.DeleteMessage(msg.ID, conv.ID, alice.ID); err != nil {
		t.Fatalf("DeleteMessage failed: %v", err)
	}

	if _, err := testStore.GetMessage(msg.ID, conv.ID, alice.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected message gone, got %v", err)
	}
}
