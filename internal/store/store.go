package store

import (
	"errors"

	"github.com/jharden/parley/internal/models"
)

// ErrNotFound is returned for any lookup that matches no row. Composite-key
// lookups return it on a partial match too (id exists but ownership or
// containment doesn't hold), so callers cannot tell absence from
// non-membership.
var ErrNotFound = errors.New("not found")

type Store interface {
	// User operations
	CreateUser(user *models.User) error
	GetUsers() ([]models.User, error)
	GetUserByID(id int) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(id int, email, passwordHash string) (*models.User, error)

	// Conversation operations
	CreateConversation(userA, userB int) (*models.Conversation, error)
	GetConversationsByUser(userID int) ([]models.Conversation, error)
	GetConversationForUser(conversationID, userID int) (*models.Conversation, error)
	DeleteConversation(conversationID int) error

	// Message operations
	GetMessagesByConversation(conversationID int) ([]models.Message, error)
	CreateMessage(conversationID, senderID int, content string) (*models.Message, error)
	GetMessage(messageID, conversationID, senderID int) (*models.Message, error)
	UpdateMessage(messageID, conversationID, senderID int, content string) (*models.Message, error)
	DeleteMessage(messageID, conversationID, senderID int) error
}
