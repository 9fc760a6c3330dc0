package sqlstore

import (
	"database/sql"
	"errors"

	"github.com/jharden/parley/internal/models"
	"github.com/jharden/parley/internal/store"
)

func (s *SQLStore) GetMessagesByConversation(conversationID int) ([]models.Message, error) {
	query := s.rebind(`
		SELECT id, conversation_id, sender_id, content, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at ASC, id ASC
	`)
	rows, err := s.db.Query(query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *SQLStore) CreateMessage(conversationID, senderID int, content string) (*models.Message, error) {
	query := s.rebind("INSERT INTO messages (conversation_id, sender_id, content) VALUES (?, ?, ?) RETURNING id, created_at")
	m := models.Message{ConversationID: conversationID, SenderID: senderID, Content: content}
	err := s.db.QueryRow(query, conversationID, senderID, content).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMessage matches on the full (message, conversation, sender) triple; any
// single mismatch is reported as not found.
func (s *SQLStore) GetMessage(messageID, conversationID, senderID int) (*models.Message, error) {
	query := s.rebind(`
		SELECT id, conversation_id, sender_id, content, created_at
		FROM messages
		WHERE id = ? AND conversation_id = ? AND sender_id = ?
	`)
	var m models.Message
	err := s.db.QueryRow(query, messageID, conversationID, senderID).
		Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *SQLStore) UpdateMessage(messageID, conversationID, senderID int, content string) (*models.Message, error) {
	query := s.rebind("UPDATE messages SET content = ? WHERE id = ? AND conversation_id = ? AND sender_id = ?")
	result, err := s.db.Exec(query, content, messageID, conversationID, senderID)
	if err != nil {
		return nil, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, store.ErrNotFound
	}
	return s.GetMessage(messageID, conversationID, senderID)
}

func (s *SQLStore) DeleteMessage(messageID, conversationID, senderID int) error {
	query := s.rebind("DELETE FROM messages WHERE id = ? AND conversation_id = ? AND sender_id = ?")
	result, err := s.db.Exec(query, messageID, conversationID, senderID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}
