package sqlstore

import (
	"database/sql"
	"errors"

	"github.com/jharden/parley/internal/models"
	"github.com/jharden/parley/internal/store"
)

func (s *SQLStore) CreateConversation(userA, userB int) (*models.Conversation, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var id int
	if err := tx.QueryRow(s.rebind("INSERT INTO conversations DEFAULT VALUES RETURNING id")).Scan(&id); err != nil {
		return nil, err
	}

	insert := s.rebind("INSERT INTO participants (conversation_id, user_id) VALUES (?, ?)")
	for _, userID := range []int{userA, userB} {
		if _, err := tx.Exec(insert, id, userID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	participants, err := s.getParticipants(id)
	if err != nil {
		return nil, err
	}
	return &models.Conversation{ID: id, Participants: participants}, nil
}

func (s *SQLStore) GetConversationsByUser(userID int) ([]models.Conversation, error) {
	query := s.rebind(`
		SELECT c.id
		FROM conversations c
		JOIN participants p ON c.id = p.conversation_id
		WHERE p.user_id = ?
		ORDER BY c.id
	`)
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []models.Conversation
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.ID); err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range conversations {
		participants, err := s.getParticipants(conversations[i].ID)
		if err != nil {
			return nil, err
		}
		conversations[i].Participants = participants
	}
	return conversations, nil
}

// GetConversationForUser resolves a conversation only when userID is a
// participant. A conversation that exists but doesn't contain the user is
// reported as not found, same as one that doesn't exist.
func (s *SQLStore) GetConversationForUser(conversationID, userID int) (*models.Conversation, error) {
	query := s.rebind(`
		SELECT c.id
		FROM conversations c
		JOIN participants p ON c.id = p.conversation_id
		WHERE c.id = ? AND p.user_id = ?
	`)
	var id int
	err := s.db.QueryRow(query, conversationID, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	participants, err := s.getParticipants(id)
	if err != nil {
		return nil, err
	}
	messages, err := s.GetMessagesByConversation(id)
	if err != nil {
		return nil, err
	}
	return &models.Conversation{ID: id, Participants: participants, Messages: messages}, nil
}

func (s *SQLStore) DeleteConversation(conversationID int) error {
	// Delete messages first (foreign key constraint)
	query := s.rebind("DELETE FROM messages WHERE conversation_id = ?")
	if _, err := s.db.Exec(query, conversationID); err != nil {
		return err
	}

	query = s.rebind("DELETE FROM participants WHERE conversation_id = ?")
	if _, err := s.db.Exec(query, conversationID); err != nil {
		return err
	}

	query = s.rebind("DELETE FROM conversations WHERE id = ?")
	result, err := s.db.Exec(query, conversationID)
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

func (s *SQLStore) getParticipants(conversationID int) ([]models.User, error) {
	query := s.rebind(`
		SELECT u.id, u.username, u.email, u.password
		FROM users u
		JOIN participants p ON u.id = p.user_id
		WHERE p.conversation_id = ?
		ORDER BY u.id
	`)
	rows, err := s.db.Query(query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Password); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
