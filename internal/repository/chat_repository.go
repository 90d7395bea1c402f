package repository

import (
	"context"
	"database/sql"
	"errors"

	"swapnest/internal/entity"
)

type ChatRepository struct {
	db *sql.DB
}

func NewChatRepository(db *sql.DB) *ChatRepository {
	return &ChatRepository{db}
}

func (r *ChatRepository) CreateConversation(ctx context.Context, productID *int, creatorID int) (*entity.Conversation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `INSERT INTO conversations (product_id) VALUES (?)`, productID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO conversation_participants (conversation_id, user_id) VALUES (?, ?)`,
		id, creatorID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetConversationByID(ctx, int(id))
}

func (r *ChatRepository) GetConversationByID(ctx context.Context, id int) (*entity.Conversation, error) {
	var (
		conv      entity.Conversation
		productID sql.NullInt64
	)
	query := `SELECT id, product_id, created_at, updated_at FROM conversations WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&conv.ID, &productID, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	if productID.Valid {
		v := int(productID.Int64)
		conv.ProductID = &v
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM conversation_participants WHERE conversation_id = ? ORDER BY user_id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var userID int
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		conv.Participants = append(conv.Participants, userID)
	}
	return &conv, rows.Err()
}

func (r *ChatRepository) ListConversationsByUser(ctx context.Context, userID int) ([]entity.Conversation, error) {
	query := `SELECT c.id FROM conversations c
		JOIN conversation_participants cp ON cp.conversation_id = c.id
		WHERE cp.user_id = ? ORDER BY c.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var convs []entity.Conversation
	for _, id := range ids {
		conv, err := r.GetConversationByID(ctx, id)
		if err != nil {
			return nil, err
		}
		convs = append(convs, *conv)
	}
	return convs, nil
}

func (r *ChatRepository) IsParticipant(ctx context.Context, conversationID, userID int) (bool, error) {
	var n int
	query := `SELECT COUNT(*) FROM conversation_participants WHERE conversation_id = ? AND user_id = ?`
	if err := r.db.QueryRowContext(ctx, query, conversationID, userID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ChatRepository) AddParticipant(ctx context.Context, conversationID, userID int) error {
	// The composite primary key makes repeated joins harmless.
	_, err := r.db.ExecContext(ctx,
		`INSERT IGNORE INTO conversation_participants (conversation_id, user_id) VALUES (?, ?)`,
		conversationID, userID)
	return err
}

func (r *ChatRepository) CreateMessage(ctx context.Context, msg *entity.Message) (*entity.Message, error) {
	query := `INSERT INTO messages (conversation_id, sender_id, content) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, msg.ConversationID, msg.SenderID, msg.Content)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	msg.ID = int(id)
	return msg, nil
}

func (r *ChatRepository) ListMessages(ctx context.Context, conversationID int) ([]entity.Message, error) {
	query := `SELECT id, conversation_id, sender_id, content, read_status, created_at
		FROM messages WHERE conversation_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []entity.Message
	for rows.Next() {
		var m entity.Message
		err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.ReadStatus, &m.CreatedAt)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// MarkMessagesRead flips unread messages addressed to the reader.
func (r *ChatRepository) MarkMessagesRead(ctx context.Context, conversationID, readerID int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE messages SET read_status = TRUE WHERE conversation_id = ? AND sender_id <> ?`,
		conversationID, readerID)
	return err
}
