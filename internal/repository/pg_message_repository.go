package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xXAMIRAYA/PSynthese/internal/model"
)

type pgMessageRepository struct {
	pool *pgxpool.Pool
}

// NewPgMessageRepository returns a PostgreSQL-backed MessageRepository.
func NewPgMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &pgMessageRepository{pool: pool}
}

func (r *pgMessageRepository) Create(ctx context.Context, m *model.Message) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO messages (sender_id, receiver_id, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, read, created_at`,
		m.SenderID, m.ReceiverID, m.Content,
	).Scan(&m.ID, &m.Read, &m.CreatedAt)
}

func (r *pgMessageRepository) ConversationBetween(ctx context.Context, userID, contactID string) ([]*model.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, sender_id, receiver_id, content, read, created_at
		 FROM messages
		 WHERE (sender_id = $1 AND receiver_id = $2)
		    OR (sender_id = $2 AND receiver_id = $1)
		 ORDER BY created_at ASC`,
		userID, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*model.Message
	for rows.Next() {
		m := &model.Message{}
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *pgMessageRepository) MarkReadFrom(ctx context.Context, receiverID, senderID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE messages SET read = TRUE
		 WHERE receiver_id = $1 AND sender_id = $2 AND read = FALSE`,
		receiverID, senderID)
	return err
}

func (r *pgMessageRepository) MarkAllRead(ctx context.Context, receiverID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE messages SET read = TRUE
		 WHERE receiver_id = $1 AND read = FALSE`,
		receiverID)
	return err
}

func (r *pgMessageRepository) UnreadCount(ctx context.Context, receiverID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND read = FALSE`,
		receiverID,
	).Scan(&count)
	return count, err
}
