package repos

import (
	"github.com/jmoiron/sqlx"

	"feedsoko/internal/domain"
)

type MessageRepo struct{ db *sqlx.DB }

func NewMessageRepo(db *sqlx.DB) *MessageRepo { return &MessageRepo{db: db} }

const messageCols = `id, sender_id, receiver_id, order_id, content, message_type, is_read, created_at`

func (r *MessageRepo) Create(m *domain.Message) (int64, error) {
	res, err := r.db.Exec(`
		INSERT INTO messages(sender_id,receiver_id,order_id,content,message_type)
		VALUES(?,?,?,?,?)`,
		m.SenderID, m.ReceiverID, m.OrderID, m.Content, m.MessageType)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Between returns the full conversation between two users in either
// direction, oldest first.
func (r *MessageRepo) Between(a, b int64) ([]domain.Message, error) {
	var out []domain.Message
	err := r.db.Select(&out, `
		SELECT `+messageCols+`
		FROM messages
		WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
		ORDER BY datetime(created_at), id`, a, b, b, a)
	return out, err
}

// AllForUser returns every message the user sent or received, newest first
// (the inbox view).
func (r *MessageRepo) AllForUser(userID int64) ([]domain.Message, error) {
	var out []domain.Message
	err := r.db.Select(&out, `
		SELECT `+messageCols+`
		FROM messages
		WHERE sender_id = ? OR receiver_id = ?
		ORDER BY datetime(created_at) DESC, id DESC`, userID, userID)
	return out, err
}

// MarkRead flips every unread message from sender to receiver (the receiver
// opened the conversation). Reports whether any row changed.
func (r *MessageRepo) MarkRead(senderID, receiverID int64) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE messages SET is_read = 1
		WHERE sender_id = ? AND receiver_id = ? AND is_read = 0`, senderID, receiverID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// UnreadCount is the receiver's unread badge.
func (r *MessageRepo) UnreadCount(receiverID int64) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM messages WHERE receiver_id = ? AND is_read = 0`, receiverID)
	return n, err
}
