package domain

type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
)

func (t MessageType) Valid() bool {
	return t == MessageText || t == MessageImage
}

// Message is a directed chat message between a farmer and a seller,
// optionally tied to an order. Only the read flag ever mutates.
type Message struct {
	ID          int64       `db:"id" json:"id"`
	SenderID    int64       `db:"sender_id" json:"senderId"`
	ReceiverID  int64       `db:"receiver_id" json:"receiverId"`
	OrderID     *int64      `db:"order_id" json:"orderId,omitempty"`
	Content     string      `db:"content" json:"content"`
	MessageType MessageType `db:"message_type" json:"messageType"`
	IsRead      bool        `db:"is_read" json:"isRead"`
	CreatedAt   string      `db:"created_at" json:"createdAt"`
}
