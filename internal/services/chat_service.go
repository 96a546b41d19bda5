package services

import (
	"errors"

	"feedsoko/internal/domain"
	"feedsoko/internal/repos"
)

var (
	ErrEmptyMessage  = errors.New("message content is empty")
	ErrBadMsgType    = errors.New("message type must be text or image")
	ErrUnknownUser   = errors.New("receiver does not exist")
	ErrSelfMessaging = errors.New("cannot message yourself")
)

type ChatService struct {
	Messages *repos.MessageRepo
	Users    *repos.UserRepo
}

func NewChatService(messages *repos.MessageRepo, users *repos.UserRepo) *ChatService {
	return &ChatService{Messages: messages, Users: users}
}

// Send creates a directed message from the authenticated user. OrderID is
// optional context ("asking about my order").
func (s *ChatService) Send(sender *domain.User, receiverID int64, orderID *int64, content string, msgType domain.MessageType) (int64, error) {
	if content == "" {
		return 0, ErrEmptyMessage
	}
	if msgType == "" {
		msgType = domain.MessageText
	}
	if !msgType.Valid() {
		return 0, ErrBadMsgType
	}
	if receiverID == sender.ID {
		return 0, ErrSelfMessaging
	}
	if u, err := s.Users.ByID(receiverID); err != nil {
		return 0, err
	} else if u == nil {
		return 0, ErrUnknownUser
	}
	return s.Messages.Create(&domain.Message{
		SenderID:    sender.ID,
		ReceiverID:  receiverID,
		OrderID:     orderID,
		Content:     content,
		MessageType: msgType,
	})
}

// Conversation returns the thread with the other user and marks their side
// read, mirroring the mobile app opening a chat screen.
func (s *ChatService) Conversation(u *domain.User, otherID int64) ([]domain.Message, error) {
	msgs, err := s.Messages.Between(u.ID, otherID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Messages.MarkRead(otherID, u.ID); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *ChatService) Inbox(u *domain.User) ([]domain.Message, error) {
	return s.Messages.AllForUser(u.ID)
}

func (s *ChatService) MarkRead(u *domain.User, senderID int64) (bool, error) {
	return s.Messages.MarkRead(senderID, u.ID)
}

func (s *ChatService) UnreadCount(u *domain.User) (int, error) {
	return s.Messages.UnreadCount(u.ID)
}
