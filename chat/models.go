package chat

import (
	"errors"
	"time"
)

// LocalSender is the sender id of messages written by the signed-in user
const LocalSender = "me"

var (
	ErrNotFound             = errors.New("conversation not found")
	ErrNoActiveConversation = errors.New("no active conversation")
	ErrEmptyBody            = errors.New("message body is empty")
)

// Status is the delivery status shown next to a message
type Status string

const (
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusRead      Status = "read"
)

// Conversation is a directory entry summarising one chat
type Conversation struct {
	ID              string `json:"id"`
	Participant     string `json:"participant"`
	LastMessage     string `json:"last_message"`
	LastMessageTime string `json:"last_message_time"`
	UnreadCount     int    `json:"unread_count"`
	IsOnline        bool   `json:"is_online"`
	Avatar          string `json:"avatar"`
}

// Message is a single chat message
type Message struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"` // LocalSender or the participant id
	Text           string    `json:"text"`
	Timestamp      time.Time `json:"timestamp"`
	Status         Status    `json:"status"`
}

// FromLocalUser reports whether the signed-in user wrote the message
func (m Message) FromLocalUser() bool {
	return m.SenderID == LocalSender
}

// DisplayTime formats the timestamp the way the chat view shows it
func (m Message) DisplayTime() string {
	return m.Timestamp.Format("15:04")
}
