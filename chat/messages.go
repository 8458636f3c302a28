package chat

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// MessageLog maps conversation ids to their ordered messages. Only the
// local user appends; nothing is edited or removed.
type MessageLog struct {
	mu        sync.RWMutex
	directory *Directory
	messages  map[string][]Message
	lastID    int64
	now       func() time.Time
}

// NewMessageLog seeds the log. Seeded messages whose conversation is not in
// the directory are dropped; ids of new messages continue after the highest
// seeded id.
func NewMessageLog(directory *Directory, seed Seed) *MessageLog {
	l := &MessageLog{
		directory: directory,
		messages:  make(map[string][]Message),
		now:       time.Now,
	}
	for convID, msgs := range seed.Messages() {
		if !directory.Contains(convID) {
			continue
		}
		for _, msg := range msgs {
			msg.ConversationID = convID
			l.messages[convID] = append(l.messages[convID], msg)
			if msg.ID > l.lastID {
				l.lastID = msg.ID
			}
		}
	}
	return l
}

// Append adds a message from the local user at the tail of the conversation
func (l *MessageLog) Append(conversationID, body string) (Message, error) {
	if conversationID == "" {
		return Message{}, ErrNoActiveConversation
	}
	if strings.TrimSpace(body) == "" {
		return Message{}, ErrEmptyBody
	}
	if !l.directory.Contains(conversationID) {
		return Message{}, fmt.Errorf("append to %q: %w", conversationID, ErrNotFound)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastID++
	msg := Message{
		ID:             l.lastID,
		ConversationID: conversationID,
		SenderID:       LocalSender,
		Text:           body,
		Timestamp:      l.now(),
		Status:         StatusSent,
	}
	l.messages[conversationID] = append(l.messages[conversationID], msg)
	return msg, nil
}

// ListFor returns the conversation's messages in insertion order. An unknown
// or empty conversation yields an empty slice.
func (l *MessageLog) ListFor(conversationID string) []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	msgs := l.messages[conversationID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// Count returns the number of messages in the conversation
func (l *MessageLog) Count(conversationID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages[conversationID])
}
