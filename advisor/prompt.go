package advisor

import (
	"fmt"
	"strings"
)

// Topics offered by the built-in advisor buttons
const (
	TopicRealtime     = "Flask-SocketIO real-time architecture"
	TopicMessageModel = "Designing Message SQL Model in Flask-SQLAlchemy"
	TopicSearch       = "Implementing search in messages Flask SQLite"
	TopicHashing      = "Comparison: Argon2 vs PBKDF2 in Python"
)

const promptTemplate = `You are a senior Python backend developer mentoring a student.
The student is building a professional messenger (like Telegram/WhatsApp).
Topic: %s.
Context: Flask backend, SQLite, real-time communication.

Requirements:
1. Explain in Russian.
2. If real-time, focus on Flask-SocketIO.
3. Provide concise Python code snippets.
4. Explain database relationships for messages (One-to-Many).
5. Keep it under 300 words.`

// BuildPrompt wraps the topic in the fixed mentor framing
func BuildPrompt(topic string) string {
	return fmt.Sprintf(promptTemplate, strings.TrimSpace(topic))
}
