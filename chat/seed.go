package chat

import "time"

// Seed supplies the directory and the initial messages. FixtureSeed is the
// compiled-in data; a real backend would provide another implementation.
type Seed interface {
	Conversations() []Conversation
	Messages() map[string][]Message
}

// FixtureSeed is the built-in demo data set
type FixtureSeed struct {
	// Day anchors the HH:MM timestamps of the seeded messages; zero means today
	Day time.Time
}

// Conversations returns the demo directory
func (FixtureSeed) Conversations() []Conversation {
	return []Conversation{
		{ID: "1", Participant: "ИИ-Наставник", LastMessage: "Как успехи с Argon2?", LastMessageTime: "12:45", UnreadCount: 1, IsOnline: true, Avatar: "AI"},
		{ID: "2", Participant: "Александр (Dev)", LastMessage: "Скинул пример миграций.", LastMessageTime: "Вчера", UnreadCount: 0, IsOnline: false, Avatar: "AD"},
		{ID: "3", Participant: "Frontend Группа", LastMessage: "Кто-то пробовал Tailwind v4?", LastMessageTime: "Пн", UnreadCount: 0, IsOnline: true, Avatar: "FG"},
	}
}

// Messages returns the demo history of the mentor chat
func (f FixtureSeed) Messages() map[string][]Message {
	day := f.Day
	if day.IsZero() {
		day = time.Now()
	}
	at := func(hour, minute int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
	}

	return map[string][]Message{
		"1": {
			{ID: 1, ConversationID: "1", SenderID: "1", Text: "Привет! Я твой виртуальный наставник по Flask.", Timestamp: at(12, 40), Status: StatusRead},
			{ID: 2, ConversationID: "1", SenderID: LocalSender, Text: "Привет! Пытаюсь разобраться с базой данных.", Timestamp: at(12, 42), Status: StatusRead},
			{ID: 3, ConversationID: "1", SenderID: "1", Text: "Отлично. Как успехи с Argon2? Помни, что безопасность — это фундамент.", Timestamp: at(12, 45), Status: StatusSent},
		},
	}
}
