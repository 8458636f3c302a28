package chat

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSeed struct {
	conversations []Conversation
	messages      map[string][]Message
}

func (s stubSeed) Conversations() []Conversation  { return s.conversations }
func (s stubSeed) Messages() map[string][]Message { return s.messages }

func newFixtureLog() (*Directory, *MessageLog) {
	seed := FixtureSeed{}
	dir := NewDirectory(seed)
	return dir, NewMessageLog(dir, seed)
}

func TestDirectory_Fixture(t *testing.T) {
	dir := NewDirectory(FixtureSeed{})

	list := dir.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{list[0].ID, list[1].ID, list[2].ID})

	conv, err := dir.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "ИИ-Наставник", conv.Participant)
	assert.Equal(t, 1, conv.UnreadCount)
	assert.True(t, conv.IsOnline)

	_, err = dir.Get("42")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDirectory_DuplicateIDsKeepFirst(t *testing.T) {
	dir := NewDirectory(stubSeed{conversations: []Conversation{
		{ID: "a", Participant: "first"},
		{ID: "a", Participant: "second"},
	}})
	require.Len(t, dir.List(), 1)
	conv, err := dir.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "first", conv.Participant)
}

func TestMessageLog_SeededHistory(t *testing.T) {
	_, log := newFixtureLog()

	msgs := log.ListFor("1")
	require.Len(t, msgs, 3)
	assert.Equal(t, StatusRead, msgs[0].Status)
	assert.Equal(t, StatusSent, msgs[2].Status)
	assert.True(t, msgs[1].FromLocalUser())
	assert.Equal(t, "12:40", msgs[0].DisplayTime())

	empty := log.ListFor("2")
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMessageLog_AppendOrder(t *testing.T) {
	_, log := newFixtureLog()
	before := log.Count("2")

	var bodies []string
	var lastID int64
	for i := 0; i < 20; i++ {
		body := fmt.Sprintf("msg %d", i)
		bodies = append(bodies, body)
		msg, err := log.Append("2", body)
		require.NoError(t, err)
		assert.Greater(t, msg.ID, lastID, "ids increase monotonically")
		lastID = msg.ID
	}

	// failing calls interleaved do not count
	_, err := log.Append("2", "   ")
	require.Error(t, err)

	msgs := log.ListFor("2")
	require.Len(t, msgs, before+len(bodies))
	for i, body := range bodies {
		assert.Equal(t, body, msgs[before+i].Text)
	}
}

func TestMessageLog_AppendBuildsLocalSentMessage(t *testing.T) {
	_, log := newFixtureLog()
	now := time.Date(2026, 10, 19, 9, 5, 0, 0, time.UTC)
	log.now = func() time.Time { return now }

	msg, err := log.Append("1", "Hello")
	require.NoError(t, err)
	assert.Equal(t, LocalSender, msg.SenderID)
	assert.Equal(t, StatusSent, msg.Status)
	assert.Equal(t, "1", msg.ConversationID)
	assert.Equal(t, "09:05", msg.DisplayTime())
	assert.Greater(t, msg.ID, int64(3), "ids continue after the seed")

	msgs := log.ListFor("1")
	assert.Equal(t, msg, msgs[len(msgs)-1])
}

func TestMessageLog_AppendErrors(t *testing.T) {
	_, log := newFixtureLog()
	before := log.Count("1")

	_, err := log.Append("", "Hello")
	assert.ErrorIs(t, err, ErrNoActiveConversation)

	for _, body := range []string{"", " ", "\t\n", "  "} {
		_, err = log.Append("1", body)
		assert.ErrorIs(t, err, ErrEmptyBody, "body %q", body)
	}

	_, err = log.Append("404", "Hello")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, before, log.Count("1"))
	assert.Empty(t, log.ListFor("404"))
}

func TestMessageLog_BodyStoredVerbatim(t *testing.T) {
	_, log := newFixtureLog()
	msg, err := log.Append("3", "  spaced  ")
	require.NoError(t, err)
	assert.Equal(t, "  spaced  ", msg.Text)
}

func TestMessageLog_ListIsACopy(t *testing.T) {
	_, log := newFixtureLog()
	msgs := log.ListFor("1")
	msgs[0].Text = "changed"
	assert.NotEqual(t, "changed", log.ListFor("1")[0].Text)
}

func TestMessageLog_DropsOrphanSeedMessages(t *testing.T) {
	seed := stubSeed{
		conversations: []Conversation{{ID: "a"}},
		messages: map[string][]Message{
			"a":     {{ID: 7, SenderID: "a", Text: "hi"}},
			"ghost": {{ID: 99, SenderID: "x", Text: "lost"}},
		},
	}
	dir := NewDirectory(seed)
	log := NewMessageLog(dir, seed)

	assert.Empty(t, log.ListFor("ghost"))
	msg, err := log.Append("a", "next")
	require.NoError(t, err)
	assert.Equal(t, int64(8), msg.ID)
}

func TestActivityLog(t *testing.T) {
	log := NewActivityLog(nil)
	log.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	first := log.Record("Logout")
	log.Record("Login successful for admin_dev. Session established.")

	assert.Equal(t, 2, log.Len())
	entries := log.Entries()
	assert.Equal(t, "Logout", entries[0].Description)
	assert.Equal(t, "[03:04:05] Logout", first.String())
	assert.Contains(t, entries[1].Description, "admin_dev")
}
