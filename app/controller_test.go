package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"edu-messenger/advisor"
	"edu-messenger/auth"
	"edu-messenger/chat"
	"edu-messenger/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubProvider struct {
	text string
	err  error
}

func (s stubProvider) Generate(context.Context, string) (string, error) { return s.text, s.err }
func (s stubProvider) Name() string                                     { return "stub" }
func (s stubProvider) Model() string                                    { return "stub-1" }
func (s stubProvider) ValidateConfig() error                            { return nil }

func newTestController(t *testing.T, provider stubProvider) *Controller {
	t.Helper()
	database, err := db.New(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	store := auth.NewStore(database, auth.WithHashCost(bcrypt.MinCost))
	return NewController(Deps{
		Sessions: auth.NewSessions(store),
		Advisor:  advisor.NewGateway(provider, time.Second, nil),
	})
}

func TestController_Scenario(t *testing.T) {
	c := newTestController(t, stubProvider{text: "ok"})

	_, err := c.Register("admin_dev", "secret12")
	require.NoError(t, err)
	assert.False(t, c.Snapshot().Authenticated)

	user, err := c.Login("admin_dev", "secret12")
	require.NoError(t, err)
	assert.Equal(t, "admin_dev", user.Identifier)
	assert.True(t, c.Snapshot().Authenticated)

	msg, err := c.AppendMessage("1", "Hello")
	require.NoError(t, err)
	assert.Equal(t, chat.LocalSender, msg.SenderID)
	assert.Equal(t, chat.StatusSent, msg.Status)

	msgs, err := c.Messages("1")
	require.NoError(t, err)
	assert.Equal(t, msg, msgs[len(msgs)-1])

	c.Logout()
	assert.False(t, c.Snapshot().Authenticated)

	_, err = c.Login("admin_dev", "secret12")
	assert.NoError(t, err)
}

func TestController_RequiresSession(t *testing.T) {
	c := newTestController(t, stubProvider{text: "ok"})

	_, err := c.Conversations()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = c.Conversation("1")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.ErrorIs(t, c.SelectConversation("1"), ErrNotAuthenticated)
	_, err = c.AppendMessage("1", "Hello")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = c.Messages("1")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	// the advisor is reachable from the login screen
	result := c.Ask(context.Background(), advisor.TopicHashing)
	assert.Equal(t, "ok", result.Text)
}

func TestController_SendMessageUsesSelection(t *testing.T) {
	c := newTestController(t, stubProvider{text: "ok"})
	_, err := c.Register("admin_dev", "secret12")
	require.NoError(t, err)
	_, err = c.Login("admin_dev", "secret12")
	require.NoError(t, err)

	_, err = c.SendMessage("Hello")
	assert.ErrorIs(t, err, chat.ErrNoActiveConversation)

	assert.ErrorIs(t, c.SelectConversation("99"), chat.ErrNotFound)
	require.NoError(t, c.SelectConversation("2"))
	assert.Equal(t, "2", c.ActiveConversation())

	_, err = c.SendMessage("   ")
	assert.ErrorIs(t, err, chat.ErrEmptyBody)

	for i := 0; i < 5; i++ {
		_, err = c.SendMessage(fmt.Sprintf("line %d", i))
		require.NoError(t, err)
	}
	msgs, err := c.Messages("2")
	require.NoError(t, err)
	require.Len(t, msgs, 5)
	assert.Equal(t, "line 4", msgs[4].Text)

	c.ClearSelection()
	assert.Empty(t, c.ActiveConversation())
}

func TestController_LogoutKeepsLogsClearsTransientState(t *testing.T) {
	c := newTestController(t, stubProvider{text: "advice"})
	_, err := c.Register("admin_dev", "secret12")
	require.NoError(t, err)
	_, err = c.Login("admin_dev", "secret12")
	require.NoError(t, err)
	require.NoError(t, c.SelectConversation("1"))
	_, err = c.SendMessage("Hello")
	require.NoError(t, err)
	c.Ask(context.Background(), "topic")
	require.Equal(t, "advice", c.Advice().Text)

	activityBefore := len(c.Activity())
	c.Logout()

	snap := c.Snapshot()
	assert.Empty(t, snap.ActiveConversation)
	assert.Equal(t, advisor.Result{}, snap.Advice)
	assert.Greater(t, len(c.Activity()), activityBefore)

	_, err = c.Login("admin_dev", "secret12")
	require.NoError(t, err)
	msgs, err := c.Messages("1")
	require.NoError(t, err)
	assert.Equal(t, "Hello", msgs[len(msgs)-1].Text)
}

func TestController_ActivityRecords(t *testing.T) {
	c := newTestController(t, stubProvider{text: "ok"})
	_, err := c.Register("admin_dev", "secret12")
	require.NoError(t, err)
	_, err = c.Login("admin_dev", "secret12")
	require.NoError(t, err)
	_, err = c.AppendMessage("1", "Hello")
	require.NoError(t, err)
	c.Logout()

	var descriptions []string
	for _, a := range c.Activity() {
		descriptions = append(descriptions, a.Description)
	}
	assert.Equal(t, []string{
		"User admin_dev registered (bcrypt hash stored).",
		"Login successful for admin_dev. Session established.",
		`POST /api/messages - Payload: "Hello" to Chat 1`,
		"Logout",
	}, descriptions)
}

func TestController_LogoutWithoutSessionIsNoop(t *testing.T) {
	c := newTestController(t, stubProvider{text: "ok"})

	notified := 0
	c.Subscribe(func(Snapshot) { notified++ })

	c.Logout()
	assert.Empty(t, c.Activity())
	assert.Zero(t, notified)

	_, err := c.Register("admin_dev", "secret12")
	require.NoError(t, err)
	_, err = c.Login("admin_dev", "secret12")
	require.NoError(t, err)
	c.Logout()
	c.Logout()

	var logouts int
	for _, a := range c.Activity() {
		if a.Description == "Logout" {
			logouts++
		}
	}
	assert.Equal(t, 1, logouts)
}

func TestController_FailedOperationsDoNotLog(t *testing.T) {
	c := newTestController(t, stubProvider{text: "ok"})

	_, err := c.Register("abc", "secret12")
	assert.ErrorIs(t, err, auth.ErrValidation)
	_, err = c.Login("admin_dev", "secret12")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	assert.Empty(t, c.Activity())
}

func TestController_SubscribeReceivesSnapshots(t *testing.T) {
	c := newTestController(t, stubProvider{text: "advice"})

	var mu sync.Mutex
	var snapshots []Snapshot
	c.Subscribe(func(s Snapshot) {
		mu.Lock()
		snapshots = append(snapshots, s)
		mu.Unlock()
	})

	_, err := c.Register("admin_dev", "secret12")
	require.NoError(t, err)
	_, err = c.Login("admin_dev", "secret12")
	require.NoError(t, err)
	c.Ask(context.Background(), "topic")

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, snapshots)
	last := snapshots[len(snapshots)-1]
	assert.True(t, last.Authenticated)
	assert.Equal(t, "advice", last.Advice.Text)

	sawPending := false
	for _, s := range snapshots {
		if s.Advice.Pending {
			sawPending = true
		}
	}
	assert.True(t, sawPending)
}

func TestController_AdviceFailureIsFallback(t *testing.T) {
	c := newTestController(t, stubProvider{err: errors.New("503")})
	result := c.Ask(context.Background(), "topic")
	assert.Equal(t, advisor.FailureText, result.Text)
	assert.Equal(t, advisor.FailureText, c.Advice().Text)

	c.DismissAdvice()
	assert.Empty(t, c.Advice().Text)
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Equal(t, "Логин должен быть > 3 символов, пароль > 6.", UserMessage(auth.ValidateCredentials("ab", "x")))
	assert.Equal(t, "Пользователь существует.", UserMessage(auth.ErrDuplicateIdentifier))
	assert.Equal(t, "Неверный логин или пароль.", UserMessage(fmt.Errorf("login: %w", auth.ErrInvalidCredentials)))
	assert.Equal(t, "Сообщение пустое.", UserMessage(chat.ErrEmptyBody))
	assert.Equal(t, "Внутренняя ошибка. Попробуйте ещё раз.", UserMessage(errors.New("disk")))
}
