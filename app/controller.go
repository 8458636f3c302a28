// Package app holds the application state and the only operations allowed to
// change it. Views read from the Controller and re-render when notified.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"edu-messenger/advisor"
	"edu-messenger/auth"
	"edu-messenger/chat"
	"edu-messenger/utils"
)

// ErrNotAuthenticated is returned by chat operations without a session
var ErrNotAuthenticated = errors.New("not authenticated")

// Snapshot is the read-only view state published on every change
type Snapshot struct {
	Authenticated      bool
	User               auth.CredentialRecord
	ActiveConversation string
	Advice             advisor.Result
	ActivityCount      int
}

// Controller owns the session, chat data, activity log and advisor
type Controller struct {
	sessions  *auth.Sessions
	directory *chat.Directory
	messages  *chat.MessageLog
	activity  *chat.ActivityLog
	advisor   *advisor.Gateway
	logger    *utils.Logger

	mu          sync.Mutex
	activeID    string
	subscribers []func(Snapshot)
}

// Deps are the collaborators a Controller is assembled from
type Deps struct {
	Sessions *auth.Sessions
	Seed     chat.Seed
	Advisor  *advisor.Gateway
	Logger   *utils.Logger
}

// NewController wires the state core. A nil Seed means the built-in fixtures.
func NewController(deps Deps) *Controller {
	logger := deps.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	seed := deps.Seed
	if seed == nil {
		seed = chat.FixtureSeed{}
	}
	gateway := deps.Advisor
	if gateway == nil {
		gateway = advisor.NewGateway(nil, 0, logger)
	}

	directory := chat.NewDirectory(seed)
	c := &Controller{
		sessions:  deps.Sessions,
		directory: directory,
		messages:  chat.NewMessageLog(directory, seed),
		activity:  chat.NewActivityLog(logger.Named("activity")),
		advisor:   gateway,
		logger:    logger,
	}
	gateway.OnChange(func(advisor.Result) { c.notify() })
	return c
}

// Subscribe registers fn to receive a Snapshot after every change
func (c *Controller) Subscribe(fn func(Snapshot)) {
	c.mu.Lock()
	c.subscribers = append(c.subscribers, fn)
	c.mu.Unlock()
}

// Snapshot returns the current view state
func (c *Controller) Snapshot() Snapshot {
	user, ok := c.sessions.Current()
	c.mu.Lock()
	active := c.activeID
	c.mu.Unlock()
	return Snapshot{
		Authenticated:      ok,
		User:               user,
		ActiveConversation: active,
		Advice:             c.advisor.Current(),
		ActivityCount:      c.activity.Len(),
	}
}

// Register creates a credential; the session state is unchanged
func (c *Controller) Register(identifier, secret string) (auth.CredentialRecord, error) {
	record, err := c.sessions.Register(identifier, secret)
	if err != nil {
		c.logger.Info("Registration rejected for %s: %v", identifier, err)
		return auth.CredentialRecord{}, err
	}
	c.activity.Record(fmt.Sprintf("User %s registered (bcrypt hash stored).", identifier))
	c.notify()
	return record, nil
}

// Login establishes the session
func (c *Controller) Login(identifier, secret string) (auth.CredentialRecord, error) {
	record, err := c.sessions.Login(identifier, secret)
	if err != nil {
		c.logger.Info("Login rejected for %s: %v", identifier, err)
		return auth.CredentialRecord{}, err
	}
	c.activity.Record(fmt.Sprintf("Login successful for %s. Session established.", identifier))
	c.notify()
	return record, nil
}

// Logout ends the session and drops the conversation selection and the
// advisory buffer. Messages and the activity log are kept. Without an active
// session it does nothing.
func (c *Controller) Logout() {
	if !c.sessions.Logout() {
		return
	}
	c.mu.Lock()
	c.activeID = ""
	c.mu.Unlock()
	c.advisor.Reset()
	c.activity.Record("Logout")
	c.notify()
}

// Conversations lists the directory
func (c *Controller) Conversations() ([]chat.Conversation, error) {
	if !c.sessions.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	return c.directory.List(), nil
}

// Conversation looks up one directory entry
func (c *Controller) Conversation(id string) (chat.Conversation, error) {
	if !c.sessions.Authenticated() {
		return chat.Conversation{}, ErrNotAuthenticated
	}
	return c.directory.Get(id)
}

// SelectConversation makes id the active conversation
func (c *Controller) SelectConversation(id string) error {
	if !c.sessions.Authenticated() {
		return ErrNotAuthenticated
	}
	if _, err := c.directory.Get(id); err != nil {
		return err
	}
	c.mu.Lock()
	c.activeID = id
	c.mu.Unlock()
	c.notify()
	return nil
}

// ClearSelection returns to the "choose a chat" view
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	c.activeID = ""
	c.mu.Unlock()
	c.notify()
}

// ActiveConversation returns the selected conversation id, or ""
func (c *Controller) ActiveConversation() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeID
}

// SendMessage appends body to the active conversation
func (c *Controller) SendMessage(body string) (chat.Message, error) {
	return c.AppendMessage(c.ActiveConversation(), body)
}

// AppendMessage appends body to conversationID as the local user
func (c *Controller) AppendMessage(conversationID, body string) (chat.Message, error) {
	if !c.sessions.Authenticated() {
		return chat.Message{}, ErrNotAuthenticated
	}
	msg, err := c.messages.Append(conversationID, body)
	if err != nil {
		return chat.Message{}, err
	}
	c.activity.Record(fmt.Sprintf("POST /api/messages - Payload: %q to Chat %s", body, conversationID))
	c.notify()
	return msg, nil
}

// Messages lists a conversation's messages in order
func (c *Controller) Messages(conversationID string) ([]chat.Message, error) {
	if !c.sessions.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	return c.messages.ListFor(conversationID), nil
}

// Ask forwards topic to the advisor and blocks until it resolves. Callers on
// a UI thread run it on a goroutine; progress arrives through Subscribe.
func (c *Controller) Ask(ctx context.Context, topic string) advisor.Result {
	c.activity.Record(fmt.Sprintf("Advisor request: %s", topic))
	return c.advisor.Ask(ctx, topic)
}

// Advice returns the advisory display buffer
func (c *Controller) Advice() advisor.Result {
	return c.advisor.Current()
}

// DismissAdvice clears the advisory buffer
func (c *Controller) DismissAdvice() {
	c.advisor.Reset()
}

// Activity returns the activity log, most recent last
func (c *Controller) Activity() []chat.Activity {
	return c.activity.Entries()
}

// AdvisorName returns the advisor's provider name
func (c *Controller) AdvisorName() string {
	return c.advisor.ProviderName()
}

func (c *Controller) notify() {
	snapshot := c.Snapshot()
	c.mu.Lock()
	subscribers := make([]func(Snapshot), len(c.subscribers))
	copy(subscribers, c.subscribers)
	c.mu.Unlock()
	for _, fn := range subscribers {
		fn(snapshot)
	}
}
