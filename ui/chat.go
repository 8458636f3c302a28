package ui

import (
	"errors"
	"fmt"

	"edu-messenger/advisor"
	"edu-messenger/app"
	"edu-messenger/chat"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// ChatView shows the active conversation and the composer
type ChatView struct {
	app *App

	conversationID    string
	renderedCount     int
	messagesContainer *fyne.Container
	messagesScroll    *container.Scroll
	participantLabel  *widget.Label
	statusLabel       *widget.Label
	inputEntry        *widget.Entry
	sendButton        *widget.Button

	placeholder  fyne.CanvasObject
	conversation fyne.CanvasObject
	stack        *fyne.Container
}

// NewChatView creates the chat view
func NewChatView(a *App) *ChatView {
	return &ChatView{app: a}
}

// newSelectableText creates a read-only, selectable text widget
func newSelectableText(text string) *widget.Label {
	label := widget.NewLabel(text)
	label.Wrapping = fyne.TextWrapWord
	label.Selectable = true
	return label
}

// Build builds the chat view UI
func (cv *ChatView) Build() fyne.CanvasObject {
	cv.messagesContainer = container.NewVBox()
	cv.messagesScroll = container.NewVScroll(cv.messagesContainer)
	cv.messagesScroll.SetMinSize(fyne.NewSize(500, 360))

	cv.participantLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	cv.statusLabel = widget.NewLabel("")

	searchButton := widget.NewButton("Поиск", func() {
		cv.app.ask(advisor.TopicSearch)
	})
	searchButton.Importance = widget.LowImportance

	topBar := container.NewBorder(
		nil,
		nil,
		container.NewHBox(cv.participantLabel, cv.statusLabel),
		searchButton,
	)

	cv.inputEntry = widget.NewEntry()
	cv.inputEntry.SetPlaceHolder("Написать сообщение...")
	cv.inputEntry.OnSubmitted = func(string) { cv.sendMessage() }

	cv.sendButton = widget.NewButton("Отправить", cv.sendMessage)
	cv.sendButton.Importance = widget.HighImportance

	inputContainer := container.NewBorder(nil, nil, nil, cv.sendButton, cv.inputEntry)

	cv.conversation = container.NewBorder(topBar, inputContainer, nil, nil, cv.messagesScroll)

	modelButton := widget.NewButton("Схема БД сообщений", func() {
		cv.app.ask(advisor.TopicMessageModel)
	})
	cv.placeholder = container.NewCenter(container.NewVBox(
		widget.NewLabelWithStyle("Выберите чат", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Начните общение с коллегами или изучите архитектуру системы.", fyne.TextAlignCenter, fyne.TextStyle{}),
		container.NewCenter(modelButton),
	))

	cv.stack = container.NewStack(cv.placeholder, cv.conversation)
	cv.conversation.Hide()
	return cv.stack
}

// Render shows the placeholder or the selected conversation
func (cv *ChatView) Render(snapshot app.Snapshot) {
	if snapshot.ActiveConversation == "" {
		cv.conversationID = ""
		cv.renderedCount = 0
		cv.messagesContainer.RemoveAll()
		cv.conversation.Hide()
		cv.placeholder.Show()
		return
	}

	conv, err := cv.app.controller.Conversation(snapshot.ActiveConversation)
	if err != nil {
		cv.app.logger.Error("Failed to load conversation %s: %v", snapshot.ActiveConversation, err)
		return
	}

	if conv.ID != cv.conversationID {
		cv.conversationID = conv.ID
		cv.renderedCount = 0
		cv.messagesContainer.RemoveAll()
		cv.inputEntry.SetText("")
	}

	cv.participantLabel.SetText(conv.Participant)
	if conv.IsOnline {
		cv.statusLabel.SetText("В сети")
	} else {
		cv.statusLabel.SetText("Был(а) недавно")
	}

	cv.placeholder.Hide()
	cv.conversation.Show()
	cv.loadMessages()
}

// loadMessages appends the messages not rendered yet. The log only grows, so
// a count is enough to find them.
func (cv *ChatView) loadMessages() {
	messages, err := cv.app.controller.Messages(cv.conversationID)
	if err != nil {
		cv.app.logger.Error("Failed to load messages: %v", err)
		return
	}
	if len(messages) == cv.renderedCount {
		return
	}
	for _, msg := range messages[cv.renderedCount:] {
		cv.messagesContainer.Add(cv.buildMessageUI(msg))
	}
	cv.renderedCount = len(messages)
	cv.messagesScroll.ScrollToBottom()
}

// buildMessageUI renders one message aligned to its sender's side
func (cv *ChatView) buildMessageUI(msg chat.Message) fyne.CanvasObject {
	text := newSelectableText(msg.Text)

	meta := msg.DisplayTime()
	if msg.FromLocalUser() {
		meta = fmt.Sprintf("%s  %s", meta, statusMark(msg.Status))
	}
	metaLabel := widget.NewLabelWithStyle(meta, fyne.TextAlignTrailing, fyne.TextStyle{Italic: true})

	bubble := widget.NewCard("", "", container.NewVBox(text, metaLabel))
	if msg.FromLocalUser() {
		return container.NewHBox(layout.NewSpacer(), container.NewGridWrap(fyne.NewSize(360, bubble.MinSize().Height), bubble))
	}
	return container.NewHBox(container.NewGridWrap(fyne.NewSize(360, bubble.MinSize().Height), bubble), layout.NewSpacer())
}

func statusMark(status chat.Status) string {
	switch status {
	case chat.StatusRead:
		return "✓✓"
	case chat.StatusDelivered:
		return "✓"
	default:
		return "·"
	}
}

// sendMessage sends the composer text to the active conversation
func (cv *ChatView) sendMessage() {
	body := cv.inputEntry.Text
	if _, err := cv.app.controller.SendMessage(body); err != nil {
		// An empty composer is ignored
		if errors.Is(err, chat.ErrEmptyBody) {
			return
		}
		cv.app.logger.Error("Failed to send message: %v", err)
		cv.app.showError(app.UserMessage(err))
		return
	}
	cv.inputEntry.SetText("")
}
