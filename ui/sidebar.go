package ui

import (
	"fmt"

	"edu-messenger/app"
	"edu-messenger/chat"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ConversationSidebar lists the chat directory
type ConversationSidebar struct {
	app           *App
	list          *widget.List
	conversations []chat.Conversation
	activeID      string
	header        *widget.Label
}

// NewConversationSidebar creates the sidebar
func NewConversationSidebar(a *App) *ConversationSidebar {
	return &ConversationSidebar{app: a}
}

// Build creates the sidebar widgets
func (s *ConversationSidebar) Build() fyne.CanvasObject {
	s.header = widget.NewLabelWithStyle("Чаты", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	s.list = widget.NewList(
		func() int {
			return len(s.conversations)
		},
		func() fyne.CanvasObject {
			avatar := widget.NewLabelWithStyle("AI", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
			name := widget.NewLabelWithStyle("participant", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
			preview := widget.NewLabel("preview")
			preview.Truncation = fyne.TextTruncateEllipsis
			meta := widget.NewLabel("12:45")
			return container.NewBorder(nil, nil, avatar, meta, container.NewVBox(name, preview))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(s.conversations) {
				return
			}
			s.updateItem(s.conversations[id], obj.(*fyne.Container))
		},
	)

	s.list.OnSelected = func(id widget.ListItemID) {
		if id < 0 || id >= len(s.conversations) {
			return
		}
		convID := s.conversations[id].ID
		if convID == s.activeID {
			return
		}
		if err := s.app.controller.SelectConversation(convID); err != nil {
			s.app.logger.Error("Failed to select conversation %s: %v", convID, err)
			s.app.showError(app.UserMessage(err))
		}
	}

	return container.NewBorder(s.header, nil, nil, nil, s.list)
}

// updateItem fills one row. Border objects are ordered center first, then
// the edges in the order they were given.
func (s *ConversationSidebar) updateItem(conv chat.Conversation, row *fyne.Container) {
	texts := row.Objects[0].(*fyne.Container)
	avatar := row.Objects[1].(*widget.Label)
	meta := row.Objects[2].(*widget.Label)

	avatar.SetText(conv.Avatar)

	name := conv.Participant
	if conv.IsOnline {
		name = "● " + name
	}
	texts.Objects[0].(*widget.Label).SetText(name)
	texts.Objects[1].(*widget.Label).SetText(conv.LastMessage)

	metaText := conv.LastMessageTime
	if conv.UnreadCount > 0 {
		metaText = fmt.Sprintf("%s  (%d)", metaText, conv.UnreadCount)
	}
	meta.SetText(metaText)
}

// Render reloads the directory and mirrors the active selection
func (s *ConversationSidebar) Render(snapshot app.Snapshot) {
	conversations, err := s.app.controller.Conversations()
	if err != nil {
		s.app.logger.Error("Failed to load conversations: %v", err)
		return
	}
	s.conversations = conversations
	s.activeID = snapshot.ActiveConversation
	s.header.SetText("Чаты · " + snapshot.User.DisplayName)
	s.list.Refresh()

	if s.activeID == "" {
		s.list.UnselectAll()
		return
	}
	for i, conv := range s.conversations {
		if conv.ID == s.activeID {
			s.list.Select(i)
			break
		}
	}
}
