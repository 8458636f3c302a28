package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LogsView is the backend activity panel under the chat
type LogsView struct {
	app     *App
	entries []string
	list    *widget.List
	title   *widget.Label
}

// NewLogsView creates the activity panel
func NewLogsView(a *App) *LogsView {
	return &LogsView{app: a}
}

// Build creates the panel widgets
func (v *LogsView) Build() fyne.CanvasObject {
	v.title = widget.NewLabelWithStyle("Backend Logs", fyne.TextAlignLeading, fyne.TextStyle{Bold: true, Monospace: true})

	v.list = widget.NewList(
		func() int {
			return len(v.entries)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("[00:00:00] entry")
			label.TextStyle = fyne.TextStyle{Monospace: true}
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(v.entries) {
				return
			}
			obj.(*widget.Label).SetText(v.entries[id])
		},
	)

	scroll := container.NewGridWrap(fyne.NewSize(600, 140), v.list)
	return container.NewBorder(v.title, nil, nil, nil, scroll)
}

// Render reloads the activity log, newest at the bottom
func (v *LogsView) Render() {
	activity := v.app.controller.Activity()
	if len(activity) == len(v.entries) {
		return
	}
	entries := make([]string, len(activity))
	for i, a := range activity {
		entries[i] = a.String()
	}
	v.entries = entries
	v.list.Refresh()
	if len(entries) > 0 {
		v.list.ScrollToBottom()
	}
}
