package ui

import (
	"fmt"

	"edu-messenger/advisor"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// AdvisorDialog shows the mentor's answer for the last requested topic
type AdvisorDialog struct {
	app *App

	dialog   *dialog.CustomDialog
	topic    *widget.Label
	progress *widget.ProgressBarInfinite
	answer   *widget.RichText
	footer   *widget.Label
	visible  bool
}

// NewAdvisorDialog creates the dialog lazily on first Show
func NewAdvisorDialog(a *App) *AdvisorDialog {
	return &AdvisorDialog{app: a}
}

func (d *AdvisorDialog) build() {
	d.topic = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	d.topic.Wrapping = fyne.TextWrapWord

	d.progress = widget.NewProgressBarInfinite()

	d.answer = widget.NewRichTextFromMarkdown("")
	d.answer.Wrapping = fyne.TextWrapWord

	footerText := "Gemini Mentor"
	if name := d.app.controller.AdvisorName(); name != "" {
		footerText = fmt.Sprintf("%s Mentor", name)
	}
	d.footer = widget.NewLabelWithStyle(footerText, fyne.TextAlignTrailing, fyne.TextStyle{Italic: true})

	body := container.NewBorder(
		d.topic,
		d.footer,
		nil,
		nil,
		container.NewStack(d.progress, container.NewVScroll(d.answer)),
	)

	d.dialog = dialog.NewCustom("ИИ-наставник", "Закрыть", container.NewGridWrap(fyne.NewSize(560, 420), body), d.app.window)
	d.dialog.SetOnClosed(func() {
		d.visible = false
		// Closing while a request is pending discards its answer
		if d.app.controller.Advice().Seq != 0 {
			d.app.controller.DismissAdvice()
		}
	})
}

// Show opens the dialog in its loading state
func (d *AdvisorDialog) Show() {
	if d.dialog == nil {
		d.build()
	}
	d.setPending(true)
	if !d.visible {
		d.visible = true
		d.dialog.Show()
	}
}

// Render mirrors the advisory buffer
func (d *AdvisorDialog) Render(result advisor.Result) {
	if d.dialog == nil {
		return
	}
	if result.Seq == 0 {
		if d.visible {
			d.visible = false
			d.dialog.Hide()
		}
		return
	}

	d.topic.SetText(result.Topic)
	if result.Pending {
		d.setPending(true)
		return
	}
	d.setPending(false)
	d.answer.ParseMarkdown(result.Text)
}

func (d *AdvisorDialog) setPending(pending bool) {
	if pending {
		d.answer.ParseMarkdown("")
		d.progress.Show()
		d.progress.Start()
		return
	}
	d.progress.Stop()
	d.progress.Hide()
}
