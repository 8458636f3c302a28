package ui

import (
	"edu-messenger/advisor"
	"edu-messenger/app"
	"edu-messenger/utils"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	modeLogin    = "LOGIN"
	modeRegister = "REGISTER"
)

// AuthView is the login / registration form
type AuthView struct {
	app *App

	mode         string
	modeSelect   *widget.RadioGroup
	identifier   *widget.Entry
	secret       *widget.Entry
	errorLabel   *widget.Label
	submitButton *widget.Button
	content      fyne.CanvasObject
}

// NewAuthView creates the form in login mode
func NewAuthView(a *App) *AuthView {
	return &AuthView{app: a, mode: modeLogin}
}

// Build returns the form, creating it on first use
func (v *AuthView) Build() fyne.CanvasObject {
	if v.content != nil {
		return v.content
	}

	title := widget.NewLabelWithStyle("EduMessenger", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	subtitle := widget.NewLabelWithStyle("Разработка профессионального бэкенда", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	v.identifier = widget.NewEntry()
	v.identifier.SetPlaceHolder("admin_dev")

	v.secret = widget.NewPasswordEntry()
	v.secret.SetPlaceHolder("••••••••")
	v.secret.OnSubmitted = func(string) { v.submit() }

	v.errorLabel = widget.NewLabel("")
	v.errorLabel.Wrapping = fyne.TextWrapWord
	v.errorLabel.Hide()

	v.submitButton = widget.NewButton("Proceed", v.submit)
	v.submitButton.Importance = widget.HighImportance

	v.modeSelect = widget.NewRadioGroup([]string{modeLogin, modeRegister}, func(selected string) {
		if selected == "" {
			v.modeSelect.SetSelected(v.mode)
			return
		}
		v.setMode(selected)
	})
	v.modeSelect.Horizontal = true
	v.modeSelect.SetSelected(modeLogin)

	hashingButton := widget.NewButton("Argon2 vs PBKDF2", func() {
		v.app.ask(advisor.TopicHashing)
	})
	hashingButton.Importance = widget.LowImportance

	form := container.NewVBox(
		title,
		subtitle,
		container.NewCenter(v.modeSelect),
		widget.NewLabel("USER ID"),
		v.identifier,
		widget.NewLabel("SECRET KEY"),
		v.secret,
		v.errorLabel,
		v.submitButton,
		hashingButton,
	)

	v.content = container.NewCenter(container.NewGridWrap(fyne.NewSize(380, 460), form))
	return v.content
}

// Reset clears the inputs after logout
func (v *AuthView) Reset() {
	if v.content == nil {
		return
	}
	v.identifier.SetText("")
	v.secret.SetText("")
	v.setError("")
	v.modeSelect.SetSelected(modeLogin)
}

func (v *AuthView) setMode(mode string) {
	v.mode = mode
	v.setError("")
	if mode == modeRegister {
		v.submitButton.SetText("Create Entry")
	} else {
		v.submitButton.SetText("Proceed")
	}
}

func (v *AuthView) setError(message string) {
	v.errorLabel.SetText(message)
	if message == "" {
		v.errorLabel.Hide()
	} else {
		v.errorLabel.Show()
	}
}

// submit runs the bcrypt work off the UI thread; results come back through
// fyne.Do
func (v *AuthView) submit() {
	v.setError("")
	mode := v.mode
	identifier, secret := v.identifier.Text, v.secret.Text
	v.submitButton.Disable()

	utils.SafeGoWithError(v.app.logger, "auth submit", func() error {
		defer fyne.Do(v.submitButton.Enable)

		if mode == modeRegister {
			if _, err := v.app.controller.Register(identifier, secret); err != nil {
				return err
			}
			// Registration switches back to the login form
			fyne.Do(func() { v.modeSelect.SetSelected(modeLogin) })
			return nil
		}
		_, err := v.app.controller.Login(identifier, secret)
		return err
	}, func(err error) {
		message := app.UserMessage(err)
		fyne.Do(func() { v.setError(message) })
	})
}
