package ui

import (
	"context"

	"edu-messenger/advisor"
	"edu-messenger/app"
	"edu-messenger/utils"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// App is the desktop window. It keeps no domain state of its own: every
// view is rebuilt from the controller when a snapshot arrives.
type App struct {
	fyneApp    fyne.App
	window     fyne.Window
	config     *utils.Config
	controller *app.Controller
	logger     *utils.Logger

	// UI components
	authView    *AuthView
	sidebar     *ConversationSidebar
	chatView    *ChatView
	logsView    *LogsView
	advisorView *AdvisorDialog
	mainView    fyne.CanvasObject

	showingMain bool
}

// NewApp creates the window and subscribes it to the controller
func NewApp(config *utils.Config, controller *app.Controller, logger *utils.Logger) *App {
	fyneApp := fyneapp.NewWithID("edu-messenger")
	fyneApp.Settings().SetTheme(newMessengerTheme())
	window := fyneApp.NewWindow("EduMessenger")

	window.Resize(fyne.NewSize(
		float32(config.UI.WindowWidth),
		float32(config.UI.WindowHeight),
	))

	a := &App{
		fyneApp:    fyneApp,
		window:     window,
		config:     config,
		controller: controller,
		logger:     logger,
	}

	a.buildUI()

	controller.Subscribe(func(s app.Snapshot) {
		fyne.Do(func() {
			a.render(s)
		})
	})
	a.render(controller.Snapshot())

	return a
}

// buildUI builds both top-level views; render decides which one is shown
func (a *App) buildUI() {
	a.authView = NewAuthView(a)
	a.sidebar = NewConversationSidebar(a)
	a.chatView = NewChatView(a)
	a.logsView = NewLogsView(a)
	a.advisorView = NewAdvisorDialog(a)

	logoutButton := widget.NewButton("Выйти", func() {
		a.controller.Logout()
	})
	adviceButton := widget.NewButton("Архитектура", func() {
		a.ask(advisor.TopicRealtime)
	})

	sidebarContainer := container.NewBorder(
		container.NewHBox(adviceButton, logoutButton),
		nil,
		nil,
		nil,
		a.sidebar.Build(),
	)

	chatArea := container.NewBorder(nil, a.logsView.Build(), nil, nil, a.chatView.Build())

	split := container.NewHSplit(sidebarContainer, chatArea)
	split.SetOffset(0.3)
	a.mainView = split

	a.window.SetContent(a.authView.Build())
}

// render projects a snapshot onto the widgets
func (a *App) render(s app.Snapshot) {
	if s.Authenticated != a.showingMain {
		a.showingMain = s.Authenticated
		if s.Authenticated {
			a.window.SetContent(a.mainView)
		} else {
			a.authView.Reset()
			a.window.SetContent(a.authView.Build())
		}
	}

	if s.Authenticated {
		a.sidebar.Render(s)
		a.chatView.Render(s)
	}
	a.logsView.Render()
	a.advisorView.Render(s.Advice)
}

// ask opens the advisor dialog and runs the request off the UI thread
func (a *App) ask(topic string) {
	a.advisorView.Show()
	utils.SafeGo(a.logger, "advisor request", func() {
		a.controller.Ask(context.Background(), topic)
	})
}

// showError shows an error dialog
func (a *App) showError(message string) {
	dialog.ShowInformation("Ошибка", message, a.window)
}

// Run shows the window and blocks until it is closed
func (a *App) Run() {
	a.window.ShowAndRun()
}
