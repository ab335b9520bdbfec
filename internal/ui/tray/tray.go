package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnStart             func()
	OnTogglePause       func()
	OnReset             func()
	OnTogglePerformance func()
	OnPreferences       func()
	OnQuit              func()
}

// Manager handles system tray state.
type Manager struct {
	app             desktop.App
	statusItem      *fyne.MenuItem
	pauseItem       *fyne.MenuItem
	performanceItem *fyne.MenuItem
	callbacks       Callbacks
	statusLabel     string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, icon fyne.Resource, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "idle",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.pauseItem = fyne.NewMenuItem("Pause", func() { call(manager.callbacks.OnTogglePause) })
	manager.performanceItem = fyne.NewMenuItem("Performance mode", func() { call(manager.callbacks.OnTogglePerformance) })

	if icon != nil {
		app.SetSystemTrayIcon(icon)
	}
	manager.refreshStatus()

	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetPaused updates pause state.
func (manager *Manager) SetPaused(paused bool) {
	if paused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
	manager.refreshStatus()
}

// SetReduced marks the performance mode item.
func (manager *Manager) SetReduced(reduced bool) {
	manager.performanceItem.Checked = reduced
	manager.refreshMenu()
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.statusLabel)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Stopwatch",
		manager.statusItem,
		fyne.NewMenuItem("Start", func() { call(manager.callbacks.OnStart) }),
		manager.pauseItem,
		fyne.NewMenuItem("Reset", func() { call(manager.callbacks.OnReset) }),
		fyne.NewMenuItemSeparator(),
		manager.performanceItem,
		fyne.NewMenuItem("Preferences", func() { call(manager.callbacks.OnPreferences) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) }),
	))
}

func call(callback func()) {
	if callback != nil {
		callback()
	}
}
