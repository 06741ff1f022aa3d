package app

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ncruces/zenity"

	"mediarelay/internal/config"
	"mediarelay/internal/control"
	"mediarelay/internal/dispatch"
	"mediarelay/internal/inject"
	"mediarelay/internal/mediakey"
	"mediarelay/internal/nowplaying"
	"mediarelay/internal/resources"
	"mediarelay/internal/runloop"
	"mediarelay/internal/ui"
)

// AppName is used for dialogs and notifications.
const AppName = "MediaRelay"

// Application wires the key sources, the dispatcher and the target
// controller together. All media-key handling runs on a single run loop;
// the systray and its dialogs run on their own goroutines and hand work to
// the loop.
type Application struct {
	config         *config.Config
	version        string
	loop           *runloop.Loop
	classifier     *mediakey.Classifier
	registrar      *nowplaying.Registrar
	dispatcher     *dispatch.Dispatcher
	transport      control.Transport
	injector       inject.Injector
	systrayManager *ui.SystrayManager
	iconData       []byte
}

// New creates a new application instance.
func New(cfg *config.Config, version string) *Application {
	app := &Application{
		config:  cfg,
		version: version,
		loop:    runloop.New(),
	}

	var err error
	app.iconData, err = resources.GetIcon()
	if err != nil {
		log.Printf("Warning: Failed to load embedded icon: %v", err)
	}

	app.injector = inject.New()
	app.transport, err = control.NewTransport()
	if err != nil {
		log.Printf("Warning: Control transport unavailable: %v. Commands will fall back to key injection.", err)
	}

	app.dispatcher = dispatch.New()
	app.rebindController()

	// Both key sources post onto the run loop, so dispatch and debounce
	// state never see concurrent access.
	app.classifier = mediakey.NewClassifier(mediakey.SelectBackend(), app.loop.Do, app.dispatcher.Dispatch)
	app.registrar = nowplaying.New(app.loop.Do, app.dispatcher.Dispatch)

	app.systrayManager = ui.NewSystrayManager(
		cfg,
		version,
		app.iconData,
		app.onSelectTarget,
		app.onAddTarget,
		app.onReloadConfig,
		app.onRestartApplication,
		app.onQuit,
		app.onOpenConfigFile,
	)

	return app
}

// Run starts the run loop, the key sources and the systray. Blocks until
// the systray exits.
func (a *Application) Run() {
	go a.loop.Run()

	intercepting := a.classifier.Start()
	if intercepting {
		log.Println("Media key interception active.")
	} else {
		log.Println("Media key interception unavailable; relying on remote commands only.")
		a.notifyInterceptionUnavailable()
	}
	a.systrayManager.UpdateInterceptStatus(intercepting)

	if err := a.registrar.Start(); err != nil {
		log.Printf("Warning: Could not claim now-playing session: %v", err)
		ui.ShowAdminNotification(ui.LevelWarn, "Remote Commands Unavailable",
			fmt.Sprintf("Could not register as the active media session: %v", err))
	}

	a.systrayManager.Run()
}

// rebindController builds a controller for the currently selected target
// and swaps it into the dispatcher. Posted to the loop when called after
// startup.
func (a *Application) rebindController() {
	target, ok := a.config.CurrentTarget()
	if !ok {
		log.Println("No target selected; media keys will be dropped until one is chosen.")
		a.dispatcher.SetController(nil)
		return
	}
	if a.transport == nil {
		log.Printf("No transport available; cannot control %q.", target.DisplayName)
		a.dispatcher.SetController(nil)
		return
	}
	log.Printf("Controlling target %q (%s).", target.DisplayName, target.BusName())
	a.dispatcher.SetController(control.New(target, a.transport, a.loop, a.injector))
}

// onSelectTarget is called from the systray when the user picks a target.
func (a *Application) onSelectTarget(appID string) {
	a.loop.Do(func() {
		a.config.SelectTarget(appID)
		if err := a.config.Save(); err != nil {
			log.Printf("Failed to save config after target selection: %v", err)
			ui.ShowAdminNotification(ui.LevelError, "Save Error",
				fmt.Sprintf("Failed to save target selection: %v", err))
		}
		a.rebindController()
	})
}

// onAddTarget runs the custom-target entry flow. Dialogs block, so this
// stays off the run loop until the descriptor is complete.
func (a *Application) onAddTarget() {
	name, err := zenity.Entry("Step 1: Display name for the player\n(e.g., My Player)",
		zenity.Title(AppName+" - Add Custom Target"),
	)
	if err != nil {
		a.reportDialogResult(err, "Add Custom Target")
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		ui.ShowAdminNotification(ui.LevelWarn, "Invalid Input", "Display name must not be empty.")
		return
	}

	appID, err := zenity.Entry("Step 2: Application ID\n(bus-name suffix and executable, e.g., mpv)",
		zenity.Title(AppName+" - Add Custom Target"),
	)
	if err != nil {
		a.reportDialogResult(err, "Add Custom Target")
		return
	}
	appID = strings.TrimSpace(appID)
	if appID == "" || strings.ContainsAny(appID, " \t/") {
		ui.ShowAdminNotification(ui.LevelWarn, "Invalid Input",
			fmt.Sprintf("Application ID %q must be non-empty without spaces or slashes.", appID))
		return
	}

	target := control.TargetDescriptor{
		DisplayName:  name,
		AppID:        appID,
		PlayPauseCmd: control.DefaultPlayPauseCmd,
		NextCmd:      control.DefaultNextCmd,
		PrevCmd:      control.DefaultPrevCmd,
	}

	// Optional: custom control vocabulary for players that deviate from
	// the standard member names.
	err = zenity.Question(
		"Use the standard control commands (PlayPause/Next/Previous)?\n\nChoose 'Customize' if the player expects different command names.",
		zenity.Title(AppName+" - Add Custom Target"),
		zenity.InfoIcon,
		zenity.OKLabel("Standard Commands"),
		zenity.CancelLabel("Customize..."),
	)
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			log.Printf("Error showing command vocabulary dialog: %v. Using standard commands.", err)
		} else {
			customized, ok := a.promptCustomCommands(target)
			if !ok {
				return
			}
			target = customized
		}
	}

	a.loop.Do(func() {
		if err := a.config.AddCustomTarget(target); err != nil {
			log.Printf("Rejected custom target: %v", err)
			ui.ShowAdminNotification(ui.LevelWarn, "Invalid Target", err.Error())
			return
		}
		if err := a.config.Save(); err != nil {
			log.Printf("Failed to save config after adding custom target: %v", err)
			ui.ShowAdminNotification(ui.LevelError, "Save Error",
				fmt.Sprintf("Failed to save custom target: %v", err))
			return
		}
		log.Printf("Added custom target %q (%s).", target.DisplayName, target.AppID)
		ui.ShowAdminNotification(ui.LevelInfo, "Target Added",
			fmt.Sprintf("%q added. Use 'Restart Application' to show it in the menu.", target.DisplayName))
	})
}

// promptCustomCommands collects a non-standard control vocabulary.
func (a *Application) promptCustomCommands(target control.TargetDescriptor) (control.TargetDescriptor, bool) {
	prompts := []struct {
		label string
		field *string
	}{
		{"play/pause", &target.PlayPauseCmd},
		{"next track", &target.NextCmd},
		{"previous track", &target.PrevCmd},
	}
	for _, p := range prompts {
		value, err := zenity.Entry(
			fmt.Sprintf("Command name for %s (default: %s)", p.label, *p.field),
			zenity.Title(AppName+" - Custom Commands"),
		)
		if err != nil {
			a.reportDialogResult(err, "Add Custom Target")
			return target, false
		}
		value = strings.TrimSpace(value)
		if value != "" {
			*p.field = value
		}
	}
	return target, true
}

func (a *Application) reportDialogResult(err error, operation string) {
	if errors.Is(err, zenity.ErrCanceled) {
		log.Printf("%s canceled by user.", operation)
		return
	}
	log.Printf("Error during %s dialog: %v", operation, err)
	ui.ShowAdminNotification(ui.LevelWarn, "Input Error", fmt.Sprintf("%s failed: %v", operation, err))
}

// notifyInterceptionUnavailable explains why keys still reach other apps
// and what the user can do about it.
func (a *Application) notifyInterceptionUnavailable() {
	msg := "Media keys cannot be intercepted system-wide on this session. " +
		"MediaRelay still receives media keys while it is the active media session."
	ui.ShowAdminNotification(ui.LevelWarn, "Limited Interception", msg)

	err := zenity.Question(
		msg+"\n\nOn Linux this usually means a Wayland session, where global key grabs are not permitted. Continue anyway?",
		zenity.Title(AppName+" - Limited Interception"),
		zenity.WarningIcon,
		zenity.OKLabel("Continue"),
		zenity.CancelLabel("Quit"),
	)
	if err != nil && errors.Is(err, zenity.ErrCanceled) {
		log.Println("User chose to quit after interception warning.")
		a.onQuit()
		os.Exit(0)
	}
	if err != nil {
		log.Printf("Error showing interception warning dialog: %v", err)
	}
}

// onReloadConfig reloads the configuration from disk, preserving the
// in-memory target selection when the file does not override it.
func (a *Application) onReloadConfig() {
	log.Println("Reloading configuration...")

	configPath := ""
	if a.config != nil {
		configPath = a.config.GetConfigPath()
	}
	if configPath == "" {
		configPath = config.DefaultPath()
		log.Printf("Current config path is empty, reloading from default '%s'.", configPath)
	}

	newConfig, err := config.Load(configPath)
	if err != nil {
		log.Printf("Error reloading configuration from '%s': %v", configPath, err)
		ui.ShowAdminNotification(ui.LevelError, "Configuration Error",
			fmt.Sprintf("Failed to reload configuration. Check %s. Error: %v", configPath, err))
		return
	}

	a.loop.Do(func() {
		previousSelection := ""
		if a.config != nil {
			previousSelection = a.config.SelectedTarget
		}
		a.config = newConfig
		if _, ok := a.config.CurrentTarget(); !ok && previousSelection != "" {
			// The file lost or broke the selection; keep what the user had.
			log.Printf("Reloaded config has no usable selection. Keeping %q.", previousSelection)
			a.config.SelectTarget(previousSelection)
		}
		a.rebindController()

		if a.systrayManager != nil {
			a.systrayManager.UpdateConfig(a.config)
		}
		ui.ShowAdminNotification(ui.LevelInfo, "Configuration Reloaded",
			"Configuration updated. Restart to show new custom targets in the menu.")
		log.Println("Configuration reloaded successfully.")
	})
}

// onRestartApplication is called when the restart application menu item is
// clicked.
func (a *Application) onRestartApplication() {
	a.shutdownKeySources()
	ui.RestartApplication()
}

// onOpenConfigFile opens the configuration file in the default editor.
func (a *Application) onOpenConfigFile() {
	path := a.config.GetConfigPath()
	if path == "" {
		path = config.DefaultPath()
	}
	log.Printf("Opening config file: %s", path)
	if err := ui.OpenFileInDefaultApp(path); err != nil {
		log.Printf("Failed to open config file: %v", err)
		ui.ShowAdminNotification(ui.LevelWarn, "Open Failed",
			fmt.Sprintf("Could not open %s: %v", path, err))
	}
}

// onQuit is called when the quit menu item is clicked.
func (a *Application) onQuit() {
	log.Println("Shutting down...")
	a.shutdownKeySources()
	a.loop.Stop()
}

func (a *Application) shutdownKeySources() {
	if a.classifier != nil {
		a.classifier.Stop()
	}
	if a.registrar != nil {
		a.registrar.Stop()
	}
}
