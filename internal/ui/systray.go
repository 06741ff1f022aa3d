package ui

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/getlantern/systray"

	"mediarelay/internal/config"
	"mediarelay/internal/control"
)

// SystrayManager handles the system tray icon and menu.
type SystrayManager struct {
	config          *config.Config
	version         string
	onSelectTarget  func(appID string)
	onAddTarget     func()
	onReloadConfig  func()
	onRestart       func()
	onQuit          func()
	onOpenConfig    func()
	embeddedIcon    []byte
	miStatus        *systray.MenuItem
	targetMenuItems map[string]*systray.MenuItem
	intercepting    bool
}

// NewSystrayManager creates a new system tray manager.
func NewSystrayManager(
	cfg *config.Config,
	version string,
	embeddedIcon []byte,
	onSelectTarget func(appID string),
	onAddTarget func(),
	onReloadConfig func(),
	onRestart func(),
	onQuit func(),
	onOpenConfig func(),
) *SystrayManager {
	return &SystrayManager{
		config:          cfg,
		version:         version,
		embeddedIcon:    embeddedIcon,
		onSelectTarget:  onSelectTarget,
		onAddTarget:     onAddTarget,
		onReloadConfig:  onReloadConfig,
		onRestart:       onRestart,
		onQuit:          onQuit,
		onOpenConfig:    onOpenConfig,
		targetMenuItems: make(map[string]*systray.MenuItem),
	}
}

// Run initializes and starts the system tray. Blocks until the tray exits.
func (s *SystrayManager) Run() {
	systray.Run(s.onReady, s.onExit)
}

// UpdateConfig swaps the configuration reference and refreshes the target
// checkmarks. New custom targets only appear after a restart; existing
// entries update in place.
func (s *SystrayManager) UpdateConfig(newCfg *config.Config) {
	log.Println("SystrayManager: Updating config reference.")
	s.config = newCfg
	s.refreshTargetCheckmarks()
}

// UpdateInterceptStatus reflects whether media keys are currently being
// intercepted system-wide.
func (s *SystrayManager) UpdateInterceptStatus(active bool) {
	s.intercepting = active
	if s.miStatus == nil {
		return
	}
	if active {
		s.miStatus.SetTitle("Media keys: intercepted")
	} else {
		s.miStatus.SetTitle("Media keys: remote commands only")
	}
}

func (s *SystrayManager) refreshTargetCheckmarks() {
	if s.config == nil {
		return
	}
	for appID, item := range s.targetMenuItems {
		if item == nil {
			continue
		}
		var target *control.TargetDescriptor
		for _, t := range s.config.Targets() {
			if t.AppID == appID {
				tt := t
				target = &tt
				break
			}
		}
		if target == nil {
			log.Printf("SystrayManager: Target %q no longer exists. Disabling menu item.", appID)
			item.Disable()
			continue
		}
		item.SetTitle(s.targetTitle(*target))
	}
}

func (s *SystrayManager) targetTitle(target control.TargetDescriptor) string {
	if s.config != nil && s.config.SelectedTarget == target.AppID {
		return "✓ " + target.DisplayName
	}
	return "  " + target.DisplayName
}

// onReady is called by systray once the tray is ready.
func (s *SystrayManager) onReady() {
	title := fmt.Sprintf("MediaRelay %s", s.version)
	systray.SetTitle(title)
	systray.SetTooltip(title)
	if len(s.embeddedIcon) > 0 {
		systray.SetIcon(s.embeddedIcon)
	} else {
		log.Println("Warning: No embedded icon data to set for systray.")
	}

	miVersion := systray.AddMenuItem(fmt.Sprintf("Version: %s", s.version), "MediaRelay version")
	miVersion.Disable()
	s.miStatus = systray.AddMenuItem("Media keys: starting...", "Whether media keys are intercepted system-wide")
	s.miStatus.Disable()
	s.UpdateInterceptStatus(s.intercepting)
	systray.AddSeparator()

	s.buildTargetMenu()
	systray.AddSeparator()

	miReloadConfig := systray.AddMenuItem("Reload Configuration", "Reload config (restart needed for new custom targets)")
	miOpenConfig := systray.AddMenuItem("Open Config File", "Open config.json in default editor")
	miRestartApp := systray.AddMenuItem("Restart Application", "Restart (needed after adding custom targets)")

	systray.AddSeparator()
	miQuit := systray.AddMenuItem("Quit", "Exit the application")

	go func() {
		for range miReloadConfig.ClickedCh {
			log.Println("Reload Configuration menu item clicked.")
			if s.onReloadConfig != nil {
				s.onReloadConfig()
			}
		}
	}()
	go func() {
		for range miOpenConfig.ClickedCh {
			log.Println("Open Config File menu item clicked.")
			if s.onOpenConfig != nil {
				s.onOpenConfig()
			}
		}
	}()
	go func() {
		for range miRestartApp.ClickedCh {
			log.Println("Restart Application menu item clicked.")
			if s.onRestart != nil {
				s.onRestart()
			}
		}
	}()
	go func() {
		<-miQuit.ClickedCh
		log.Println("Quit menu item clicked.")
		if s.onQuit != nil {
			s.onQuit()
		}
		systray.Quit()
	}()

	log.Println("Systray ready and menu configured.")
}

// onExit is called when the systray is exiting.
func (s *SystrayManager) onExit() {
	log.Println("Systray exiting.")
}

// buildTargetMenu creates the target submenu with one entry per descriptor.
func (s *SystrayManager) buildTargetMenu() {
	s.targetMenuItems = make(map[string]*systray.MenuItem)
	miTargets := systray.AddMenuItem("Target Player", "Choose which player receives the media keys")

	if s.config == nil {
		noConfig := miTargets.AddSubMenuItem("(Configuration not loaded)", "")
		noConfig.Disable()
		return
	}

	for _, target := range s.config.Targets() {
		t := target // capture for closure
		tooltip := fmt.Sprintf("Send media keys to %s", t.DisplayName)
		item := miTargets.AddSubMenuItem(s.targetTitle(t), tooltip)
		s.targetMenuItems[t.AppID] = item

		go func(item *systray.MenuItem, appID string) {
			for range item.ClickedCh {
				log.Printf("Target %q selected from menu.", appID)
				if s.onSelectTarget != nil {
					s.onSelectTarget(appID)
				}
				s.refreshTargetCheckmarks()
			}
		}(item, t.AppID)
	}

	sepItem := miTargets.AddSubMenuItem("----------", "")
	sepItem.Disable()
	miAddTarget := miTargets.AddSubMenuItem("➕ Add Custom Target...", "Define a new controllable player (Restart Recommended)")
	go func() {
		for range miAddTarget.ClickedCh {
			log.Println("'Add Custom Target...' clicked.")
			if s.onAddTarget != nil {
				s.onAddTarget()
			}
		}
	}()
}

// IsDevMode checks if the application is running from a temporary build
// directory (go run).
func IsDevMode() bool {
	execPath, err := os.Executable()
	if err != nil {
		log.Printf("Warning: Could not get executable path in IsDevMode: %v", err)
		return false
	}
	isTempBuild := strings.Contains(execPath, string(filepath.Separator)+"go-build") ||
		strings.Contains(execPath, string(filepath.Separator)+"tmp"+string(filepath.Separator)+"go-build") ||
		strings.Contains(execPath, string(filepath.Separator)+"Temp"+string(filepath.Separator)+"go-build")
	if isTempBuild {
		log.Printf("IsDevMode check: Detected temporary build path: %s. Assuming Dev Mode.", execPath)
		return true
	}
	cleanedExecDir := filepath.Clean(filepath.Dir(execPath))
	cleanedTempDir := filepath.Clean(os.TempDir())
	if strings.HasPrefix(cleanedExecDir, cleanedTempDir) {
		log.Printf("IsDevMode check: Executable path (%s) is within Temp directory (%s). Assuming Dev Mode.", cleanedExecDir, cleanedTempDir)
		return true
	}
	return false
}

// RestartApplication attempts to restart the current application cleanly.
func RestartApplication() {
	log.Println("Attempting application restart...")
	if IsDevMode() {
		msg := "App running in dev mode. Please stop and run it again manually."
		log.Println("Development mode detected. Automatic restart is not supported.")
		ShowAdminNotification(LevelWarn, "Manual Restart Needed", msg)
		return
	}
	execPath, err := os.Executable()
	if err != nil {
		log.Printf("Error getting executable path for restart: %v", err)
		ShowAdminNotification(LevelError, "Restart Error", fmt.Sprintf("Failed to get executable path. Error: %v", err))
		return
	}
	cwd, err := os.Getwd()
	if err != nil {
		log.Printf("Warning: Could not get CWD for restart: %v.", err)
		cwd = ""
	}
	log.Printf("Attempting restart: Executable path: %s", execPath)
	cmd := exec.Command(execPath, os.Args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if cwd != "" {
		cmd.Dir = cwd
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Error starting new process during restart: %v", err)
		ShowAdminNotification(LevelError, "Restart Error", fmt.Sprintf("Failed to start new application process: %v", err))
		return
	}
	log.Println("Successfully started new process. Exiting current process now.")
	systray.Quit()
	os.Exit(0)
}
