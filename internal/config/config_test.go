package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediarelay/internal/control"
)

func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

func TestLoadCreatesDefaultWhenMissing(t *testing.T) {
	path := tempConfigPath(t)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.UseNotifications)
	assert.Equal(t, control.BuiltinTargets()[0].AppID, cfg.SelectedTarget)
	assert.Empty(t, cfg.CustomTargets)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "default config file should be written to disk")
}

func TestSaveRoundTrip(t *testing.T) {
	path := tempConfigPath(t)

	cfg, err := Load(path)
	require.NoError(t, err)

	custom := control.TargetDescriptor{
		DisplayName:  "My Player",
		AppID:        "myplayer",
		PlayPauseCmd: "PlayPause",
		NextCmd:      "Next",
		PrevCmd:      "Previous",
	}
	require.NoError(t, cfg.AddCustomTarget(custom))
	cfg.SelectTarget("myplayer")
	require.NoError(t, cfg.Save())

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "myplayer", reloaded.SelectedTarget)
	require.Len(t, reloaded.CustomTargets, 1)
	assert.Equal(t, custom, reloaded.CustomTargets[0])
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := tempConfigPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestCurrentTarget(t *testing.T) {
	cfg := &Config{SelectedTarget: "vlc"}

	target, ok := cfg.CurrentTarget()
	require.True(t, ok)
	assert.Equal(t, "vlc", target.AppID)

	cfg.SelectedTarget = "does-not-exist"
	_, ok = cfg.CurrentTarget()
	assert.False(t, ok)

	cfg.SelectedTarget = ""
	_, ok = cfg.CurrentTarget()
	assert.False(t, ok)
}

func TestAddCustomTargetRejectsDuplicateAppID(t *testing.T) {
	cfg := &Config{}

	err := cfg.AddCustomTarget(control.TargetDescriptor{
		DisplayName:  "Fake Spotify",
		AppID:        control.BuiltinTargets()[0].AppID,
		PlayPauseCmd: "PlayPause",
		NextCmd:      "Next",
		PrevCmd:      "Previous",
	})
	assert.Error(t, err, "custom target must not shadow a built-in")

	require.NoError(t, cfg.AddCustomTarget(control.TargetDescriptor{
		DisplayName:  "One",
		AppID:        "one",
		PlayPauseCmd: "PlayPause",
		NextCmd:      "Next",
		PrevCmd:      "Previous",
	}))
	err = cfg.AddCustomTarget(control.TargetDescriptor{
		DisplayName:  "One Again",
		AppID:        "one",
		PlayPauseCmd: "PlayPause",
		NextCmd:      "Next",
		PrevCmd:      "Previous",
	})
	assert.Error(t, err)
}

func TestAddCustomTargetRejectsIncomplete(t *testing.T) {
	cfg := &Config{}
	err := cfg.AddCustomTarget(control.TargetDescriptor{DisplayName: "No ID"})
	assert.Error(t, err)
}

func TestLoadPrunesCollidingCustomTargets(t *testing.T) {
	path := tempConfigPath(t)
	raw := `{
  "use_notifications": true,
  "selected_target": "vlc",
  "custom_targets": [
    {"name": "Shadow", "app_id": "` + control.BuiltinTargets()[0].AppID + `", "play_pause_cmd": "PlayPause", "next_cmd": "Next", "prev_cmd": "Previous"},
    {"name": "Good", "app_id": "good", "play_pause_cmd": "PlayPause", "next_cmd": "Next", "prev_cmd": "Previous"},
    {"name": "Broken", "app_id": ""}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.CustomTargets, 1)
	assert.Equal(t, "good", cfg.CustomTargets[0].AppID)
}

func TestTargetsMergesBuiltinsAndCustoms(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.AddCustomTarget(control.TargetDescriptor{
		DisplayName:  "Extra",
		AppID:        "extra",
		PlayPauseCmd: "PlayPause",
		NextCmd:      "Next",
		PrevCmd:      "Previous",
	}))

	targets := cfg.Targets()
	assert.Len(t, targets, len(control.BuiltinTargets())+1)
	assert.Equal(t, "extra", targets[len(targets)-1].AppID)
}
