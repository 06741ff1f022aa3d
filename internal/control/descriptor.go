package control

// TargetDescriptor identifies one controllable player application and its
// control vocabulary. AppID is the primary key across built-in and custom
// descriptors combined; it doubles as the MPRIS bus-name suffix and as the
// executable started when the player is not running.
type TargetDescriptor struct {
	DisplayName  string `json:"name"`
	AppID        string `json:"app_id"`
	PlayPauseCmd string `json:"play_pause_cmd"`
	NextCmd      string `json:"next_cmd"`
	PrevCmd      string `json:"prev_cmd"`
}

// BusName returns the well-known bus name the player claims while running.
func (d TargetDescriptor) BusName() string {
	return "org.mpris.MediaPlayer2." + d.AppID
}

// Valid reports whether the descriptor carries everything a controller
// needs.
func (d TargetDescriptor) Valid() bool {
	return d.DisplayName != "" && d.AppID != "" &&
		d.PlayPauseCmd != "" && d.NextCmd != "" && d.PrevCmd != ""
}

// Standard control vocabulary; every stock player speaks these members.
const (
	DefaultPlayPauseCmd = "PlayPause"
	DefaultNextCmd      = "Next"
	DefaultPrevCmd      = "Previous"
)

// BuiltinTargets returns the descriptors shipped with the application. The
// configuration layer merges custom descriptors on top of these.
func BuiltinTargets() []TargetDescriptor {
	names := []struct {
		display string
		appID   string
	}{
		{"Spotify", "spotify"},
		{"Rhythmbox", "rhythmbox"},
		{"VLC", "vlc"},
		{"Audacious", "audacious"},
		{"Clementine", "clementine"},
	}

	targets := make([]TargetDescriptor, 0, len(names))
	for _, n := range names {
		targets = append(targets, TargetDescriptor{
			DisplayName:  n.display,
			AppID:        n.appID,
			PlayPauseCmd: DefaultPlayPauseCmd,
			NextCmd:      DefaultNextCmd,
			PrevCmd:      DefaultPrevCmd,
		})
	}
	return targets
}
