//go:build linux

package nowplaying

import (
	"log"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"mediarelay/internal/mediakey"
)

// Registrar publishes a synthetic MPRIS player on the session bus. The
// announcement (arbitrary title, zero duration, rate 1.0, state playing)
// exists solely so desktops that route media keys to "the playing MPRIS
// service" pick this process when no real player is announcing.
type Registrar struct {
	emit   *emitter
	server *server.Server
}

// New builds a registrar. post defers work onto the main run loop; handler
// receives the mapped logical keys there.
func New(post func(func()), handler func(mediakey.Key)) *Registrar {
	return &Registrar{emit: &emitter{post: post, handler: handler}}
}

// Start claims the bus name and begins accepting remote commands.
func (r *Registrar) Start() error {
	if r.server != nil {
		return nil
	}
	srv := server.NewServer("mediarelay", &rootAdapter{}, &playerAdapter{emit: r.emit})
	go func() {
		if err := srv.Listen(); err != nil {
			log.Printf("Now-playing registration ended: %v", err)
		}
	}()
	r.server = srv
	log.Println("Registered as now-playing target on the session bus.")
	return nil
}

// Stop releases the bus name.
func (r *Registrar) Stop() {
	if r.server == nil {
		return
	}
	if err := r.server.Stop(); err != nil {
		log.Printf("Error releasing now-playing registration: %v", err)
	}
	r.server = nil
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (a *rootAdapter) Raise() error { return nil }
func (a *rootAdapter) Quit() error  { return nil }

func (a *rootAdapter) CanQuit() (bool, error)      { return false, nil }
func (a *rootAdapter) CanRaise() (bool, error)     { return false, nil }
func (a *rootAdapter) HasTrackList() (bool, error) { return false, nil }

func (a *rootAdapter) Identity() (string, error) {
	return "MediaRelay", nil
}

func (a *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{}, nil
}

func (a *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. Every command
// handler returns success unconditionally; execution happens asynchronously
// and any failure is absorbed downstream.
type playerAdapter struct {
	emit *emitter
}

func (p *playerAdapter) Next() error {
	return p.emit.accept(CommandNextTrack)
}

func (p *playerAdapter) Previous() error {
	return p.emit.accept(CommandPreviousTrack)
}

func (p *playerAdapter) Pause() error {
	return p.emit.accept(CommandPause)
}

func (p *playerAdapter) PlayPause() error {
	return p.emit.accept(CommandTogglePlayPause)
}

func (p *playerAdapter) Play() error {
	return p.emit.accept(CommandPlay)
}

func (p *playerAdapter) Stop() error { return nil }

func (p *playerAdapter) Seek(types.Microseconds) error { return nil }

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error { return nil }

func (p *playerAdapter) OpenUri(string) error { return nil }

// The synthetic announcement: always playing, rate 1.0, zero-length track.
func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return types.PlaybackStatusPlaying, nil
}

func (p *playerAdapter) Rate() (float64, error)    { return 1.0, nil }
func (p *playerAdapter) SetRate(float64) error     { return nil }
func (p *playerAdapter) Volume() (float64, error)  { return 1.0, nil }
func (p *playerAdapter) SetVolume(float64) error   { return nil }
func (p *playerAdapter) Position() (int64, error)  { return 0, nil }
func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	return types.Metadata{
		TrackId: dbus.ObjectPath("/io/mediarelay/Track/Relay"),
		Title:   "MediaRelay",
		Length:  0,
	}, nil
}

func (p *playerAdapter) CanGoNext() (bool, error)     { return true, nil }
func (p *playerAdapter) CanGoPrevious() (bool, error) { return true, nil }
func (p *playerAdapter) CanPlay() (bool, error)       { return true, nil }
func (p *playerAdapter) CanPause() (bool, error)      { return true, nil }
func (p *playerAdapter) CanSeek() (bool, error)       { return false, nil }
func (p *playerAdapter) CanControl() (bool, error)    { return true, nil }
