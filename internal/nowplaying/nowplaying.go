// Package nowplaying claims the OS's "now playing" remote-command channel so
// this process is an eligible routing target for media commands, even though
// it never plays anything itself.
package nowplaying

import "mediarelay/internal/mediakey"

// Command is one of the remote command types accepted from the OS routing
// facility.
type Command int

const (
	CommandTogglePlayPause Command = iota
	CommandPlay
	CommandPause
	CommandNextTrack
	CommandPreviousTrack
)

func (c Command) String() string {
	switch c {
	case CommandTogglePlayPause:
		return "toggle-play-pause"
	case CommandPlay:
		return "play"
	case CommandPause:
		return "pause"
	case CommandNextTrack:
		return "next-track"
	case CommandPreviousTrack:
		return "previous-track"
	default:
		return "unknown"
	}
}

// KeyFor maps an accepted remote command to its logical media key. Play and
// pause collapse into the toggle: the target application owns its own
// playback state, we only forward intent.
func KeyFor(cmd Command) mediakey.Key {
	switch cmd {
	case CommandNextTrack:
		return mediakey.KeyNext
	case CommandPreviousTrack:
		return mediakey.KeyPrevious
	default:
		return mediakey.KeyPlayPause
	}
}

// emitter accepts remote commands and defers their emission onto the main
// run loop. Acceptance is unconditional: the command is taken for routing
// purposes even though the downstream action may fail later.
type emitter struct {
	post    func(func())
	handler func(mediakey.Key)
}

func (e *emitter) accept(cmd Command) error {
	if e.handler != nil {
		h := e.handler
		key := KeyFor(cmd)
		e.post(func() { h(key) })
	}
	return nil
}
