package nowplaying

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediarelay/internal/mediakey"
)

func TestKeyForMapsDeterministically(t *testing.T) {
	tests := []struct {
		cmd  Command
		want mediakey.Key
	}{
		{CommandTogglePlayPause, mediakey.KeyPlayPause},
		{CommandPlay, mediakey.KeyPlayPause},
		{CommandPause, mediakey.KeyPlayPause},
		{CommandNextTrack, mediakey.KeyNext},
		{CommandPreviousTrack, mediakey.KeyPrevious},
	}
	for _, tt := range tests {
		t.Run(tt.cmd.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, KeyFor(tt.cmd))
		})
	}
}

func TestAcceptReturnsSuccessAndDefersEmission(t *testing.T) {
	var deferred []func()
	var got []mediakey.Key

	e := &emitter{
		post:    func(fn func()) { deferred = append(deferred, fn) },
		handler: func(k mediakey.Key) { got = append(got, k) },
	}

	require.NoError(t, e.accept(CommandPlay))
	assert.Empty(t, got, "emission must not happen inside the command callback")

	require.Len(t, deferred, 1)
	deferred[0]()
	assert.Equal(t, []mediakey.Key{mediakey.KeyPlayPause}, got)
}

func TestAcceptWithoutHandlerStillSucceeds(t *testing.T) {
	e := &emitter{post: func(fn func()) { fn() }}
	assert.NoError(t, e.accept(CommandNextTrack))
}
