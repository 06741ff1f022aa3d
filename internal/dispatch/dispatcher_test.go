package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mediarelay/internal/mediakey"
	"mediarelay/internal/nowplaying"
)

type recordingController struct {
	calls []string
}

func (r *recordingController) PlayPause()     { r.calls = append(r.calls, "playpause") }
func (r *recordingController) NextTrack()     { r.calls = append(r.calls, "next") }
func (r *recordingController) PreviousTrack() { r.calls = append(r.calls, "previous") }

// fakeClock steps time manually through the dispatcher's injected now func.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time                { return c.t }
func (c *fakeClock) advance(d time.Duration) time.Time { c.t = c.t.Add(d); return c.t }

func newTestDispatcher() (*Dispatcher, *recordingController, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	ctrl := &recordingController{}
	d := New()
	d.now = clock.now
	d.SetController(ctrl)
	return d, ctrl, clock
}

func TestDispatchForwardsEachKeyToItsAction(t *testing.T) {
	d, ctrl, clock := newTestDispatcher()

	d.Dispatch(mediakey.KeyPlayPause)
	clock.advance(time.Second)
	d.Dispatch(mediakey.KeyNext)
	clock.advance(time.Second)
	d.Dispatch(mediakey.KeyPrevious)

	assert.Equal(t, []string{"playpause", "next", "previous"}, ctrl.calls)
}

func TestDispatchDedupesSameKeyInsideWindow(t *testing.T) {
	d, ctrl, clock := newTestDispatcher()

	d.Dispatch(mediakey.KeyPlayPause)
	clock.advance(10 * time.Millisecond)
	d.Dispatch(mediakey.KeyPlayPause)

	assert.Equal(t, []string{"playpause"}, ctrl.calls)
}

func TestDispatchDeliversSameKeyOutsideWindow(t *testing.T) {
	d, ctrl, clock := newTestDispatcher()

	d.Dispatch(mediakey.KeyPlayPause)
	clock.advance(400 * time.Millisecond)
	d.Dispatch(mediakey.KeyPlayPause)

	assert.Equal(t, []string{"playpause", "playpause"}, ctrl.calls)
}

// The window keys on exact key equality, not on time alone.
func TestDispatchDeliversDifferentKeyInsideWindow(t *testing.T) {
	d, ctrl, clock := newTestDispatcher()

	d.Dispatch(mediakey.KeyNext)
	clock.advance(10 * time.Millisecond)
	d.Dispatch(mediakey.KeyPlayPause)

	assert.Equal(t, []string{"next", "playpause"}, ctrl.calls)
}

// A discarded duplicate must not refresh the window; three rapid duplicates
// spanning more than 300ms in total still deliver only the first, then the
// one that falls outside the original stamp.
func TestDiscardedDuplicateDoesNotUpdateState(t *testing.T) {
	d, ctrl, clock := newTestDispatcher()

	d.Dispatch(mediakey.KeyNext)
	clock.advance(200 * time.Millisecond)
	d.Dispatch(mediakey.KeyNext) // discarded, no state update
	clock.advance(200 * time.Millisecond)
	d.Dispatch(mediakey.KeyNext) // 400ms after the accepted one: delivered

	assert.Equal(t, []string{"next", "next"}, ctrl.calls)
}

func TestDispatchWithoutControllerDropsSilently(t *testing.T) {
	d, _, _ := newTestDispatcher()
	d.SetController(nil)
	d.Dispatch(mediakey.KeyPlayPause) // must not panic
}

// One physical press can fire both the play and pause remote commands; the
// dispatcher absorbs the second because both map to the same logical key.
func TestBothRemoteCommandsForOnePressDeliverOnce(t *testing.T) {
	d, ctrl, clock := newTestDispatcher()

	d.Dispatch(nowplaying.KeyFor(nowplaying.CommandPlay))
	clock.advance(5 * time.Millisecond)
	d.Dispatch(nowplaying.KeyFor(nowplaying.CommandPause))

	assert.Equal(t, []string{"playpause"}, ctrl.calls)
}
