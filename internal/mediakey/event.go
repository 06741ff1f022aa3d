package mediakey

// Raw key-codes of the system-defined consumer media event class. Exactly
// these five are recognized; Fast and Rewind fold into Next and Previous.
const (
	CodePlay     = 16
	CodeNext     = 17
	CodePrevious = 18
	CodeFast     = 19
	CodeRewind   = 20
)

// Transition states packed into the event's auxiliary word.
const (
	stateDown = 0x0A
	stateUp   = 0x0B
)

// RawEvent is one decoded media-key transition. It lives only for the
// duration of a single capture callback and is never stored.
type RawEvent struct {
	Code   int
	Down   bool
	Repeat bool
}

// Disposition tells the capture backend what to do with the underlying OS
// event after classification.
type Disposition int

const (
	// PassThrough returns the event to the OS unmodified.
	PassThrough Disposition = iota
	// Swallow stops further propagation. Both the down and the up transition
	// of a recognized key must be swallowed, otherwise the OS completes the
	// keypress itself and routes it to its own default handler.
	Swallow
)

func (d Disposition) String() string {
	if d == Swallow {
		return "swallow"
	}
	return "pass-through"
}

// DecodeEventWord unpacks the auxiliary data word of a system-defined media
// event: key-code in bits 16-31, transition state in bits 8-15 of the low
// word, repeat flag in bit 0.
func DecodeEventWord(word uint32) RawEvent {
	return RawEvent{
		Code:   int(word >> 16),
		Down:   (word>>8)&0xFF == stateDown,
		Repeat: word&0x1 != 0,
	}
}

// EncodeEventWord is the inverse of DecodeEventWord. Capture backends that
// receive events in another shape pack them through here so every pathway
// goes through the same decode.
func EncodeEventWord(ev RawEvent) uint32 {
	word := uint32(ev.Code) << 16
	if ev.Down {
		word |= stateDown << 8
	} else {
		word |= stateUp << 8
	}
	if ev.Repeat {
		word |= 0x1
	}
	return word
}

// keyForCode maps a recognized raw code to its logical key.
func keyForCode(code int) (Key, bool) {
	switch code {
	case CodePlay:
		return KeyPlayPause, true
	case CodeNext, CodeFast:
		return KeyNext, true
	case CodePrevious, CodeRewind:
		return KeyPrevious, true
	default:
		return 0, false
	}
}
