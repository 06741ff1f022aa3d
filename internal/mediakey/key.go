package mediakey

// Key is a logical media key. It is the only value that crosses from the
// input pathways into the dispatcher; everything rawer stays inside this
// package.
type Key int

const (
	KeyPlayPause Key = iota
	KeyNext
	KeyPrevious
)

func (k Key) String() string {
	switch k {
	case KeyPlayPause:
		return "play/pause"
	case KeyNext:
		return "next"
	case KeyPrevious:
		return "previous"
	default:
		return "unknown"
	}
}
