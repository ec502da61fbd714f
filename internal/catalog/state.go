package catalog

// State is the lifecycle of a Controller.
type State int

const (
	// Uninitialized means Load has not been called yet.
	Uninitialized State = iota
	// Loading means a fetch is in flight or the last one failed.
	Loading
	// Loaded means the last fetch was persisted.
	Loaded
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	default:
		return "unknown"
	}
}
