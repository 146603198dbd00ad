package save

import "errors"

type State int

const (
	Idle State = iota
	Diffing
	AwaitingConfirmation
	Uploading
	Submitting
	Done
	Rejected
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Diffing:
		return "diffing"
	case AwaitingConfirmation:
		return "awaiting-confirmation"
	case Uploading:
		return "uploading"
	case Submitting:
		return "submitting"
	case Done:
		return "done"
	case Rejected:
		return "rejected"
	case Failed:
		return "failed"
	}
	return "unknown"
}

var (
	ErrNoChanges  = errors.New("no changes detected")
	ErrInProgress = errors.New("a save is already in progress")
	ErrAbandoned  = errors.New("edit session was abandoned")
)
