package admin

import "errors"

// Mode is an account's visibility as last confirmed by the server.
type Mode int

const (
	ModeVisible Mode = iota
	ModeHidden
)

func (m Mode) String() string {
	if m == ModeHidden {
		return "hidden"
	}
	return "visible"
}

// Phase is the transient request state of a button.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInFlight
	PhaseFailed
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseInFlight:
		return "in-flight"
	case PhaseFailed:
		return "failed"
	case PhaseDone:
		return "done"
	default:
		return "idle"
	}
}

// Button labels.
const (
	LabelHide         = "Hide"
	LabelHiding       = "Hiding..."
	LabelHideFailed   = "Re-hide (hiding failed!)"
	LabelUnhide       = "Unhide"
	LabelUnhiding     = "Unhiding..."
	LabelUnhideFailed = "Re-unhide (unhiding failed!)"
	LabelDelete       = "Delete"
	LabelDeleting     = "Deleting..."
	LabelDeleted      = "Deleted"
	LabelDeleteFailed = "Re-delete (deleting failed!)"
)

var (
	ErrBusy     = errors.New("admin: request already in flight")
	ErrFinished = errors.New("admin: action already completed")
	ErrNoRow    = errors.New("admin: no such row")
)

// ToggleButton is the hide/unhide control of one account row.
type ToggleButton struct {
	email string
	mode  Mode
	phase Phase
}

// NewToggleButton returns an idle button for an account in mode.
func NewToggleButton(email string, mode Mode) *ToggleButton {
	return &ToggleButton{email: email, mode: mode}
}

func (b *ToggleButton) Mode() Mode   { return b.mode }
func (b *ToggleButton) Phase() Phase { return b.phase }

// Enabled reports whether the button accepts a press.
func (b *ToggleButton) Enabled() bool { return b.phase != PhaseInFlight }

// Next is the command a press would send.
func (b *ToggleButton) Next() Command {
	if b.mode == ModeHidden {
		return Command{Action: ActionUnhide, Target: b.email}
	}
	return Command{Action: ActionHide, Target: b.email}
}

// Label is the text the button currently shows.
func (b *ToggleButton) Label() string {
	hiding := b.mode == ModeVisible
	switch b.phase {
	case PhaseInFlight:
		if hiding {
			return LabelHiding
		}
		return LabelUnhiding
	case PhaseFailed:
		if hiding {
			return LabelHideFailed
		}
		return LabelUnhideFailed
	default:
		if hiding {
			return LabelHide
		}
		return LabelUnhide
	}
}

// Begin marks the button in flight and returns the command to send.
func (b *ToggleButton) Begin() (Command, error) {
	if b.phase == PhaseInFlight {
		return Command{}, ErrBusy
	}
	b.phase = PhaseInFlight
	return b.Next(), nil
}

// Finish records the outcome. Success flips the mode; failure keeps it so
// the next press retries the same action.
func (b *ToggleButton) Finish(err error) {
	if b.phase != PhaseInFlight {
		return
	}
	if err != nil {
		b.phase = PhaseFailed
		return
	}
	if b.mode == ModeHidden {
		b.mode = ModeVisible
	} else {
		b.mode = ModeHidden
	}
	b.phase = PhaseIdle
}

// DeleteButton is the one-way delete control of one account row.
type DeleteButton struct {
	email string
	phase Phase
}

// NewDeleteButton returns an idle delete button.
func NewDeleteButton(email string) *DeleteButton {
	return &DeleteButton{email: email}
}

func (b *DeleteButton) Phase() Phase { return b.phase }

// Enabled reports whether the button accepts a press.
func (b *DeleteButton) Enabled() bool {
	return b.phase != PhaseInFlight && b.phase != PhaseDone
}

func (b *DeleteButton) Label() string {
	switch b.phase {
	case PhaseInFlight:
		return LabelDeleting
	case PhaseFailed:
		return LabelDeleteFailed
	case PhaseDone:
		return LabelDeleted
	default:
		return LabelDelete
	}
}

// Begin marks the button in flight and returns the delete command.
func (b *DeleteButton) Begin() (Command, error) {
	switch b.phase {
	case PhaseInFlight:
		return Command{}, ErrBusy
	case PhaseDone:
		return Command{}, ErrFinished
	}
	b.phase = PhaseInFlight
	return Command{Action: ActionDelete, Target: b.email}, nil
}

// Finish records the outcome. Success is terminal.
func (b *DeleteButton) Finish(err error) {
	if b.phase != PhaseInFlight {
		return
	}
	if err != nil {
		b.phase = PhaseFailed
		return
	}
	b.phase = PhaseDone
}
