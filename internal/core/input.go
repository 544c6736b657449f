package core

// Action represents a semantic game action, abstracted from physical input.
// Key presses, mouse presses and touches all map onto the same actions.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, mouse press on the playfield
	ActionAnswer1        // 1 / a - first quiz option
	ActionAnswer2        // 2 / b
	ActionAnswer3        // 3 / c
	ActionAnswer4        // 4 / d
	ActionBack           // Esc - leave a sub-view
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionAnswer1:
		return "Answer1"
	case ActionAnswer2:
		return "Answer2"
	case ActionAnswer3:
		return "Answer3"
	case ActionAnswer4:
		return "Answer4"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// AnswerIndex returns the zero-based option index for an answer action.
func (a Action) AnswerIndex() (int, bool) {
	if a >= ActionAnswer1 && a <= ActionAnswer4 {
		return int(a - ActionAnswer1), true
	}
	return -1, false
}

// AnswerAction returns the action selecting option i, or ActionNone.
func AnswerAction(i int) Action {
	if i < 0 || i > 3 {
		return ActionNone
	}
	return ActionAnswer1 + Action(i)
}

// InputFrame collects the actions triggered between two simulation frames.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Answer returns the lowest selected option index in this frame, if any.
func (f InputFrame) Answer() (int, bool) {
	for a := ActionAnswer1; a <= ActionAnswer4; a++ {
		if f.Has(a) {
			return a.AnswerIndex()
		}
	}
	return -1, false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
