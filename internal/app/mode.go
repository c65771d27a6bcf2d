package app

// InputMode is the tagged state of the shared input field: either
// composing a new task or editing an existing one.
type InputMode interface {
	inputMode()
}

// Composing holds a draft for a task that does not exist yet.
type Composing struct {
	Draft string
}

// Editing holds a draft that will replace the text of TaskID on save.
type Editing struct {
	TaskID string
	Draft  string
}

func (Composing) inputMode() {}
func (Editing) inputMode()   {}

// ModeKind names an input mode for render models and logs.
type ModeKind string

// ModeComposing and ModeEditing are the two input mode kinds.
const (
	ModeComposing ModeKind = "composing"
	ModeEditing   ModeKind = "editing"
)

// Submit button labels shown for each mode.
const (
	ButtonLabelAdd  = "+"
	ButtonLabelSave = "Save"
)

// KindOf returns the kind of m. A nil mode is treated as composing.
func KindOf(m InputMode) ModeKind {
	if _, ok := m.(Editing); ok {
		return ModeEditing
	}
	return ModeComposing
}

// draftOf returns the draft text carried by m.
func draftOf(m InputMode) string {
	switch m := m.(type) {
	case Composing:
		return m.Draft
	case Editing:
		return m.Draft
	default:
		return ""
	}
}

// withDraft returns m with its draft replaced.
func withDraft(m InputMode, draft string) InputMode {
	switch m := m.(type) {
	case Editing:
		m.Draft = draft
		return m
	default:
		return Composing{Draft: draft}
	}
}
