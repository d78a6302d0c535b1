package service

// FormMode tells whether a dialog creates a new row or edits an existing one.
type FormMode string

const (
	FormCreate FormMode = "create"
	FormEdit   FormMode = "edit"
)

// Form tracks a mutable draft plus dialog open state, independently of the
// list it was opened from.
type Form[F any] struct {
	open      bool
	mode      FormMode
	editingID string
	Draft     F
}

// FormState is the serialisable view of a Form.
type FormState[F any] struct {
	Open      bool     `json:"open"`
	Mode      FormMode `json:"mode,omitempty"`
	EditingID string   `json:"editing_id,omitempty"`
	Draft     F        `json:"draft"`
}

// OpenCreate opens the dialog in create mode with the given defaults.
func (f *Form[F]) OpenCreate(defaults F) {
	f.open = true
	f.mode = FormCreate
	f.editingID = ""
	f.Draft = defaults
}

// OpenEdit opens the dialog in edit mode for id.
func (f *Form[F]) OpenEdit(id string, draft F) {
	f.open = true
	f.mode = FormEdit
	f.editingID = id
	f.Draft = draft
}

// Close closes the dialog and discards the draft.
func (f *Form[F]) Close() {
	var zero F
	f.open = false
	f.mode = ""
	f.editingID = ""
	f.Draft = zero
}

// IsOpen reports whether the dialog is open.
func (f *Form[F]) IsOpen() bool { return f.open }

// Mode returns the current mode. It is empty while closed.
func (f *Form[F]) Mode() FormMode { return f.mode }

// EditingID returns the id being edited in edit mode.
func (f *Form[F]) EditingID() string { return f.editingID }

// State snapshots the form.
func (f *Form[F]) State() FormState[F] {
	return FormState[F]{Open: f.open, Mode: f.mode, EditingID: f.editingID, Draft: f.Draft}
}
