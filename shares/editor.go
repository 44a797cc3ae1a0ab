package shares

// Editor holds the ordered owner/share rows of the creation form. It always
// contains at least one entry; the zero value behaves as a single empty row.
// An Editor is not safe for concurrent use.
type Editor struct {
	entries []ShareEntry
}

// NewEditor returns an editor with one empty entry.
func NewEditor() *Editor {
	e := &Editor{}
	e.Reset()
	return e
}

func (e *Editor) ensure() {
	if len(e.entries) == 0 {
		e.entries = []ShareEntry{{}}
	}
}

// AddEntry appends an empty entry.
func (e *Editor) AddEntry() {
	e.ensure()
	e.entries = append(e.entries, ShareEntry{})
}

// RemoveEntry removes the entry at index. It is a no-op when only one entry
// remains or the index is out of range.
func (e *Editor) RemoveEntry(index int) {
	e.ensure()
	if len(e.entries) <= 1 || index < 0 || index >= len(e.entries) {
		return
	}
	e.entries = append(e.entries[:index], e.entries[index+1:]...)
}

// UpdateEntry replaces one field of the entry at index. Values are stored
// verbatim; out-of-range indexes are ignored.
func (e *Editor) UpdateEntry(index int, field Field, value string) {
	e.ensure()
	if index < 0 || index >= len(e.entries) {
		return
	}
	switch field {
	case FieldAddress:
		e.entries[index].OwnerAddress = value
	case FieldShare:
		e.entries[index].SharePercent = value
	}
}

// Len returns the number of entries.
func (e *Editor) Len() int {
	e.ensure()
	return len(e.entries)
}

// Entries returns a copy of the current entries.
func (e *Editor) Entries() []ShareEntry {
	e.ensure()
	out := make([]ShareEntry, len(e.entries))
	copy(out, e.entries)
	return out
}

// Total returns the running sum of the parseable shares.
func (e *Editor) Total() float64 {
	return Total(e.Entries())
}

// Reset drops all entries and leaves a single empty one.
func (e *Editor) Reset() {
	e.entries = []ShareEntry{{}}
}

// Form is the full creation input: a wallet name plus the owner rows.
type Form struct {
	Name string
	Editor
}

// NewForm returns an empty form with one entry.
func NewForm() *Form {
	f := &Form{}
	f.Editor.Reset()
	return f
}

// Reset clears the name and the entries.
func (f *Form) Reset() {
	f.Name = ""
	f.Editor.Reset()
}

// Validate runs v over the form.
func (f *Form) Validate(v Validator) error {
	return v.Validate(f.Name, f.Entries())
}

// Request validates the form with v and builds a CreationRequest. The form
// itself is left untouched.
func (f *Form) Request(v Validator) (*CreationRequest, error) {
	return v.NewRequest(f.Name, f.Entries())
}
