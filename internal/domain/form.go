package domain

// DefaultTitle is the title given to newly created forms.
const DefaultTitle = "Untitled Form"

// copySuffix is appended to the title of a duplicated form.
const copySuffix = " (Copy)"

// FormTheme holds the presentation attributes of a form.
type FormTheme struct {
	PrimaryColor    string `json:"primaryColor" yaml:"primaryColor"`
	BackgroundColor string `json:"backgroundColor" yaml:"backgroundColor"`
	TextColor       string `json:"textColor" yaml:"textColor"`
	FontFamily      string `json:"fontFamily" yaml:"fontFamily"`
}

// DefaultTheme returns the theme applied to new forms.
func DefaultTheme() FormTheme {
	return FormTheme{
		PrimaryColor:    "#4F46E5",
		BackgroundColor: "#F9FAFB",
		TextColor:       "#111827",
		FontFamily:      "Inter",
	}
}

// WithDefaults returns t with every blank attribute taken from DefaultTheme.
func (t FormTheme) WithDefaults() FormTheme {
	d := DefaultTheme()
	if t.PrimaryColor == "" {
		t.PrimaryColor = d.PrimaryColor
	}
	if t.BackgroundColor == "" {
		t.BackgroundColor = d.BackgroundColor
	}
	if t.TextColor == "" {
		t.TextColor = d.TextColor
	}
	if t.FontFamily == "" {
		t.FontFamily = d.FontFamily
	}
	return t
}

// Form is a form definition: its metadata, theme and ordered fields.
type Form struct {
	ID          string      `json:"id,omitempty" yaml:"id,omitempty"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []FormField `json:"fields" yaml:"fields"`
	CreatedAt   string      `json:"createdAt,omitempty" yaml:"-"`
	UpdatedAt   string      `json:"updatedAt,omitempty" yaml:"-"`
	OwnerID     string      `json:"ownerId" yaml:"-"`
	IsPublished bool        `json:"isPublished" yaml:"isPublished"`
	Theme       FormTheme   `json:"theme" yaml:"theme"`
}

// NewForm returns an unsaved form with default title and theme.
func NewForm(ownerID string) *Form {
	return &Form{
		Title:   DefaultTitle,
		Fields:  []FormField{},
		OwnerID: ownerID,
		Theme:   DefaultTheme(),
	}
}

// Clone returns a deep copy of f.
func (f *Form) Clone() *Form {
	c := *f
	if f.Fields != nil {
		c.Fields = make([]FormField, len(f.Fields))
		for i := range f.Fields {
			c.Fields[i] = f.Fields[i].Clone()
		}
	}
	return &c
}

// Duplicate returns an unsaved, unpublished copy of f. Identity and
// timestamps are not carried over; the title gets a " (Copy)" suffix.
func (f *Form) Duplicate() *Form {
	c := f.Clone()
	c.ID = ""
	c.CreatedAt = ""
	c.UpdatedAt = ""
	c.IsPublished = false
	c.Title = f.Title + copySuffix
	return c
}

// FieldIndex returns the position of the field with the given id, or -1.
func (f *Form) FieldIndex(id string) int {
	for i := range f.Fields {
		if f.Fields[i].ID == id {
			return i
		}
	}
	return -1
}

// Field returns the field with the given id.
func (f *Form) Field(id string) (FormField, bool) {
	i := f.FieldIndex(id)
	if i < 0 {
		return FormField{}, false
	}
	return f.Fields[i], true
}
