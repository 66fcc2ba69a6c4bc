package domain

import "fmt"

// FieldKind identifies the input element a FormField renders as.
type FieldKind string

// Supported field kinds. The set is closed.
const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindNumber   FieldKind = "number"
	KindEmail    FieldKind = "email"
	KindSelect   FieldKind = "select"
	KindRadio    FieldKind = "radio"
	KindCheckbox FieldKind = "checkbox"
)

// FieldKinds lists every kind in builder palette order.
var FieldKinds = []FieldKind{
	KindText, KindTextarea, KindNumber, KindEmail, KindSelect, KindRadio, KindCheckbox,
}

// ParseFieldKind converts s into a FieldKind, rejecting unknown values.
func ParseFieldKind(s string) (FieldKind, error) {
	k := FieldKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown field type %q", s)
	}
	return k, nil
}

// Valid reports whether k is one of the supported kinds.
func (k FieldKind) Valid() bool {
	switch k {
	case KindText, KindTextarea, KindNumber, KindEmail, KindSelect, KindRadio, KindCheckbox:
		return true
	}
	return false
}

// HasOptions reports whether fields of this kind carry an option list.
func (k FieldKind) HasOptions() bool {
	switch k {
	case KindSelect, KindRadio:
		return true
	case KindText, KindTextarea, KindNumber, KindEmail, KindCheckbox:
		return false
	}
	return false
}

// SupportsValidation reports whether pattern/min/max hints apply to k.
func (k FieldKind) SupportsValidation() bool {
	return k == KindText || k == KindNumber
}

// Validation holds client-side constraint hints for text and number fields.
// They are stored and exported but not enforced on responses.
type Validation struct {
	Pattern string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Min     *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

func (v *Validation) clone() *Validation {
	if v == nil {
		return nil
	}
	c := Validation{Pattern: v.Pattern}
	if v.Min != nil {
		m := *v.Min
		c.Min = &m
	}
	if v.Max != nil {
		m := *v.Max
		c.Max = &m
	}
	return &c
}

// FormField is one input element in a form.
//
// Options is only populated when Kind.HasOptions() is true; callers should go
// through Choices rather than reading it directly.
type FormField struct {
	ID          string      `json:"id" yaml:"id"`
	Kind        FieldKind   `json:"type" yaml:"type"`
	Label       string      `json:"label" yaml:"label"`
	Placeholder string      `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool        `json:"required" yaml:"required"`
	Options     []string    `json:"options,omitempty" yaml:"options,omitempty"`
	Validation  *Validation `json:"validation,omitempty" yaml:"validation,omitempty"`
}

// Choices returns the option list of a select or radio field. ok is false for
// every other kind.
func (f FormField) Choices() (options []string, ok bool) {
	if !f.Kind.HasOptions() {
		return nil, false
	}
	return f.Options, true
}

// HasChoice reports whether value is one of the field's declared options.
func (f FormField) HasChoice(value string) bool {
	opts, ok := f.Choices()
	if !ok {
		return false
	}
	for _, o := range opts {
		if o == value {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of f.
func (f FormField) Clone() FormField {
	c := f
	if f.Options != nil {
		c.Options = append([]string(nil), f.Options...)
	}
	c.Validation = f.Validation.clone()
	return c
}
