package editor

import "github.com/johnwards/formbuilder/internal/domain"

// FieldPatch is a partial update of a FormField. Nil members are left as
// they are. The id of a field cannot be patched.
type FieldPatch struct {
	Kind        *domain.FieldKind  `json:"type,omitempty"`
	Label       *string            `json:"label,omitempty"`
	Placeholder *string            `json:"placeholder,omitempty"`
	Required    *bool              `json:"required,omitempty"`
	Options     []string           `json:"options,omitempty"`
	Validation  *domain.Validation `json:"validation,omitempty"`
}

// apply returns f with the patch merged in, or a validation error.
func (p FieldPatch) apply(f domain.FormField) (domain.FormField, error) {
	next := f.Clone()
	verr := &domain.ValidationError{}

	if p.Kind != nil {
		if !p.Kind.Valid() {
			verr.Add("type", "unknown field type %q", *p.Kind)
		} else {
			next.Kind = *p.Kind
		}
	}
	if p.Label != nil {
		next.Label = *p.Label
	}
	if p.Placeholder != nil {
		next.Placeholder = *p.Placeholder
	}
	if p.Required != nil {
		next.Required = *p.Required
	}
	if p.Options != nil {
		next.Options = append([]string(nil), p.Options...)
	}
	if p.Validation != nil {
		v := *p.Validation
		next.Validation = &v
	}

	// Reshape for the (possibly new) kind.
	switch {
	case next.Kind.HasOptions():
		if len(next.Options) == 0 {
			if p.Options != nil {
				verr.Add("options", "%s fields need at least one option", next.Kind)
			} else {
				next.Options = []string{defaultOption}
			}
		}
	default:
		if p.Options != nil && len(p.Options) > 0 {
			verr.Add("options", "%s fields do not take options", next.Kind)
		}
		next.Options = nil
	}

	if next.Validation != nil && !next.Kind.SupportsValidation() {
		if p.Validation != nil {
			verr.Add("validation", "%s fields do not take validation", next.Kind)
		}
		next.Validation = nil
	}
	if next.Validation != nil {
		checkBounds(verr, "validation", next.Validation)
	}

	if err := verr.OrNil(); err != nil {
		return f, err
	}
	return next, nil
}

func checkBounds(verr *domain.ValidationError, field string, v *domain.Validation) {
	if v.Min != nil && v.Max != nil && *v.Min > *v.Max {
		verr.Add(field, "min %g is greater than max %g", *v.Min, *v.Max)
	}
}
