package editor

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/johnwards/formbuilder/internal/domain"
)

// Normalize checks a complete form definition before it is saved and brings
// it into canonical shape: missing theme attributes and field ids are filled
// in, and option or validation payloads are dropped from kinds that do not
// carry them. User text is kept as entered. Problems that cannot be repaired
// are reported together in one ValidationError and leave form untouched.
func Normalize(form *domain.Form) error {
	next := form.Clone()
	verr := &domain.ValidationError{}

	if strings.TrimSpace(next.Title) == "" {
		verr.Add("title", "title is required")
	}
	next.Theme = next.Theme.WithDefaults()

	seen := make(map[string]bool, len(next.Fields))
	for i := range next.Fields {
		f := &next.Fields[i]
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		if seen[f.ID] {
			verr.Add(f.ID, "duplicate field id")
		}
		seen[f.ID] = true

		if !f.Kind.Valid() {
			verr.Add(f.ID, "unknown field type %q", f.Kind)
			continue
		}

		if f.Kind.HasOptions() {
			if len(f.Options) == 0 {
				verr.Add(f.ID, "%s fields need at least one option", f.Kind)
			}
		} else {
			f.Options = nil
		}

		if !f.Kind.SupportsValidation() {
			f.Validation = nil
		}
		if f.Validation != nil {
			if f.Validation.Pattern != "" {
				if _, err := regexp.Compile(f.Validation.Pattern); err != nil {
					verr.Add(f.ID, "invalid pattern: %v", err)
				}
			}
			checkBounds(verr, f.ID, f.Validation)
		}
	}

	if err := verr.OrNil(); err != nil {
		return err
	}
	*form = *next
	return nil
}
