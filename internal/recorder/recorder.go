// Package recorder turns values entered into a published form into response
// records and hands them to the persistence gateway.
package recorder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/johnwards/formbuilder/internal/domain"
)

// Inserter is the part of the persistence gateway the recorder needs.
type Inserter interface {
	Insert(ctx context.Context, r *domain.FormResponse) (*domain.FormResponse, error)
}

// Recorder validates and submits responses.
type Recorder struct {
	responses Inserter
	timeout   time.Duration
}

// New returns a Recorder writing through responses. A positive timeout
// bounds every gateway call.
func New(responses Inserter, timeout time.Duration) *Recorder {
	return &Recorder{responses: responses, timeout: timeout}
}

// Collect checks values against the fields of form and returns the response
// data to store. Required fields must be non-empty and select/radio answers
// must be one of the declared options. Keys that are not field ids of form
// are dropped, and so are empty answers to optional fields, except an
// unticked checkbox which is stored as false.
func Collect(form *domain.Form, values map[string]any) (map[string]any, error) {
	data := make(map[string]any, len(values))
	verr := &domain.ValidationError{}

	for _, f := range form.Fields {
		v := values[f.ID]
		if isEmpty(v) {
			if f.Required {
				verr.Add(f.ID, "%s is required", describe(f))
			}
			if b, ok := v.(bool); ok {
				data[f.ID] = b
			}
			continue
		}

		if _, ok := f.Choices(); ok {
			s, isString := v.(string)
			if !isString || !f.HasChoice(s) {
				verr.Add(f.ID, "%v is not an option of %s", v, describe(f))
				continue
			}
		}
		data[f.ID] = v
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return data, nil
}

// Submit validates values and stores them as a new response to form. The
// submitter id is recorded only when non-empty. Submitting twice stores two
// responses.
func (r *Recorder) Submit(ctx context.Context, form *domain.Form, values map[string]any, submitterID string) (*domain.FormResponse, error) {
	if form.ID == "" {
		return nil, fmt.Errorf("submit to unsaved form: %w", domain.ErrNotFound)
	}

	data, err := Collect(form, values)
	if err != nil {
		return nil, err
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	created, err := r.responses.Insert(ctx, &domain.FormResponse{
		FormID:       form.ID,
		ResponseData: data,
		SubmitterID:  submitterID,
	})
	if err != nil {
		return nil, domain.Gateway("insert response", err)
	}

	slog.Info("response recorded",
		"form_id", form.ID,
		"response_id", created.ID,
		"fields", len(data),
	)
	return created, nil
}

// isEmpty reports whether v counts as "not filled in".
func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case bool:
		return !x
	case []any:
		return len(x) == 0
	case []string:
		return len(x) == 0
	}
	return false
}

func describe(f domain.FormField) string {
	if f.Label != "" {
		return fmt.Sprintf("%q", f.Label)
	}
	return "field " + f.ID
}
