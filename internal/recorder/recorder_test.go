package recorder_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/johnwards/formbuilder/internal/domain"
	"github.com/johnwards/formbuilder/internal/recorder"
	"github.com/johnwards/formbuilder/internal/schema"
	"github.com/johnwards/formbuilder/internal/store"
	"github.com/johnwards/formbuilder/internal/testhelpers"
)

// fakeInserter records inserted responses in memory.
type fakeInserter struct {
	inserted []domain.FormResponse
	err      error
	deadline bool
}

func (f *fakeInserter) Insert(ctx context.Context, r *domain.FormResponse) (*domain.FormResponse, error) {
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	out := *r
	out.ID = "resp-" + string(rune('1'+len(f.inserted)))
	out.CreatedAt = "2024-01-01T00:00:00.000Z"
	f.inserted = append(f.inserted, out)
	return &out, nil
}

func twoFieldForm() *domain.Form {
	return &domain.Form{
		ID:    "form-1",
		Title: "Greeting",
		Fields: []domain.FormField{
			{ID: "fieldA", Kind: domain.KindText, Label: "Greeting", Required: true},
			{ID: "fieldB", Kind: domain.KindTextarea, Label: "Notes"},
		},
	}
}

func TestSubmitRequiredPresent(t *testing.T) {
	ins := &fakeInserter{}
	r := recorder.New(ins, time.Second)

	resp, err := r.Submit(context.Background(), twoFieldForm(), map[string]any{"fieldA": "hello"}, "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if resp.FormID != "form-1" {
		t.Errorf("formId = %q, want form-1", resp.FormID)
	}
	if diff := cmp.Diff(map[string]any{"fieldA": "hello"}, resp.ResponseData); diff != "" {
		t.Errorf("response data mismatch (-want +got):\n%s", diff)
	}
	if len(ins.inserted) != 1 {
		t.Errorf("inserted %d responses, want 1", len(ins.inserted))
	}
	if !ins.deadline {
		t.Error("gateway call should carry a deadline")
	}
}

func TestSubmitRequiredMissing(t *testing.T) {
	for name, values := range map[string]map[string]any{
		"absent": {"fieldB": "note"},
		"empty":  {"fieldA": ""},
		"blank":  {"fieldA": "   "},
		"nil":    {"fieldA": nil},
	} {
		t.Run(name, func(t *testing.T) {
			ins := &fakeInserter{}
			r := recorder.New(ins, 0)

			_, err := r.Submit(context.Background(), twoFieldForm(), values, "")
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("err = %v, want validation error", err)
			}
			var verr *domain.ValidationError
			if !errors.As(err, &verr) || len(verr.Problems) != 1 || verr.Problems[0].Field != "fieldA" {
				t.Errorf("problems = %+v", verr)
			}
			if len(ins.inserted) != 0 {
				t.Error("rejected submission must not create a record")
			}
		})
	}
}

func TestCollectOptionsAndCheckbox(t *testing.T) {
	form := &domain.Form{
		ID: "f",
		Fields: []domain.FormField{
			{ID: "plan", Kind: domain.KindRadio, Label: "Plan", Options: []string{"Free", "Pro"}, Required: true},
			{ID: "color", Kind: domain.KindSelect, Label: "Color", Options: []string{"Red"}},
			{ID: "terms", Kind: domain.KindCheckbox, Label: "Terms", Required: true},
		},
	}

	data, err := recorder.Collect(form, map[string]any{"plan": "Pro", "terms": true, "stray": "x"})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"plan": "Pro", "terms": true}, data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}

	_, err = recorder.Collect(form, map[string]any{"plan": "Enterprise", "color": 3.0, "terms": false})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	got := map[string]bool{}
	for _, p := range verr.Problems {
		got[p.Field] = true
	}
	if diff := cmp.Diff(map[string]bool{"plan": true, "color": true, "terms": true}, got); diff != "" {
		t.Errorf("problem fields mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectDropsEmptyOptionalAnswers(t *testing.T) {
	form := &domain.Form{
		ID:    "f",
		Title: "Signup",
		Fields: []domain.FormField{
			{ID: "name", Kind: domain.KindText, Label: "Name", Required: true},
			{ID: "plan", Kind: domain.KindSelect, Label: "Plan", Options: []string{"Free", "Pro"}},
			{ID: "nick", Kind: domain.KindText, Label: "Nickname", Validation: &domain.Validation{Pattern: "^[a-z]+$"}},
			{ID: "age", Kind: domain.KindNumber, Label: "Age"},
			{ID: "tags", Kind: domain.KindText, Label: "Tags"},
			{ID: "news", Kind: domain.KindCheckbox, Label: "Newsletter"},
		},
	}

	data, err := recorder.Collect(form, map[string]any{
		"name": "Ada",
		"plan": "",
		"nick": "  ",
		"age":  nil,
		"tags": []any{},
		"news": false,
	})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"name": "Ada", "news": false}, data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}

	if err := schema.ResponseSchema(form).VisitJSON(data); err != nil {
		t.Errorf("collected data fails the response schema: %v", err)
	}
}

func TestSubmitUnsavedForm(t *testing.T) {
	r := recorder.New(&fakeInserter{}, 0)
	form := twoFieldForm()
	form.ID = ""

	_, err := r.Submit(context.Background(), form, map[string]any{"fieldA": "x"}, "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSubmitGatewayFailure(t *testing.T) {
	cause := errors.New("database is locked")
	r := recorder.New(&fakeInserter{err: cause}, 0)

	_, err := r.Submit(context.Background(), twoFieldForm(), map[string]any{"fieldA": "x"}, "")
	var ge *domain.GatewayError
	if !errors.As(err, &ge) {
		t.Fatalf("err = %v, want *GatewayError", err)
	}
	if !errors.Is(err, cause) {
		t.Error("gateway error should unwrap to the cause")
	}
}

func TestSubmitThroughSQLite(t *testing.T) {
	s := store.New(testhelpers.NewMigratedDB(t))
	ctx := context.Background()

	form, err := s.Forms.Create(ctx, twoFieldForm())
	if err != nil {
		t.Fatalf("create form: %v", err)
	}

	r := recorder.New(s.Responses, time.Second)
	for i := 0; i < 2; i++ {
		if _, err := r.Submit(ctx, form, map[string]any{"fieldA": "hello"}, "42"); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	list, err := s.Responses.List(ctx, form.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 responses (no dedup), got %d", len(list))
	}
	if list[0].SubmitterID != "42" {
		t.Errorf("submitter = %q, want 42", list[0].SubmitterID)
	}
}
