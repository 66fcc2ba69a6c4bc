package schema_test

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/johnwards/formbuilder/internal/domain"
	"github.com/johnwards/formbuilder/internal/schema"
)

func ptr(f float64) *float64 { return &f }

func sampleForm() *domain.Form {
	return &domain.Form{
		ID:    "f1",
		Title: "Signup",
		Fields: []domain.FormField{
			{ID: "name", Kind: domain.KindText, Label: "Name", Required: true, Validation: &domain.Validation{Pattern: "^[A-Z]"}},
			{ID: "age", Kind: domain.KindNumber, Label: "Age", Validation: &domain.Validation{Min: ptr(18), Max: ptr(99)}},
			{ID: "plan", Kind: domain.KindSelect, Label: "Plan", Options: []string{"Free", "Pro"}},
			{ID: "terms", Kind: domain.KindCheckbox, Label: "Terms", Required: true},
		},
	}
}

func TestResponseSchemaShape(t *testing.T) {
	s := schema.ResponseSchema(sampleForm())

	if !s.Type.Is(openapi3.TypeObject) {
		t.Errorf("type = %v, want object", s.Type)
	}
	if s.Title != "Signup" {
		t.Errorf("title = %q", s.Title)
	}
	if diff := cmp.Diff([]string{"name", "terms"}, s.Required); diff != "" {
		t.Errorf("required mismatch (-want +got):\n%s", diff)
	}

	age := s.Properties["age"].Value
	if !age.Type.Is(openapi3.TypeNumber) || age.Min == nil || *age.Min != 18 || *age.Max != 99 {
		t.Errorf("age schema = %+v", age)
	}
	if got := s.Properties["name"].Value.Pattern; got != "^[A-Z]" {
		t.Errorf("name pattern = %q", got)
	}
	if diff := cmp.Diff([]any{"Free", "Pro"}, s.Properties["plan"].Value.Enum); diff != "" {
		t.Errorf("plan enum mismatch (-want +got):\n%s", diff)
	}
	if !s.Properties["terms"].Value.Type.Is(openapi3.TypeBoolean) {
		t.Error("checkbox should map to boolean")
	}
}

func TestResponseSchemaVisit(t *testing.T) {
	s := schema.ResponseSchema(sampleForm())

	valid := map[string]any{"name": "Ada", "age": 36.0, "plan": "Pro", "terms": true}
	if err := s.VisitJSON(valid); err != nil {
		t.Errorf("valid data rejected: %v", err)
	}

	invalid := []map[string]any{
		{"age": 36.0, "terms": true},
		{"name": "ada", "terms": true},
		{"name": "Ada", "terms": true, "age": 5.0},
		{"name": "Ada", "terms": true, "plan": "Enterprise"},
		{"name": "Ada", "terms": true, "extra": "x"},
	}
	for i, data := range invalid {
		if err := s.VisitJSON(data); err == nil {
			t.Errorf("case %d: %v accepted", i, data)
		}
	}
}

func TestResponseSchemaEmptyForm(t *testing.T) {
	s := schema.ResponseSchema(&domain.Form{Title: "Empty"})
	if len(s.Properties) != 0 || len(s.Required) != 0 {
		t.Errorf("expected no properties, got %+v", s.Properties)
	}
	if err := s.VisitJSON(map[string]any{}); err != nil {
		t.Errorf("empty data rejected: %v", err)
	}
}
