// Package schema describes the response payload of a form as an OpenAPI
// schema object.
package schema

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/johnwards/formbuilder/internal/domain"
)

// ResponseSchema returns the schema that stored response data of form
// conforms to. Properties are keyed by field id and listed in field order.
func ResponseSchema(form *domain.Form) *openapi3.Schema {
	s := openapi3.NewObjectSchema().WithoutAdditionalProperties()
	s.Title = form.Title
	s.Description = form.Description

	for _, f := range form.Fields {
		s.WithProperty(f.ID, fieldSchema(f))
		if f.Required {
			s.Required = append(s.Required, f.ID)
		}
	}
	return s
}

func fieldSchema(f domain.FormField) *openapi3.Schema {
	var s *openapi3.Schema
	switch f.Kind {
	case domain.KindNumber:
		s = openapi3.NewFloat64Schema()
	case domain.KindCheckbox:
		s = openapi3.NewBoolSchema()
	case domain.KindEmail:
		s = openapi3.NewStringSchema().WithFormat("email")
	case domain.KindSelect, domain.KindRadio:
		opts, _ := f.Choices()
		enum := make([]any, len(opts))
		for i, o := range opts {
			enum[i] = o
		}
		s = openapi3.NewStringSchema().WithEnum(enum...)
	default:
		s = openapi3.NewStringSchema()
	}

	if v := f.Validation; v != nil && f.Kind.SupportsValidation() {
		if v.Pattern != "" && f.Kind == domain.KindText {
			s.WithPattern(v.Pattern)
		}
		if v.Min != nil {
			if f.Kind == domain.KindNumber {
				s.WithMin(*v.Min)
			} else {
				s.WithMinLength(int64(*v.Min))
			}
		}
		if v.Max != nil {
			if f.Kind == domain.KindNumber {
				s.WithMax(*v.Max)
			} else {
				s.WithMaxLength(int64(*v.Max))
			}
		}
	}

	s.Title = f.Label
	if !f.Required {
		s.Nullable = true
	}
	return s
}
