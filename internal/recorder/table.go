package recorder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/johnwards/formbuilder/internal/domain"
)

// Column heads one table column. FieldID is empty for the submission date.
type Column struct {
	FieldID string `json:"fieldId,omitempty"`
	Label   string `json:"label"`
}

// Row is one response rendered as text, aligned with the table columns.
type Row struct {
	ResponseID string   `json:"responseId"`
	Cells      []string `json:"cells"`
}

// Table is the tabular view of a form's responses.
type Table struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Header returns the column labels.
func (t *Table) Header() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Label
	}
	return out
}

// Tabulate lays out responses with a "Submitted" column followed by one
// column per current field of form. Values of fields no longer on the form
// are not shown.
func Tabulate(form *domain.Form, responses []domain.FormResponse) *Table {
	t := &Table{
		Columns: make([]Column, 0, len(form.Fields)+1),
		Rows:    make([]Row, 0, len(responses)),
	}
	t.Columns = append(t.Columns, Column{Label: "Submitted"})
	for _, f := range form.Fields {
		t.Columns = append(t.Columns, Column{FieldID: f.ID, Label: f.Label})
	}

	for _, r := range responses {
		cells := make([]string, 0, len(t.Columns))
		cells = append(cells, r.CreatedAt)
		for _, f := range form.Fields {
			cells = append(cells, FormatValue(r.ResponseData[f.ID]))
		}
		t.Rows = append(t.Rows, Row{ResponseID: r.ID, Cells: cells})
	}
	return t
}

// FormatValue renders a stored answer as display text.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "Yes"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []any:
		parts := make([]string, len(x))
		for i, p := range x {
			parts[i] = FormatValue(p)
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(x, ", ")
	}
	return fmt.Sprint(v)
}
