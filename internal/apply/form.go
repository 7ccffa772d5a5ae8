package apply

import (
	"maps"
	"slices"
	"strings"
)

// FieldType is the control a field renders as.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldTel      FieldType = "tel"
	FieldFile     FieldType = "file"
	FieldSelect   FieldType = "select"
	FieldPicker   FieldType = "picker"
	FieldCheckbox FieldType = "checkbox"
)

// Option is one choice of a select or picker field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field is the definition of one form control.
type Field struct {
	Key         string    `json:"key"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label"`
	Description string    `json:"description,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required"`
	Hidden      bool      `json:"hidden,omitempty"`
	Multiple    bool      `json:"multiple,omitempty"`
	Options     []Option  `json:"options,omitempty"`
	Rules       []Rule    `json:"-"`
}

// File is an uploaded attachment.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Value is the current value of a field. Which member is used depends on
// the field type.
type Value struct {
	Text    string
	Multi   []string
	Checked bool
	File    *File
}

// Values maps field keys to values.
type Values map[string]Value

// empty reports whether v holds nothing for a field of type t. A checkbox
// always has a value, so "required" cannot express "must be checked"; that
// is what MustBeChecked is for.
func (v Value) empty(t FieldType) bool {
	switch t {
	case FieldPicker:
		return len(v.Multi) == 0
	case FieldFile:
		return v.File == nil || v.File.Name == ""
	case FieldCheckbox:
		return false
	default:
		return strings.TrimSpace(v.Text) == ""
	}
}

// Form is a set of field definitions in display order plus their values.
type Form struct {
	fields []*Field
	values Values
}

// NewForm returns an empty form over fields.
func NewForm(fields ...*Field) *Form {
	return &Form{fields: fields, values: Values{}}
}

// Fields returns the definitions in display order.
func (f *Form) Fields() []*Field { return f.fields }

// Field looks a definition up by key.
func (f *Form) Field(key string) (*Field, bool) {
	for _, fd := range f.fields {
		if fd.Key == key {
			return fd, true
		}
	}
	return nil, false
}

// Set merges vals into the form. Keys with no field are ignored; keys not in
// vals keep their previous value.
func (f *Form) Set(vals Values) {
	for k, v := range vals {
		if _, ok := f.Field(k); ok {
			f.values[k] = v
		}
	}
}

// Value returns the current value of key.
func (f *Form) Value(key string) Value { return f.values[key] }

// Values returns a copy of every value set so far.
func (f *Form) Values() Values { return maps.Clone(f.values) }

// Validate checks every field and returns a *ValidationError listing each
// failing field, or nil.
func (f *Form) Validate() error {
	failed := map[string]error{}
	for _, fd := range f.fields {
		v := f.values[fd.Key]
		if fd.Required && v.empty(fd.Type) {
			failed[fd.Key] = ErrRequired
			continue
		}
		for _, r := range fd.Rules {
			if err := r.Check(v); err != nil {
				failed[fd.Key] = err
				break
			}
		}
	}
	if len(failed) > 0 {
		return &ValidationError{Fields: failed}
	}
	return nil
}

// Valid reports whether Validate passes.
func (f *Form) Valid() bool { return f.Validate() == nil }

// ValidationError lists the fields that failed validation, keyed by field.
type ValidationError struct {
	Fields map[string]error
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k].Error()
	}
	return "invalid application: " + strings.Join(parts, "; ")
}
