package apply

import (
	"errors"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rule failures. Each one is reported per field inside a ValidationError.
var (
	ErrRequired      = errors.New("required")
	ErrMustBeChecked = errors.New("must be checked")
	ErrInvalidEmail  = errors.New("invalid email")
	ErrFileType      = errors.New("file type not accepted")
	ErrInvalidOption = errors.New("not one of the options")
)

var validate = validator.New()

// Rule is a field-level validation rule. Rules other than MustBeChecked pass
// on empty values; emptiness is the Required flag's business.
type Rule interface {
	Check(v Value) error
}

// MustBeChecked fails whenever the checkbox is unchecked.
type MustBeChecked struct{}

func (MustBeChecked) Check(v Value) error {
	if !v.Checked {
		return ErrMustBeChecked
	}
	return nil
}

// Email checks the address syntax.
type Email struct{}

func (Email) Check(v Value) error {
	s := strings.TrimSpace(v.Text)
	if s == "" {
		return nil
	}
	if err := validate.Var(s, "email"); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// AcceptedTypes restricts a file to the listed extensions, compared without
// case. An empty list accepts anything.
type AcceptedTypes []string

func (a AcceptedTypes) Check(v Value) error {
	if len(a) == 0 || v.File == nil || v.File.Name == "" {
		return nil
	}
	ext := Extension(v.File.Name)
	for _, t := range a {
		if strings.EqualFold(strings.TrimPrefix(t, "."), ext) {
			return nil
		}
	}
	return ErrFileType
}

// OneOf restricts select and picker values to the option values.
type OneOf []Option

func (o OneOf) Check(v Value) error {
	vals := v.Multi
	if len(vals) == 0 && v.Text != "" {
		vals = []string{v.Text}
	}
	for _, s := range vals {
		if !slices.ContainsFunc(o, func(opt Option) bool { return opt.Value == s }) {
			return ErrInvalidOption
		}
	}
	return nil
}
