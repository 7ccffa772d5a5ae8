package apply

import (
	"strings"

	"jobmate/careers-service/internal/config"
	"jobmate/careers-service/internal/i18n"
)

// Translator resolves user-facing strings for a locale.
type Translator interface {
	Translate(locale, key string) string
}

// Field keys sent to the ATS.
const (
	KeyFirstName  = "firstName"
	KeyLastName   = "lastName"
	KeyEmail      = "email"
	KeyPhone      = "phone"
	KeyResume     = "resume"
	KeyGender     = "gender"
	KeyEthnicity  = "ethnicity"
	KeyVeteran    = "veteran"
	KeyDisability = "disability"
	KeyConsent    = "consent"
)

const selfIdentifyDecline = "I do not wish to self-identify"

var (
	genderOptions = []Option{
		{"Male", "Male"},
		{"Female", "Female"},
		{"Unknown", selfIdentifyDecline},
	}
	ethnicityOptions = []Option{
		{"Hispanic or Latino", "Hispanic or Latino"},
		{"White", "White"},
		{"Black or African American", "Black or African American"},
		{"Asian", "Asian"},
		{"Native Hawaiian or Pacific Islander", "Native Hawaiian or Pacific Islander"},
		{"American Indian or Alaskan Native", "American Indian or Alaskan Native"},
		{"Unknown", selfIdentifyDecline},
	}
	veteranOptions = []Option{
		{"Protected Veteran", "Protected Veteran"},
		{"Veteran", "Veteran"},
		{"Non-Veteran", "Non-Veteran"},
		{"Unknown", "Decline to Answer"},
	}
	disabilityOptions = []Option{
		{"Disability", "Disability"},
		{"No Disability", "No Disability"},
		{"Unknown", selfIdentifyDecline},
	}
)

func selectField(key, label string, opts []Option) *Field {
	return &Field{Key: key, Type: FieldSelect, Label: label, Required: true, Options: opts, Rules: []Rule{OneOf(opts)}}
}

// eeocGroup ties one survey flag to the fields it enables.
type eeocGroup struct {
	enabled func(config.EEOC) bool
	fields  func() []*Field
}

var eeocGroups = []eeocGroup{
	{
		enabled: func(e config.EEOC) bool { return e.GenderRaceEthnicity },
		fields: func() []*Field {
			return []*Field{
				selectField(KeyGender, "Gender", genderOptions),
				{
					Key: KeyEthnicity, Type: FieldPicker, Label: "Ethnicity / Race",
					Placeholder: "Select all that apply", Required: true, Multiple: true,
					Options: ethnicityOptions, Rules: []Rule{OneOf(ethnicityOptions)},
				},
			}
		},
	},
	{
		enabled: func(e config.EEOC) bool { return e.Veteran },
		fields:  func() []*Field { return []*Field{selectField(KeyVeteran, "Veteran Status", veteranOptions)} },
	},
	{
		enabled: func(e config.EEOC) bool { return e.Disability },
		fields:  func() []*Field { return []*Field{selectField(KeyDisability, "Disability Status", disabilityOptions)} },
	},
}

// BuildForm assembles the application form for the configured site. Labels
// are translated for locale.
func BuildForm(s *config.Settings, tr Translator, locale string) *Form {
	t := func(key string) string { return tr.Translate(locale, key) }

	fields := []*Field{
		{Key: KeyFirstName, Type: FieldText, Label: t(i18n.FirstName), Required: true},
		{Key: KeyLastName, Type: FieldText, Label: t(i18n.LastName), Required: true},
		{Key: KeyEmail, Type: FieldEmail, Label: t(i18n.Email), Required: true, Rules: []Rule{Email{}}},
		{Key: KeyPhone, Type: FieldTel, Label: t(i18n.Phone)},
		{
			Key: KeyResume, Type: FieldFile, Label: t(i18n.Resume), Required: true,
			Description: t(i18n.AcceptedResume) + " " + strings.Join(s.AcceptedResumeTypes, ","),
			Rules:       []Rule{AcceptedTypes(s.AcceptedResumeTypes)},
		},
	}
	for _, g := range eeocGroups {
		if g.enabled(s.EEOC) {
			fields = append(fields, g.fields()...)
		}
	}
	if s.PrivacyConsent.ConsentCheckbox {
		fields = append(fields, &Field{
			Key: KeyConsent, Type: FieldCheckbox, Required: true,
			Description: t(i18n.Consent),
			Rules:       []Rule{MustBeChecked{}},
		})
	}
	return NewForm(fields...)
}
