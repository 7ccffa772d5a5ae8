package apply_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobmate/careers-service/internal/apply"
	"jobmate/careers-service/internal/config"
)

func TestExtension(t *testing.T) {
	cases := map[string]string{
		"resume.final.pdf": "pdf",
		"cv.docx":          "docx",
		"README":           "README",
		"archive.":         "",
	}
	for name, want := range cases {
		assert.Equal(t, want, apply.Extension(name), name)
	}
}

func TestEncodeURIComponent(t *testing.T) {
	assert.Equal(t, "Mary%20Jane", apply.EncodeURIComponent("Mary Jane"))
	assert.Equal(t, "ada%2Btag%40example.com", apply.EncodeURIComponent("ada+tag@example.com"))
	assert.Equal(t, "O'Brien%20(Jr.)!", apply.EncodeURIComponent("O'Brien (Jr.)!"))
	assert.Equal(t, "a%2Fb%3Fc%3Dd%26e", apply.EncodeURIComponent("a/b?c=d&e"))
}

func TestNewSubmission_RequiredOnly(t *testing.T) {
	f := apply.BuildForm(baseSettings(), tr, "")
	vals := validValues()
	vals[apply.KeyFirstName] = apply.Value{Text: "Mary Jane"}
	vals[apply.KeyResume] = apply.Value{File: &apply.File{Name: "resume.final.pdf", Data: []byte("x")}}
	f.Set(vals)

	sub := apply.NewSubmission(42, f, "")
	assert.Equal(t, int64(42), sub.JobID)
	assert.Equal(t, map[string]string{
		"firstName": "Mary%20Jane",
		"lastName":  "Lovelace",
		"email":     "ada%40example.com",
		"format":    "pdf",
	}, sub.Params)
	assert.Equal(t, "resume.final.pdf", sub.Resume.Name)
	assert.Equal(t, []byte("x"), sub.Resume.Data)
}

func TestNewSubmission_OptionalFieldsWhenPresent(t *testing.T) {
	s := baseSettings()
	s.EEOC = config.EEOC{GenderRaceEthnicity: true, Veteran: true, Disability: true}
	f := apply.BuildForm(s, tr, "")
	vals := validValues()
	vals[apply.KeyPhone] = apply.Value{Text: "+1 555 0100"}
	vals[apply.KeyGender] = apply.Value{Text: "Female"}
	vals[apply.KeyEthnicity] = apply.Value{Multi: []string{"Asian", "White"}}
	vals[apply.KeyVeteran] = apply.Value{Text: "Non-Veteran"}
	vals[apply.KeyDisability] = apply.Value{Text: "No Disability"}
	f.Set(vals)

	p := apply.NewSubmission(7, f, "LinkedIn Ads").Params
	assert.Equal(t, "%2B1%20555%200100", p["phone"])
	assert.Equal(t, "Female", p["gender"])
	assert.Equal(t, "Asian%2CWhite", p["ethnicity"])
	assert.Equal(t, "Non-Veteran", p["veteran"])
	assert.Equal(t, "No%20Disability", p["disability"])
	assert.Equal(t, "LinkedIn%20Ads", p["source"])
}

func TestNewSubmission_OmitsAbsentOptionals(t *testing.T) {
	f := apply.BuildForm(baseSettings(), tr, "")
	vals := validValues()
	vals[apply.KeyPhone] = apply.Value{Text: "  "}
	f.Set(vals)

	p := apply.NewSubmission(7, f, "").Params
	for _, k := range []string{"phone", "gender", "ethnicity", "veteran", "disability", "source"} {
		assert.NotContains(t, p, k)
	}
}
