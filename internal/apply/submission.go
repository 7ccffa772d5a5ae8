package apply

import (
	"net/url"
	"strings"
)

// Submission is what gets sent to the ATS for one application: pre-encoded
// scalar parameters plus the resume attachment.
type Submission struct {
	JobID  int64
	Params map[string]string
	Resume File
}

// uriComponentUnescapes undoes the escapes QueryEscape applies to characters
// that encodeURIComponent leaves alone.
var uriComponentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent escapes s the way browsers do for a URI component.
func EncodeURIComponent(s string) string {
	return uriComponentUnescapes.Replace(url.QueryEscape(s))
}

// Extension returns the part of name after its last '.'. A name without a
// dot is returned whole.
func Extension(name string) string {
	return name[strings.LastIndex(name, ".")+1:]
}

// NewSubmission builds the payload from a form that has passed validation.
// Optional values are only included when present.
func NewSubmission(jobID int64, f *Form, source string) *Submission {
	text := func(key string) string { return strings.TrimSpace(f.Value(key).Text) }

	resume := f.Value(KeyResume).File
	params := map[string]string{
		KeyFirstName: EncodeURIComponent(text(KeyFirstName)),
		KeyLastName:  EncodeURIComponent(text(KeyLastName)),
		KeyEmail:     EncodeURIComponent(text(KeyEmail)),
		"format":     Extension(resume.Name),
	}
	if v := text(KeyPhone); v != "" {
		params[KeyPhone] = EncodeURIComponent(v)
	}
	for _, key := range []string{KeyGender, KeyVeteran, KeyDisability} {
		if v := text(key); v != "" {
			params[key] = EncodeURIComponent(v)
		}
	}
	if eth := f.Value(KeyEthnicity).Multi; len(eth) > 0 {
		params[KeyEthnicity] = EncodeURIComponent(strings.Join(eth, ","))
	}
	if source != "" {
		params["source"] = EncodeURIComponent(source)
	}
	return &Submission{JobID: jobID, Params: params, Resume: *resume}
}
