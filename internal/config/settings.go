package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Settings is the careers site configuration. It is loaded once at startup
// and must be treated as read-only afterwards; components receive a pointer
// at construction instead of reading process-wide state.
type Settings struct {
	CompanyName         string         `json:"companyName"`
	DefaultLocale       string         `json:"defaultLocale"`
	Service             ServiceConfig  `json:"service"`
	PrivacyConsent      PrivacyConsent `json:"privacyConsent"`
	EEOC                EEOC           `json:"eeoc"`
	AcceptedResumeTypes []string       `json:"acceptedResumeTypes"`
}

// ServiceConfig describes the upstream ATS public REST endpoint and what
// the job list shows for every listing.
type ServiceConfig struct {
	CorpToken    string   `json:"corpToken"`
	Swimlane     string   `json:"swimlane"`
	Fields       []string `json:"fields"`
	JobInfoChips []string `json:"jobInfoChips"`
}

// PrivacyConsent controls the consent checkbox and privacy statement.
type PrivacyConsent struct {
	ConsentCheckbox            bool     `json:"consentCheckbox"`
	PrivacyPolicyURL           string   `json:"privacyPolicyUrl"`
	UsePrivacyPolicyURL        bool     `json:"usePrivacyPolicyUrl"`
	PrivacyStatementParagraphs []string `json:"privacyStatementParagraphs"`
}

// EEOC toggles each self-identification survey group independently.
type EEOC struct {
	GenderRaceEthnicity bool `json:"genderRaceEthnicity"`
	Veteran             bool `json:"veteran"`
	Disability          bool `json:"disability"`
}

var defaultFields = []string{
	"id", "title", "publishedCategory(id,name)", "address(city,state,zip)",
	"employmentType", "dateLastPublished", "publicDescription",
}

// LoadSettings reads and validates the settings file at path.
func LoadSettings(path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings %q: %w", path, err)
	}
	return ParseSettings(raw)
}

// ParseSettings decodes settings JSON and fills defaults.
func ParseSettings(raw []byte) (*Settings, error) {
	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if s.CompanyName == "" {
		return nil, fmt.Errorf("settings: companyName is required")
	}
	if s.PrivacyConsent.UsePrivacyPolicyURL && s.PrivacyConsent.PrivacyPolicyURL == "" {
		return nil, fmt.Errorf("settings: privacyConsent.privacyPolicyUrl is required when usePrivacyPolicyUrl is set")
	}
	if s.DefaultLocale == "" {
		s.DefaultLocale = "en-US"
	}
	if len(s.Service.Fields) == 0 {
		s.Service.Fields = defaultFields
	}
	return &s, nil
}

// SearchBaseURL returns the public REST root for the configured corporation.
func (s *Settings) SearchBaseURL() string {
	return fmt.Sprintf("https://public-rest%s.bullhornstaffing.com:443/rest-services/%s",
		s.Service.Swimlane, s.Service.CorpToken)
}

// PrivacyStatement joins the statement paragraphs the way the site renders them.
func (s *Settings) PrivacyStatement() string {
	return strings.Join(s.PrivacyConsent.PrivacyStatementParagraphs, "\r\n")
}

// PageTitle is the document title of the job list view.
func (s *Settings) PageTitle() string {
	return s.CompanyName + " - Careers"
}
