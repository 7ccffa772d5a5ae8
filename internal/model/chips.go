package model

import (
	"time"
)

// Chip keys accepted in service.jobInfoChips.
const (
	ChipEmploymentType    = "employmentType"
	ChipPublishedCategory = "publishedCategory"
	ChipAddress           = "address"
	ChipDateLastPublished = "dateLastPublished"
)

// Chips renders the configured info chips for a job, in configuration order.
// Unknown keys and empty values are skipped.
func (j Job) Chips(keys []string) []string {
	chips := make([]string, 0, len(keys))
	for _, k := range keys {
		var v string
		switch k {
		case ChipEmploymentType:
			v = j.EmploymentType
		case ChipPublishedCategory:
			if j.PublishedCategory != nil {
				v = j.PublishedCategory.Name
			}
		case ChipAddress:
			v = j.Address.Location()
		case ChipDateLastPublished:
			if j.DateLastPublished > 0 {
				v = time.UnixMilli(j.DateLastPublished).UTC().Format("Jan 2, 2006")
			}
		}
		if v != "" {
			chips = append(chips, v)
		}
	}
	return chips
}
