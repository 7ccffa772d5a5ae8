// Package model defines shared data structures for the careers service.
package model

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Job is a published job order as returned by the ATS public search API.
// The service renders it and never reorders or restructures a page.
type Job struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	PublishedCategory *Category `json:"publishedCategory,omitempty"`
	Address           *Address  `json:"address,omitempty"`
	EmploymentType    string    `json:"employmentType,omitempty"`
	DateLastPublished int64     `json:"dateLastPublished,omitempty"` // epoch millis
	PublicDescription string    `json:"publicDescription,omitempty"`
}

// Category is the published job category.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Address is the job location.
type Address struct {
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
	Zip   string `json:"zip,omitempty"`
}

// JobPage mirrors the top-level search response.
type JobPage struct {
	Data  []Job `json:"data"`
	Total int   `json:"total"`
	Start int   `json:"start"`
	Count int   `json:"count"`
}

// DetailPath is the navigation target of a job in the careers site.
func DetailPath(id int64) string {
	return fmt.Sprintf("/jobs/%d", id)
}

// Location renders "City, State" with empty parts dropped.
func (a *Address) Location() string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, 2)
	for _, p := range []string{a.City, a.State} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Excerpt strips the HTML of the public description and returns at most
// max runes of its text, cut on a word boundary.
func (j Job) Excerpt(max int) string {
	if j.PublicDescription == "" || max <= 0 {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(j.PublicDescription))
	if err != nil {
		return ""
	}
	var sb strings.Builder
	for _, n := range doc.Nodes {
		collectText(n, &sb)
	}
	text := strings.Join(strings.Fields(sb.String()), " ")

	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}

// collectText appends text nodes in document order, separated by spaces so
// adjacent block elements do not run together.
func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
