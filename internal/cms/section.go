package cms

import "strings"

// Section is one labeled content field supplied by the CMS.
type Section struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Value string `json:"value,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Text returns the display text of the section: its value, else its label.
func (s Section) Text() string {
	return strings.TrimSpace(FirstNonEmpty(s.Value, s.Label))
}

// Href returns the link target of the section: its url, else its value.
func (s Section) Href() string {
	return strings.TrimSpace(FirstNonEmpty(s.URL, s.Value))
}

// Page is the ordered section snapshot of one page namespace (e.g. "about", "rules").
type Page struct {
	Namespace string
	Sections  []Section
}

// Lookup returns the first section whose id matches id, ignoring case and surrounding space.
func (p Page) Lookup(id string) (Section, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Section{}, false
	}
	for _, s := range p.Sections {
		if strings.EqualFold(strings.TrimSpace(s.ID), id) {
			return s, true
		}
	}
	return Section{}, false
}

// Has reports whether the page carries a section with id and non-empty content.
func (p Page) Has(id string) bool {
	s, ok := p.Lookup(id)
	return ok && FirstNonEmpty(s.Value, s.Label, s.URL) != ""
}

// Text returns the section text for id, or fallback when the section is missing or blank.
func (p Page) Text(id, fallback string) string {
	s, _ := p.Lookup(id)
	return FirstNonEmpty(s.Text(), fallback)
}

// URL returns the section link for id, or fallback when the section is missing or blank.
func (p Page) URL(id, fallback string) string {
	s, _ := p.Lookup(id)
	return FirstNonEmpty(s.Href(), fallback)
}

// Image returns the image source for id. Editors store uploads in url and pasted links
// in value, so both are consulted before fallback.
func (p Page) Image(id, fallback string) string {
	s, _ := p.Lookup(id)
	return FirstNonEmpty(strings.TrimSpace(s.URL), strings.TrimSpace(s.Value), fallback)
}

// FirstNonEmpty returns the first candidate that is not blank, in argument order.
// It is the explicit form of fallback chains such as cms value, then label, then default.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
