// Package seo builds schema.org JSON-LD payloads for the club pages.
package seo

import (
	"bytes"
	"encoding/json"
)

// JSON marshals v to a compact JSON string without HTML escaping. It returns "" on error.
func JSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// Organization returns a SportsOrganization schema for the club.
func Organization(name, url, logoURL string, sameAs []string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "SportsOrganization",
		"name":     name,
		"sport":    "Motorsport",
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	if len(sameAs) > 0 {
		m["sameAs"] = append([]string(nil), sameAs...)
	}
	return m
}

// Event describes one event for SportsEvent markup.
type Event struct {
	Name        string
	StartDate   string
	Location    string
	Description string
	Image       string
	URL         string
	Past        bool
}

// SportsEvent returns a SportsEvent schema. Past events are marked as completed
// through eventStatus.
func SportsEvent(ev Event, organizer string) map[string]any {
	m := map[string]any{
		"@context":            "https://schema.org",
		"@type":               "SportsEvent",
		"name":                ev.Name,
		"eventAttendanceMode": "https://schema.org/OfflineEventAttendanceMode",
		"eventStatus":         "https://schema.org/EventScheduled",
	}
	if ev.StartDate != "" {
		m["startDate"] = ev.StartDate
	}
	if ev.Location != "" {
		m["location"] = map[string]any{"@type": "Place", "name": ev.Location}
	}
	if ev.Description != "" {
		m["description"] = ev.Description
	}
	if ev.Image != "" {
		m["image"] = ev.Image
	}
	if ev.URL != "" {
		m["url"] = ev.URL
	}
	if organizer != "" {
		m["organizer"] = map[string]any{"@type": "SportsOrganization", "name": organizer}
	}
	if ev.Past {
		m["eventStatus"] = "https://schema.org/EventCompleted"
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}
