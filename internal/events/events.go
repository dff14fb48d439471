// Package events normalizes event records fetched from the events API into the shape the
// calendar renders, deriving status and registration availability.
package events

import (
	"sort"
	"strings"
	"time"

	"motorsport.az/club-web/internal/coerce"
	"motorsport.az/club-web/internal/media"
)

// Raw is an event as the API delivers it. Status and Registration keep whatever JSON type
// the editor produced.
type Raw struct {
	ID              string
	Title           string
	Description     string
	Date            string
	Location        string
	Category        string
	Image           string
	VideoURL        string
	RegistrationURL string
	Status          any
	Registration    any
}

// Record is a normalized event.
type Record struct {
	ID                  string        `json:"id"`
	Title               string        `json:"title"`
	Description         string        `json:"description,omitempty"`
	Date                string        `json:"date"`
	Location            string        `json:"location,omitempty"`
	Category            string        `json:"category,omitempty"`
	Image               string        `json:"image,omitempty"`
	YouTubeID           string        `json:"youtubeId,omitempty"`
	RegistrationURL     string        `json:"registrationUrl,omitempty"`
	Status              coerce.Status `json:"status"`
	RegistrationEnabled bool          `json:"registrationEnabled"`
}

// CanRegister reports whether the registration button should be offered.
func (r Record) CanRegister() bool {
	return r.Status == coerce.StatusPlanned && r.RegistrationEnabled
}

// Normalize derives the status and flags of raw relative to now. Registration is enabled
// unless the editor switched it off.
func Normalize(raw Raw, now time.Time) Record {
	return Record{
		ID:                  strings.TrimSpace(raw.ID),
		Title:               strings.TrimSpace(raw.Title),
		Description:         raw.Description,
		Date:                strings.TrimSpace(raw.Date),
		Location:            strings.TrimSpace(raw.Location),
		Category:            strings.TrimSpace(raw.Category),
		Image:               strings.TrimSpace(raw.Image),
		YouTubeID:           media.YouTubeID(raw.VideoURL),
		RegistrationURL:     strings.TrimSpace(raw.RegistrationURL),
		Status:              coerce.EventStatusAt(raw.Status, raw.Date, now),
		RegistrationEnabled: coerce.Booleanish(raw.Registration, true),
	}
}

// NormalizeAll normalizes every record, keeping input order.
func NormalizeAll(raws []Raw, now time.Time) []Record {
	out := make([]Record, 0, len(raws))
	for _, r := range raws {
		out = append(out, Normalize(r, now))
	}
	return out
}

// Split separates planned from past events. Planned events are ordered soonest first and
// past events most recent first; records with equal or unparseable dates keep input order.
func Split(records []Record) (planned, past []Record) {
	for _, r := range records {
		if r.Status == coerce.StatusPast {
			past = append(past, r)
		} else {
			planned = append(planned, r)
		}
	}
	sort.SliceStable(planned, func(i, j int) bool { return sortKey(planned[i].Date) < sortKey(planned[j].Date) })
	sort.SliceStable(past, func(i, j int) bool { return sortKey(past[i].Date) > sortKey(past[j].Date) })
	return planned, past
}

// sortKey maps a date to a comparable YYYY-MM-DD string; unknown dates sort last among
// planned events and first among past ones ("~" sorts after digits).
func sortKey(raw string) string {
	if day, ok := coerce.ParseDay(raw, time.UTC); ok {
		return day.Format("2006-01-02")
	}
	return "~"
}
