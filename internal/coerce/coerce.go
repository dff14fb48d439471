// Package coerce turns loosely typed CMS and API values into the small enums and flags the
// site renders: event status, on/off switches and social profile links.
package coerce

import (
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cast"
	"golang.org/x/net/idna"

	"motorsport.az/club-web/internal/textnorm"
)

// Status is the derived lifecycle state of an event.
type Status string

const (
	StatusPlanned Status = "planned"
	StatusPast    Status = "past"
)

var statusTokens = map[string]Status{
	"past": StatusPast, "kecmis": StatusPast, "kecib": StatusPast, "bitib": StatusPast,
	"bitmis": StatusPast, "completed": StatusPast, "finished": StatusPast, "ended": StatusPast,

	"planned": StatusPlanned, "upcoming": StatusPlanned, "scheduled": StatusPlanned,
	"planlasdirilib": StatusPlanned, "planlanib": StatusPlanned, "gozlenilir": StatusPlanned,
	"qarsidadir": StatusPlanned,
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02.01.2006",
	"2006/01/02",
}

// EventStatus derives the status of an event relative to the current local day.
func EventStatus(rawStatus any, rawDate string) Status {
	return EventStatusAt(rawStatus, rawDate, time.Now())
}

// EventStatusAt is EventStatus with an explicit clock. A recognized status token wins;
// otherwise an event dated strictly before the local day of now is past. Unparseable
// dates are planned.
func EventStatusAt(rawStatus any, rawDate string, now time.Time) Status {
	if s, err := cast.ToStringE(rawStatus); err == nil {
		if st, ok := statusTokens[textnorm.Normalize(s)]; ok {
			return st
		}
	}

	day, ok := ParseDay(rawDate, now.Location())
	if !ok {
		return StatusPlanned
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return StatusPast
	}
	return StatusPlanned
}

// ParseDay returns midnight in loc of the calendar day raw names, accepting the date
// layouts the CMS and events API produce.
func ParseDay(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339 {
			t, err = time.Parse(layout, raw)
			if err == nil {
				t = t.In(loc)
			}
		} else {
			t, err = time.ParseInLocation(layout, raw, loc)
		}
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, loc), true
		}
	}
	return time.Time{}, false
}

var disabling = map[string]struct{}{
	"false": {}, "0": {}, "no": {}, "off": {}, "disabled": {}, "inactive": {},
	"yox": {}, "xeyr": {}, "deaktiv": {}, "qeyrifeal": {}, "passiv": {}, "bagli": {}, "sonduruldu": {}, "sondurulub": {},
}

// Booleanish reads a CMS switch. Booleans pass through; any other scalar is disabled when
// its normalized text is in the disabling vocabulary and def otherwise.
func Booleanish(raw any, def bool) bool {
	if b, ok := raw.(bool); ok {
		return b
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return def
	}
	if _, off := disabling[textnorm.Normalize(s)]; off {
		return false
	}
	return def
}

var unfilledKey = regexp.MustCompile(`^[A-Z][A-Z0-9]*(_[A-Z0-9]+)+$`)

// SocialURL shapes a CMS-entered social profile link. Placeholders and unfilled CMS keys
// such as FACEBOOK_URL become "".
func SocialURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || s == "#" || unfilledKey.MatchString(s) {
		return ""
	}
	if strings.HasPrefix(s, "//") {
		return "https:" + s
	}
	if bareDomain(s) {
		return "https://" + s
	}
	return s
}

// bareDomain reports whether s starts with a host name (dotted, IDNA-valid) and carries
// no scheme.
func bareDomain(s string) bool {
	if strings.Contains(s, "://") || strings.HasPrefix(s, "/") || strings.HasPrefix(s, "mailto:") || strings.HasPrefix(s, "tel:") {
		return false
	}
	host := s
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	if !strings.Contains(host, ".") || strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") {
		return false
	}
	_, err := idna.Registration.ToASCII(strings.ToLower(host))
	return err == nil
}
