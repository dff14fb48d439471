// Package format renders dates for event and news listings.
package format

import (
	"strconv"
	"strings"
	"time"
)

var monthNames = map[string][12]string{
	"az": {"yanvar", "fevral", "mart", "aprel", "may", "iyun", "iyul", "avqust", "sentyabr", "oktyabr", "noyabr", "dekabr"},
	"ru": {"января", "февраля", "марта", "апреля", "мая", "июня", "июля", "августа", "сентября", "октября", "ноября", "декабря"},
}

// Date formats t as a long date in lang: "15 iyun 2024", "15 июня 2024" or
// "Jun 15, 2024". Unknown languages use the English form.
func Date(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	names, ok := monthNames[strings.ToLower(lang)]
	if !ok {
		return t.Format("Jan 2, 2006")
	}
	return strconv.Itoa(t.Day()) + " " + names[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// ISODate formats t as YYYY-MM-DD, the form used in structured data.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
