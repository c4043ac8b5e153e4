package card

import (
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"

	"hass-reminders-tui/internal/hass"
)

// Bucket is the display category of a due timestamp.
type Bucket int

const (
	BucketToday Bucket = iota
	BucketTomorrow
	BucketWithinWeek
	BucketFull
)

// Classify maps a due timestamp and a reference now to a display bucket.
// First match wins: same calendar day, next calendar day, strictly within the
// next 168 hours, everything else. Bucketing is locale-independent.
func Classify(due, now time.Time) Bucket {
	if sameDay(due, now) {
		return BucketToday
	}
	if sameDay(due, now.AddDate(0, 0, 1)) {
		return BucketTomorrow
	}
	if delta := due.Sub(now); delta > 0 && delta < 168*time.Hour {
		return BucketWithinWeek
	}
	return BucketFull
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsOverdue reports whether the due value lies strictly before now. An
// unparseable due value is never overdue.
func IsOverdue(raw string, now time.Time) bool {
	due, err := hass.ParseDue(raw)
	if err != nil {
		return false
	}
	return due.Before(now)
}

// localeInfo carries everything locale-dependent about due formatting.
// Weekday and month names come from monday; the relative day words are not
// covered by any date library and live here.
type localeInfo struct {
	monday     monday.Locale
	timeLayout string
	fullLayout string
	today      string
	tomorrow   string
	at         string
}

var localeTags = []language.Tag{
	language.English, // default
	language.German,
	language.French,
	language.Spanish,
	language.Dutch,
}

var localeInfos = []localeInfo{
	{monday.LocaleEnUS, "3:04 PM", "Jan 2, 2006, 3:04 PM", "Today", "Tomorrow", "at"},
	{monday.LocaleDeDE, "15:04", "2. Jan 2006, 15:04", "Heute", "Morgen", "um"},
	{monday.LocaleFrFR, "15:04", "2 Jan 2006, 15:04", "Aujourd'hui", "Demain", "à"},
	{monday.LocaleEsES, "15:04", "2 Jan 2006, 15:04", "Hoy", "Mañana", "a las"},
	{monday.LocaleNlNL, "15:04", "2 Jan 2006, 15:04", "Vandaag", "Morgen", "om"},
}

var localeMatcher = language.NewMatcher(localeTags)

func lookupLocale(tag language.Tag) localeInfo {
	_, idx, _ := localeMatcher.Match(tag)
	return localeInfos[idx]
}

// FormatDue renders a due value for display relative to now. An unparseable
// value is returned unchanged; formatting never fails past this boundary.
func FormatDue(raw string, now time.Time, tag language.Tag) string {
	due, err := hass.ParseDue(raw)
	if err != nil {
		return raw
	}
	info := lookupLocale(tag)
	clock := monday.Format(due, info.timeLayout, info.monday)

	switch Classify(due, now) {
	case BucketToday:
		return info.today + " " + info.at + " " + clock
	case BucketTomorrow:
		return info.tomorrow + " " + info.at + " " + clock
	case BucketWithinWeek:
		weekday := monday.Format(due, "Monday", info.monday)
		return weekday + " " + info.at + " " + clock
	default:
		return monday.Format(due, info.fullLayout, info.monday)
	}
}
