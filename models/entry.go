package models

import (
	"strings"
	"time"
)

// DateLayout is the display format used for entry dates, e.g. "June 01, 2024".
// Dates are stored as formatted strings and compared by string equality;
// they are not required to be machine-sortable.
const DateLayout = "January 02, 2006"

// UnknownDate is the placeholder used when an entry header carries no
// recognizable date.
const UnknownDate = "Unknown"

// MoodNeutral is the fallback mood label. It is used when an entry header
// carries no mood segment and as the default mood for migrated legacy entries.
const MoodNeutral = "😐 Neutral"

// Moods is the label set offered by the UI when composing an entry.
// The set is advisory: moods are stored as free text, and entries with
// labels outside this list are read back unchanged.
var Moods = []string{
	"😊 Happy",
	"😢 Sad",
	"😠 Angry",
	"😌 Calm",
	MoodNeutral,
}

const (
	headerPrefix = "--- Entry on "
	headerSuffix = " ---"
	moodMarker   = "Mood: "
)

// Entry is a single journal record: a display-formatted date, a mood label
// and a multi-line body. On disk an entry is one encrypted token covering
// the serialized header line plus the body verbatim.
type Entry struct {
	// Date is the display-formatted entry date, or UnknownDate when the
	// header did not carry one.
	Date string

	// Mood is the mood label from the header. Free text; unknown labels
	// are preserved as-is.
	Mood string

	// Body is the entry text, verbatim, possibly multi-line.
	Body string

	// Raw is the exact decrypted text of the record. Delete-by-content
	// matches on Raw equality and rewrites re-encrypt Raw, so round-trips
	// never alter a record the parser could not fully understand.
	Raw string

	// Headered reports whether Raw started with a parseable entry header.
	// Unheadered entries appear in flat reads but are excluded from
	// date grouping.
	Headered bool
}

// NewEntry builds a fully serialized entry from its logical fields.
// An empty date defaults to today in DateLayout.
func NewEntry(body, mood, date string) Entry {
	if date == "" {
		date = time.Now().Format(DateLayout)
	}
	if mood == "" {
		mood = MoodNeutral
	}

	e := Entry{
		Date:     date,
		Mood:     mood,
		Body:     body,
		Headered: true,
	}
	e.Raw = e.serialize()
	return e
}

// serialize renders the on-disk plaintext form: one header line, a newline,
// then the body verbatim.
func (e Entry) serialize() string {
	return headerPrefix + e.Date + " | " + moodMarker + e.Mood + headerSuffix + "\n" + e.Body
}

// ParseEntry reconstructs an Entry from decrypted record text.
//
// Parsing is deliberately tolerant: a missing mood segment falls back to
// MoodNeutral, a missing date falls back to UnknownDate, and text that does
// not start with an entry header at all is kept as an unheadered entry whose
// Body is the whole text. Parsing never fails.
func ParseEntry(raw string) Entry {
	header, body, found := strings.Cut(raw, "\n")
	if !found {
		body = ""
	}

	if !strings.HasPrefix(header, headerPrefix) {
		return Entry{
			Date: UnknownDate,
			Mood: MoodNeutral,
			Body: raw,
			Raw:  raw,
		}
	}

	inner := strings.TrimPrefix(header, headerPrefix)
	inner = strings.TrimSuffix(inner, headerSuffix)

	datePart, moodPart, hasMood := strings.Cut(inner, "|")

	date := strings.TrimSpace(datePart)
	if date == "" {
		date = UnknownDate
	}

	mood := MoodNeutral
	if hasMood {
		if _, label, ok := strings.Cut(moodPart, moodMarker); ok {
			if label = strings.TrimSpace(label); label != "" {
				mood = label
			}
		}
	}

	return Entry{
		Date:     date,
		Mood:     mood,
		Body:     body,
		Raw:      raw,
		Headered: true,
	}
}
