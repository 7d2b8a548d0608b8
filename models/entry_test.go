package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewEntry_SerializedForm(t *testing.T) {
	e := NewEntry("Had a great day!", "😊 Happy", "June 01, 2024")

	assert.Equal(t, "--- Entry on June 01, 2024 | Mood: 😊 Happy ---\nHad a great day!", e.Raw)
	assert.True(t, e.Headered)
}

func TestNewEntry_Defaults(t *testing.T) {
	e := NewEntry("body", "", "")

	assert.Equal(t, time.Now().Format(DateLayout), e.Date)
	assert.Equal(t, MoodNeutral, e.Mood)
}

func TestParseEntry_RoundTrip(t *testing.T) {
	original := NewEntry("Had a great day!", "😊 Happy", "June 01, 2024")

	parsed := ParseEntry(original.Raw)

	assert.Equal(t, original, parsed)
}

func TestParseEntry_MultilineBody(t *testing.T) {
	original := NewEntry("line one\nline two\n\nline four", "😌 Calm", "June 02, 2024")

	parsed := ParseEntry(original.Raw)

	assert.Equal(t, "line one\nline two\n\nline four", parsed.Body)
}

func TestParseEntry_NoHeader(t *testing.T) {
	raw := "just some text\nwith a second line"

	parsed := ParseEntry(raw)

	assert.False(t, parsed.Headered)
	assert.Equal(t, UnknownDate, parsed.Date)
	assert.Equal(t, MoodNeutral, parsed.Mood)
	assert.Equal(t, raw, parsed.Body)
	assert.Equal(t, raw, parsed.Raw)
}

func TestParseEntry_MissingMoodSegment(t *testing.T) {
	parsed := ParseEntry("--- Entry on June 01, 2024 ---\nbody text")

	assert.True(t, parsed.Headered)
	assert.Equal(t, "June 01, 2024", parsed.Date)
	assert.Equal(t, MoodNeutral, parsed.Mood)
	assert.Equal(t, "body text", parsed.Body)
}

func TestParseEntry_EmptyDate(t *testing.T) {
	parsed := ParseEntry("--- Entry on  | Mood: 😢 Sad ---\nbody")

	assert.Equal(t, UnknownDate, parsed.Date)
	assert.Equal(t, "😢 Sad", parsed.Mood)
}

func TestParseEntry_UnknownMoodLabelPreserved(t *testing.T) {
	parsed := ParseEntry("--- Entry on June 01, 2024 | Mood: 🤔 Pensive ---\nbody")

	assert.Equal(t, "🤔 Pensive", parsed.Mood)
}

func TestParseEntry_HeaderOnly(t *testing.T) {
	parsed := ParseEntry("--- Entry on June 01, 2024 | Mood: 😐 Neutral ---")

	assert.True(t, parsed.Headered)
	assert.Equal(t, "", parsed.Body)
}
