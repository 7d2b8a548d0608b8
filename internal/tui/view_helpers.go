package tui

import (
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/go-diary-keeper/models"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(helpStyle.Render("ctrl+c: quit"))

	return b.String()
}

func fitText(v string, max int) string {
	if max <= 0 || len(v) <= max {
		return v
	}
	if max <= 3 {
		return v[:max]
	}
	return v[:max-3] + "..."
}

// firstLine returns the first body line of an entry for list display.
func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// sortedDateLayout parses display dates leniently, accepting both padded
// and unpadded day numbers.
const sortedDateLayout = "January 2, 2006"

// sortDates orders date group keys newest first. Dates that do not parse
// as display dates (including the Unknown placeholder) sort last,
// alphabetically.
func sortDates(grouped map[string][]models.Entry) []string {
	dates := make([]string, 0, len(grouped))
	for d := range grouped {
		dates = append(dates, d)
	}

	sort.Slice(dates, func(i, j int) bool {
		ti, okI := parseDisplayDate(dates[i])
		tj, okJ := parseDisplayDate(dates[j])
		switch {
		case okI && okJ:
			return ti.After(tj)
		case okI:
			return true
		case okJ:
			return false
		default:
			return dates[i] < dates[j]
		}
	})

	return dates
}

func parseDisplayDate(s string) (time.Time, bool) {
	t, err := time.Parse(sortedDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
