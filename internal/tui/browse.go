// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-diary-keeper/models"
)

// datesModel lists the date groups of the log, newest first.
type datesModel struct {
	grouped map[string][]models.Entry
	dates   []string
	idx     int
	skipped int
	status  string
}

func (m datesModel) current() (string, bool) {
	if m.idx < 0 || m.idx >= len(m.dates) {
		return "", false
	}
	return m.dates[m.idx], true
}

func (m datesModel) View() string {
	var b strings.Builder

	if m.skipped > 0 {
		b.WriteString(fmt.Sprintf("Warning: %d entries could not be decrypted and were skipped.\n\n", m.skipped))
	}
	if m.status != "" {
		b.WriteString("OK: ")
		b.WriteString(m.status)
		b.WriteString("\n\n")
	}

	if len(m.dates) == 0 {
		b.WriteString("No entries yet.")
	}

	for i, date := range m.dates {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s (%d)\n", cursor, date, len(m.grouped[date])))
	}

	return renderPage("ENTRIES BY DATE", strings.TrimRight(b.String(), "\n"),
		"enter: open │ d: delete date │ esc: back")
}

// entriesModel lists the entries of one date in file order.
type entriesModel struct {
	date  string
	items []models.Entry
	idx   int
}

func (m entriesModel) current() (models.Entry, bool) {
	if m.idx < 0 || m.idx >= len(m.items) {
		return models.Entry{}, false
	}
	return m.items[m.idx], true
}

func (m entriesModel) View() string {
	var b strings.Builder

	for i, e := range m.items {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s │ %s\n", cursor, e.Mood, fitText(firstLine(e.Body), 48)))
	}

	return renderPage("ENTRIES ON "+strings.ToUpper(m.date), strings.TrimRight(b.String(), "\n"),
		"enter: read │ d: delete │ esc: back")
}

// detailModel shows one full entry.
type detailModel struct {
	entry  models.Entry
	status string
}

func (m detailModel) View() string {
	var b strings.Builder

	b.WriteString("Date: ")
	b.WriteString(m.entry.Date)
	b.WriteString("\nMood: ")
	b.WriteString(m.entry.Mood)
	b.WriteString("\n\n")
	b.WriteString(m.entry.Body)
	if m.status != "" {
		b.WriteString("\n\nOK: ")
		b.WriteString(m.status)
	}

	return renderPage("ENTRY", b.String(), "c: copy body │ d: delete │ esc: back")
}
