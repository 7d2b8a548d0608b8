// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"
	"time"

	"github.com/MKhiriev/go-diary-keeper/models"
	"github.com/charmbracelet/bubbles/textarea"
)

// writeModel is the entry composition screen: a multi-line body, a mood
// picked from the label set with left/right, and today's date.
type writeModel struct {
	body       textarea.Model
	moodIdx    int
	date       string
	submitting bool
}

func newWriteModel() writeModel {
	body := textarea.New()
	body.Placeholder = "How was your day?"
	body.SetWidth(60)
	body.SetHeight(10)
	body.Focus()

	return writeModel{
		body: body,
		date: time.Now().Format(models.DateLayout),
	}
}

func (m writeModel) mood() string {
	return models.Moods[m.moodIdx]
}

func (m writeModel) View() string {
	var b strings.Builder

	b.WriteString("Date: ")
	b.WriteString(m.date)
	b.WriteString("\n")

	b.WriteString("Mood: ")
	for i, mood := range models.Moods {
		if i == m.moodIdx {
			b.WriteString("[" + mood + "]")
		} else {
			b.WriteString(" " + mood + " ")
		}
	}
	b.WriteString("\n\n")
	b.WriteString(m.body.View())

	return renderPage("NEW ENTRY", b.String(), "ctrl+s: save │ tab: mood │ esc: back")
}
