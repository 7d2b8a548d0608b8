// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// migrateModel asks whether to upgrade a detected legacy plaintext file.
type migrateModel struct{}

func (m migrateModel) View() string {
	data := "Old diary entries were found in the legacy plaintext format.\n" +
		"Migrate them into the encrypted log?\n\n" +
		"The original file will be kept as a .bak backup."
	return renderPage("MIGRATE OLD ENTRIES", data, "y: migrate │ n: skip")
}

// recoveryModel lets the user pick an alternate key file when nothing in
// the log decrypts. The selected key replaces the active one (which is
// backed up under the .previous suffix) and the application must restart.
type recoveryModel struct {
	candidates []string
	idx        int
}

func (m recoveryModel) current() (string, bool) {
	if m.idx < 0 || m.idx >= len(m.candidates) {
		return "", false
	}
	return m.candidates[m.idx], true
}

func (m recoveryModel) View() string {
	var b strings.Builder

	b.WriteString("Your diary entries cannot be decrypted with the current key.\n")
	b.WriteString("Select a key file to restore:\n\n")

	for i, candidate := range m.candidates {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", cursor, candidate))
	}

	b.WriteString("\nThe selected key will replace your current encryption key.\n")
	b.WriteString("Your current key will be backed up with a .previous suffix.")

	return renderPage("RECOVER ENCRYPTION KEY", b.String(), "enter: use key │ esc: skip")
}

// backupModel offers a snapshot of the undecryptable log when no alternate
// key was found.
type backupModel struct{}

func (m backupModel) View() string {
	data := "Your diary entries cannot be decrypted with the current key,\n" +
		"and no backup keys were found.\n\n" +
		"Create a backup of your encrypted entries before continuing?\n(Recommended)"
	return renderPage("DECRYPTION FAILED", data, "y: back up │ n: continue")
}

// restartModel tells the user to restart after a key swap.
type restartModel struct{}

func (m restartModel) View() string {
	data := "The encryption key has been restored.\n\n" +
		"Please start the application again so the restored key\n" +
		"can be loaded."
	return renderPage("RESTART REQUIRED", data, "press any key to exit")
}

// exportModel collects the destination path for a plaintext export.
type exportModel struct {
	input  textinput.Model
	status string
}

func newExportModel() exportModel {
	input := textinput.New()
	input.Placeholder = "diary_export.txt"
	input.SetValue("diary_export.txt")
	input.CharLimit = 256
	input.Width = 48
	input.Focus()

	return exportModel{input: input}
}

func (m exportModel) View() string {
	data := "Export decrypts every entry and writes it as plain text.\n\n" +
		"Destination: " + m.input.View()
	if m.status != "" {
		data += "\n\nOK: " + m.status
	}
	return renderPage("EXPORT ENTRIES", data, "enter: export │ esc: back")
}
