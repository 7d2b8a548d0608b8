// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// passwordFormModel is the two-field password+confirmation form used by
// initial setup and by password reset. The surrounding appModel counts
// rejected attempts during setup.
type passwordFormModel struct {
	inputs   []textinput.Model
	focus    int
	attempts int
	errMsg   string
}

func newPasswordFormModel() passwordFormModel {
	password := textinput.New()
	password.Placeholder = "new password"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	password.Focus()

	confirm := textinput.New()
	confirm.Placeholder = "retype password"
	confirm.CharLimit = 256
	confirm.Width = 40
	confirm.EchoMode = textinput.EchoPassword
	confirm.EchoCharacter = '*'

	return passwordFormModel{
		inputs: []textinput.Model{password, confirm},
	}
}

func (m passwordFormModel) view(title, hint string) string {
	var b strings.Builder
	b.WriteString("Password:  ")
	b.WriteString(m.inputs[0].View())
	b.WriteString("\nConfirm:   ")
	b.WriteString(m.inputs[1].View())
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(m.errMsg)
	}
	return renderPage(title, b.String(), hint)
}

// loginModel is the single-field password prompt shown when a password is
// already set.
type loginModel struct {
	input      textinput.Model
	submitting bool
	errMsg     string
}

func newLoginModel() loginModel {
	input := textinput.New()
	input.Placeholder = "password"
	input.CharLimit = 256
	input.Width = 40
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '*'
	input.Focus()

	return loginModel{input: input}
}

func (m loginModel) View() string {
	data := "Enter the password:  " + m.input.View()
	if m.errMsg != "" {
		data += "\n\n" + m.errMsg
	}
	return renderPage("UNLOCK DIARY", data, "enter: unlock │ esc: quit")
}
