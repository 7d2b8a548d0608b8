// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-diary-keeper/internal/auth"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
	"github.com/MKhiriev/go-diary-keeper/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenMigrate screen = iota
	screenSetup
	screenLogin
	screenMenu
	screenWrite
	screenDates
	screenEntries
	screenDetail
	screenReset
	screenExport
	screenRecovery
	screenBackup
	screenRestart
)

// setupAttemptLimit mirrors the gate's bounded setup budget for the
// interactive flow.
const setupAttemptLimit = 3

type pendingDelete struct {
	entry   *models.Entry
	date    string
	forDate bool
}

type appModel struct {
	ctx      context.Context
	services Services
	log      *logger.Logger

	currentScreen screen
	authenticated bool

	setup    passwordFormModel
	login    loginModel
	reset    passwordFormModel
	menu     menuModel
	write    writeModel
	dates    datesModel
	entries  entriesModel
	detail   detailModel
	export   exportModel
	recovery recoveryModel

	showError    bool
	errorOverlay errorOverlayModel
	showConfirm  bool
	confirm      confirmModel
	pending      pendingDelete

	// resetAfterCorruption marks a reset forced by an undecryptable
	// password file; after it succeeds the user is sent back to login.
	resetAfterCorruption bool

	restartRequired bool
	err             error
}

func newAppModel(ctx context.Context, services Services, log *logger.Logger) appModel {
	m := appModel{
		ctx:      ctx,
		services: services,
		log:      log,
		menu:     newMenuModel(),
	}

	switch {
	case services.Migrator != nil && services.Migrator.Needed():
		m.currentScreen = screenMigrate
	case services.Gate.IsSet():
		m.currentScreen = screenLogin
		m.login = newLoginModel()
	default:
		m.currentScreen = screenSetup
		m.setup = newPasswordFormModel()
	}

	return m
}

func (m appModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if !m.authenticated {
				m.err = ErrUserQuit
			}
			return m, tea.Quit
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				pending := m.pending
				m.pending = pendingDelete{}
				if pending.forDate {
					return m, m.cmdDeleteDate(pending.date)
				}
				if pending.entry != nil {
					return m, m.cmdDeleteEntry(*pending.entry)
				}
				return m, nil
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
				m.pending = pendingDelete{}
			}
			return m, nil
		}

	case authResultMsg:
		m.login.submitting = false
		if msg.err != nil {
			if errors.Is(msg.err, auth.ErrPasswordCorrupted) {
				m.resetAfterCorruption = true
				m.reset = newPasswordFormModel()
				m.currentScreen = screenReset
				m.showErrorf("The password file is corrupted. Please set a new password.")
				return m, nil
			}
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		if !msg.ok {
			m.login.errMsg = "Wrong password. Try again."
			m.login.input.SetValue("")
			return m, nil
		}
		m.authenticated = true
		m.currentScreen = screenMenu
		return m, m.cmdLoadEntries()

	case entriesLoadedMsg:
		if msg.undecryptable {
			candidates := m.services.Entries.ListRecoveryCandidates()
			if len(candidates) > 0 {
				m.recovery = recoveryModel{candidates: candidates}
				m.currentScreen = screenRecovery
				return m, nil
			}
			m.currentScreen = screenBackup
			return m, nil
		}
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		m.dates.grouped = msg.grouped
		m.dates.dates = sortDates(msg.grouped)
		m.dates.skipped = msg.report.Skipped
		if m.dates.idx >= len(m.dates.dates) {
			m.dates.idx = len(m.dates.dates) - 1
		}
		if m.dates.idx < 0 {
			m.dates.idx = 0
		}
		return m, nil

	case entrySavedMsg:
		m.write.submitting = false
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		if !msg.saved {
			m.showErrorf("Please write something before saving.")
			return m, nil
		}
		m.menu.status = "Entry saved"
		m.currentScreen = screenMenu
		return m, tea.Batch(m.cmdLoadEntries(), cmdClearStatus())

	case entryDeletedMsg:
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		m.dates.status = "Deleted"
		m.currentScreen = screenDates
		return m, tea.Batch(m.cmdLoadEntries(), cmdClearStatus())

	case exportDoneMsg:
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		m.export.status = "Exported to " + msg.path
		return m, nil

	case migrationDoneMsg:
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
		} else if msg.migrated > 0 {
			m.menu.status = fmt.Sprintf("Migrated %d legacy entries", msg.migrated)
		}
		return m.toAuthScreen(), nil

	case recoveryAppliedMsg:
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		m.restartRequired = true
		m.currentScreen = screenRestart
		return m, nil

	case backupDoneMsg:
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		m.menu.status = "Backup created: " + msg.path
		m.currentScreen = screenMenu
		return m, cmdClearStatus()

	case passwordChangedMsg:
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		if m.resetAfterCorruption {
			m.resetAfterCorruption = false
			m.login = newLoginModel()
			m.currentScreen = screenLogin
			return m, nil
		}
		m.menu.status = "Password has been reset"
		m.currentScreen = screenMenu
		return m, cmdClearStatus()

	case copiedMsg:
		m.detail.status = "Copied!"
		return m, cmdClearStatus()

	case clearStatusMsg:
		m.detail.status = ""
		m.menu.status = ""
		m.dates.status = ""
		return m, nil

	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenMigrate:
		return m.updateMigrate(msg)
	case screenSetup:
		return m.updateSetup(msg)
	case screenLogin:
		return m.updateLogin(msg)
	case screenMenu:
		return m.updateMenu(msg)
	case screenWrite:
		return m.updateWrite(msg)
	case screenDates:
		return m.updateDates(msg)
	case screenEntries:
		return m.updateEntries(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenReset:
		return m.updateReset(msg)
	case screenExport:
		return m.updateExport(msg)
	case screenRecovery:
		return m.updateRecovery(msg)
	case screenBackup:
		return m.updateBackup(msg)
	case screenRestart:
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenMigrate:
		body = migrateModel{}.View()
	case screenSetup:
		body = m.setup.view("SET A PASSWORD", "enter: save │ tab: next field")
	case screenLogin:
		body = m.login.View()
	case screenMenu:
		body = m.menu.View()
	case screenWrite:
		body = m.write.View()
	case screenDates:
		body = m.dates.View()
	case screenEntries:
		body = m.entries.View()
	case screenDetail:
		body = m.detail.View()
	case screenReset:
		body = m.reset.view("RESET PASSWORD", "enter: save │ tab: next field │ esc: back")
	case screenExport:
		body = m.export.View()
	case screenRecovery:
		body = m.recovery.View()
	case screenBackup:
		body = backupModel{}.View()
	case screenRestart:
		body = restartModel{}.View()
	}

	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

// toAuthScreen routes to the password screen matching the gate state:
// login when a password exists, initial setup otherwise.
func (m appModel) toAuthScreen() appModel {
	if m.services.Gate.IsSet() {
		m.login = newLoginModel()
		m.currentScreen = screenLogin
	} else {
		m.setup = newPasswordFormModel()
		m.currentScreen = screenSetup
	}
	return m
}

func (m appModel) updateMigrate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.yes):
		return m, m.cmdMigrate()
	case key.Matches(keyMsg, keys.no), key.Matches(keyMsg, keys.esc):
		return m.toAuthScreen(), nil
	}
	return m, nil
}

func (m appModel) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.err = auth.ErrSetupAbandoned
			return m, tea.Quit
		case key.Matches(keyMsg, keys.tab):
			m.setup = focusNextForm(m.setup)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.setup = focusPrevForm(m.setup)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			err := m.services.Gate.SetInitialPassword(m.setup.inputs[0].Value(), m.setup.inputs[1].Value())
			if err == nil {
				m.authenticated = true
				m.currentScreen = screenMenu
				m.menu.status = "Password has been set"
				return m, tea.Batch(m.cmdLoadEntries(), cmdClearStatus())
			}
			if errors.Is(err, auth.ErrPasswordMismatch) || errors.Is(err, auth.ErrEmptyPassword) {
				m.setup.attempts++
				if m.setup.attempts >= setupAttemptLimit {
					m.err = auth.ErrSetupAbandoned
					return m, tea.Quit
				}
				m.setup.errMsg = err.Error() + ". Please try again."
				m.setup.inputs[0].SetValue("")
				m.setup.inputs[1].SetValue("")
				m.setup = focusField(m.setup, 0)
				return m, nil
			}
			m.showErrorf(err.Error())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.setup.inputs[m.setup.focus], cmd = m.setup.inputs[m.setup.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.err = ErrUserQuit
			return m, tea.Quit
		case key.Matches(keyMsg, keys.enter):
			if m.login.submitting {
				return m, nil
			}
			m.login.submitting = true
			m.login.errMsg = ""
			return m, m.cmdAuthenticate(m.login.input.Value())
		}
	}

	var cmd tea.Cmd
	m.login.input, cmd = m.login.input.Update(msg)
	return m, cmd
}

func (m appModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.menu.idx > 0 {
			m.menu.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.menu.idx < len(m.menu.items)-1 {
			m.menu.idx++
		}
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.enter):
		switch m.menu.idx {
		case 0:
			m.write = newWriteModel()
			m.currentScreen = screenWrite
		case 1:
			m.currentScreen = screenDates
			return m, m.cmdLoadEntries()
		case 2:
			m.export = newExportModel()
			m.currentScreen = screenExport
		case 3:
			m.resetAfterCorruption = false
			m.reset = newPasswordFormModel()
			m.currentScreen = screenReset
		case 4:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m appModel) updateWrite(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenMenu
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.write.moodIdx = (m.write.moodIdx + 1) % len(models.Moods)
			return m, nil
		case key.Matches(keyMsg, keys.save):
			if m.write.submitting {
				return m, nil
			}
			m.write.submitting = true
			return m, m.cmdSaveEntry(m.write.body.Value(), m.write.mood(), m.write.date)
		}
	}

	var cmd tea.Cmd
	m.write.body, cmd = m.write.body.Update(msg)
	return m, cmd
}

func (m appModel) updateDates(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.dates.idx > 0 {
			m.dates.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.dates.idx < len(m.dates.dates)-1 {
			m.dates.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		date, ok := m.dates.current()
		if !ok {
			return m, nil
		}
		m.entries = entriesModel{date: date, items: m.dates.grouped[date]}
		m.currentScreen = screenEntries
	case key.Matches(keyMsg, keys.delete):
		date, ok := m.dates.current()
		if !ok {
			return m, nil
		}
		m.showConfirm = true
		m.confirm.message = "Delete all entries on " + date + "?"
		m.pending = pendingDelete{date: date, forDate: true}
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenMenu
	}
	return m, nil
}

func (m appModel) updateEntries(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.entries.idx > 0 {
			m.entries.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.entries.idx < len(m.entries.items)-1 {
			m.entries.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		entry, ok := m.entries.current()
		if !ok {
			return m, nil
		}
		m.detail = detailModel{entry: entry}
		m.currentScreen = screenDetail
	case key.Matches(keyMsg, keys.delete):
		entry, ok := m.entries.current()
		if !ok {
			return m, nil
		}
		m.showConfirm = true
		m.confirm.message = "Delete this entry?"
		m.pending = pendingDelete{entry: &entry}
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenDates
	}
	return m, nil
}

func (m appModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenEntries
	case key.Matches(keyMsg, keys.copy):
		return m, cmdCopyToClipboard(m.detail.entry.Body)
	case key.Matches(keyMsg, keys.delete):
		entry := m.detail.entry
		m.showConfirm = true
		m.confirm.message = "Delete this entry?"
		m.pending = pendingDelete{entry: &entry}
	}
	return m, nil
}

func (m appModel) updateReset(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			if m.resetAfterCorruption {
				m.err = ErrUserQuit
				return m, tea.Quit
			}
			m.currentScreen = screenMenu
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.reset = focusNextForm(m.reset)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.reset = focusPrevForm(m.reset)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			candidate := m.reset.inputs[0].Value()
			confirm := m.reset.inputs[1].Value()
			return m, m.cmdResetPassword(candidate, confirm)
		}
	}

	var cmd tea.Cmd
	m.reset.inputs[m.reset.focus], cmd = m.reset.inputs[m.reset.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateExport(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenMenu
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			path := strings.TrimSpace(m.export.input.Value())
			if path == "" {
				return m, nil
			}
			return m, m.cmdExport(path)
		}
	}

	var cmd tea.Cmd
	m.export.input, cmd = m.export.input.Update(msg)
	return m, cmd
}

func (m appModel) updateRecovery(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.recovery.idx > 0 {
			m.recovery.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.recovery.idx < len(m.recovery.candidates)-1 {
			m.recovery.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		candidate, ok := m.recovery.current()
		if !ok {
			return m, nil
		}
		return m, m.cmdApplyRecovery(candidate)
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenMenu
	}
	return m, nil
}

func (m appModel) updateBackup(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.yes):
		return m, m.cmdBackupLog()
	case key.Matches(keyMsg, keys.no), key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenMenu
	}
	return m, nil
}

func (m appModel) cmdAuthenticate(password string) tea.Cmd {
	gate := m.services.Gate
	return func() tea.Msg {
		ok, err := gate.Authenticate(password)
		return authResultMsg{ok: ok, err: err}
	}
}

func (m appModel) cmdLoadEntries() tea.Cmd {
	entriesStore := m.services.Entries
	return func() tea.Msg {
		_, report, err := entriesStore.ReadEntries()
		if err != nil {
			if errors.Is(err, store.ErrLogUndecryptable) {
				return entriesLoadedMsg{undecryptable: true, report: report}
			}
			return entriesLoadedMsg{err: err}
		}

		grouped, err := entriesStore.OrganizeEntriesByDate()
		if err != nil {
			return entriesLoadedMsg{err: err}
		}
		return entriesLoadedMsg{grouped: grouped, report: report}
	}
}

func (m appModel) cmdSaveEntry(body, mood, date string) tea.Cmd {
	entriesStore := m.services.Entries
	return func() tea.Msg {
		saved, err := entriesStore.SaveEntry(body, mood, date)
		return entrySavedMsg{saved: saved, err: err}
	}
}

func (m appModel) cmdDeleteEntry(entry models.Entry) tea.Cmd {
	entriesStore := m.services.Entries
	return func() tea.Msg {
		return entryDeletedMsg{err: entriesStore.DeleteEntry(entry)}
	}
}

func (m appModel) cmdDeleteDate(date string) tea.Cmd {
	entriesStore := m.services.Entries
	return func() tea.Msg {
		return entryDeletedMsg{err: entriesStore.DeleteEntriesByDate(date)}
	}
}

func (m appModel) cmdExport(path string) tea.Cmd {
	entriesStore := m.services.Entries
	return func() tea.Msg {
		return exportDoneMsg{path: path, err: entriesStore.ExportEntries(path)}
	}
}

func (m appModel) cmdMigrate() tea.Cmd {
	migrator := m.services.Migrator
	return func() tea.Msg {
		migrated, err := migrator.Run()
		return migrationDoneMsg{migrated: migrated, err: err}
	}
}

func (m appModel) cmdApplyRecovery(candidate string) tea.Cmd {
	entriesStore := m.services.Entries
	return func() tea.Msg {
		return recoveryAppliedMsg{err: entriesStore.ApplyRecoveryKey(candidate)}
	}
}

func (m appModel) cmdBackupLog() tea.Cmd {
	entriesStore := m.services.Entries
	return func() tea.Msg {
		path, err := entriesStore.BackupUndecryptableLog()
		return backupDoneMsg{path: path, err: err}
	}
}

func (m appModel) cmdResetPassword(candidate, confirm string) tea.Cmd {
	gate := m.services.Gate
	return func() tea.Msg {
		return passwordChangedMsg{err: gate.ResetPassword(candidate, confirm)}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return exportDoneMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func focusNextForm(m passwordFormModel) passwordFormModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevForm(m passwordFormModel) passwordFormModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusField(m passwordFormModel, idx int) passwordFormModel {
	m.inputs[m.focus].Blur()
	m.focus = idx
	m.inputs[m.focus].Focus()
	return m
}
