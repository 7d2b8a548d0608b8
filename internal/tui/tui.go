// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal presentation adapter over the diary core. It
// collects user choices (passwords, entry text, recovery decisions) and
// feeds them into the storage components; no storage logic lives here.
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-diary-keeper/internal/auth"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/migrate"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrUserQuit is returned when the user leaves the application from an
// unauthenticated screen.
var ErrUserQuit = errors.New("user quit")

// Services bundles the core components the UI drives.
type Services struct {
	Gate     *auth.Gate
	Entries  *store.EntryStore
	Migrator *migrate.Migrator
}

// Result reports how a UI session ended.
type Result struct {
	// RestartRequired is set after a recovery key swap: key material is
	// loaded once per process, so the application must be started again
	// to pick up the restored key.
	RestartRequired bool
}

// TUI runs the interactive session.
type TUI struct {
	services Services
	log      *logger.Logger
}

// New constructs the terminal UI over the given core services.
func New(services Services, log *logger.Logger) (*TUI, error) {
	return &TUI{services: services, log: log}, nil
}

// Run drives the whole session: optional legacy migration prompt, password
// setup or authentication, then the main loop until the user quits.
func (t *TUI) Run(ctx context.Context) (Result, error) {
	model := newAppModel(ctx, t.services, t.log)

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return Result{}, err
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return Result{}, tea.ErrProgramKilled
	}

	return Result{RestartRequired: result.restartRequired}, result.err
}
