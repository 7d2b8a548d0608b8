package tui

import (
	"github.com/MKhiriev/go-diary-keeper/internal/store"
	"github.com/MKhiriev/go-diary-keeper/models"
)

type authResultMsg struct {
	ok  bool
	err error
}

type entriesLoadedMsg struct {
	grouped map[string][]models.Entry
	report  store.ReadReport
	// undecryptable is set when nothing in a non-empty log decrypts and
	// the recovery protocol should take over.
	undecryptable bool
	err           error
}

type entrySavedMsg struct {
	saved bool
	err   error
}

type entryDeletedMsg struct {
	err error
}

type exportDoneMsg struct {
	path string
	err  error
}

type migrationDoneMsg struct {
	migrated int
	err      error
}

type recoveryAppliedMsg struct {
	err error
}

type backupDoneMsg struct {
	path string
	err  error
}

type passwordChangedMsg struct {
	err error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
