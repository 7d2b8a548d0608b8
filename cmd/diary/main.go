package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-diary-keeper/internal/auth"
	"github.com/MKhiriev/go-diary-keeper/internal/config"
	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/migrate"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
	"github.com/MKhiriev/go-diary-keeper/internal/tui"
	"github.com/google/uuid"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	base := logger.NewClientLogger("diary")
	log := &logger.Logger{Logger: base.With().Str("run_id", uuid.NewString()).Logger()}

	cfg, err := config.GetDiaryConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	keys := crypto.NewKeyStore(cfg.Paths.KeyPath, log)
	key, err := keys.EnsureKey()
	if err != nil {
		log.Fatal().Err(err).Msg("prepare encryption key")
	}

	cipher, err := crypto.NewCipher(key)
	if err != nil {
		log.Fatal().Err(err).Msg("init cipher")
	}

	gate := auth.NewGate(cfg.Paths.PasswordPath, cipher, log)
	entries := store.NewEntryStore(cfg.Paths.LogPath, cfg.Paths.KeyPath, cipher, log)
	migrator := migrate.NewMigrator(cfg.Paths.LegacyPath, entries, log)

	ui, err := tui.New(tui.Services{
		Gate:     gate,
		Entries:  entries,
		Migrator: migrator,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	result, err := ui.Run(context.Background())
	switch {
	case err == nil:
	case errors.Is(err, tui.ErrUserQuit):
		log.Info().Msg("session closed without authentication")
	case errors.Is(err, auth.ErrSetupAbandoned):
		fmt.Println("Password setup was not completed. Nothing was saved.")
		log.Warn().Msg("password setup abandoned")
	default:
		log.Fatal().Err(err).Msg("diary run error")
	}

	if result.RestartRequired {
		fmt.Println("The encryption key was restored. Start the application again to use it.")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
