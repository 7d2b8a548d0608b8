package config

import (
	"flag"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-dir explicit storage directory for all store files
//	-key-file encryption key file name
//	-password-file encrypted password file name
//	-data-file encrypted entry log file name
//	-legacy-file plaintext legacy entries file name
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var storageDir string
	var keyFile string
	var passwordFile string
	var dataFile string
	var legacyFile string
	var jsonConfigPath string

	flag.StringVar(&storageDir, "dir", "", "Explicit storage directory")
	flag.StringVar(&keyFile, "key-file", "", "Encryption key file name")
	flag.StringVar(&passwordFile, "password-file", "", "Password file name")
	flag.StringVar(&dataFile, "data-file", "", "Entry log file name")
	flag.StringVar(&legacyFile, "legacy-file", "", "Legacy entries file name")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		Storage: Storage{
			Dir:          storageDir,
			KeyFile:      keyFile,
			PasswordFile: passwordFile,
			DataFile:     dataFile,
			LegacyFile:   legacyFile,
		},
		JSONFilePath: jsonConfigPath,
	}
}
