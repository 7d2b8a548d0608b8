package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type StructuredJSONConfig struct {
	App struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		Dir          string `json:"dir"`
		KeyFile      string `json:"key_file"`
		PasswordFile string `json:"password_file"`
		DataFile     string `json:"data_file"`
		LegacyFile   string `json:"legacy_file"`
	} `json:"storage,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Name:    jsonCfg.App.Name,
			Version: jsonCfg.App.Version,
		},
		Storage: Storage{
			Dir:          jsonCfg.Storage.Dir,
			KeyFile:      jsonCfg.Storage.KeyFile,
			PasswordFile: jsonCfg.Storage.PasswordFile,
			DataFile:     jsonCfg.Storage.DataFile,
			LegacyFile:   jsonCfg.Storage.LegacyFile,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}
