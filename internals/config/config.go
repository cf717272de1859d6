package config

import (
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"
)

type Config struct {
	InitialDifficulty   int    `json:"initial_difficulty"`
	TargetBlockSeconds  int    `json:"target_block_seconds"`
	MineAttemptLimit    int    `json:"mine_attempt_limit"`
	GenesisAttemptLimit int    `json:"genesis_attempt_limit"`
	LogLevel            string `json:"log_level"`
}

// New returns the defaults a config file only partially overrides.
func New() *Config {
	return &Config{
		InitialDifficulty:   4,
		TargetBlockSeconds:  5,
		MineAttemptLimit:    10000,
		GenesisAttemptLimit: 1000000,
		LogLevel:            "info",
	}
}

func LoadConfiguration(file string) (Config, error) {
	config := *New()
	configFile, err := os.Open(file)
	defer configFile.Close()
	if err != nil {
		return config, err
	}
	jsonParser := json.NewDecoder(configFile)
	err = jsonParser.Decode(&config)
	if err != nil {
		logrus.Error("Error parsing configfile")
	}
	return config, err
}
