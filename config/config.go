package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// ClientConfig is the client.yml shape: where the ledger lives and
// which keypair signs for this machine.
type ClientConfig struct {
	NodeURL     string `yaml:"node_url"`
	KeypairPath string `yaml:"keypair_path"`
	LogDir      string `yaml:"log_dir"`
}

type ConfigFile struct {
	Config ClientConfig `yaml:"config"`
}

// TuningConfig holds the knobs read from tuning.ini. Everything here
// has a usable default; the file is optional.
type TuningConfig struct {
	RequestTimeoutSec int `ini:"request_timeout_sec"`
	ToastDurationMs   int `ini:"toast_duration_ms"`
}

// DefaultTuning matches the original client's hardcoded values.
func DefaultTuning() *TuningConfig {
	return &TuningConfig{
		RequestTimeoutSec: 30,
		ToastDurationMs:   4000,
	}
}

// LoadClientConfig reads and parses the client.yml file
func LoadClientConfig(path string) (*ClientConfig, error) {
	log.Printf("[config] LoadClientConfig called with path: %s", path)
	file, err := os.Open(path)
	if err != nil {
		log.Printf("[config] Failed to open file: %v", err)
		return nil, err
	}
	defer file.Close()

	var cfgFile ConfigFile
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfgFile); err != nil {
		log.Printf("[config] Failed to decode YAML: %v", err)
		return nil, err
	}
	log.Printf("[config] Successfully loaded config: NodeURL=%s, KeypairPath=%s", cfgFile.Config.NodeURL, cfgFile.Config.KeypairPath)
	return &cfgFile.Config, nil
}

// LoadTuningConfig reads tuning knobs from an .ini file, falling back
// to defaults when the file is missing.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultTuning(), nil
		}
		return nil, err
	}
	tuning := DefaultTuning()
	if err := cfg.Section("client").MapTo(tuning); err != nil {
		return nil, err
	}
	return tuning, nil
}

func (t *TuningConfig) RequestTimeout() time.Duration {
	return time.Duration(t.RequestTimeoutSec) * time.Second
}

func (t *TuningConfig) ToastDuration() time.Duration {
	return time.Duration(t.ToastDurationMs) * time.Millisecond
}
