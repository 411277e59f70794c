// Package config contains the protocol parameters needed on the client
// side, together with YAML loaders for them.
package config

import (
	"fmt"
	"os"

	"github.com/R3E-Network/neo3-sdk/pkg/config/netmode"
	"gopkg.in/yaml.v3"
)

// Config is the top-level structure of a configuration file.
type Config struct {
	ProtocolConfiguration ProtocolConfiguration `yaml:"ProtocolConfiguration"`
}

// LoadFile loads a Config from the given YAML file. Parameters omitted
// from the file keep their stock values for the network the file names
// via Magic.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	return Load(data)
}

// Load unmarshals a Config from YAML data and validates it.
func Load(data []byte) (Config, error) {
	config := Config{
		ProtocolConfiguration: Default(0),
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}
	if err := config.ProtocolConfiguration.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// LoadNetwork loads "protocol.<net>.yml" from the given directory for the
// given network, falling back to stock parameters if the file is absent.
func LoadNetwork(path string, netMode netmode.Magic) (Config, error) {
	configPath := fmt.Sprintf("%s/protocol.%s.yml", path, netMode)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Config{ProtocolConfiguration: Default(netMode)}, nil
	}
	return LoadFile(configPath)
}
