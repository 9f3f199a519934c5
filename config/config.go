// Package config handles meridian-pay configuration: the network, the data
// directory layout, and logging settings.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/Meridian-tech/meridian-pay/pkg/types"
)

// Config holds runtime configuration for the tool.
type Config struct {
	Network types.Network
	DataDir string
	Log     LogConfig
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
	JSON  bool
}

// Default returns the default configuration (mainnet, platform data dir).
func Default() *Config {
	return &Config{
		Network: types.Mainnet,
		DataDir: DefaultDataDir(),
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.meridian-pay
//	macOS:   ~/Library/Application Support/MeridianPay
//	Windows: %APPDATA%\MeridianPay
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".meridian-pay"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "MeridianPay")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "MeridianPay")
		}
		return filepath.Join(home, "AppData", "Roaming", "MeridianPay")
	default:
		return filepath.Join(home, ".meridian-pay")
	}
}

// NetworkDir returns the per-network data directory.
func (c *Config) NetworkDir() string {
	return filepath.Join(c.DataDir, c.Network.String())
}

// KeystoreDir returns the encrypted wallet directory.
func (c *Config) KeystoreDir() string {
	return filepath.Join(c.NetworkDir(), "keystore")
}

// SnapshotDir returns the UTXO snapshot database directory.
func (c *Config) SnapshotDir() string {
	return filepath.Join(c.NetworkDir(), "snapshot")
}
