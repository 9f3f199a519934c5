package config

import (
	"strings"
	"testing"

	"github.com/Meridian-tech/meridian-pay/pkg/types"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Network != types.Mainnet {
		t.Errorf("default network = %v, want mainnet", cfg.Network)
	}
	if cfg.DataDir == "" {
		t.Error("default data dir is empty")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("default log level = %q", cfg.Log.Level)
	}
}

func TestNetworkDirs(t *testing.T) {
	cfg := &Config{Network: types.Testnet, DataDir: "/data"}

	if got := cfg.NetworkDir(); !strings.HasSuffix(got, "testnet") {
		t.Errorf("NetworkDir = %q", got)
	}
	if got := cfg.KeystoreDir(); !strings.Contains(got, "testnet") || !strings.HasSuffix(got, "keystore") {
		t.Errorf("KeystoreDir = %q", got)
	}
	if got := cfg.SnapshotDir(); !strings.HasSuffix(got, "snapshot") {
		t.Errorf("SnapshotDir = %q", got)
	}

	// Switching networks moves every derived directory.
	mainnet := &Config{Network: types.Mainnet, DataDir: "/data"}
	if mainnet.KeystoreDir() == cfg.KeystoreDir() {
		t.Error("keystore dir shared across networks")
	}
}
