package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, cfg map[string]interface{}) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// A config-driven run must build its client from the config credentials,
// never from the (empty) auth flags, which would end in the interactive
// token prompt.
func TestDriveForSyncUsesConfigCredentials(t *testing.T) {
	path := writeConfigFile(t, map[string]interface{}{
		"client_id":     "client",
		"client_secret": "secret",
		"refresh_token": "refresh",
		"folder_url":    "https://drive.google.com/drive/folders/abc123",
		"target_dir":    "/data/mirror",
	})

	g, rootIds, target, err := driveForSync(path, nil, ".", false)
	if err != nil {
		t.Fatal(err)
	}

	if g == nil {
		t.Fatal("expected a client built from the config")
	}
	if len(rootIds) != 1 || rootIds[0] != "abc123" {
		t.Fatalf("expected roots from the config folder url, got %v", rootIds)
	}
	if target != "/data/mirror" {
		t.Fatalf("expected target_dir from the config, got %s", target)
	}
}

func TestDriveForSyncArgsAndFlagsWin(t *testing.T) {
	path := writeConfigFile(t, map[string]interface{}{
		"client_id":     "client",
		"client_secret": "secret",
		"refresh_token": "refresh",
		"folder_url":    "https://drive.google.com/drive/folders/abc123",
		"target_dir":    "/data/mirror",
	})

	_, rootIds, target, err := driveForSync(path, []string{"explicit"}, "/elsewhere", true)
	if err != nil {
		t.Fatal(err)
	}

	if len(rootIds) != 1 || rootIds[0] != "explicit" {
		t.Fatalf("explicit root ids should win over the config, got %v", rootIds)
	}
	if target != "/elsewhere" {
		t.Fatalf("explicit target flag should win over the config, got %s", target)
	}
}

func TestDriveForSyncBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")

	if _, _, _, err := driveForSync(path, nil, ".", false); err == nil {
		t.Fatal("missing config file should be an error")
	}
}
