package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

func ReadToken(path string) (*oauth2.Token, bool, error) {
	if !fileExists(path) {
		return nil, false, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, true, err
	}

	token := &oauth2.Token{}
	if err := json.Unmarshal(content, token); err != nil {
		return nil, true, err
	}

	return token, true, nil
}

func SaveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}

	if err := mkdir(path); err != nil {
		return err
	}

	// Write to temp file first
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return err
	}

	return os.Rename(tmpFile, path)
}

// expiredTime forces an immediate refresh so refresh-token clients obtain a
// fresh access token on first use.
func expiredTime() time.Time {
	return time.Now().Add(-time.Minute)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func mkdir(path string) error {
	dir := filepath.Dir(path)
	if fileExists(dir) {
		return nil
	}
	return os.MkdirAll(dir, 0700)
}
