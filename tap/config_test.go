package tap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		ClientId:     "client",
		ClientSecret: "secret",
		RefreshToken: "refresh",
		FolderURL:    "https://drive.google.com/drive/folders/abc123?usp=sharing",
	}
}

func TestFolderIdFromURL(t *testing.T) {
	id, err := FolderIdFromURL("https://drive.google.com/drive/folders/abc123?usp=sharing")
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	id, err = FolderIdFromURL("https://drive.google.com/drive/folders/xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", id)

	_, err = FolderIdFromURL("https://drive.google.com/file/d/abc123")
	assert.Error(t, err)

	_, err = FolderIdFromURL("https://drive.google.com/drive/folders/")
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cfg := validConfig()
	cfg.ClientId = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.RefreshToken = ""
	assert.Error(t, cfg.Validate())

	// Access token alone is enough
	cfg.AccessToken = "access"
	assert.NoError(t, cfg.Validate())

	cfg = validConfig()
	cfg.FolderURL = ""
	assert.Error(t, cfg.Validate())

	cfg.Files = []FileRef{{Id: "f1"}}
	assert.NoError(t, cfg.Validate())
}

func TestConfigRootIds(t *testing.T) {
	cfg := validConfig()

	ids, err := cfg.RootIds()
	require.NoError(t, err)
	assert.Equal(t, []string{"abc123"}, ids)

	// Explicit files take precedence over the folder url
	cfg.Files = []FileRef{{Id: "f1"}, {Id: "f2"}}
	ids, err = cfg.RootIds()
	require.NoError(t, err)
	assert.Equal(t, []string{"f1", "f2"}, ids)

	cfg.Files = []FileRef{{Name: "missing-id"}}
	_, err = cfg.RootIds()
	assert.Error(t, err)
}
