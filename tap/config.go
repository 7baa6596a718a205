package tap

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// FileRef pins an explicit file or folder id to extract, bypassing folder
// discovery.
type FileRef struct {
	Id   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Config is the connector configuration, a single JSON file per the Singer
// convention. Credentials identify an OAuth2 app with an offline refresh
// token; the folder url names the tree to extract.
type Config struct {
	ClientId     string    `json:"client_id"`
	ClientSecret string    `json:"client_secret"`
	RefreshToken string    `json:"refresh_token"`
	AccessToken  string    `json:"access_token,omitempty"`
	FolderURL    string    `json:"folder_url,omitempty"`
	Files        []FileRef `json:"files,omitempty"`
	TargetDir    string    `json:"target_dir,omitempty"`
	StartDate    string    `json:"start_date,omitempty"`
}

func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %s", err)
	}
	defer f.Close()

	cfg := &Config{}
	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %s", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ClientId == "" {
		return fmt.Errorf("config is missing client_id")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("config is missing client_secret")
	}
	if c.RefreshToken == "" && c.AccessToken == "" {
		return fmt.Errorf("config is missing refresh_token")
	}
	if c.FolderURL == "" && len(c.Files) == 0 {
		return fmt.Errorf("config needs either folder_url or files")
	}
	return nil
}

// FolderId extracts the folder id from the configured drive folder url.
func (c *Config) FolderId() (string, error) {
	return FolderIdFromURL(c.FolderURL)
}

func FolderIdFromURL(folderURL string) (string, error) {
	const marker = "folders/"

	idx := strings.Index(folderURL, marker)
	if idx < 0 {
		return "", fmt.Errorf("invalid folder url '%s', must contain '%s<id>'", folderURL, marker)
	}

	id := folderURL[idx+len(marker):]
	if q := strings.IndexAny(id, "?/"); q >= 0 {
		id = id[:q]
	}

	if id == "" {
		return "", fmt.Errorf("invalid folder url '%s', empty folder id", folderURL)
	}

	return id, nil
}

// RootIds resolves the set of root node ids to extract: the explicit files
// list when present, otherwise the configured folder.
func (c *Config) RootIds() ([]string, error) {
	if len(c.Files) > 0 {
		ids := make([]string, 0, len(c.Files))
		for _, f := range c.Files {
			if f.Id == "" {
				return nil, fmt.Errorf("files entry is missing an id")
			}
			ids = append(ids, f.Id)
		}
		return ids, nil
	}

	id, err := c.FolderId()
	if err != nil {
		return nil, err
	}
	return []string{id}, nil
}
