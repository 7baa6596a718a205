package tap

import (
	"encoding/json"
	"os"
	"time"

	"github.com/drivetap-org/drivetap/utils"
)

// Bookmark is the watermark for one file: the remote modification timestamp
// seen on the last successful extraction.
type Bookmark struct {
	ModifiedTime string `json:"modified_time"`
}

type State struct {
	Bookmarks map[string]Bookmark `json:"bookmarks"`
}

func NewState() *State {
	return &State{Bookmarks: make(map[string]Bookmark)}
}

// LoadState reads a state file. A missing file yields empty state, so a
// first run extracts everything.
func LoadState(path string) (*State, error) {
	if path == "" {
		return NewState(), nil
	}

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewState(), nil
	}
	if err != nil {
		return nil, err
	}

	s := NewState()
	if err := json.Unmarshal(content, s); err != nil {
		return nil, err
	}
	if s.Bookmarks == nil {
		s.Bookmarks = make(map[string]Bookmark)
	}

	return s, nil
}

// ShouldSync reports whether a file with the given remote modification time
// must be processed again. Files are reprocessed when the timestamp moved
// past the bookmark; unparsable timestamps always sync.
func (s *State) ShouldSync(id, modifiedTime string) bool {
	bookmark, found := s.Bookmarks[id]
	if !found {
		return true
	}

	last, err := time.Parse(time.RFC3339, bookmark.ModifiedTime)
	if err != nil {
		return true
	}

	current, err := time.Parse(time.RFC3339, modifiedTime)
	if err != nil {
		return true
	}

	return current.After(last)
}

// Advance moves the watermark for a file forward.
func (s *State) Advance(id, modifiedTime string) {
	s.Bookmarks[id] = Bookmark{ModifiedTime: modifiedTime}
}

func (s *State) Save(path string) error {
	return utils.WriteJson(path, s)
}
