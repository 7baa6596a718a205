package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/drivetap-org/drivetap/drive"
	"github.com/drivetap-org/drivetap/utils"
)

type WatermarkInfo struct {
	ModifiedTime string `json:"modifiedTime"`
	Size         int64  `json:"size"`
}

// NewWatermarkComparer returns a comparer backed by a persisted cache of
// per-file watermarks. A file is considered changed when its remote
// modification time or size differs from the cached entry.
func NewWatermarkComparer(path string) *WatermarkComparer {
	cache := map[string]*WatermarkInfo{}

	f, err := os.Open(path)
	if err == nil {
		_ = json.NewDecoder(f).Decode(&cache)
		_ = f.Close()
	}

	return &WatermarkComparer{path, cache}
}

type WatermarkComparer struct {
	path  string
	cache map[string]*WatermarkInfo
}

func (c *WatermarkComparer) Changed(n *drive.Node) bool {
	cached, found := c.cache[n.Id]
	if !found {
		return true
	}

	return cached.ModifiedTime != n.ModifiedTime || cached.Size != n.Size
}

func (c *WatermarkComparer) Update(n *drive.Node) {
	c.cache[n.Id] = &WatermarkInfo{
		ModifiedTime: n.ModifiedTime,
		Size:         n.Size,
	}
	c.persist()
}

func (c *WatermarkComparer) persist() {
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save watermarks: %s\n", err)
		return
	}

	if err := utils.WriteJson(c.path, c.cache); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save watermarks: %s\n", err)
	}
}

// noComparer forces a full fetch of everything.
type noComparer struct{}

func (noComparer) Changed(n *drive.Node) bool {
	return true
}

func (noComparer) Update(n *drive.Node) {}
