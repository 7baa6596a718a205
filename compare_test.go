package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/drivetap-org/drivetap/drive"
)

func tmpWatermarkPath(t *testing.T) string {
	dir := filepath.Join(os.TempDir(), "drivetap-test-"+uuid.New().String())
	if err := os.MkdirAll(dir, 0775); err != nil {
		t.Fatalf("failed to create temp dir: %s", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, "watermarks.json")
}

func TestWatermarkComparerUnknownFileIsChanged(t *testing.T) {
	c := NewWatermarkComparer(tmpWatermarkPath(t))

	n := &drive.Node{Id: "a", ModifiedTime: "2024-01-01T00:00:00Z", Size: 10}
	if !c.Changed(n) {
		t.Error("expected unseen file to be reported as changed")
	}
}

func TestWatermarkComparerUpdateThenUnchanged(t *testing.T) {
	c := NewWatermarkComparer(tmpWatermarkPath(t))

	n := &drive.Node{Id: "a", ModifiedTime: "2024-01-01T00:00:00Z", Size: 10}
	c.Update(n)

	if c.Changed(n) {
		t.Error("expected file to be unchanged after update")
	}
}

func TestWatermarkComparerDetectsNewRevision(t *testing.T) {
	c := NewWatermarkComparer(tmpWatermarkPath(t))

	c.Update(&drive.Node{Id: "a", ModifiedTime: "2024-01-01T00:00:00Z", Size: 10})

	touched := &drive.Node{Id: "a", ModifiedTime: "2024-02-01T00:00:00Z", Size: 10}
	if !c.Changed(touched) {
		t.Error("expected changed modification time to be detected")
	}

	grown := &drive.Node{Id: "a", ModifiedTime: "2024-01-01T00:00:00Z", Size: 11}
	if !c.Changed(grown) {
		t.Error("expected changed size to be detected")
	}
}

func TestWatermarkComparerPersistsAcrossInstances(t *testing.T) {
	path := tmpWatermarkPath(t)

	first := NewWatermarkComparer(path)
	first.Update(&drive.Node{Id: "a", ModifiedTime: "2024-01-01T00:00:00Z", Size: 10})

	second := NewWatermarkComparer(path)
	if second.Changed(&drive.Node{Id: "a", ModifiedTime: "2024-01-01T00:00:00Z", Size: 10}) {
		t.Error("expected watermark to survive a restart")
	}
}

func TestWatermarkComparerCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(os.TempDir(), "drivetap-test-"+uuid.New().String())
	t.Cleanup(func() { os.RemoveAll(dir) })

	// Parent directory does not exist yet
	path := filepath.Join(dir, "config", "watermarks.json")

	first := NewWatermarkComparer(path)
	first.Update(&drive.Node{Id: "a", ModifiedTime: "2024-01-01T00:00:00Z", Size: 10})

	second := NewWatermarkComparer(path)
	if second.Changed(&drive.Node{Id: "a", ModifiedTime: "2024-01-01T00:00:00Z", Size: 10}) {
		t.Error("expected watermark to persist even when the config dir was missing")
	}
}

func TestNoComparerAlwaysChanged(t *testing.T) {
	c := noComparer{}
	n := &drive.Node{Id: "a"}
	c.Update(n)
	if !c.Changed(n) {
		t.Error("expected noComparer to always report changed")
	}
}
