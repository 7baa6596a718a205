package drive

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

// Exercises the whole walk, tree build and realize pipeline with a fetch
// function that stages content the way the materializer does, including the
// export rename for document nodes.
func TestPipeline_MixedFolder(t *testing.T) {
	src := newFakeSource()
	src.addFolder("f1", "", "doc1", "sheet1")
	src.addFile("doc1", "f1")
	src.nodes["sheet1"] = &Node{
		Id:       "sheet1",
		Name:     "sheet1",
		Kind:     KindVirtualDoc,
		ParentId: "f1",
		MimeType: GoogleAppsMimePrefix + "spreadsheet",
	}

	staging := tmpDir(t)
	target := tmpDir(t)

	fetch := func(n *Node) error {
		name := n.Name
		if !canDownload(n.MimeType) {
			exportMime, err := getExportMime("", n.MimeType)
			if err != nil {
				return &UnsupportedContentError{Id: n.Id, Mime: n.MimeType}
			}
			name = getExportFilename(name, exportMime)
		}

		n.Name = name
		n.LocalPath = stageFile(t, staging, n.Id, "content-"+n.Id)
		return nil
	}

	flat, err := newWalker(src, fetch, ioutil.Discard).walk([]string{"f1"})
	if err != nil {
		t.Fatal(err)
	}

	roots, err := buildTree(flat)
	if err != nil {
		t.Fatal(err)
	}

	if err := realize(roots, target, ioutil.Discard); err != nil {
		t.Fatal(err)
	}

	raw, err := ioutil.ReadFile(filepath.Join(target, "f1", "doc1"))
	if err != nil || string(raw) != "content-doc1" {
		t.Fatalf("f1/doc1 wrong: %s, %v", raw, err)
	}

	exported, err := ioutil.ReadFile(filepath.Join(target, "f1", "sheet1.xlsx"))
	if err != nil || string(exported) != "content-sheet1" {
		t.Fatalf("f1/sheet1.xlsx wrong: %s, %v", exported, err)
	}

	info, err := os.Stat(filepath.Join(target, "f1"))
	if err != nil || !info.IsDir() {
		t.Fatal("f1 should be a directory")
	}
}
