package drive

import (
	"strings"

	"google.golang.org/api/drive/v3"
)

type NodeKind int

const (
	KindFolder NodeKind = iota
	KindFile
	KindVirtualDoc
)

func (k NodeKind) String() string {
	switch k {
	case KindFolder:
		return "dir"
	case KindVirtualDoc:
		return "doc"
	default:
		return "bin"
	}
}

// Node is one entry in the remote hierarchy. Content is never held in
// memory; materialized nodes carry the path of their staged local copy.
type Node struct {
	Id           string
	Name         string
	Kind         NodeKind
	ParentId     string
	MimeType     string
	Size         int64
	ModifiedTime string

	// LocalPath is set by the materializer for file and doc nodes.
	LocalPath string

	// Children is populated by the tree builder, folders only.
	Children []*Node
}

func (n *Node) IsDir() bool {
	return n.Kind == KindFolder
}

func newNode(f *drive.File) *Node {
	n := &Node{
		Id:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		Size:         f.Size,
		ModifiedTime: f.ModifiedTime,
	}

	if len(f.Parents) > 0 {
		n.ParentId = f.Parents[0]
	}

	switch {
	case f.MimeType == DirectoryMimeType:
		n.Kind = KindFolder
	case strings.HasPrefix(f.MimeType, GoogleAppsMimePrefix):
		n.Kind = KindVirtualDoc
	default:
		n.Kind = KindFile
	}

	return n
}
