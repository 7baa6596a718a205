package drive

import (
	"fmt"
	"io"
)

// nodeSource is the view of the remote store the walker needs: metadata for
// a single node and the immediate children of a folder. Implemented by Drive,
// kept narrow so traversal can be exercised against a fake store.
type nodeSource interface {
	getNode(id string) (*Node, error)
	listChildren(folderId string) ([]*Node, error)
}

// materializeFunc fetches the content of a file or doc node. nil means
// metadata-only traversal.
type materializeFunc func(n *Node) error

func (g *Drive) getNode(id string) (*Node, error) {
	f, err := g.service.Files.Get(id).Fields("id", "name", "mimeType", "size", "parents", "modifiedTime").Do()
	if err != nil {
		return nil, &RemoteError{Op: "get file", Id: id, Err: err}
	}

	return newNode(f), nil
}

type walker struct {
	source  nodeSource
	fetch   materializeFunc
	out     io.Writer
	visited map[string]bool
	nodes   []*Node
}

func newWalker(source nodeSource, fetch materializeFunc, out io.Writer) *walker {
	return &walker{
		source:  source,
		fetch:   fetch,
		out:     out,
		visited: make(map[string]bool),
	}
}

// walk expands the given root ids depth-first into a flat, parent-linked
// node list. Each id appears at most once, first occurrence wins; a shared
// file linked into several folders is recorded once. Ids are marked visited
// before expansion, so a folder cycle terminates at the first revisited id
// instead of recursing forever.
//
// A metadata or listing failure aborts the whole walk. The exception is
// content with no download or export path, which is skipped with a notice.
func (w *walker) walk(rootIds []string) ([]*Node, error) {
	for _, id := range rootIds {
		if w.visited[id] {
			continue
		}
		w.visited[id] = true

		n, err := w.source.getNode(id)
		if err != nil {
			return nil, err
		}

		if err := w.visit(n); err != nil {
			return nil, err
		}
	}

	return w.nodes, nil
}

func (w *walker) visit(n *Node) error {
	if n.Kind == KindFolder {
		w.nodes = append(w.nodes, n)

		children, err := w.source.listChildren(n.Id)
		if err != nil {
			return err
		}

		for _, child := range children {
			if w.visited[child.Id] {
				continue
			}
			w.visited[child.Id] = true

			if err := w.visit(child); err != nil {
				return err
			}
		}

		return nil
	}

	if w.fetch != nil {
		if err := w.fetch(n); err != nil {
			if IsUnsupportedContent(err) {
				_, _ = fmt.Fprintf(w.out, "Skipping %s '%s': %s\n", n.Id, n.Name, err)
				return nil
			}
			return err
		}
	}

	w.nodes = append(w.nodes, n)
	return nil
}
