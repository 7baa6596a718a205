package drive

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/soniakeys/graph"
)

type ListRecursiveArgs struct {
	Out         io.Writer
	RootId      string
	SkipHeader  bool
	PathWidth   int64
	SizeInBytes bool
	JsonOut     bool
}

type listedFile struct {
	RelPath string `json:"path"`
	Node    *Node  `json:"node"`
}

// ListRecursive prints every entry below a folder with its path relative to
// that folder. Metadata only, no content is fetched.
func (g *Drive) ListRecursive(args ListRecursiveArgs) error {
	flat, err := newWalker(g, nil, args.Out).walk([]string{args.RootId})
	if err != nil {
		return err
	}

	relPaths, err := prepareRelPaths(args.RootId, flat)
	if err != nil {
		return err
	}

	var files []*listedFile
	for _, n := range flat {
		if n.Id == args.RootId {
			continue
		}
		files = append(files, &listedFile{
			RelPath: relPaths[n.Id],
			Node:    n,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(files[i].RelPath) < strings.ToLower(files[j].RelPath)
	})

	if args.JsonOut {
		jb, err := json.Marshal(files)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(args.Out, string(jb))
		return nil
	}

	w := new(tabwriter.Writer)
	w.Init(args.Out, 0, 0, 3, ' ', 0)

	if !args.SkipHeader {
		_, _ = fmt.Fprintln(w, "Id\tPath\tType\tSize\tModified")
	}

	for _, lf := range files {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			lf.Node.Id,
			truncateString(lf.RelPath, int(args.PathWidth)),
			lf.Node.Kind,
			formatSize(lf.Node.Size, args.SizeInBytes),
			formatDatetime(lf.Node.ModifiedTime),
		)
	}

	_ = w.Flush()
	return nil
}

// prepareRelPaths computes each node's path relative to the walk root using
// a parent pointer tree. Nodes whose parent is outside the visited set hang
// directly off the virtual root, matching the orphan-as-root policy.
func prepareRelPaths(rootId string, nodes []*Node) (map[string]string, error) {
	// The tree only holds integer values so we use
	// maps to lookup node by index and index by node id
	indexLookup := make(map[string]graph.NI, len(nodes))
	nodeLookup := make(map[graph.NI]*Node, len(nodes))

	for i, n := range nodes {
		indexLookup[n.Id] = graph.NI(i)
		nodeLookup[graph.NI(i)] = n
	}

	pathEnds := make([]graph.PathEnd, len(nodes))

	for i, n := range nodes {
		if n.Id == rootId || n.ParentId == "" {
			pathEnds[i] = graph.PathEnd{From: -1}
			continue
		}

		parentIdx, found := indexLookup[n.ParentId]
		if !found {
			// Orphan, treated as a root
			pathEnds[i] = graph.PathEnd{From: -1}
			continue
		}
		pathEnds[i] = graph.PathEnd{From: parentIdx}
	}

	tree := &graph.FromList{Paths: pathEnds}
	tree.RecalcLeaves()
	tree.RecalcLen()

	paths := make(map[string]string, len(nodes))

	for _, n := range nodes {
		if n.Id == rootId {
			continue
		}

		chain := tree.PathTo(indexLookup[n.Id], nil)

		var pathNames []string
		for _, ni := range chain {
			step := nodeLookup[ni]
			if step.Id == rootId {
				continue
			}
			pathNames = append(pathNames, step.Name)
		}

		paths[n.Id] = filepath.Join(pathNames...)
	}

	return paths, nil
}
