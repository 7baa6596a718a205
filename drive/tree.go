package drive

import "fmt"

// buildTree reconstructs the nested folder structure from a flat node list.
// The returned slice holds the roots; every node whose parent id is present
// in the list is attached to that parent's Children, input order preserved.
// A node whose parent id is absent, or empty, becomes a root. Duplicate ids
// keep the first occurrence.
//
// A node naming itself as its own parent is rejected.
func buildTree(flat []*Node) ([]*Node, error) {
	index := make(map[string]*Node, len(flat))
	var ordered []*Node

	for _, n := range flat {
		if n.Id == n.ParentId && n.Id != "" {
			return nil, fmt.Errorf("node %s lists itself as parent", n.Id)
		}

		if _, seen := index[n.Id]; seen {
			continue
		}

		clone := *n
		clone.Children = nil
		index[n.Id] = &clone
		ordered = append(ordered, &clone)
	}

	var roots []*Node

	for _, n := range ordered {
		parent, found := index[n.ParentId]
		if n.ParentId == "" || !found {
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}

	return roots, nil
}
