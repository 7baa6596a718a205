package drive

import "testing"

func TestBuildTree_NestsChildren(t *testing.T) {
	flat := []*Node{
		{Id: "a", Name: "A", Kind: KindFolder},
		{Id: "b", Name: "B", Kind: KindFile, ParentId: "a"},
		{Id: "c", Name: "C", Kind: KindFolder, ParentId: "a"},
		{Id: "d", Name: "D", Kind: KindFile, ParentId: "c"},
	}

	roots, err := buildTree(flat)
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}

	root := roots[0]
	if root.Id != "a" || len(root.Children) != 2 {
		t.Fatalf("unexpected root %s with %d children", root.Id, len(root.Children))
	}

	// Input order must be preserved
	if root.Children[0].Id != "b" || root.Children[1].Id != "c" {
		t.Fatalf("children out of order: %s, %s", root.Children[0].Id, root.Children[1].Id)
	}

	if len(root.Children[1].Children) != 1 || root.Children[1].Children[0].Id != "d" {
		t.Fatal("d should be nested under c")
	}
}

func TestBuildTree_OrphanBecomesRoot(t *testing.T) {
	flat := []*Node{
		{Id: "a", Name: "A", Kind: KindFolder},
		{Id: "x", Name: "X", Kind: KindFile, ParentId: "missing"},
	}

	roots, err := buildTree(flat)
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}

	for _, r := range roots {
		if r.Id == "x" {
			return
		}
	}
	t.Fatal("orphan x not found in root list")
}

func TestBuildTree_DuplicateIdsKeepFirst(t *testing.T) {
	flat := []*Node{
		{Id: "a", Name: "A", Kind: KindFolder},
		{Id: "b", Name: "first", Kind: KindFile, ParentId: "a"},
		{Id: "b", Name: "second", Kind: KindFile, ParentId: "a"},
	}

	roots, err := buildTree(flat)
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 1 || len(roots[0].Children) != 1 {
		t.Fatal("duplicate id should be dropped")
	}

	if roots[0].Children[0].Name != "first" {
		t.Fatalf("expected first occurrence to win, got '%s'", roots[0].Children[0].Name)
	}
}

func TestBuildTree_DuplicatePositionIrrelevant(t *testing.T) {
	a := &Node{Id: "a", Name: "A", Kind: KindFolder}
	b := &Node{Id: "b", Name: "B", Kind: KindFile, ParentId: "a"}
	dupe := &Node{Id: "b", Name: "B", Kind: KindFile, ParentId: "a"}

	first, err := buildTree([]*Node{a, b, dupe})
	if err != nil {
		t.Fatal(err)
	}

	second, err := buildTree([]*Node{a, dupe, b})
	if err != nil {
		t.Fatal(err)
	}

	if countNodes(first) != countNodes(second) {
		t.Fatal("tree shape should not depend on duplicate position")
	}
}

func TestBuildTree_CompleteCoverage(t *testing.T) {
	flat := []*Node{
		{Id: "a", Kind: KindFolder},
		{Id: "b", Kind: KindFolder, ParentId: "a"},
		{Id: "c", Kind: KindFile, ParentId: "b"},
		{Id: "d", Kind: KindFile, ParentId: "nope"},
		{Id: "a", Kind: KindFolder},
	}

	roots, err := buildTree(flat)
	if err != nil {
		t.Fatal(err)
	}

	if got := countNodes(roots); got != 4 {
		t.Fatalf("expected 4 unique nodes in tree, got %d", got)
	}
}

func TestBuildTree_RejectsSelfParent(t *testing.T) {
	flat := []*Node{
		{Id: "a", Kind: KindFolder, ParentId: "a"},
	}

	if _, err := buildTree(flat); err == nil {
		t.Fatal("self-parented node should be rejected")
	}
}

func TestBuildTree_Empty(t *testing.T) {
	roots, err := buildTree(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(roots) != 0 {
		t.Fatal("empty input should yield no roots")
	}
}

func countNodes(roots []*Node) int {
	count := 0
	for _, n := range roots {
		count += 1 + countNodes(n.Children)
	}
	return count
}
