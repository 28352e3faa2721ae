package query

import (
	"errors"
	"testing"
)

// Five generations in a single ancestor line: I1 is the youngest, I5 the
// oldest. Each family links one parent to one child.
const chainFixture = `0 @I1@ INDI
1 NAME Amos /Ward/
0 @I2@ INDI
1 NAME Ben /Ward/
0 @I3@ INDI
1 NAME Carl /Ward/
0 @I4@ INDI
1 NAME Dan /Ward/
0 @I5@ INDI
1 NAME Ed /Ward/
0 @F1@ FAM
1 HUSB @I2@
1 CHIL @I1@
0 @F2@ FAM
1 HUSB @I3@
1 CHIL @I2@
0 @F3@ FAM
1 HUSB @I4@
1 CHIL @I3@
0 @F4@ FAM
1 HUSB @I5@
1 CHIL @I4@
`

// Two individuals that are each other's parent, which no well-formed file
// should contain.
const cyclicFixture = `0 @I1@ INDI
1 NAME Loop /One/
0 @I2@ INDI
1 NAME Loop /Two/
0 @F1@ FAM
1 HUSB @I2@
1 CHIL @I1@
0 @F2@ FAM
1 HUSB @I1@
1 CHIL @I2@
`

func ancestorDepth(n *TreeNode) int {
	deepest := 0
	for _, p := range n.Parents {
		if d := ancestorDepth(p); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

func countIDs(n *TreeNode, counts map[string]int) {
	counts[n.ID]++
	for _, p := range n.Parents {
		countIDs(p, counts)
	}
	for _, c := range n.Children {
		countIDs(c, counts)
	}
}

func TestFamilyTreeGenerationCap(t *testing.T) {
	e := newTestEngine(t, chainFixture)

	node, err := e.FamilyTree("I1", 3)
	if err != nil {
		t.Fatalf("FamilyTree failed: %v", err)
	}

	// A five-deep chain capped at three generations yields exactly three
	// levels: root, parent, grandparent.
	if got := ancestorDepth(node); got != 3 {
		t.Errorf("ancestorDepth = %d, want 3", got)
	}

	grandparent := node.Parents[0].Parents[0]
	if grandparent.ID != "I3" {
		t.Errorf("Grandparent = %s, want I3", grandparent.ID)
	}
	if grandparent.Generation != 2 {
		t.Errorf("Grandparent generation = %d, want 2", grandparent.Generation)
	}
	if len(grandparent.Parents) != 0 {
		t.Errorf("Grandparent still has %d expanded parents, want 0", len(grandparent.Parents))
	}

	counts := map[string]int{}
	countIDs(node, counts)
	for id, n := range counts {
		if n != 1 {
			t.Errorf("%s appears %d times, want 1", id, n)
		}
	}
}

func TestFamilyTreeDescendants(t *testing.T) {
	e := newTestEngine(t, chainFixture)

	node, err := e.FamilyTree("I5", 2)
	if err != nil {
		t.Fatalf("FamilyTree failed: %v", err)
	}
	if len(node.Children) != 1 || node.Children[0].ID != "I4" {
		t.Fatalf("Children = %v, want [I4]", node.Children)
	}
	if node.Children[0].Generation != -1 {
		t.Errorf("Child generation = %d, want -1", node.Children[0].Generation)
	}
	if len(node.Children[0].Children) != 0 {
		t.Errorf("Expansion passed the generation cap: %v", node.Children[0].Children)
	}
}

func TestFamilyTreeCycle(t *testing.T) {
	e := newTestEngine(t, cyclicFixture)

	node, err := e.FamilyTree("I1", 10)
	if err != nil {
		t.Fatalf("FamilyTree failed: %v", err)
	}

	counts := map[string]int{}
	countIDs(node, counts)
	if counts["I1"] != 1 || counts["I2"] != 1 {
		t.Errorf("ID counts = %v, want each exactly once", counts)
	}
}

func TestFamilyTreeSingleGeneration(t *testing.T) {
	e := newTestEngine(t, chainFixture)

	node, err := e.FamilyTree("I3", 1)
	if err != nil {
		t.Fatalf("FamilyTree failed: %v", err)
	}
	if len(node.Parents) != 0 || len(node.Children) != 0 {
		t.Errorf("generations=1 expanded relatives: parents=%v children=%v",
			node.Parents, node.Children)
	}
}

func TestFamilyTreeNotFound(t *testing.T) {
	e := newTestEngine(t, chainFixture)

	if _, err := e.FamilyTree("I99", 3); !errors.Is(err, ErrNotFound) {
		t.Errorf("Error = %v, want ErrNotFound", err)
	}
}

func TestFamilyTreeBadGenerations(t *testing.T) {
	e := newTestEngine(t, chainFixture)

	if _, err := e.FamilyTree("I1", 0); err == nil {
		t.Error("Expected error for generations=0")
	}
}
