package query

import (
	"fmt"

	"genmap/internal/gedcom"
	"genmap/util"
)

// TreeNode is one person in an expanded family tree. Generation counts away
// from the root: positive toward ancestors, negative toward descendants.
type TreeNode struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Birth      gedcom.EventDetail `json:"birth"`
	Death      gedcom.EventDetail `json:"death"`
	Generation int                `json:"generation"`
	Parents    []*TreeNode        `json:"parents,omitempty"`
	Children   []*TreeNode        `json:"children,omitempty"`
}

// FamilyTree expands ancestors and descendants of the root individual up to
// generations levels in each direction, the root's own level included. A
// shared visited set keeps cyclic files from looping and guarantees each
// person appears at most once per expansion.
func (e *Engine) FamilyTree(rootID string, generations int) (*TreeNode, error) {
	if generations < 1 {
		return nil, fmt.Errorf("generations must be at least 1, got %d", generations)
	}
	root, ok := e.tree.Individuals[util.CleanXref(rootID)]
	if !ok {
		return nil, fmt.Errorf("person %q: %w", rootID, ErrNotFound)
	}

	visited := map[string]bool{root.ID: true}
	node := newTreeNode(root, 0)
	e.expandAncestors(node, root, 1, generations, visited)
	e.expandDescendants(node, root, 1, generations, visited)
	return node, nil
}

func newTreeNode(ind *gedcom.Individual, generation int) *TreeNode {
	return &TreeNode{
		ID:         ind.ID,
		Name:       ind.Name,
		Birth:      ind.Birth,
		Death:      ind.Death,
		Generation: generation,
	}
}

// level counts the levels already emitted on this path, the root being 1.
func (e *Engine) expandAncestors(node *TreeNode, ind *gedcom.Individual, level, generations int, visited map[string]bool) {
	if level >= generations {
		return
	}
	for _, parentID := range ind.Parents {
		parent := e.tree.Individuals[parentID]
		if parent == nil || visited[parentID] {
			continue
		}
		visited[parentID] = true
		pn := newTreeNode(parent, node.Generation+1)
		node.Parents = append(node.Parents, pn)
		e.expandAncestors(pn, parent, level+1, generations, visited)
	}
}

func (e *Engine) expandDescendants(node *TreeNode, ind *gedcom.Individual, level, generations int, visited map[string]bool) {
	if level >= generations {
		return
	}
	for _, childID := range ind.Children {
		child := e.tree.Individuals[childID]
		if child == nil || visited[childID] {
			continue
		}
		visited[childID] = true
		cn := newTreeNode(child, node.Generation-1)
		node.Children = append(node.Children, cn)
		e.expandDescendants(cn, child, level+1, generations, visited)
	}
}
