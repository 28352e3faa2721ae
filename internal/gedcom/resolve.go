package gedcom

import "slices"

// Resolve populates the derived relationship lists on every individual from
// the family linkages: spouses gain each other, both gain every child, each
// child gains both present parents. Appends are set-semantics, so running
// Resolve again on an already-resolved tree changes nothing. Identifiers
// that do not resolve to a parsed individual contribute no links.
func (t *Tree) Resolve() {
	for _, famID := range t.FamilyIDs() {
		fam := t.Families[famID]
		husband := t.Individuals[fam.Husband]
		wife := t.Individuals[fam.Wife]

		if husband != nil && wife != nil {
			husband.Spouses = appendUnique(husband.Spouses, wife.ID)
			wife.Spouses = appendUnique(wife.Spouses, husband.ID)
		}

		for _, childID := range fam.Children {
			child := t.Individuals[childID]
			if child == nil {
				continue
			}
			if husband != nil {
				husband.Children = appendUnique(husband.Children, child.ID)
				child.Parents = appendUnique(child.Parents, husband.ID)
			}
			if wife != nil {
				wife.Children = appendUnique(wife.Children, child.ID)
				child.Parents = appendUnique(child.Parents, wife.ID)
			}
		}
	}
}

func appendUnique(list []string, id string) []string {
	if id == "" || slices.Contains(list, id) {
		return list
	}
	return append(list, id)
}
