// internal/domain/category/tree.go
package category

import "sort"

// BuildTree groups a flat list of categories into main categories with their
// subcategories. Mains and subs are both ordered by (display_order, name).
// Subcategories whose parent is not in rows are dropped.
func BuildTree(rows []Category) []MainCategory {
	mains := make([]Category, 0, len(rows))
	subsByParent := make(map[int64][]Category)

	for _, c := range rows {
		if c.IsMain() {
			mains = append(mains, c)
			continue
		}
		subsByParent[*c.ParentID] = append(subsByParent[*c.ParentID], c)
	}

	SortByDisplayOrder(mains)

	tree := make([]MainCategory, 0, len(mains))
	for _, m := range mains {
		subs := subsByParent[m.ID]
		if subs == nil {
			subs = []Category{}
		}
		SortByDisplayOrder(subs)
		tree = append(tree, MainCategory{Category: m, Subcategories: subs})
	}

	return tree
}

// SortByDisplayOrder sorts categories in place by display_order, then name.
func SortByDisplayOrder(cats []Category) {
	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].DisplayOrder != cats[j].DisplayOrder {
			return cats[i].DisplayOrder < cats[j].DisplayOrder
		}
		return cats[i].Name < cats[j].Name
	})
}
