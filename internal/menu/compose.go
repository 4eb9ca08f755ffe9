package menu

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Compose assembles visible menu items into an ordered forest.
//
// The items are placed in a flat arena indexed by position, with parent links
// resolved through an id lookup. A child whose parent is not in the visible
// set is promoted to a root: visibility of an entry never depends on
// visibility of its ancestors. Corrupted parent chains that form a cycle are
// broken by turning the first node encountered on the cycle into a root, so
// composition always terminates with every item present exactly once.
func Compose(items []Item) []*Node {
	n := len(items)
	if n == 0 {
		return []*Node{}
	}

	index := make(map[int64]int, n)
	for i, it := range items {
		index[it.ID] = i
	}

	// parent[i] is the arena index of item i's parent, or -1 for a root.
	parent := make([]int, n)
	for i, it := range items {
		parent[i] = -1
		if it.ParentID == nil {
			continue
		}
		if p, ok := index[*it.ParentID]; ok && p != i {
			parent[i] = p
		}
	}

	breakCycles(parent)

	children := make([][]int, n)
	var roots []int
	for i := range items {
		if parent[i] == -1 {
			roots = append(roots, i)
			continue
		}
		children[parent[i]] = append(children[parent[i]], i)
	}

	collator := collate.New(language.English)
	order := func(indices []int) {
		sort.SliceStable(indices, func(a, b int) bool {
			ia, ib := items[indices[a]], items[indices[b]]
			if ia.SortOrder != ib.SortOrder {
				return ia.SortOrder < ib.SortOrder
			}
			return collator.CompareString(ia.DisplayName, ib.DisplayName) < 0
		})
	}

	var build func(i int) *Node
	build = func(i int) *Node {
		it := items[i]
		node := &Node{
			Name:        it.Name,
			DisplayName: it.DisplayName,
			Icon:        it.Icon,
			Path:        it.Path,
			Children:    []*Node{},
		}
		order(children[i])
		for _, c := range children[i] {
			node.Children = append(node.Children, build(c))
		}
		return node
	}

	order(roots)
	forest := make([]*Node, 0, len(roots))
	for _, r := range roots {
		forest = append(forest, build(r))
	}
	return forest
}

// breakCycles walks every parent chain with a visited guard and cuts the
// parent link of the first node encountered on a cycle.
func breakCycles(parent []int) {
	const (
		unvisited = int8(0)
		walking   = int8(1)
		done      = int8(2)
	)
	state := make([]int8, len(parent))
	for i := range parent {
		if state[i] != unvisited {
			continue
		}
		var chain []int
		j := i
		for {
			if parent[j] == -1 || state[j] == done {
				break
			}
			if state[j] == walking {
				parent[j] = -1
				break
			}
			state[j] = walking
			chain = append(chain, j)
			j = parent[j]
		}
		state[j] = done
		for _, k := range chain {
			state[k] = done
		}
	}
}
