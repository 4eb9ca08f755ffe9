package menu

import "testing"

func int64p(v int64) *int64 { return &v }

func names(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func TestComposeNestsChildrenUnderVisibleParent(t *testing.T) {
	forest := Compose([]Item{
		{ID: 1, Name: "dashboard", DisplayName: "Dashboard", SortOrder: 1},
		{ID: 2, Name: "projects", DisplayName: "Projects", SortOrder: 2},
		{ID: 3, Name: "project-list", DisplayName: "Project List", ParentID: int64p(2), SortOrder: 1},
	})
	if len(forest) != 2 {
		t.Fatalf("expected 2 roots got %d", len(forest))
	}
	if forest[1].Name != "projects" || len(forest[1].Children) != 1 {
		t.Fatalf("expected projects with one child, got %s with %d", forest[1].Name, len(forest[1].Children))
	}
	if forest[1].Children[0].Name != "project-list" {
		t.Fatalf("unexpected child %s", forest[1].Children[0].Name)
	}
}

func TestComposePromotesOrphanToRoot(t *testing.T) {
	// reports points at analytics, which the caller cannot see; reports must
	// surface as a root rather than disappear.
	forest := Compose([]Item{
		{ID: 10, Name: "dashboard", DisplayName: "Dashboard", SortOrder: 1},
		{ID: 12, Name: "reports", DisplayName: "Reports", ParentID: int64p(11), SortOrder: 2},
	})
	if len(forest) != 2 {
		t.Fatalf("expected 2 roots got %d", len(forest))
	}
	if forest[1].Name != "reports" {
		t.Fatalf("expected reports promoted to root, got %v", names(forest))
	}
}

func TestComposeOrdersBySortOrderThenDisplayName(t *testing.T) {
	forest := Compose([]Item{
		{ID: 1, Name: "vendors", DisplayName: "Vendors", SortOrder: 2},
		{ID: 2, Name: "materials", DisplayName: "Materials", SortOrder: 2},
		{ID: 3, Name: "dashboard", DisplayName: "Dashboard", SortOrder: 1},
	})
	got := names(forest)
	want := []string{"dashboard", "materials", "vendors"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v got %v", want, got)
		}
	}
}

func TestComposeChildrenOrderedIndependently(t *testing.T) {
	forest := Compose([]Item{
		{ID: 1, Name: "settings", DisplayName: "Settings", SortOrder: 5},
		{ID: 2, Name: "users", DisplayName: "Users", ParentID: int64p(1), SortOrder: 2},
		{ID: 3, Name: "roles", DisplayName: "Roles", ParentID: int64p(1), SortOrder: 1},
	})
	if len(forest) != 1 {
		t.Fatalf("expected 1 root got %d", len(forest))
	}
	children := names(forest[0].Children)
	if children[0] != "roles" || children[1] != "users" {
		t.Fatalf("unexpected child order %v", children)
	}
}

func TestComposeBreaksParentCycle(t *testing.T) {
	// Corrupted data: a -> b -> a. Composition must terminate with both nodes
	// present exactly once, the first-encountered node as root.
	forest := Compose([]Item{
		{ID: 1, Name: "a", DisplayName: "A", ParentID: int64p(2), SortOrder: 1},
		{ID: 2, Name: "b", DisplayName: "B", ParentID: int64p(1), SortOrder: 2},
	})
	if len(forest) != 1 {
		t.Fatalf("expected 1 root got %d", len(forest))
	}
	total := 0
	var count func(n *Node)
	count = func(n *Node) {
		total++
		for _, c := range n.Children {
			count(c)
		}
	}
	for _, n := range forest {
		count(n)
	}
	if total != 2 {
		t.Fatalf("expected both nodes exactly once, counted %d", total)
	}
	if forest[0].Name != "a" {
		t.Fatalf("expected first-encountered node as root, got %s", forest[0].Name)
	}
}

func TestComposeSelfParent(t *testing.T) {
	forest := Compose([]Item{
		{ID: 1, Name: "loop", DisplayName: "Loop", ParentID: int64p(1), SortOrder: 1},
	})
	if len(forest) != 1 || forest[0].Name != "loop" {
		t.Fatalf("expected self-parented item as root, got %v", names(forest))
	}
}

func TestComposeEmpty(t *testing.T) {
	forest := Compose(nil)
	if forest == nil || len(forest) != 0 {
		t.Fatalf("expected empty forest, got %v", forest)
	}
}

func TestComposeDeepCycleChain(t *testing.T) {
	// c hangs off a cycle a -> b -> a; every node must still appear once.
	forest := Compose([]Item{
		{ID: 3, Name: "c", DisplayName: "C", ParentID: int64p(1), SortOrder: 3},
		{ID: 1, Name: "a", DisplayName: "A", ParentID: int64p(2), SortOrder: 1},
		{ID: 2, Name: "b", DisplayName: "B", ParentID: int64p(1), SortOrder: 2},
	})
	total := 0
	var count func(n *Node)
	count = func(n *Node) {
		total++
		for _, c := range n.Children {
			count(c)
		}
	}
	for _, n := range forest {
		count(n)
	}
	if total != 3 {
		t.Fatalf("expected 3 nodes, counted %d", total)
	}
}
