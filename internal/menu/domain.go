package menu

// Item is one row of the menu_items table: a navigation entry, optionally
// nested under a parent, gated per role through role_menus.
type Item struct {
	ID          int64
	Name        string
	DisplayName string
	Icon        string
	Path        string
	ParentID    *int64
	SortOrder   int32
}

// Node is a composed navigation entry in the response forest.
type Node struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Icon        string  `json:"icon"`
	Path        string  `json:"path"`
	Children    []*Node `json:"children"`
}
