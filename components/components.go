// Package components defines the ECS components a layout scene is built from.
package components

// Kind identifies which decoration set an item belongs to.
type Kind uint8

const (
	KindGift Kind = iota
	KindLight
	KindOrnament
	KindForestTree
)

// String returns the display name for a Kind.
func (k Kind) String() string {
	names := KindNames()
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// KindNames returns the display names for all kinds.
// The order matches the Kind constants.
func KindNames() []string {
	return []string{"Gift", "Light", "Ornament", "ForestTree"}
}

// KindCount returns the number of kinds.
func KindCount() int {
	return len(KindNames())
}

// Item ties an entity back to the layout entry it was spawned from.
type Item struct {
	ID    string `inspect:"label"`
	Kind  Kind   `inspect:"label"`
	Index int    `inspect:"skip"` // position in the layout slice for its kind
}

// Interactive marks items that respond to picking.
type Interactive struct{}
