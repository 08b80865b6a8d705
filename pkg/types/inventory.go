package types

// Inventory is a collection that takes ownership of the Items added to it.
type Inventory interface {
	// AddItem stores item. When the inventory cannot take it, the item is
	// handed back; nil means it was stored.
	AddItem(item *Item) *Item
}

// Selector addresses Items inside an inventory by S.
type Selector[S any] interface {
	// GetItem borrows the item at sel. The inventory keeps ownership.
	GetItem(sel S) (*Item, bool)

	// RemoveItem takes the item at sel out of the inventory.
	RemoveItem(sel S) (*Item, bool)
}

// List is an unbounded Inventory addressed by position.
type List struct {
	items []*Item
}

// AddItem appends item. A nil item is ignored.
func (l *List) AddItem(item *Item) *Item {
	if item != nil {
		l.items = append(l.items, item)
	}
	return nil
}

// GetItem returns the item at index i.
func (l *List) GetItem(i int) (*Item, bool) {
	if i < 0 || i >= len(l.items) {
		return nil, false
	}
	return l.items[i], true
}

// RemoveItem removes the item at index i, shifting later items down.
func (l *List) RemoveItem(i int) (*Item, bool) {
	if i < 0 || i >= len(l.items) {
		return nil, false
	}
	item := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	return item, true
}

// Len returns the number of items.
func (l *List) Len() int { return len(l.items) }

// Items returns the items in insertion order. The slice is a copy.
func (l *List) Items() []*Item {
	out := make([]*Item, len(l.items))
	copy(out, l.items)
	return out
}

// Router is an Inventory that forwards each item to the inventory registered
// for its class. Items without a class, or whose class has no route, are
// handed back.
type Router[K comparable] struct {
	classify func(*Item) (K, bool)
	routes   map[K]Inventory
}

// NewRouter returns a Router that classifies items with classify, typically
// by reading a data block such as a category.
func NewRouter[K comparable](classify func(*Item) (K, bool)) *Router[K] {
	return &Router[K]{classify: classify, routes: make(map[K]Inventory)}
}

// Route sends items of class k to inv and returns r.
func (r *Router[K]) Route(k K, inv Inventory) *Router[K] {
	r.routes[k] = inv
	return r
}

// AddItem forwards item to the inventory for its class.
func (r *Router[K]) AddItem(item *Item) *Item {
	k, ok := r.classify(item)
	if !ok {
		return item
	}
	inv, ok := r.routes[k]
	if !ok {
		return item
	}
	return inv.AddItem(item)
}
