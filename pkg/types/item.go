package types

// Item is a single game entity. It owns the data attached to it and refers
// to, but does not own, its ItemType.
type Item struct {
	id       string
	itemType *ItemType
	data     DataMap
}

// ID returns the identifier used by storage and inventories.
func (i *Item) ID() string { return i.id }

// Type returns the ItemType the Item was spawned from.
func (i *Item) Type() *ItemType { return i.itemType }

// IsOf reports whether the Item was spawned from t.
func (i *Item) IsOf(t *ItemType) bool {
	return i.itemType.Equal(t)
}

// AttachBulk stores every value of b on the Item itself. The ItemType is
// never modified.
func (i *Item) AttachBulk(b Bulk) {
	attachBulk(&i.data, b)
}

// Data returns the Item's own map, without the ItemType's defaults.
func (i *Item) Data() *DataMap { return &i.data }

func (i *Item) own() *DataMap { return &i.data }

func (i *Item) fallback() Holder {
	if i.itemType == nil {
		return nil
	}
	return i.itemType
}
