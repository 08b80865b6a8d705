package types

// ItemType is the prototype shared by a class of items. It owns a DataMap of
// defaults that its Items read through when they hold no value of their own.
//
// ItemTypes compare by identity: two ItemTypes holding identical data are
// still different types. An ItemType must outlive every Item spawned from it;
// it is not safe for concurrent mutation while Items read from it.
type ItemType struct {
	id   string
	name string
	data DataMap
}

// NewItemType returns an empty ItemType. No data storage is allocated.
func NewItemType() *ItemType {
	return &ItemType{id: newID()}
}

// NewItemTypeWith returns an ItemType seeded with b.
func NewItemTypeWith(b Bulk) *ItemType {
	t := NewItemType()
	attachBulk(&t.data, b)
	return t
}

// NewItemTypeWithCapacity returns an empty ItemType with room for n entries.
func NewItemTypeWithCapacity(n int) *ItemType {
	t := NewItemType()
	t.data.Reserve(n)
	return t
}

// RestoreItemType rebuilds an ItemType with a known ID, e.g. from storage.
func RestoreItemType(id, name string, b Bulk) *ItemType {
	t := &ItemType{id: id, name: name}
	attachBulk(&t.data, b)
	return t
}

// ID returns the identifier used by storage. Equality does not use it.
func (t *ItemType) ID() string { return t.id }

// Name returns the optional label set with Named.
func (t *ItemType) Name() string { return t.name }

// Named sets the label and returns t.
func (t *ItemType) Named(name string) *ItemType {
	t.name = name
	return t
}

// Equal reports whether t and o are the same ItemType.
func (t *ItemType) Equal(o *ItemType) bool {
	return t == o
}

// AttachBulk stores every value of b, replacing existing values of the same
// types.
func (t *ItemType) AttachBulk(b Bulk) {
	attachBulk(&t.data, b)
}

// Data returns the ItemType's own map.
func (t *ItemType) Data() *DataMap { return &t.data }

// Spawn returns a new Item of this type with no data of its own.
func (t *ItemType) Spawn() *Item {
	return &Item{id: newID(), itemType: t}
}

// SpawnWith returns a new Item of this type seeded with b.
func (t *ItemType) SpawnWith(b Bulk) *Item {
	i := t.Spawn()
	attachBulk(&i.data, b)
	return i
}

// SpawnWithCapacity returns a new Item with room for n entries of its own.
func (t *ItemType) SpawnWithCapacity(n int) *Item {
	i := t.Spawn()
	i.data.Reserve(n)
	return i
}

// RestoreItem rebuilds an Item of this type with a known ID.
func (t *ItemType) RestoreItem(id string, b Bulk) *Item {
	i := &Item{id: id, itemType: t}
	attachBulk(&i.data, b)
	return i
}

func (t *ItemType) String() string {
	if t.name != "" {
		return t.name
	}
	return t.id
}

func (t *ItemType) own() *DataMap { return &t.data }

func (t *ItemType) fallback() Holder { return nil }
