package types

// Holder is anything that owns a DataMap: a bare *DataMap, an *ItemType or an
// *Item. Reads through an Item fall back to its ItemType.
type Holder interface {
	own() *DataMap
	fallback() Holder
}

// Attach stores v under KeyOf[T] in h's own map, replacing any previous
// value of T. The value is copied; later changes to v are not seen.
func Attach[T Data](h Holder, v T) {
	box := new(T)
	*box = v
	h.own().insert(KeyOf[T](), box)
}

// Read returns the value of T held by h. For an Item whose own map has no T,
// the ItemType's value is returned. The second result is false when no value
// exists anywhere.
func Read[T Data](h Holder) (T, bool) {
	key := KeyOf[T]()
	for ; h != nil; h = h.fallback() {
		if box, ok := h.own().Lookup(key); ok {
			return *downcast[T](key, box), true
		}
	}
	var zero T
	return zero, false
}

// ReadMut returns a pointer to the value of T in h's own map. It never falls
// back to an ItemType: to change inherited data, Attach an override first.
func ReadMut[T Data](h Holder) (*T, bool) {
	key := KeyOf[T]()
	box, ok := h.own().Lookup(key)
	if !ok {
		return nil, false
	}
	return downcast[T](key, box), true
}

// Remove drops T from h's own map and reports whether it was present. On an
// Item this uncovers the ItemType's value again.
func Remove[T Data](h Holder) bool {
	return h.own().Delete(KeyOf[T]())
}

// attachBulk is the one place that reserves before inserting, so seeding a
// fresh map allocates it once.
func attachBulk(m *DataMap, b Bulk) {
	if b == nil {
		return
	}
	m.Reserve(b.Capacity())
	b.insertInto(m)
}
