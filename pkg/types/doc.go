// Package types is the item data core: a type-keyed DataMap of Data values,
// ItemTypes that hold shared defaults, and Items that override them.
//
// Reads on an Item fall back to its ItemType; writes and mutable reads never
// do. Bulk values (None, One, Pack, With) attach several values with a single
// allocation of the backing map.
//
//	sword := types.NewItemTypeWith(types.One(Durability{Value: 100}))
//	item := sword.Spawn()
//	d, _ := types.Read[Durability](item) // 100, inherited
//	types.Attach(item, Durability{Value: 87})
//
// Nothing in this package is safe for concurrent use.
package types
