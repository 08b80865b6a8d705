package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwordScenario(t *testing.T) {
	sword := NewItemTypeWith(One(durability{Value: 100}))
	i1 := sword.Spawn()

	d, ok := Read[durability](i1)
	require.True(t, ok)
	assert.Equal(t, 100, d.Value)

	Attach(i1, durability{Value: 87})
	d, _ = Read[durability](i1)
	assert.Equal(t, 87, d.Value)

	i2 := sword.Spawn()
	d, _ = Read[durability](i2)
	assert.Equal(t, 100, d.Value)

	d, _ = Read[durability](sword)
	assert.Equal(t, 100, d.Value, "prototype must be unchanged")
}

func TestItemFallback(t *testing.T) {
	proto := NewItemTypeWith(Pack(durability{Value: 5}, category{Kind: "weapon"}))
	item := proto.Spawn()

	pd, _ := Read[durability](proto)
	id, ok := Read[durability](item)
	require.True(t, ok)
	assert.Equal(t, pd, id)

	// Prototype changes are seen by items that never overrode the value.
	p, _ := ReadMut[durability](proto)
	p.Value = 6
	id, _ = Read[durability](item)
	assert.Equal(t, 6, id.Value)

	Attach(item, durability{Value: 1})
	p.Value = 7
	id, _ = Read[durability](item)
	assert.Equal(t, 1, id.Value)
}

func TestItemReadMutNeverFallsBack(t *testing.T) {
	proto := NewItemTypeWith(One(durability{Value: 5}))
	item := proto.Spawn()

	_, ok := ReadMut[durability](item)
	assert.False(t, ok)
	assert.False(t, item.Data().Allocated(), "no copy of the prototype value is made")

	// The explicit override path: read the inherited value, attach a copy.
	inherited, _ := Read[durability](item)
	inherited.Value--
	Attach(item, inherited)

	p, ok := ReadMut[durability](item)
	require.True(t, ok)
	p.Value--

	got, _ := Read[durability](item)
	assert.Equal(t, 3, got.Value)
	pd, _ := Read[durability](proto)
	assert.Equal(t, 5, pd.Value)
}

func TestItemAbsentEverywhere(t *testing.T) {
	item := NewItemType().Spawn()

	got, ok := Read[weight](item)
	assert.False(t, ok)
	assert.Zero(t, got)
	_, ok = ReadMut[weight](item)
	assert.False(t, ok)
}

func TestItemAttachBulkLeavesPrototype(t *testing.T) {
	proto := NewItemTypeWith(Pack(durability{Value: 10}, category{Kind: "food"}))
	item := proto.SpawnWith(One(weight{Grams: 100}))
	item.AttachBulk(Pack(durability{Value: 2}, category{Kind: "block"}))

	assert.Equal(t, 3, item.Data().Len())
	assert.Equal(t, 2, proto.Data().Len())

	c, _ := Read[category](proto)
	assert.Equal(t, "food", c.Kind)
	c, _ = Read[category](item)
	assert.Equal(t, "block", c.Kind)
}

func TestRemoveOverrideUncoversPrototype(t *testing.T) {
	proto := NewItemTypeWith(One(durability{Value: 100}))
	item := proto.Spawn()
	Attach(item, durability{Value: 1})

	assert.True(t, Remove[durability](item))
	d, ok := Read[durability](item)
	require.True(t, ok)
	assert.Equal(t, 100, d.Value)

	assert.False(t, Remove[durability](item), "the prototype entry is not removable through an item")
	assert.True(t, proto.Data().Has(KeyOf[durability]()))
}

func TestItemIsOf(t *testing.T) {
	sword := NewItemType()
	axe := NewItemType()
	item := sword.Spawn()

	assert.True(t, item.IsOf(sword))
	assert.False(t, item.IsOf(axe))
}
