package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListInventory(t *testing.T) {
	var inv List
	it := NewItemType()
	first, second := it.Spawn(), it.Spawn()

	assert.Nil(t, inv.AddItem(first))
	assert.Nil(t, inv.AddItem(second))
	assert.Nil(t, inv.AddItem(nil))
	assert.Equal(t, 2, inv.Len())

	got, ok := inv.GetItem(1)
	require.True(t, ok)
	assert.Same(t, second, got)

	_, ok = inv.GetItem(2)
	assert.False(t, ok)
	_, ok = inv.GetItem(-1)
	assert.False(t, ok)

	removed, ok := inv.RemoveItem(0)
	require.True(t, ok)
	assert.Same(t, first, removed)
	assert.Equal(t, []*Item{second}, inv.Items())

	_, ok = inv.RemoveItem(5)
	assert.False(t, ok)
}

func TestListItemsIsACopy(t *testing.T) {
	var inv List
	inv.AddItem(NewItemType().Spawn())

	items := inv.Items()
	items[0] = nil

	got, _ := inv.GetItem(0)
	assert.NotNil(t, got)
}

func TestRouterByCategory(t *testing.T) {
	var weapons, food List
	inv := NewRouter(func(i *Item) (string, bool) {
		c, ok := Read[category](i)
		return c.Kind, ok
	}).
		Route("weapon", &weapons).
		Route("food", &food)

	sword := NewItemTypeWith(One(category{Kind: "weapon"}))
	apple := NewItemTypeWith(One(category{Kind: "food"}))
	stone := NewItemTypeWith(One(category{Kind: "block"}))
	untyped := NewItemType()

	assert.Nil(t, inv.AddItem(sword.Spawn()))
	assert.Nil(t, inv.AddItem(apple.Spawn()))

	rejected := stone.Spawn()
	assert.Same(t, rejected, inv.AddItem(rejected), "no route for block")
	bare := untyped.Spawn()
	assert.Same(t, bare, inv.AddItem(bare), "no category at all")

	require.Equal(t, 1, weapons.Len())
	assert.Equal(t, 1, food.Len())

	got, _ := weapons.GetItem(0)
	c, ok := Read[category](got)
	require.True(t, ok)
	assert.Equal(t, "weapon", c.Kind)
}

func TestRouterSeesItemOverrides(t *testing.T) {
	var weapons, food List
	inv := NewRouter(func(i *Item) (string, bool) {
		c, ok := Read[category](i)
		return c.Kind, ok
	}).Route("weapon", &weapons).Route("food", &food)

	// A weapon that was turned into food still routes by its own data.
	item := NewItemTypeWith(One(category{Kind: "weapon"})).Spawn()
	Attach(item, category{Kind: "food"})

	assert.Nil(t, inv.AddItem(item))
	assert.Equal(t, 0, weapons.Len())
	assert.Equal(t, 1, food.Len())
}

var (
	_ Inventory     = (*List)(nil)
	_ Selector[int] = (*List)(nil)
	_ Inventory     = (*Router[string])(nil)
)
