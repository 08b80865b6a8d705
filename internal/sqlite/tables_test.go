package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shrub/pkg/store"
	"github.com/mesh-intelligence/shrub/pkg/types"
)

func tables(t *testing.T, b *Backend) (store.Table, store.Table) {
	t.Helper()
	itemTypes, err := b.GetTable(store.ItemTypesTable)
	require.NoError(t, err)
	items, err := b.GetTable(store.ItemsTable)
	require.NoError(t, err)
	return itemTypes, items
}

func TestItemTypes_SetGet(t *testing.T) {
	b := attachedBackend(t, 0)
	itemTypes, _ := tables(t, b)

	sword := types.NewItemTypeWith(types.Pack(
		durability{Value: 100},
		category{Kind: "weapon"},
	)).Named("sword")

	id, err := itemTypes.Set("", sword)
	require.NoError(t, err)
	assert.Equal(t, sword.ID(), id)

	got, err := itemTypes.Get(id)
	require.NoError(t, err)
	assert.Same(t, sword, got, "saved prototype stays resident")

	// Overwrite with new data and a new name.
	types.Attach(sword, durability{Value: 120})
	sword.Named("longsword")
	_, err = itemTypes.Set(id, sword)
	require.NoError(t, err)

	b.protos.Clear()
	got, err = itemTypes.Get(id)
	require.NoError(t, err)
	loaded := got.(*types.ItemType)
	assert.NotSame(t, sword, loaded)
	assert.Equal(t, "longsword", loaded.Name())
	d, ok := types.Read[durability](loaded)
	require.True(t, ok)
	assert.Equal(t, 120, d.Value)
	c, ok := types.Read[category](loaded)
	require.True(t, ok)
	assert.Equal(t, "weapon", c.Kind)
}

func TestItemTypes_SetErrors(t *testing.T) {
	b := attachedBackend(t, 0)
	itemTypes, _ := tables(t, b)

	tests := []struct {
		name    string
		id      string
		data    any
		wantErr error
	}{
		{"wrong entity", "", "sword", store.ErrInvalidData},
		{"nil item type", "", (*types.ItemType)(nil), store.ErrInvalidData},
		{"id mismatch", "other", types.NewItemType(), store.ErrInvalidID},
		{"unregistered data", "", types.NewItemTypeWith(types.One(unregistered{X: 1})), store.ErrInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := itemTypes.Set(tt.id, tt.data)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestItemTypes_GetErrors(t *testing.T) {
	b := attachedBackend(t, 0)
	itemTypes, _ := tables(t, b)

	_, err := itemTypes.Get("")
	assert.ErrorIs(t, err, store.ErrInvalidID)
	_, err = itemTypes.Get("missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestItemTypes_Fetch(t *testing.T) {
	b := attachedBackend(t, 0)
	itemTypes, _ := tables(t, b)

	for _, name := range []string{"sword", "axe", "bow"} {
		_, err := itemTypes.Set("", types.NewItemType().Named(name))
		require.NoError(t, err)
	}

	all, err := itemTypes.Fetch(nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	var names []string
	for _, e := range all {
		names = append(names, e.(*types.ItemType).Name())
	}
	assert.Equal(t, []string{"axe", "bow", "sword"}, names)

	one, err := itemTypes.Fetch(map[string]any{store.FilterName: "bow"})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "bow", one[0].(*types.ItemType).Name())

	none, err := itemTypes.Fetch(map[string]any{store.FilterName: "staff"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = itemTypes.Fetch(map[string]any{store.FilterName: 3})
	assert.ErrorIs(t, err, store.ErrInvalidFilter)
	_, err = itemTypes.Fetch(map[string]any{"color": "red"})
	assert.ErrorIs(t, err, store.ErrInvalidFilter)
}

func TestItemTypes_Delete(t *testing.T) {
	b := attachedBackend(t, 0)
	itemTypes, items := tables(t, b)

	sword := types.NewItemTypeWith(types.One(durability{Value: 100})).Named("sword")
	_, err := itemTypes.Set("", sword)
	require.NoError(t, err)
	item := sword.Spawn()
	_, err = items.Set("", item)
	require.NoError(t, err)

	assert.ErrorIs(t, itemTypes.Delete(sword.ID()), store.ErrTypeInUse)

	require.NoError(t, items.Delete(item.ID()))
	require.NoError(t, itemTypes.Delete(sword.ID()))
	assert.Equal(t, 0, b.protos.Len())

	_, err = itemTypes.Get(sword.ID())
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, itemTypes.Delete(sword.ID()), store.ErrNotFound)
	assert.ErrorIs(t, itemTypes.Delete(""), store.ErrInvalidID)
}

func TestItems_RoundTripKeepsFallback(t *testing.T) {
	b := attachedBackend(t, 0)
	itemTypes, items := tables(t, b)

	sword := types.NewItemTypeWith(types.Pack(
		durability{Value: 100},
		category{Kind: "weapon"},
	)).Named("sword")
	_, err := itemTypes.Set("", sword)
	require.NoError(t, err)

	worn := sword.SpawnWith(types.One(durability{Value: 87}))
	fresh := sword.Spawn()
	_, err = items.Set("", worn)
	require.NoError(t, err)
	_, err = items.Set("", fresh)
	require.NoError(t, err)

	got, err := items.Get(worn.ID())
	require.NoError(t, err)
	loaded := got.(*types.Item)
	assert.Equal(t, worn.ID(), loaded.ID())
	assert.Same(t, sword, loaded.Type())
	assert.Equal(t, 1, loaded.Data().Len(), "only overrides are stored")

	d, ok := types.Read[durability](loaded)
	require.True(t, ok)
	assert.Equal(t, 87, d.Value)
	c, ok := types.Read[category](loaded)
	require.True(t, ok)
	assert.Equal(t, "weapon", c.Kind)

	got, err = items.Get(fresh.ID())
	require.NoError(t, err)
	d, ok = types.Read[durability](got.(*types.Item))
	require.True(t, ok)
	assert.Equal(t, 100, d.Value)
}

func TestItems_PrototypeIdentityAcrossLoads(t *testing.T) {
	b := attachedBackend(t, 0)
	itemTypes, items := tables(t, b)

	sword := types.NewItemTypeWith(types.One(durability{Value: 100})).Named("sword")
	_, err := itemTypes.Set("", sword)
	require.NoError(t, err)
	for range 3 {
		_, err := items.Set("", sword.Spawn())
		require.NoError(t, err)
	}

	b.protos.Clear()
	loaded, err := items.Fetch(map[string]any{store.FilterTypeID: sword.ID()})
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	first := loaded[0].(*types.Item).Type()
	assert.NotSame(t, sword, first)
	for _, e := range loaded[1:] {
		assert.True(t, e.(*types.Item).IsOf(first))
	}

	// Changing the shared prototype is visible through every loaded item.
	types.Attach(first, durability{Value: 5})
	for _, e := range loaded {
		d, _ := types.Read[durability](e.(*types.Item))
		assert.Equal(t, 5, d.Value)
	}
}

func TestItems_EvictionBreaksIdentity(t *testing.T) {
	b := attachedBackend(t, 1)
	itemTypes, items := tables(t, b)

	sword := types.NewItemType().Named("sword")
	axe := types.NewItemType().Named("axe")
	_, err := itemTypes.Set("", sword)
	require.NoError(t, err)
	item := sword.Spawn()
	_, err = items.Set("", item)
	require.NoError(t, err)
	_, err = itemTypes.Set("", axe) // evicts sword
	require.NoError(t, err)

	got, err := items.Get(item.ID())
	require.NoError(t, err)
	reloaded := got.(*types.Item).Type()
	assert.NotSame(t, sword, reloaded)
	assert.Equal(t, sword.ID(), reloaded.ID())

	got, err = items.Get(item.ID())
	require.NoError(t, err)
	assert.Same(t, reloaded, got.(*types.Item).Type())
}

func TestItems_SetErrors(t *testing.T) {
	b := attachedBackend(t, 0)
	_, items := tables(t, b)

	unsaved := types.NewItemType()
	tests := []struct {
		name    string
		id      string
		data    any
		wantErr error
	}{
		{"wrong entity", "", types.NewItemType(), store.ErrInvalidData},
		{"nil item", "", (*types.Item)(nil), store.ErrInvalidData},
		{"id mismatch", "other", unsaved.Spawn(), store.ErrInvalidID},
		{"type not saved", "", unsaved.Spawn(), store.ErrTypeNotSaved},
		{"unregistered data", "", unsaved.SpawnWith(types.One(unregistered{})), store.ErrInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := items.Set(tt.id, tt.data)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestItems_UnsetOverride(t *testing.T) {
	b := attachedBackend(t, 0)
	itemTypes, items := tables(t, b)

	sword := types.NewItemTypeWith(types.One(durability{Value: 100})).Named("sword")
	_, err := itemTypes.Set("", sword)
	require.NoError(t, err)
	item := sword.SpawnWith(types.One(durability{Value: 1}))
	_, err = items.Set("", item)
	require.NoError(t, err)

	require.True(t, types.Remove[durability](item))
	_, err = items.Set("", item)
	require.NoError(t, err)

	got, err := items.Get(item.ID())
	require.NoError(t, err)
	loaded := got.(*types.Item)
	assert.Equal(t, 0, loaded.Data().Len())
	d, _ := types.Read[durability](loaded)
	assert.Equal(t, 100, d.Value)
}

func TestItems_DeleteAndFetch(t *testing.T) {
	b := attachedBackend(t, 0)
	itemTypes, items := tables(t, b)

	sword := types.NewItemType().Named("sword")
	axe := types.NewItemType().Named("axe")
	for _, it := range []*types.ItemType{sword, axe} {
		_, err := itemTypes.Set("", it)
		require.NoError(t, err)
	}
	s1, s2, a1 := sword.Spawn(), sword.Spawn(), axe.Spawn()
	for _, it := range []*types.Item{s1, s2, a1} {
		_, err := items.Set("", it)
		require.NoError(t, err)
	}

	all, err := items.Fetch(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, items.Delete(s1.ID()))
	assert.ErrorIs(t, items.Delete(s1.ID()), store.ErrNotFound)
	assert.ErrorIs(t, items.Delete(""), store.ErrInvalidID)

	swords, err := items.Fetch(map[string]any{store.FilterTypeID: sword.ID()})
	require.NoError(t, err)
	require.Len(t, swords, 1)
	assert.Equal(t, s2.ID(), swords[0].(*types.Item).ID())

	_, err = items.Get(s1.ID())
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = items.Fetch(map[string]any{"name": "sword"})
	assert.ErrorIs(t, err, store.ErrInvalidFilter)
}
