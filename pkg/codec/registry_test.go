package codec

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shrub/pkg/types"
)

type durability struct {
	types.Marker
	Value int `json:"value"`
}

type category struct {
	types.Marker
	Kind string `json:"kind"`
}

type span struct {
	types.Marker
	Min int `json:"min" validate:"gte=0"`
	Max int `json:"max" validate:"gtefield=Min"`
}

type secret struct {
	types.Marker
	Code string `json:"code"`
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, Register[durability](r, "durability"))
	require.NoError(t, Register[category](r, "category"))
	return r
}

func TestRegister(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		name    string
		reg     func() error
		wantErr error
	}{
		{"duplicate name", func() error { return Register[secret](r, "durability") }, ErrDuplicateName},
		{"duplicate type", func() error { return Register[durability](r, "wear") }, ErrDuplicateType},
		{"empty name", func() error { return Register[secret](r, "") }, ErrInvalidName},
		{"uppercase name", func() error { return Register[secret](r, "Secret") }, ErrInvalidName},
		{"name with spaces", func() error { return Register[secret](r, "a b") }, ErrInvalidName},
		{"leading digit", func() error { return Register[secret](r, "1st") }, ErrInvalidName},
		{"too long", func() error { return Register[secret](r, "s"+strings.Repeat("x", 64)) }, ErrInvalidName},
		{"valid name", func() error { return Register[secret](r, "secret.code") }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Equal(t, []string{"category", "durability", "secret.code"}, r.Names())
}

func TestMustRegisterPanics(t *testing.T) {
	r := newTestRegistry(t)
	assert.Panics(t, func() { MustRegister[category](r, "other") })
}

func TestKeyAndNameOf(t *testing.T) {
	r := newTestRegistry(t)

	key, ok := r.Key("durability")
	require.True(t, ok)
	assert.Equal(t, types.KeyOf[durability](), key)

	name, ok := r.NameOf(types.KeyOf[category]())
	require.True(t, ok)
	assert.Equal(t, "category", name)

	_, ok = r.Key("missing")
	assert.False(t, ok)
	_, ok = r.NameOf(types.KeyOf[secret]())
	assert.False(t, ok)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	r := newTestRegistry(t)
	src := types.NewItemTypeWith(types.Pack(durability{Value: 100}, category{Kind: "weapon"}))

	raw, err := r.Encode(src.Data())
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":100}`, string(raw["durability"]))
	assert.JSONEq(t, `{"kind":"weapon"}`, string(raw["category"]))

	g, err := r.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Capacity())

	dst := types.NewItemTypeWith(g)
	d, ok := types.Read[durability](dst)
	require.True(t, ok)
	assert.Equal(t, 100, d.Value)
	c, ok := types.Read[category](dst)
	require.True(t, ok)
	assert.Equal(t, "weapon", c.Kind)
}

func TestEncodeEmptyMap(t *testing.T) {
	r := newTestRegistry(t)
	var m types.DataMap

	raw, err := r.Encode(&m)
	require.NoError(t, err)
	assert.Empty(t, raw)

	g, err := r.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Capacity())
}

func TestEncodeUnregistered(t *testing.T) {
	r := newTestRegistry(t)
	var m types.DataMap
	types.Attach(&m, secret{Code: "x"})

	_, err := r.Encode(&m)
	assert.ErrorIs(t, err, ErrUnregistered)
}

func TestDecodeErrors(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Decode(map[string]json.RawMessage{"nope": json.RawMessage(`{}`)})
	assert.ErrorIs(t, err, ErrUnknownName)

	_, err = r.DecodeOne("durability", []byte(`{"value":"high"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode durability")
}

func TestDecodeOneAttachesOverride(t *testing.T) {
	r := newTestRegistry(t)
	proto := types.NewItemTypeWith(types.One(durability{Value: 100}))
	item := proto.Spawn()

	v, err := r.DecodeOne("durability", []byte(`{"value":42}`))
	require.NoError(t, err)
	item.AttachBulk(types.Pack(v))

	d, _ := types.Read[durability](item)
	assert.Equal(t, 42, d.Value)
	d, _ = types.Read[durability](proto)
	assert.Equal(t, 100, d.Value)
}

func TestDecodeOneChecksInput(t *testing.T) {
	r := newTestRegistry(t)
	require.NoError(t, Register[span](r, "span"))

	tests := []struct {
		name    string
		data    string
		raw     string
		wantErr error
		msg     string
	}{
		{"inverted span", "span", `{"min":9,"max":1}`, ErrInvalidValue, "span.max: gtefield=Min"},
		{"negative min", "span", `{"min":-1,"max":1}`, ErrInvalidValue, "span.min: gte=0"},
		{"unknown field", "durability", `{"valeu":5}`, nil, `unknown field "valeu"`},
		{"trailing data", "durability", `{"value":5} {"value":6}`, nil, "trailing data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.DecodeOne(tt.data, []byte(tt.raw))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	v, err := r.DecodeOne("span", []byte(`{"min":2,"max":2}`))
	require.NoError(t, err)
	assert.Equal(t, span{Min: 2, Max: 2}, v)
}

func TestDecodeStoredIsLenient(t *testing.T) {
	r := newTestRegistry(t)
	require.NoError(t, Register[span](r, "span"))

	g, err := r.Decode(map[string]json.RawMessage{
		"durability": json.RawMessage(`{"value":3,"retired":true}`),
		"span":       json.RawMessage(`{"min":9,"max":1}`),
	})
	require.NoError(t, err)

	it := types.NewItemTypeWith(g)
	d, ok := types.Read[durability](it)
	require.True(t, ok)
	assert.Equal(t, 3, d.Value)
	s, ok := types.Read[span](it)
	require.True(t, ok)
	assert.Equal(t, 9, s.Min)
}

func TestDescribeValidation(t *testing.T) {
	assert.Equal(t, "plain", DescribeValidation(errors.New("plain")))
}
