package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssets_AttachValidatesSlot(t *testing.T) {
	d, _ := Load(ProductSchema, productRecord())
	a := NewAssets(ProductSchema)

	_, err := a.Attach(d, MainSlot("name"), "x.png", nil)
	assert.ErrorIs(t, err, ErrNotAssetField)

	_, err = a.Attach(d, MainSlot("missing"), "x.png", nil)
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = a.Attach(d, Slot{Field: "images", Index: 3}, "x.png", nil)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = a.Attach(d, Slot{Field: "mainImage", Index: 0}, "x.png", nil)
	assert.ErrorIs(t, err, ErrWrongKind)

	assert.Zero(t, a.Len())
}

func TestAssets_AttachReplacesPick(t *testing.T) {
	d, _ := Load(ProductSchema, productRecord())
	a := NewAssets(ProductSchema)

	first, err := a.Attach(d, MainSlot("mainImage"), "a.png", []byte("a"))
	require.NoError(t, err)
	second, err := a.Attach(d, MainSlot("mainImage"), "b.png", []byte("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first.Preview, second.Preview)
	require.Equal(t, 1, a.Len())
	assert.Equal(t, "b.png", a.List()[0].Name)
}

func TestAssets_ListOrder(t *testing.T) {
	d, _ := Load(ProductSchema, productRecord())
	_, err := d.AppendListItem("images")
	require.NoError(t, err)
	a := NewAssets(ProductSchema)

	_, err = a.Attach(d, Slot{Field: "images", Index: 1}, "i1.png", nil)
	require.NoError(t, err)
	_, err = a.Attach(d, Slot{Field: "images", Index: 0}, "i0.png", nil)
	require.NoError(t, err)
	_, err = a.Attach(d, MainSlot("mainImage"), "main.png", nil)
	require.NoError(t, err)

	var names []string
	for _, p := range a.List() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"main.png", "i0.png", "i1.png"}, names)
}

func TestAssets_Removed(t *testing.T) {
	d, _ := Load(ProductSchema, productRecord())
	for range 2 {
		_, err := d.AppendListItem("images")
		require.NoError(t, err)
	}
	a := NewAssets(ProductSchema)
	for i, n := range []string{"0.png", "1.png", "2.png"} {
		_, err := a.Attach(d, Slot{Field: "images", Index: i}, n, nil)
		require.NoError(t, err)
	}

	require.NoError(t, d.RemoveListItem("images", 1))
	a.Removed("images", 1)

	list := a.List()
	require.Len(t, list, 2)
	assert.Equal(t, Slot{Field: "images", Index: 0}, list[0].Slot)
	assert.Equal(t, Slot{Field: "images", Index: 1}, list[1].Slot)
	assert.Equal(t, "2.png", list[1].Name)
}

func TestSlot_DisplayName(t *testing.T) {
	assert.Equal(t, "Main Image", MainSlot("mainImage").DisplayName(ProductSchema))
	assert.Equal(t, "Images #2", Slot{Field: "images", Index: 1}.DisplayName(ProductSchema))
	assert.Equal(t, "images[1]", Slot{Field: "images", Index: 1}.String())
}
