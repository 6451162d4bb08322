package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogName(t *testing.T) {
	assert.Equal(t, "Green Chilli", CatalogName("  green   CHILLI "))
	assert.Equal(t, "Tomato", CatalogName("tomato"))
	assert.Equal(t, "", CatalogName("   "))
}

func TestCreateItem(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	item, err := f.items.CreateItem(ctx, CreateItemRequest{Name: "bottle gourd"})
	require.NoError(t, err)
	assert.Equal(t, "Bottle Gourd", item.Name)
	assert.Regexp(t, `^ITEM\d+`, item.ItemNo)

	_, err = f.items.CreateItem(ctx, CreateItemRequest{Name: "BOTTLE GOURD"})
	assertKind(t, ErrConflict, err)

	_, err = f.items.CreateItem(ctx, CreateItemRequest{Name: " "})
	assertKind(t, ErrValidation, err)
}

func TestCreateItemsSkipsExisting(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.items.CreateItem(ctx, CreateItemRequest{Name: "Tomato"})
	require.NoError(t, err)

	res, err := f.items.CreateItems(ctx, BulkCreateItemsRequest{Items: []string{"tomato", "onion", "Onion", "okra", ""}})
	require.NoError(t, err)
	assert.Len(t, res.Created, 2)
	assert.Equal(t, []string{"Tomato"}, res.Skipped)

	_, err = f.items.CreateItems(ctx, BulkCreateItemsRequest{})
	assertKind(t, ErrValidation, err)

	list, err := f.items.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Okra", list[0].Name)
	assert.Equal(t, "Tomato", list[2].Name)
}

func TestSearchAndDeleteItems(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.items.CreateItems(ctx, BulkCreateItemsRequest{Items: []string{"bitter gourd", "bottle gourd", "carrot"}})
	require.NoError(t, err)

	found, err := f.items.SearchItems(ctx, "GOURD")
	require.NoError(t, err)
	require.Len(t, found, 2)

	_, err = f.items.SearchItems(ctx, "")
	assertKind(t, ErrValidation, err)

	require.NoError(t, f.items.DeleteItem(ctx, found[0].ID.String()))
	assertKind(t, ErrNotFound, f.items.DeleteItem(ctx, found[0].ID.String()))
}
