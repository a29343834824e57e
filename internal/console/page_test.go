package console

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int64
	Name string
}

func newItemPage(size int) *Page[item] {
	return NewPage(size, func(i item) int64 { return i.ID }, func(i item) string { return i.Name })
}

func fetchItems(items ...item) func(context.Context) ([]item, error) {
	return func(context.Context) ([]item, error) { return items, nil }
}

func names(items []item) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.Name)
	}
	return out
}

func TestPage_LoadStates(t *testing.T) {
	p := newItemPage(2)
	assert.Equal(t, StateIdle, p.State())

	var during State
	err := p.Load(context.Background(), func(context.Context) ([]item, error) {
		during = p.State()
		return []item{{1, "Rex"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, StateLoading, during)
	assert.Equal(t, StateReady, p.State())
	assert.Equal(t, 1, p.Len())

	boom := errors.New("boom")
	err = p.Load(context.Background(), func(context.Context) ([]item, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateError, p.State())
	assert.ErrorIs(t, p.Err(), boom)
	assert.Equal(t, 1, p.Len(), "keeps previous items")
}

func TestPage_SearchByLabelOrID(t *testing.T) {
	p := newItemPage(0)
	require.NoError(t, p.Load(context.Background(), fetchItems(
		item{1, "Rex"}, item{2, "Mimi"}, item{13, "Thor"}, item{4, "REXona"},
	)))

	p.Search("  rEx ")
	assert.Equal(t, []string{"Rex", "REXona"}, names(p.Filtered()))

	p.Search("3")
	assert.Equal(t, []string{"Thor"}, names(p.Filtered()))

	p.Search("")
	assert.Len(t, p.Filtered(), 4)
}

func TestPage_ShowNAndShowAll(t *testing.T) {
	p := newItemPage(2)
	require.NoError(t, p.Load(context.Background(), fetchItems(
		item{1, "Ana"}, item{2, "Bia"}, item{3, "Caio"}, item{4, "Ana Paula"},
	)))

	assert.Equal(t, []string{"Ana", "Bia"}, names(p.Visible()))
	assert.True(t, p.HasMore())

	p.ToggleShowAll()
	assert.Len(t, p.Visible(), 4)
	assert.False(t, p.HasMore())

	p.ToggleShowAll()
	p.Search("ana")
	assert.Equal(t, []string{"Ana", "Ana Paula"}, names(p.Visible()))
	assert.False(t, p.HasMore())
}

func TestPage_SelectionToggle(t *testing.T) {
	p := newItemPage(5)
	require.NoError(t, p.Load(context.Background(), fetchItems(item{1, "Rex"}, item{2, "Mimi"})))

	_, ok := p.Selected()
	assert.False(t, ok)

	p.Toggle(2)
	sel, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, "Mimi", sel.Name)

	p.Toggle(1)
	sel, _ = p.Selected()
	assert.Equal(t, "Rex", sel.Name)

	p.Toggle(1)
	_, ok = p.Selected()
	assert.False(t, ok)

	// recarga sin el seleccionado limpia la selección
	p.Toggle(2)
	require.NoError(t, p.Load(context.Background(), fetchItems(item{1, "Rex"})))
	assert.Zero(t, p.SelectedID())
}

func TestPage_Upsert(t *testing.T) {
	p := newItemPage(5)
	require.NoError(t, p.Load(context.Background(), fetchItems(item{1, "Rex"}, item{2, "Mimi"})))

	p.Upsert(item{2, "Mimi II"})
	p.Upsert(item{3, "Thor"})
	assert.Equal(t, []string{"Rex", "Mimi II", "Thor"}, names(p.Items()))

	assert.Equal(t, 3, p.Len())
}
