package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_CollectsOptions(t *testing.T) {
	q := Build(
		WithName("Gangnam"),
		WithIDIn([]int64{1, 2}),
		WithNamePrefix("Gang"),
		WithOrderAsc("name"),
		WithOrderDesc("id"),
		WithLimit(10),
		WithOffset(20),
		nil,
	)

	conds := q.Conditions()
	require.Len(t, conds, 3)
	assert.Equal(t, "name = Gangnam", conds[0].String())
	assert.Equal(t, OpIn, conds[1].Operator())
	assert.Equal(t, "name LIKE Gang%", conds[2].String())

	orders := q.Orders()
	require.Len(t, orders, 2)
	assert.True(t, orders[0].Ascending())
	assert.False(t, orders[1].Ascending())
	assert.Equal(t, 10, q.LimitValue())
	assert.Equal(t, 20, q.OffsetValue())
}

func TestQuery_ConditionsReturnsCopy(t *testing.T) {
	q := Build(WithID(7))
	conds := q.Conditions()
	conds[0] = Condition{field: "other"}
	assert.Equal(t, "id", q.Conditions()[0].Field())
}

func TestWithoutPagination(t *testing.T) {
	opts := append([]Option{WithLineID(3)}, WithPagination(5, 15)...)
	opts = append(opts, WithoutPagination())

	q := Build(opts...)
	assert.Zero(t, q.LimitValue())
	assert.Zero(t, q.OffsetValue())
	assert.Len(t, q.Conditions(), 1)
}

type fakeStore struct {
	items []string
}

func (f fakeStore) Find(_ context.Context, _ ...Option) ([]string, error) { return f.items, nil }
func (f fakeStore) FindOne(_ context.Context, _ ...Option) (string, error) {
	return f.items[0], nil
}
func (f fakeStore) Count(_ context.Context, _ ...Option) (int64, error) {
	return int64(len(f.items)), nil
}

func TestCollection_DelegatesToStore(t *testing.T) {
	c := NewCollection[string](fakeStore{items: []string{"a", "b"}})
	ctx := context.Background()

	all, err := c.Find(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, all)

	one, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", one)

	n, err := c.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
