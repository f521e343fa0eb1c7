package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SammyMuraya-DA/online-cyber/internal/domain/catalog"
)

func svc(id, name string, price int64) catalog.Service {
	return catalog.Service{
		ID:       id,
		Name:     name,
		Price:    decimal.NewFromInt(price),
		Category: "test",
		Active:   true,
	}
}

func TestCart_Empty(t *testing.T) {
	c := New()

	assert.Equal(t, 0, c.Count())
	assert.True(t, decimal.Zero.Equal(c.Total()))
	assert.Empty(t, c.Items())
}

func TestCart_AddDuplicateIsNoop(t *testing.T) {
	c := New()
	c.Add(svc("1", "Good Conduct Certificate", 1500))
	c.Add(svc("1", "Good Conduct Certificate", 1500))

	assert.Equal(t, 1, c.Count())
	assert.True(t, decimal.NewFromInt(1500).Equal(c.Total()))
}

func TestCart_RemoveAbsentIsNoop(t *testing.T) {
	c := New()
	c.Add(svc("1", "Good Conduct Certificate", 1500))

	c.Remove("999")

	assert.Equal(t, 1, c.Count())
	assert.True(t, c.Contains("1"))
}

func TestCart_TotalTracksSelection(t *testing.T) {
	c := New()
	c.Add(svc("1", "Good Conduct Certificate", 1500))
	c.Add(svc("6", "Web Development", 15000))
	c.Add(svc("7", "Computer Repair", 3000))

	require.Equal(t, 3, c.Count())
	assert.True(t, decimal.NewFromInt(19500).Equal(c.Total()))

	c.Remove("7")
	assert.True(t, decimal.NewFromInt(16500).Equal(c.Total()))

	c.Remove("1")
	c.Remove("6")
	assert.True(t, decimal.Zero.Equal(c.Total()))
}

func TestCart_NoDuplicatesUnderMixedOps(t *testing.T) {
	c := New()
	ops := []struct {
		add bool
		id  string
	}{
		{true, "1"}, {true, "2"}, {true, "1"}, {false, "2"},
		{true, "2"}, {true, "3"}, {false, "9"}, {true, "2"},
	}
	for _, op := range ops {
		if op.add {
			c.Add(svc(op.id, "Service "+op.id, 100))
		} else {
			c.Remove(op.id)
		}
	}

	seen := make(map[string]bool)
	for _, item := range c.Items() {
		require.False(t, seen[item.ID], "duplicate id %s", item.ID)
		seen[item.ID] = true
	}
	assert.Equal(t, 3, c.Count())
}

func TestCart_ItemsPreserveInsertionOrder(t *testing.T) {
	c := New()
	c.Add(svc("6", "Web Development", 15000))
	c.Add(svc("1", "Good Conduct Certificate", 1500))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Web Development", items[0].Name)
	assert.Equal(t, "Good Conduct Certificate", items[1].Name)
}

func TestCart_ItemsReturnsCopy(t *testing.T) {
	c := New()
	c.Add(svc("1", "Good Conduct Certificate", 1500))

	items := c.Items()
	items[0].Name = "mutated"

	assert.Equal(t, "Good Conduct Certificate", c.Items()[0].Name)
}

func TestCart_Clear(t *testing.T) {
	c := New()
	c.Add(svc("1", "Good Conduct Certificate", 1500))
	c.Clear()

	assert.Equal(t, 0, c.Count())
	assert.True(t, decimal.Zero.Equal(c.Total()))
}
