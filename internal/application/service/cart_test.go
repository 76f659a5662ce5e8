package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	"github.com/zaikabox/zaikabox-api/pkg/apperror"
)

type catalogBuilder struct {
	items map[uuid.UUID]*entity.MenuItem
}

func newCatalog() *catalogBuilder {
	return &catalogBuilder{items: make(map[uuid.UUID]*entity.MenuItem)}
}

func (b *catalogBuilder) item(name string, taxRate float64, available bool) *entity.MenuItem {
	item := &entity.MenuItem{
		ID:          uuid.New(),
		CategoryID:  uuid.New(),
		Name:        name,
		IsAvailable: available,
		Category:    entity.Category{Name: name + " category", TaxRate: taxRate},
	}
	item.Category.ID = item.CategoryID
	b.items[item.ID] = item
	return item
}

func addSize(item *entity.MenuItem, name string, price int64, available bool) *entity.ItemSize {
	size := entity.ItemSize{ID: uuid.New(), ItemID: item.ID, Name: name, Price: price, IsAvailable: available}
	item.Sizes = append(item.Sizes, size)
	return &item.Sizes[len(item.Sizes)-1]
}

func addAddOn(item *entity.MenuItem, name string, price int64, available bool) *entity.AddOn {
	addOn := entity.AddOn{ID: uuid.New(), Name: name, Price: price, IsAvailable: available}
	item.AddOns = append(item.AddOns, addOn)
	return &item.AddOns[len(item.AddOns)-1]
}

func TestValidateCartAllValid(t *testing.T) {
	c := newCatalog()
	pizza := c.item("Margherita", 5, true)
	size := addSize(pizza, "Medium", 29900, true)
	cheese := addAddOn(pizza, "Extra Cheese", 2000, true)

	lines := []CartLine{{
		ItemID:   pizza.ID,
		SizeID:   size.ID,
		AddOnIDs: []uuid.UUID{cheese.ID},
		Quantity: 2,
	}}

	valid, rejected := ValidateCart(lines, c.items)

	require.Len(t, valid, 1)
	assert.Empty(t, rejected)
	assert.Equal(t, "Margherita", valid[0].ItemName)
	assert.Equal(t, "Medium", valid[0].SizeName)
	assert.Equal(t, int64(29900), valid[0].SizePrice)
	assert.Equal(t, float64(5), valid[0].TaxRate)
	assert.Equal(t, int64(63800), valid[0].Subtotal())
}

func TestValidateCartUnknownItem(t *testing.T) {
	c := newCatalog()

	lines := []CartLine{{ItemID: uuid.New(), SizeID: uuid.New(), Quantity: 1}}
	valid, rejected := ValidateCart(lines, c.items)

	assert.Empty(t, valid)
	require.Len(t, rejected, 1)
	assert.Equal(t, apperror.ReasonItemUnavailable, rejected[0].Reason)
	assert.Equal(t, 0, rejected[0].Index)
}

func TestValidateCartUnavailableItem(t *testing.T) {
	c := newCatalog()
	pizza := c.item("Margherita", 5, false)
	size := addSize(pizza, "Medium", 29900, true)

	lines := []CartLine{{ItemID: pizza.ID, SizeID: size.ID, Quantity: 1}}
	_, rejected := ValidateCart(lines, c.items)

	require.Len(t, rejected, 1)
	assert.Equal(t, apperror.ReasonItemUnavailable, rejected[0].Reason)
}

func TestValidateCartDeletedSize(t *testing.T) {
	c := newCatalog()
	pizza := c.item("Margherita", 5, true)
	addSize(pizza, "Medium", 29900, true)

	// Size id the client still has, no longer on the item
	lines := []CartLine{{ItemID: pizza.ID, SizeID: uuid.New(), Quantity: 1}}
	valid, rejected := ValidateCart(lines, c.items)

	assert.Empty(t, valid)
	require.Len(t, rejected, 1)
	assert.Equal(t, apperror.ReasonSizeUnavailable, rejected[0].Reason)
}

func TestValidateCartUnavailableAddOnRejectsWholeLine(t *testing.T) {
	c := newCatalog()
	pizza := c.item("Margherita", 5, true)
	size := addSize(pizza, "Medium", 29900, true)
	cheese := addAddOn(pizza, "Extra Cheese", 2000, false)

	lines := []CartLine{{
		ItemID:   pizza.ID,
		SizeID:   size.ID,
		AddOnIDs: []uuid.UUID{cheese.ID},
		Quantity: 1,
	}}
	valid, rejected := ValidateCart(lines, c.items)

	assert.Empty(t, valid)
	require.Len(t, rejected, 1)
	assert.Equal(t, apperror.ReasonAddOnUnavailable, rejected[0].Reason)
}

func TestValidateCartPartition(t *testing.T) {
	c := newCatalog()
	pizza := c.item("Margherita", 5, true)
	pizzaSize := addSize(pizza, "Medium", 29900, true)
	burger := c.item("Veg Burger", 5, false)
	burgerSize := addSize(burger, "Regular", 9900, true)

	lines := []CartLine{
		{ItemID: pizza.ID, SizeID: pizzaSize.ID, Quantity: 1},
		{ItemID: burger.ID, SizeID: burgerSize.ID, Quantity: 1},
	}
	valid, rejected := ValidateCart(lines, c.items)

	require.Len(t, valid, 1)
	require.Len(t, rejected, 1)
	assert.Equal(t, "Margherita", valid[0].ItemName)
	assert.Equal(t, 1, rejected[0].Index)
}

func TestValidateCartDeterministic(t *testing.T) {
	c := newCatalog()
	pizza := c.item("Margherita", 5, true)
	size := addSize(pizza, "Medium", 29900, true)

	lines := []CartLine{{ItemID: pizza.ID, SizeID: size.ID, Quantity: 3}}

	first, _ := ValidateCart(lines, c.items)
	second, _ := ValidateCart(lines, c.items)

	assert.Equal(t, first, second)
}
