package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pazar/internal/models"
)

func TestNormalizeStringList(t *testing.T) {
	expected := []string{"red", "blue", "green"}

	// The same colors arrive three ways and must normalize identically.
	assert.Equal(t, expected, models.NormalizeStringList("red, blue,  green"))
	assert.Equal(t, expected, models.NormalizeStringList([]string{"red", "blue", "green"}))
	assert.Equal(t, expected, models.NormalizeStringList(`["red","blue","green"]`))
	assert.Equal(t, expected, models.NormalizeStringList([]interface{}{"red", "blue", "green"}))
}

func TestNormalizeStringList_DropsEmptiesAndDuplicates(t *testing.T) {
	assert.Equal(t, []string{"S", "M"}, models.NormalizeStringList("S,,M, S ,"))
	assert.Equal(t, []string{"a"}, models.NormalizeStringList([]string{" a", "a", ""}))
}

func TestNormalizeStringList_Defaults(t *testing.T) {
	assert.Empty(t, models.NormalizeStringList(nil))
	assert.Empty(t, models.NormalizeStringList(""))
	assert.Empty(t, models.NormalizeStringList(42))
	// A broken JSON array falls back to the comma-split path.
	assert.Equal(t, []string{`["red"`, `"blue"`}, models.NormalizeStringList(`["red","blue"`))
}

func TestNormalizeAttributes(t *testing.T) {
	want := map[string]string{"material": "cotton"}

	assert.Equal(t, want, models.NormalizeAttributes(map[string]string{"material": "cotton"}))
	assert.Equal(t, want, models.NormalizeAttributes(map[string]interface{}{"material": "cotton", "weight": 3}))
	assert.Equal(t, want, models.NormalizeAttributes(`{"material":"cotton"}`))

	// Unparseable input degrades to an empty map, never an error.
	assert.Equal(t, map[string]string{}, models.NormalizeAttributes("not json"))
	assert.Equal(t, map[string]string{}, models.NormalizeAttributes(nil))
	assert.Equal(t, map[string]string{}, models.NormalizeAttributes(7))
}

func TestClampMaxQty(t *testing.T) {
	assert.Equal(t, 1, models.ClampMaxQty(0))
	assert.Equal(t, 1, models.ClampMaxQty(-3))
	assert.Equal(t, 3, models.ClampMaxQty(3))
	assert.Equal(t, 5, models.ClampMaxQty(5))
	assert.Equal(t, 5, models.ClampMaxQty(9))
}

func TestValidDiscount(t *testing.T) {
	assert.True(t, models.ValidDiscount(80))
	assert.False(t, models.ValidDiscount(0))
	assert.False(t, models.ValidDiscount(-5))
}

func TestProductUnitPrice(t *testing.T) {
	p := models.Product{Price: 100}
	assert.Equal(t, 100.0, p.UnitPrice())

	d := 80.0
	p.DiscountPrice = &d
	assert.Equal(t, 80.0, p.UnitPrice())
}
