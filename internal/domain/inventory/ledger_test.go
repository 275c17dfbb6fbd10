package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/servihogar-api/internal/domain/entity"
)

func TestAdjustment(t *testing.T) {
	cases := []struct {
		name            string
		current, target int
		wantType        string
		wantQty         int
		wantOK          bool
	}{
		{"entrada", 10, 15, entity.MovementTypeIN, 5, true},
		{"salida", 10, 3, entity.MovementTypeOUT, 7, true},
		{"sin cambio", 4, 4, "", 0, false},
		{"desde negativo", -2, 0, entity.MovementTypeIN, 2, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			typ, qty, ok := Adjustment(tc.current, tc.target)
			assert.Equal(t, tc.wantType, typ)
			assert.Equal(t, tc.wantQty, qty)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestBalanceYReconciles(t *testing.T) {
	movs := []*entity.InventoryMovement{
		{Type: entity.MovementTypeIN, Quantity: 10},
		{Type: entity.MovementTypeOUT, Quantity: 3},
		{Type: entity.MovementTypeOUT, Quantity: 3},
		{Type: entity.MovementTypeIN, Quantity: 1},
	}
	assert.Equal(t, 5, Balance(movs))
	assert.True(t, Reconciles(5, movs))
	assert.False(t, Reconciles(4, movs))
	assert.Equal(t, 0, Balance(nil))
}

func TestIsLowStock(t *testing.T) {
	assert.True(t, IsLowStock(4))
	assert.True(t, IsLowStock(-1))
	assert.False(t, IsLowStock(5))
	assert.False(t, IsLowStock(7))
}
