package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerReserveRelease_StaysInBounds(t *testing.T) {
	l := Ledger{Total: 3, Available: 3}

	// Занимаем больше, чем есть: лишние попытки отказывают, счетчик
	// не уходит в минус.
	for i := 0; i < 5; i++ {
		err := l.Reserve()
		if i < 3 {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, ErrExhausted)
		}
		assert.GreaterOrEqual(t, l.Available, 0)
	}
	assert.Equal(t, 0, l.Available)
	assert.Equal(t, 3, l.Committed())

	// Возвращаем больше, чем занимали: доступное не превышает общее.
	for i := 0; i < 5; i++ {
		l.Release()
		assert.LessOrEqual(t, l.Available, l.Total)
	}
	assert.Equal(t, 3, l.Available)
	assert.Equal(t, 0, l.Committed())
}

func TestLedgerResize(t *testing.T) {
	l := Ledger{Total: 5, Available: 2} // занято 3

	assert.ErrorIs(t, l.Resize(0), ErrInvalidCapacity)
	assert.ErrorIs(t, l.Resize(-1), ErrInvalidCapacity)
	assert.ErrorIs(t, l.Resize(2), ErrCapacityBelowCommitted)
	// Неудачный resize ничего не меняет.
	assert.Equal(t, 5, l.Total)
	assert.Equal(t, 2, l.Available)

	assert.NoError(t, l.Resize(3))
	assert.Equal(t, 3, l.Total)
	assert.Equal(t, 0, l.Available)

	assert.NoError(t, l.Resize(10))
	assert.Equal(t, 10, l.Total)
	assert.Equal(t, 7, l.Available)
}
