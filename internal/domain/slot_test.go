package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSlots(t *testing.T) {
	slots := AllSlots()

	require.Len(t, slots, SlotsPerDay)

	for i, slot := range slots {
		assert.Equal(t, i, slot.ID)
		assert.Equal(t, i, slot.StartHour)
		assert.Equal(t, i+1, slot.EndHour)
	}

	// Последний слот заканчивается в 24, а не в 0 следующего дня
	assert.Equal(t, 24, slots[23].EndHour)
}

func TestAllSlots_Deterministic(t *testing.T) {
	assert.Equal(t, AllSlots(), AllSlots())
}

func TestSlotByID(t *testing.T) {
	slot, err := SlotByID(6)
	require.NoError(t, err)
	assert.Equal(t, 6, slot.ID)
	assert.Equal(t, "6:00 AM - 7:00 AM", slot.DisplayName)

	// Повторный вызов возвращает тот же дескриптор
	again, err := SlotByID(6)
	require.NoError(t, err)
	assert.Equal(t, slot, again)
}

func TestSlotByID_OutOfRange(t *testing.T) {
	_, err := SlotByID(-1)
	assert.ErrorIs(t, err, ErrInvalidSlotID)

	_, err = SlotByID(24)
	assert.ErrorIs(t, err, ErrInvalidSlotID)
}

func TestSlotDisplayName(t *testing.T) {
	tests := []struct {
		slotID   int
		expected string
	}{
		{0, "12:00 AM - 1:00 AM"},
		{6, "6:00 AM - 7:00 AM"},
		{11, "11:00 AM - 12:00 PM"},
		{12, "12:00 PM - 1:00 PM"},
		{13, "1:00 PM - 2:00 PM"},
		{23, "11:00 PM - 12:00 AM"},
	}

	for _, tt := range tests {
		slot, err := SlotByID(tt.slotID)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, slot.DisplayName, "slot %d", tt.slotID)
	}
}

func TestSlotIDFromTimeRange(t *testing.T) {
	assert.Equal(t, 6, SlotIDFromTimeRange("06:00-07:00"))
	assert.Equal(t, 23, SlotIDFromTimeRange("23:00-00:00"))
	assert.Equal(t, 0, SlotIDFromTimeRange("00:00-01:00"))

	// Некорректный формат отображается в слот 0
	assert.Equal(t, 0, SlotIDFromTimeRange("garbage"))
	assert.Equal(t, 0, SlotIDFromTimeRange("25:00-26:00"))
	assert.Equal(t, 0, SlotIDFromTimeRange(""))
}
