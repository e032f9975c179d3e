package create_reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

func TestMergeSlots(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, mergeSlots(nil))
	})

	t.Run("single slot", func(t *testing.T) {
		merged := mergeSlots([]SlotInput{{StartTime: "10:00", EndTime: "11:00", Price: 30}})
		require.Len(t, merged, 1)
		assert.Equal(t, types.TimeString("10:00"), merged[0].StartTime)
		assert.Equal(t, types.TimeString("11:00"), merged[0].EndTime)
		assert.Equal(t, 30.0, merged[0].Price)
	})

	t.Run("adjacent slots merge with summed price", func(t *testing.T) {
		merged := mergeSlots([]SlotInput{
			{StartTime: "10:00", EndTime: "11:00", Price: 30},
			{StartTime: "11:00", EndTime: "12:00", Price: 45},
		})
		require.Len(t, merged, 1)
		assert.Equal(t, types.TimeString("10:00"), merged[0].StartTime)
		assert.Equal(t, types.TimeString("12:00"), merged[0].EndTime)
		assert.Equal(t, 75.0, merged[0].Price)
	})

	t.Run("gap keeps intervals separate", func(t *testing.T) {
		merged := mergeSlots([]SlotInput{
			{StartTime: "10:00", EndTime: "11:00", Price: 30},
			{StartTime: "12:00", EndTime: "13:00", Price: 30},
		})
		require.Len(t, merged, 2)
		assert.Equal(t, types.TimeString("11:00"), merged[0].EndTime)
		assert.Equal(t, types.TimeString("12:00"), merged[1].StartTime)
	})

	t.Run("unsorted input is sorted before merging", func(t *testing.T) {
		merged := mergeSlots([]SlotInput{
			{StartTime: "12:00", EndTime: "13:00", Price: 30},
			{StartTime: "10:00", EndTime: "11:00", Price: 30},
			{StartTime: "11:00", EndTime: "12:00", Price: 30},
		})
		require.Len(t, merged, 1)
		assert.Equal(t, types.TimeString("10:00"), merged[0].StartTime)
		assert.Equal(t, types.TimeString("13:00"), merged[0].EndTime)
		assert.Equal(t, 90.0, merged[0].Price)
	})

	t.Run("mixed chains and gaps", func(t *testing.T) {
		merged := mergeSlots([]SlotInput{
			{StartTime: "08:00", EndTime: "09:00", Price: 20},
			{StartTime: "09:00", EndTime: "10:00", Price: 20},
			{StartTime: "14:00", EndTime: "15:00", Price: 35},
			{StartTime: "15:00", EndTime: "16:00", Price: 35},
			{StartTime: "20:00", EndTime: "21:00", Price: 50},
		})
		require.Len(t, merged, 3)
		assert.Equal(t, 40.0, merged[0].Price)
		assert.Equal(t, 70.0, merged[1].Price)
		assert.Equal(t, 50.0, merged[2].Price)
	})

	t.Run("merged price is rounded", func(t *testing.T) {
		merged := mergeSlots([]SlotInput{
			{StartTime: "10:00", EndTime: "11:00", Price: 10.105},
			{StartTime: "11:00", EndTime: "12:00", Price: 10.10},
		})
		require.Len(t, merged, 1)
		assert.Equal(t, 20.21, merged[0].Price)
	})
}

func TestNormalizeCreditID(t *testing.T) {
	id := func(v int64) *int64 { return &v }

	assert.Nil(t, normalizeCreditID(nil))
	assert.Nil(t, normalizeCreditID(id(0)))
	assert.Nil(t, normalizeCreditID(id(-1)))
	assert.Nil(t, normalizeCreditID(id(-7)))

	got := normalizeCreditID(id(42))
	require.NotNil(t, got)
	assert.Equal(t, int64(42), *got)
}
