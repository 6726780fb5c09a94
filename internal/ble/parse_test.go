package ble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeartRateUint8(t *testing.T) {
	bpm, err := ParseHeartRateMeasurement([]byte{0x00, 142})
	require.NoError(t, err)
	assert.Equal(t, 142.0, bpm)
}

func TestParseHeartRateUint16(t *testing.T) {
	// flag bit 0 set: little-endian uint16 value 300
	bpm, err := ParseHeartRateMeasurement([]byte{0x01, 0x2C, 0x01})
	require.NoError(t, err)
	assert.Equal(t, 300.0, bpm)
}

func TestParseHeartRateTooShort(t *testing.T) {
	_, err := ParseHeartRateMeasurement([]byte{0x00})
	assert.Error(t, err)
	_, err = ParseHeartRateMeasurement([]byte{0x01, 0x2C})
	assert.Error(t, err)
}

func cscCrank(revs, event uint16) []byte {
	return []byte{0x02, byte(revs), byte(revs >> 8), byte(event), byte(event >> 8)}
}

func TestCadenceTracker(t *testing.T) {
	var tracker CadenceTracker

	// first reading only seeds the tracker
	_, ok, err := tracker.Update(cscCrank(100, 0))
	require.NoError(t, err)
	assert.False(t, ok)

	// 2 revolutions in exactly 1 second (1024 ticks) = 120 rpm
	rpm, ok, err := tracker.Update(cscCrank(102, 1024))
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 120.0, rpm, 0.001)
}

func TestCadenceTrackerRollover(t *testing.T) {
	var tracker CadenceTracker

	_, _, err := tracker.Update(cscCrank(65535, 65024))
	require.NoError(t, err)

	// counters wrap: 3 revolutions, 1024 ticks across the rollover
	rpm, ok, err := tracker.Update(cscCrank(2, 512))
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 180.0, rpm, 0.001)
}

func TestCadenceTrackerNoCrankData(t *testing.T) {
	var tracker CadenceTracker
	_, ok, err := tracker.Update([]byte{0x00})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCadenceTrackerSkipsWheelData(t *testing.T) {
	var tracker CadenceTracker

	withWheel := func(revs, event uint16) []byte {
		buf := []byte{0x03, 0, 0, 0, 0, 0, 0} // wheel revolutions + event time, ignored
		return append(buf, byte(revs), byte(revs>>8), byte(event), byte(event>>8))
	}

	_, _, err := tracker.Update(withWheel(10, 0))
	require.NoError(t, err)
	rpm, ok, err := tracker.Update(withWheel(11, 1024))
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 60.0, rpm, 0.001)
}

func TestCadenceTrackerZeroTimeDelta(t *testing.T) {
	var tracker CadenceTracker
	_, _, err := tracker.Update(cscCrank(10, 500))
	require.NoError(t, err)
	_, ok, err := tracker.Update(cscCrank(12, 500))
	require.NoError(t, err)
	assert.False(t, ok, "no elapsed event time, no cadence")
}

func TestCadenceTrackerTooShort(t *testing.T) {
	var tracker CadenceTracker
	_, _, err := tracker.Update([]byte{0x02, 0x01})
	assert.Error(t, err)
	_, _, err = tracker.Update(nil)
	assert.Error(t, err)
}
