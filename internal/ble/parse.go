package ble

import (
	"fmt"
	"sync"
)

// ParseHeartRateMeasurement decodes a Heart Rate Measurement notification.
// Flag bit 0 selects UINT8 vs UINT16 heart rate encoding.
// See: https://www.bluetooth.com/specifications/specs/heart-rate-service-1-0/
func ParseHeartRateMeasurement(buf []byte) (float64, error) {
	if len(buf) < 2 {
		return 0, fmt.Errorf("heart rate data too short: %d bytes", len(buf))
	}

	flags := buf[0]
	if flags&0x01 != 0 {
		if len(buf) < 3 {
			return 0, fmt.Errorf("heart rate UINT16 data too short: %d bytes", len(buf))
		}
		return float64(uint16(buf[1]) | uint16(buf[2])<<8), nil
	}
	return float64(buf[1]), nil
}

// CadenceTracker turns cumulative CSC crank readings into an instantaneous
// cadence. The cumulative counters are UINT16 and roll over; unsigned
// subtraction handles that for free.
// See: https://www.bluetooth.com/specifications/specs/cycling-speed-and-cadence-service-1-0/
type CadenceTracker struct {
	mu          sync.Mutex
	lastRevs    uint16
	lastEvent   uint16
	hasPrevious bool
}

// Update decodes one CSC Measurement notification and returns the cadence in
// revolutions per minute. ok is false when the notification carries no crank
// data, on the first reading, or when no time has passed.
func (c *CadenceTracker) Update(buf []byte) (rpm float64, ok bool, err error) {
	if len(buf) < 1 {
		return 0, false, fmt.Errorf("CSC data too short: %d bytes", len(buf))
	}

	flags := buf[0]
	offset := 1
	if flags&0x01 != 0 { // wheel data present: 4 bytes revolutions + 2 bytes time
		offset += 6
	}
	if flags&0x02 == 0 { // no crank data in this notification
		return 0, false, nil
	}
	if offset+4 > len(buf) {
		return 0, false, fmt.Errorf("CSC data too short for crank data at offset %d", offset)
	}

	revs := uint16(buf[offset]) | uint16(buf[offset+1])<<8
	event := uint16(buf[offset+2]) | uint16(buf[offset+3])<<8

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasPrevious {
		c.lastRevs = revs
		c.lastEvent = event
		c.hasPrevious = true
		return 0, false, nil
	}

	revDiff := revs - c.lastRevs
	timeDiff := event - c.lastEvent
	c.lastRevs = revs
	c.lastEvent = event

	if timeDiff == 0 {
		return 0, false, nil
	}

	// event time is in 1/1024 second units
	rpm = float64(revDiff) * 60.0 * 1024.0 / float64(timeDiff)
	if rpm < 0 || rpm > 300 {
		return 0, false, nil
	}
	return rpm, true, nil
}
