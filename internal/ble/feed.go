package ble

import (
	"fmt"
	"log"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/runvoice/coach-engine/internal/events"
)

// SampleKind identifies which sensor produced a sample.
type SampleKind int

const (
	SampleHeartRate SampleKind = iota // 0
	SampleCadence                     // 1
)

// Sample is one timestamped sensor reading.
type Sample struct {
	Kind  SampleKind
	Value float64
	At    time.Time
}

// Feed scans for a heart-rate strap and a cadence sensor, subscribes to
// their measurement characteristics, and publishes decoded samples. Sensor
// dropouts are the engine's problem, not the feed's: the feed just goes
// quiet and the sensor-mode state machine downgrades.
type Feed struct {
	adapter *bluetooth.Adapter
	logger  *log.Logger
	samples *events.Feed[Sample]
	cadence CadenceTracker

	devices []bluetooth.Device
}

// NewFeed builds a feed on the default adapter.
func NewFeed(logger *log.Logger) *Feed {
	if logger == nil {
		panic("ble.Feed: logger must not be nil")
	}
	return &Feed{
		adapter: bluetooth.DefaultAdapter,
		logger:  logger,
		samples: events.NewFeed[Sample](true),
	}
}

// Samples is the feed decoded sensor readings are published on.
func (f *Feed) Samples() *events.Feed[Sample] {
	return f.samples
}

// Start enables the adapter, finds one device per wanted service, and
// subscribes to its notifications. Blocks through scanning and connection;
// run it under the panic-safe launcher.
func (f *Feed) Start(scanTimeout time.Duration) error {
	if err := f.adapter.Enable(); err != nil {
		return fmt.Errorf("enabling BLE adapter: %w", err)
	}

	wanted := []bluetooth.UUID{
		bluetooth.ServiceUUIDHeartRate,
		bluetooth.ServiceUUIDCyclingSpeedAndCadence,
	}
	found, err := f.scan(wanted, scanTimeout)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return fmt.Errorf("no heart-rate or cadence devices found within %s", scanTimeout)
	}

	for svc, result := range found {
		if err := f.connect(svc, result); err != nil {
			f.logger.Printf("BLE: connecting %s for %s: %v", result.Address, svc, err)
		}
	}
	return nil
}

// scan collects the first advertiser of each wanted service, stopping once
// every service has a device or the timeout passes.
func (f *Feed) scan(wanted []bluetooth.UUID, timeout time.Duration) (map[bluetooth.UUID]bluetooth.ScanResult, error) {
	found := make(map[bluetooth.UUID]bluetooth.ScanResult)
	deadline := time.Now().Add(timeout)

	err := f.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
		for _, svc := range wanted {
			if _, ok := found[svc]; ok {
				continue
			}
			if result.AdvertisementPayload.HasServiceUUID(svc) {
				f.logger.Printf("BLE: found %s (%s) advertising %s",
					result.LocalName(), result.Address, svc)
				found[svc] = result
			}
		}
		if len(found) == len(wanted) || time.Now().After(deadline) {
			adapter.StopScan()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("scanning: %w", err)
	}
	return found, nil
}

func (f *Feed) connect(svc bluetooth.UUID, result bluetooth.ScanResult) error {
	device, err := f.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	f.devices = append(f.devices, device)

	switch svc {
	case bluetooth.ServiceUUIDHeartRate:
		return f.subscribe(device, svc, bluetooth.CharacteristicUUIDHeartRateMeasurement, f.onHeartRate)
	case bluetooth.ServiceUUIDCyclingSpeedAndCadence:
		return f.subscribe(device, svc, bluetooth.CharacteristicUUIDCSCMeasurement, f.onCSC)
	}
	return nil
}

func (f *Feed) subscribe(device bluetooth.Device, svc, char bluetooth.UUID, handler func([]byte)) error {
	services, err := device.DiscoverServices([]bluetooth.UUID{svc})
	if err != nil {
		return fmt.Errorf("discovering service %s: %w", svc, err)
	}
	if len(services) == 0 {
		return fmt.Errorf("service %s not offered", svc)
	}
	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{char})
	if err != nil {
		return fmt.Errorf("discovering characteristic %s: %w", char, err)
	}
	if len(chars) == 0 {
		return fmt.Errorf("characteristic %s not offered", char)
	}
	if err := chars[0].EnableNotifications(handler); err != nil {
		return fmt.Errorf("enabling notifications on %s: %w", char, err)
	}
	return nil
}

func (f *Feed) onHeartRate(buf []byte) {
	bpm, err := ParseHeartRateMeasurement(buf)
	if err != nil {
		f.logger.Printf("BLE: bad heart rate notification: %v", err)
		return
	}
	f.samples.Publish(Sample{Kind: SampleHeartRate, Value: bpm, At: time.Now()})
}

func (f *Feed) onCSC(buf []byte) {
	rpm, ok, err := f.cadence.Update(buf)
	if err != nil {
		f.logger.Printf("BLE: bad CSC notification: %v", err)
		return
	}
	if ok {
		f.samples.Publish(Sample{Kind: SampleCadence, Value: rpm, At: time.Now()})
	}
}

// Stop disconnects every connected device.
func (f *Feed) Stop() {
	for _, d := range f.devices {
		if err := d.Disconnect(); err != nil {
			f.logger.Printf("BLE: disconnect: %v", err)
		}
	}
	f.devices = nil
}
