package device

import (
	"errors"
	"fmt"
)

// Built-in device names.
const (
	DeviceAnalog  = "analog"
	DeviceHybrid  = "hybrid"
	DeviceFresnel = "fresnel"
)

// ErrUnknownDevice reports a device name with no catalog entry. The fresnel
// QPU is deliberately absent: its current specs must be fetched from the
// cloud session.
var ErrUnknownDevice = errors.New("unknown device")

// Analog returns the built-in analog emulated device. It ships one
// pre-calibrated triangular layout and accepts new layouts.
func Analog() *Device {
	return &Device{
		Name:                 "PasqalDevice1",
		MaxAtomNum:           80,
		MaxRadialDistance:    38,
		MinAtomDistance:      5,
		AcceptsNewLayouts:    true,
		PreCalibratedLayouts: []*Layout{TriangularLayout(61, 5)},
	}
}

// Hybrid returns the built-in digital-analog emulated device. It has no
// pre-calibrated layouts and accepts new layouts.
func Hybrid() *Device {
	return &Device{
		Name:              "HybridDevice",
		MaxAtomNum:        100,
		MaxRadialDistance: 50,
		MinAtomDistance:   4,
		AcceptsNewLayouts: true,
	}
}

// Available resolves a built-in device by catalog name.
func Available(name string) (*Device, error) {
	switch name {
	case DeviceAnalog:
		return Analog(), nil
	case DeviceHybrid:
		return Hybrid(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDevice, name)
	}
}
