package device

import (
	"errors"
	"fmt"
)

// Layout resolution errors.
var (
	ErrNoLayout            = errors.New("a layout needs to be provided for this device")
	ErrLayoutNotCalibrated = errors.New("layout does not match the pre-calibrated layouts")
	ErrNewLayoutsRefused   = errors.New("device does not accept new layouts")
)

// Target pairs a device with a resolved, validated layout. Construction
// fails when no layout can be resolved, so a Target always denotes a
// runnable device configuration.
type Target struct {
	device *Device
	layout *Layout
}

// NewTarget resolves a layout for the device and wraps both. The rules, in
// order: a nil layout falls back to the device's first pre-calibrated
// layout, or fails when none exists; a supplied layout must match one of the
// pre-calibrated layouts when the device has any; a device refusing new
// layouts rejects every supplied layout.
func NewTarget(dev *Device, layout *Layout) (*Target, error) {
	if dev == nil {
		dev = Analog()
	}

	if layout == nil {
		if len(dev.PreCalibratedLayouts) > 0 {
			return &Target{device: dev, layout: dev.PreCalibratedLayouts[0]}, nil
		}
		return nil, fmt.Errorf("%w: device %s", ErrNoLayout, dev.Name)
	}

	if !dev.AcceptsNewLayouts {
		return nil, fmt.Errorf("%w: device %s", ErrNewLayoutsRefused, dev.Name)
	}
	if len(dev.PreCalibratedLayouts) > 0 && !dev.IsCalibratedLayout(layout) {
		return nil, fmt.Errorf("%w: device %s, layout %s", ErrLayoutNotCalibrated, dev.Name, layout.Slug())
	}
	return &Target{device: dev, layout: layout}, nil
}

// Device returns the target device.
func (t *Target) Device() *Device { return t.device }

// Layout returns the resolved layout.
func (t *Target) Layout() *Layout { return t.layout }
