package device

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"

	"github.com/qiskit-community/qiskit-pasqal-provider/analog"
)

// ErrRegisterIncompatible reports a register that violates the device's
// physical constraints. The wrapped error aggregates every violation found.
var ErrRegisterIncompatible = errors.New("register is not compatible with the device")

// Device describes a neutral-atom machine or emulated machine: its physical
// constraints and its layout policy.
type Device struct {
	Name                 string
	MaxAtomNum           int
	MaxRadialDistance    float64
	MinAtomDistance      float64
	AcceptsNewLayouts    bool
	PreCalibratedLayouts []*Layout
}

// IsCalibratedLayout reports whether the layout matches one of the device's
// pre-calibrated layouts.
func (d *Device) IsCalibratedLayout(l *Layout) bool {
	for _, cal := range d.PreCalibratedLayouts {
		if cal.Equal(l) {
			return true
		}
	}
	return false
}

// ValidateRegister checks the register against the device's constraints and
// reports every violation, wrapped in ErrRegisterIncompatible. A nil return
// means the register can be realized on the device.
func (d *Device) ValidateRegister(reg *analog.Register) error {
	var violations error

	coords := reg.Coordinates()
	if len(coords) > d.MaxAtomNum {
		violations = multierr.Append(violations, fmt.Errorf(
			"register has %d atoms, device %s supports at most %d",
			len(coords), d.Name, d.MaxAtomNum))
	}
	for i, c := range coords {
		if r := math.Hypot(c[0], c[1]); r > d.MaxRadialDistance {
			violations = multierr.Append(violations, fmt.Errorf(
				"atom %d at distance %.2fµm exceeds the maximal radial distance %.2fµm",
				i, r, d.MaxRadialDistance))
		}
	}
	for i := 0; i < len(coords); i++ {
		for j := i + 1; j < len(coords); j++ {
			dist := math.Hypot(coords[i][0]-coords[j][0], coords[i][1]-coords[j][1])
			if dist < d.MinAtomDistance {
				violations = multierr.Append(violations, fmt.Errorf(
					"atoms %d and %d are %.2fµm apart, minimum is %.2fµm",
					i, j, dist, d.MinAtomDistance))
			}
		}
	}

	if violations != nil {
		return fmt.Errorf("%w: device %s: %w", ErrRegisterIncompatible, d.Name, violations)
	}
	return nil
}
