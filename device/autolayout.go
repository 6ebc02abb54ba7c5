package device

import (
	"fmt"

	"github.com/qiskit-community/qiskit-pasqal-provider/analog"
)

// AutomaticLayout derives a layout for a register against a device, used on
// paths where the hardware must realize the caller's exact coordinates (QPU
// and fresnel-emulator submissions). The derived layout places one trap per
// qubit; the device's constraints are checked separately through
// ValidateRegister.
func AutomaticLayout(dev *Device, reg *analog.Register) (*Layout, error) {
	if reg.NumQubits() > dev.MaxAtomNum {
		return nil, fmt.Errorf("%w: device %s: automatic layout needs %d traps, at most %d available",
			ErrRegisterIncompatible, dev.Name, reg.NumQubits(), dev.MaxAtomNum)
	}
	slug := fmt.Sprintf("AutomaticLayout(%d, %s)", reg.NumQubits(), dev.Name)
	return FreeLayout(reg.Coordinates(), slug), nil
}
