package hclconf

import (
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/qiskit-community/qiskit-pasqal-provider/analog"
	"github.com/qiskit-community/qiskit-pasqal-provider/cloud"
)

// ErrPhaseConflict reports a gate carrying both a scalar phase attribute
// and a phase_points block.
var ErrPhaseConflict = errors.New("gate must set either phase or phase_points, not both")

// translateProgram converts a decoded program block into the analog model.
func translateProgram(block *programBlock) (*analog.Program, error) {
	coords, err := ctyToCoords(block.Coords)
	if err != nil {
		return nil, fmt.Errorf("coords: %w", err)
	}

	var gateOpts []analog.GateOption
	if block.GridTransform != nil {
		gateOpts = append(gateOpts, analog.WithGridTransform(analog.GridKind(*block.GridTransform)))
	}
	if block.Transform != nil {
		gateOpts = append(gateOpts, analog.WithTransform(*block.Transform))
	}

	program := analog.NewProgram()
	for i, g := range block.Gates {
		gate, err := translateGate(g, coords, gateOpts)
		if err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
		program.Append(gate)
	}
	return program, nil
}

func translateGate(block *gateBlock, coords [][2]float64, opts []analog.GateOption) (*analog.HamiltonianGate, error) {
	if block.Amplitude == nil || block.Detuning == nil {
		return nil, analog.ErrMissingWaveform
	}
	amplitude, err := translateWaveform(block.Amplitude)
	if err != nil {
		return nil, fmt.Errorf("amplitude: %w", err)
	}
	detuning, err := translateWaveform(block.Detuning)
	if err != nil {
		return nil, fmt.Errorf("detuning: %w", err)
	}
	phase, err := translatePhase(block)
	if err != nil {
		return nil, err
	}
	return analog.NewHamiltonianGate(amplitude, detuning, phase, coords, opts...)
}

func translateWaveform(block *waveformBlock) (*analog.InterpolatePoints, error) {
	values, err := ctyToValues(block.Values)
	if err != nil {
		return nil, fmt.Errorf("values: %w", err)
	}

	var opts []analog.PointsOption
	if block.Duration != nil {
		duration, err := ctyToValue(*block.Duration)
		if err != nil {
			return nil, fmt.Errorf("duration: %w", err)
		}
		opts = append(opts, analog.WithDuration(duration))
	}
	if block.Times != nil {
		opts = append(opts, analog.WithTimes(block.Times))
	}
	if block.Interpolator != nil {
		opts = append(opts, analog.WithInterpolator(*block.Interpolator))
	}
	return analog.NewInterpolatePoints(values, opts...)
}

// translatePhase picks the scalar attribute or the points block. Omitting
// both means a zero phase.
func translatePhase(block *gateBlock) (analog.Phase, error) {
	if block.Phase != nil && block.PhasePoints != nil {
		return nil, ErrPhaseConflict
	}
	if block.PhasePoints != nil {
		return translateWaveform(block.PhasePoints)
	}
	if block.Phase == nil {
		return analog.Number(0), nil
	}
	value, err := ctyToValue(*block.Phase)
	if err != nil {
		return nil, fmt.Errorf("phase: %w", err)
	}
	phase, ok := value.(analog.Phase)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", analog.ErrInvalidPhase, value)
	}
	return phase, nil
}

func translateRemote(block *remoteBlock) *cloud.RemoteConfig {
	cfg := &cloud.RemoteConfig{}
	if block.Username != nil {
		cfg.Username = *block.Username
	}
	if block.Password != nil {
		cfg.Password = *block.Password
	}
	if block.ProjectID != nil {
		cfg.ProjectID = *block.ProjectID
	}
	if block.Token != nil {
		cfg.TokenProvider = cloud.StaticToken(*block.Token)
	}
	if block.Endpoint != nil {
		cfg.Endpoints.Core = *block.Endpoint
	}
	if block.Auth0 != nil {
		cfg.Auth0 = *block.Auth0
	}
	if block.Webhook != nil {
		cfg.Webhook = *block.Webhook
	}
	return cfg
}

// ctyToValue converts a scalar cty value: numbers become concrete values,
// strings become named parameters.
func ctyToValue(val cty.Value) (analog.Value, error) {
	if val.IsNull() {
		return nil, nil
	}
	switch val.Type() {
	case cty.Number:
		var f float64
		if err := gocty.FromCtyValue(val, &f); err != nil {
			return nil, err
		}
		return analog.Number(f), nil
	case cty.String:
		return analog.Param{Name: val.AsString()}, nil
	default:
		return nil, fmt.Errorf("cannot use %s as a waveform value", val.Type().FriendlyName())
	}
}

// ctyToValues converts a list/tuple of scalars into a value array.
func ctyToValues(val cty.Value) (analog.Array, error) {
	if !val.CanIterateElements() {
		// A lone scalar is a one-point array.
		v, err := ctyToValue(val)
		if err != nil {
			return nil, err
		}
		return analog.Array{v}, nil
	}
	var out analog.Array
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		v, err := ctyToValue(elem)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ctyToCoords converts a list of (x, y) pairs.
func ctyToCoords(val cty.Value) ([][2]float64, error) {
	if !val.CanIterateElements() {
		return nil, fmt.Errorf("expected a list of coordinate pairs, got %s", val.Type().FriendlyName())
	}
	var out [][2]float64
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		pair, err := ctyToFloats(elem)
		if err != nil {
			return nil, err
		}
		if len(pair) != 2 {
			return nil, fmt.Errorf("coordinate must be an (x, y) pair, got %d entries", len(pair))
		}
		out = append(out, [2]float64{pair[0], pair[1]})
	}
	return out, nil
}

// ctyToFloats converts a number or list of numbers into a float slice.
func ctyToFloats(val cty.Value) ([]float64, error) {
	if val.Type() == cty.Number {
		var f float64
		if err := gocty.FromCtyValue(val, &f); err != nil {
			return nil, err
		}
		return []float64{f}, nil
	}
	if !val.CanIterateElements() {
		return nil, fmt.Errorf("expected a number or list of numbers, got %s", val.Type().FriendlyName())
	}
	var out []float64
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		var f float64
		if err := gocty.FromCtyValue(elem, &f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
