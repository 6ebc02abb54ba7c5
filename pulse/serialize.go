package pulse

import (
	"encoding/json"
	"fmt"
)

// Wire representation of a sequence for remote submission. Operands encode
// as tagged objects so symbolic sequences round-trip with their variable
// references intact.

type wireSequence struct {
	Device    string         `json:"device"`
	Register  []wireQubit    `json:"register"`
	Variables map[string]int `json:"variables,omitempty"`
	Channels  []string       `json:"channels"`
	Pulses    []wirePulse    `json:"pulses"`
}

type wireQubit struct {
	ID string     `json:"id"`
	XY [2]float64 `json:"xy"`
}

type wirePulse struct {
	Amplitude wireWaveform  `json:"amplitude"`
	Detuning  wireWaveform  `json:"detuning"`
	Phase     *wireOperand  `json:"phase,omitempty"`
	PhaseMod  *wireWaveform `json:"phase_mod,omitempty"`
}

type wireWaveform struct {
	Duration     wireOperand        `json:"duration"`
	Values       wireOperand        `json:"values"`
	Times        []float64          `json:"times,omitempty"`
	Interpolator string             `json:"interpolator"`
	Options      map[string]float64 `json:"options,omitempty"`
}

type wireOperand struct {
	Kind   string    `json:"kind"` // "const" | "consts" | "var" | "list"
	Value  float64   `json:"value,omitempty"`
	Values []float64 `json:"values,omitempty"`
	Var    string    `json:"var,omitempty"`
	// List entries, for mixed concrete/symbolic arrays.
	Elems []wireOperand `json:"elems,omitempty"`
}

// Serialize encodes the sequence, including any unbound variables, for
// remote submission.
func (s *Sequence) Serialize() ([]byte, error) {
	w := wireSequence{
		Device:    s.device.Name,
		Variables: make(map[string]int, len(s.variables)),
	}
	for _, id := range s.register.IDs() {
		xy, _ := s.register.Coordinate(id)
		w.Register = append(w.Register, wireQubit{ID: id, XY: xy})
	}
	for name, v := range s.variables {
		w.Variables[name] = v.Size
	}
	for name := range s.channels {
		w.Channels = append(w.Channels, name)
	}
	for _, p := range s.pulses {
		wp := wirePulse{
			Amplitude: encodeWaveform(p.Amplitude),
			Detuning:  encodeWaveform(p.Detuning),
		}
		if p.PhaseMod != nil {
			mod := encodeWaveform(p.PhaseMod)
			wp.PhaseMod = &mod
		} else {
			ph, err := encodeOperand(p.Phase)
			if err != nil {
				return nil, err
			}
			wp.Phase = &ph
		}
		w.Pulses = append(w.Pulses, wp)
	}
	return json.Marshal(w)
}

func encodeWaveform(w *Waveform) wireWaveform {
	dur, _ := encodeOperand(w.Duration)
	values, _ := encodeOperand(w.Values)
	return wireWaveform{
		Duration:     dur,
		Values:       values,
		Times:        w.Times,
		Interpolator: w.Interpolator,
		Options:      w.Options,
	}
}

func encodeOperand(op Operand) (wireOperand, error) {
	switch v := op.(type) {
	case nil:
		return wireOperand{Kind: "const"}, nil
	case Const:
		return wireOperand{Kind: "const", Value: float64(v)}, nil
	case Consts:
		return wireOperand{Kind: "consts", Values: v}, nil
	case *Variable:
		return wireOperand{Kind: "var", Var: v.Name}, nil
	case List:
		out := wireOperand{Kind: "list"}
		for _, elem := range v {
			enc, err := encodeOperand(elem)
			if err != nil {
				return wireOperand{}, err
			}
			out.Elems = append(out.Elems, enc)
		}
		return out, nil
	default:
		return wireOperand{}, fmt.Errorf("unexpected operand %T", op)
	}
}
