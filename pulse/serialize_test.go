package pulse

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_KeepsVariableReferences(t *testing.T) {
	seq := testSequence(t)
	require.NoError(t, seq.DeclareChannel("rydberg_global"))
	omega, err := seq.DeclareVariable("omega", 2)
	require.NoError(t, err)

	p := NewPulse(
		NewWaveform(Const(100), omega, nil, "", nil),
		NewWaveform(Const(100), Consts{0, 0}, nil, "", nil),
		Const(0),
	)
	require.NoError(t, seq.Add(p, "rydberg_global"))

	raw, err := seq.Serialize()
	require.NoError(t, err)

	var decoded struct {
		Device    string         `json:"device"`
		Register  []any          `json:"register"`
		Variables map[string]int `json:"variables"`
		Channels  []string       `json:"channels"`
		Pulses    []struct {
			Amplitude struct {
				Values struct {
					Kind string `json:"kind"`
					Var  string `json:"var"`
				} `json:"values"`
			} `json:"amplitude"`
		} `json:"pulses"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "PasqalDevice1", decoded.Device)
	assert.Len(t, decoded.Register, 2)
	assert.Equal(t, map[string]int{"omega": 2}, decoded.Variables)
	assert.Equal(t, []string{"rydberg_global"}, decoded.Channels)
	require.Len(t, decoded.Pulses, 1)
	assert.Equal(t, "var", decoded.Pulses[0].Amplitude.Values.Kind)
	assert.Equal(t, "omega", decoded.Pulses[0].Amplitude.Values.Var)
}
