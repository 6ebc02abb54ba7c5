package hclconf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qiskit-community/qiskit-pasqal-provider/analog"
)

func writeHCL(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProgram(t *testing.T) {
	path := writeHCL(t, "program.hcl", `
program {
  coords = [[0, 0], [0, 1], [1, 0], [1, 1]]

  gate {
    amplitude {
      values = [1, 1, 1]
    }
    detuning {
      values   = [0, 0.5, 1]
      duration = 1000
    }
    phase = 0
  }
}
`)
	program, err := LoadProgram(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, program.Len())

	gate, ok := program.Operations()[0].(*analog.HamiltonianGate)
	require.True(t, ok)
	assert.Equal(t, 4, gate.NumQubits())
	assert.Equal(t, analog.Number(0), gate.Phase())
	assert.Equal(t, 3, gate.Amplitude().Len())
}

func TestLoadProgram_Parametric(t *testing.T) {
	path := writeHCL(t, "program.hcl", `
program {
  coords = [[0, 0], [0, 1]]

  gate {
    amplitude {
      values = ["omega", "omega", "omega"]
    }
    detuning {
      values = [0, 0, 0]
    }
    phase = "phi"
  }
}
`)
	program, err := LoadProgram(context.Background(), path)
	require.NoError(t, err)

	gate := program.Operations()[0].(*analog.HamiltonianGate)
	assert.ElementsMatch(t, []string{"omega", "phi"}, gate.Parameters())
	assert.Equal(t, analog.Param{Name: "phi"}, gate.Phase())
}

func TestLoadProgram_PhasePoints(t *testing.T) {
	path := writeHCL(t, "program.hcl", `
program {
  coords = [[0, 0], [0, 1]]

  gate {
    amplitude {
      values = [1, 1]
    }
    detuning {
      values = [0, 0]
    }
    phase_points {
      values = [0, 0]
      times  = [0, 1]
    }
  }
}
`)
	program, err := LoadProgram(context.Background(), path)
	require.NoError(t, err)

	gate := program.Operations()[0].(*analog.HamiltonianGate)
	phase, ok := gate.Phase().(*analog.InterpolatePoints)
	require.True(t, ok)
	assert.Equal(t, []float64{0, 1}, phase.Times())
}

func TestLoadProgram_PhaseConflict(t *testing.T) {
	path := writeHCL(t, "program.hcl", `
program {
  coords = [[0, 0], [0, 1]]

  gate {
    amplitude {
      values = [1]
    }
    detuning {
      values = [0]
    }
    phase = 0.5
    phase_points {
      values = [0, 0]
    }
  }
}
`)
	_, err := LoadProgram(context.Background(), path)
	assert.ErrorIs(t, err, ErrPhaseConflict)
}

func TestLoadProgram_DefaultPhaseIsZero(t *testing.T) {
	path := writeHCL(t, "program.hcl", `
program {
  coords = [[0, 0], [0, 1]]

  gate {
    amplitude {
      values = [1]
    }
    detuning {
      values = [0]
    }
  }
}
`)
	program, err := LoadProgram(context.Background(), path)
	require.NoError(t, err)
	gate := program.Operations()[0].(*analog.HamiltonianGate)
	assert.Equal(t, analog.Number(0), gate.Phase())
}

func TestLoadProgram_GridTransform(t *testing.T) {
	path := writeHCL(t, "program.hcl", `
program {
  coords         = [[0, 0], [1, 0]]
  transform      = true
  grid_transform = "square"

  gate {
    amplitude {
      values = [1]
    }
    detuning {
      values = [0]
    }
  }
}
`)
	program, err := LoadProgram(context.Background(), path)
	require.NoError(t, err)

	gate := program.Operations()[0].(*analog.HamiltonianGate)
	coords := gate.AnalogRegister().Coordinates()
	assert.Equal(t, [2]float64{5, 0}, coords[1])
}

func TestLoadProgram_MissingBlock(t *testing.T) {
	path := writeHCL(t, "program.hcl", ``)
	_, err := LoadProgram(context.Background(), path)
	assert.ErrorContains(t, err, "no program block")
}

func TestLoadProgram_BadFile(t *testing.T) {
	_, err := LoadProgram(context.Background(), filepath.Join(t.TempDir(), "absent.hcl"))
	assert.Error(t, err)
}

func TestLoadValues(t *testing.T) {
	path := writeHCL(t, "values.hcl", `
values {
  omega = [1, 1.5, 1]
  phi   = 0.5
}
`)
	bindings, err := LoadValues(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, map[string][]float64{
		"omega": {1, 1.5, 1},
		"phi":   {0.5},
	}, bindings)
}

func TestLoadValues_NonNumeric(t *testing.T) {
	path := writeHCL(t, "values.hcl", `
values {
  omega = "fast"
}
`)
	_, err := LoadValues(context.Background(), path)
	assert.Error(t, err)
}

func TestLoadRemoteConfig(t *testing.T) {
	path := writeHCL(t, "remote.hcl", `
remote {
  username   = "alice"
  password   = "secret"
  project_id = "proj-1"
  endpoint   = "https://example.test/core"
}
`)
	cfg, err := LoadRemoteConfig(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.Username)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, "proj-1", cfg.ProjectID)
	assert.Equal(t, "https://example.test/core", cfg.Endpoints.Core)
	assert.Nil(t, cfg.TokenProvider)
}

func TestLoadRemoteConfig_Token(t *testing.T) {
	path := writeHCL(t, "remote.hcl", `
remote {
  token      = "tok-123"
  project_id = "proj-1"
}
`)
	cfg, err := LoadRemoteConfig(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, cfg.TokenProvider)
	token, err := cfg.TokenProvider.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}
