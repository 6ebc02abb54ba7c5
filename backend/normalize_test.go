package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qiskit-community/qiskit-pasqal-provider/sim"
)

func TestNormalizeTrace_MissingEngineConfig(t *testing.T) {
	_, err := normalizeTrace(&sim.ObservableTrace{}, map[string]any{})
	assert.ErrorIs(t, err, ErrMissingEngineConfig)
}

func TestLocalRun_NormalizedResult(t *testing.T) {
	for _, tag := range []string{TagQutip, TagEmuMPS} {
		t.Run(tag, func(t *testing.T) {
			be, err := New(context.Background(), tag, Options{})
			require.NoError(t, err)

			job, err := be.Run(context.Background(), testProgram(t, remoteCoords),
				RunOptions{Shots: 250})
			require.NoError(t, err)
			require.True(t, job.Done())

			result := job.Result()
			require.NotNil(t, result)
			assert.Equal(t, tag, result.BackendName)
			assert.Equal(t, job.ID(), result.JobID)
			assert.Equal(t, 250, result.Shots())
			assert.Equal(t, 250, result.Metadata["shots"])
			for bits := range result.Counts {
				assert.Len(t, bits, 2)
			}
		})
	}
}
