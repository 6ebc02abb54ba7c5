package backend

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qiskit-community/qiskit-pasqal-provider/analog"
	"github.com/qiskit-community/qiskit-pasqal-provider/cloud"
	"github.com/qiskit-community/qiskit-pasqal-provider/device"
)

// fakeSession scripts the remote service: CreateBatch opens "batch-1" and
// each GetBatch call serves the next scripted state, sticking on the last.
type fakeSession struct {
	states    []*cloud.Batch
	getCalls  int
	created   []cloud.CreateBatchRequest
	cancelled []string
	devices   map[string]device.Spec
}

func (f *fakeSession) CreateBatch(_ context.Context, req cloud.CreateBatchRequest) (*cloud.Batch, error) {
	f.created = append(f.created, req)
	return &cloud.Batch{ID: "batch-1", Status: cloud.StatusPending}, nil
}

func (f *fakeSession) GetBatch(_ context.Context, id string) (*cloud.Batch, error) {
	i := f.getCalls
	if i >= len(f.states) {
		i = len(f.states) - 1
	}
	f.getCalls++
	batch := *f.states[i]
	batch.ID = id
	return &batch, nil
}

func (f *fakeSession) CancelBatch(_ context.Context, id string) (*cloud.Batch, error) {
	f.cancelled = append(f.cancelled, id)
	return &cloud.Batch{ID: id, Status: cloud.StatusCanceled}, nil
}

func (f *fakeSession) FetchAvailableDevices(context.Context) (map[string]device.Spec, error) {
	return f.devices, nil
}

func batchState(status cloud.BatchStatus, jobs ...cloud.Job) *cloud.Batch {
	return &cloud.Batch{Status: status, Jobs: jobs}
}

func testProgram(t *testing.T, coords [][2]float64) *analog.Program {
	t.Helper()
	amp, err := analog.NewInterpolatePoints(analog.Numbers(1, 1))
	require.NoError(t, err)
	det, err := analog.NewInterpolatePoints(analog.Numbers(0, 0))
	require.NoError(t, err)
	gate, err := analog.NewHamiltonianGate(amp, det, analog.Number(0), coords)
	require.NoError(t, err)
	return analog.NewProgram().Append(gate)
}

var remoteCoords = [][2]float64{{0, 0}, {0, 6}}

func fastPoll() PollConfig {
	return PollConfig{Interval: time.Millisecond, JobInterval: time.Millisecond, MaxPolls: 20}
}

func remoteBackend(t *testing.T, tag string, sess cloud.Session) Backend {
	t.Helper()
	be, err := New(context.Background(), tag, Options{Session: sess, Poll: fastPoll()})
	require.NoError(t, err)
	return be
}

func TestRemoteRun_WaitsForTerminalBatch(t *testing.T) {
	wantCounts := map[string]int{"000000001001": 50, "000000001011": 25}
	sess := &fakeSession{states: []*cloud.Batch{
		batchState(cloud.StatusPending),
		batchState(cloud.StatusRunning),
		batchState(cloud.StatusDone, cloud.Job{ID: "cj-1", Status: cloud.StatusDone, Counts: wantCounts}),
	}}
	be := remoteBackend(t, TagRemoteEmuMPS, sess)

	job, err := be.Run(context.Background(), testProgram(t, remoteCoords),
		RunOptions{Shots: 75, Wait: true})
	require.NoError(t, err)

	assert.True(t, job.Done())
	result := job.Result()
	require.NotNil(t, result)
	assert.Empty(t, cmp.Diff(wantCounts, result.Counts))
	assert.Equal(t, 75, result.Shots())
	assert.Equal(t, TagRemoteEmuMPS, result.BackendName)
	assert.Equal(t, 3, sess.getCalls)

	require.Len(t, sess.created, 1)
	assert.Equal(t, cloud.EmulatorMPS, sess.created[0].Emulator)
	require.Len(t, sess.created[0].Jobs, 1)
	assert.Equal(t, 75, sess.created[0].Jobs[0].Runs)
	assert.NotEmpty(t, sess.created[0].SerializedSequence)
}

func TestRemoteRun_ShotsRequired(t *testing.T) {
	sess := &fakeSession{states: []*cloud.Batch{batchState(cloud.StatusDone)}}
	be := remoteBackend(t, TagRemoteEmuFree, sess)

	_, err := be.Run(context.Background(), testProgram(t, remoteCoords), RunOptions{Wait: true})
	assert.ErrorIs(t, err, ErrShotsRequired)
	assert.Empty(t, sess.created)
}

func TestRemoteRun_PausedResumes(t *testing.T) {
	counts := map[string]int{"00": 10}
	sess := &fakeSession{states: []*cloud.Batch{
		batchState(cloud.StatusRunning),
		batchState(cloud.StatusPaused),
		batchState(cloud.StatusPaused),
		batchState(cloud.StatusDone, cloud.Job{Status: cloud.StatusDone, Counts: counts}),
	}}
	be := remoteBackend(t, TagRemoteEmuFree, sess)

	job, err := be.Run(context.Background(), testProgram(t, remoteCoords),
		RunOptions{Shots: 10, Wait: true})
	require.NoError(t, err)
	assert.True(t, job.Done())
	assert.Equal(t, counts, job.Result().Counts)
}

func TestRemoteRun_TerminalFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  cloud.BatchStatus
		wantErr error
		state   Status
	}{
		{"cancelled", cloud.StatusCanceled, ErrBatchCancelled, StatusCancelled},
		{"timed out", cloud.StatusTimedOut, ErrBatchTimedOut, StatusError},
		{"failed", cloud.StatusError, ErrBatchFailed, StatusError},
		{"unknown status", cloud.BatchStatus("EXPLODED"), ErrUnknownBatchStatus, StatusError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &fakeSession{states: []*cloud.Batch{batchState(tt.status)}}
			be := remoteBackend(t, TagRemoteEmuFree, sess)

			job, err := be.Run(context.Background(), testProgram(t, remoteCoords),
				RunOptions{Shots: 10, Wait: true})
			assert.ErrorIs(t, err, tt.wantErr)
			require.NotNil(t, job)
			assert.Equal(t, tt.state, job.Status())
			assert.Nil(t, job.Result())
		})
	}
}

func TestRemoteRun_PollBudgetExhausted(t *testing.T) {
	sess := &fakeSession{states: []*cloud.Batch{batchState(cloud.StatusPending)}}
	be, err := New(context.Background(), TagRemoteEmuFree, Options{
		Session: sess,
		Poll:    PollConfig{Interval: time.Millisecond, MaxPolls: 3},
	})
	require.NoError(t, err)

	job, err := be.Run(context.Background(), testProgram(t, remoteCoords),
		RunOptions{Shots: 10, Wait: true})
	assert.ErrorIs(t, err, ErrRemoteExecutionFailed)
	assert.Equal(t, StatusError, job.Status())
	assert.Equal(t, 3, sess.getCalls)
}

func TestRemoteRun_NoWaitThenPoll(t *testing.T) {
	counts := map[string]int{"11": 5}
	sess := &fakeSession{states: []*cloud.Batch{
		batchState(cloud.StatusRunning),
		batchState(cloud.StatusDone, cloud.Job{Status: cloud.StatusDone, Counts: counts}),
	}}
	be := remoteBackend(t, TagRemoteEmuFree, sess)

	job, err := be.Run(context.Background(), testProgram(t, remoteCoords),
		RunOptions{Shots: 5, Wait: false})
	require.NoError(t, err)
	assert.True(t, job.Running())
	assert.Nil(t, job.Result())

	done, err := job.Poll(context.Background())
	require.NoError(t, err)
	assert.False(t, done)

	done, err = job.Poll(context.Background())
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, job.Done())
	assert.Equal(t, counts, job.Result().Counts)
}

func TestJobCancel(t *testing.T) {
	t.Run("local jobs are not cancellable", func(t *testing.T) {
		be, err := New(context.Background(), TagQutip, Options{})
		require.NoError(t, err)
		job, err := be.Run(context.Background(), testProgram(t, remoteCoords), RunOptions{Shots: 10})
		require.NoError(t, err)
		assert.ErrorIs(t, job.Cancel(context.Background()), ErrNotCancellable)
	})

	t.Run("open remote job cancels", func(t *testing.T) {
		sess := &fakeSession{states: []*cloud.Batch{batchState(cloud.StatusRunning)}}
		be := remoteBackend(t, TagRemoteEmuFree, sess)

		job, err := be.Run(context.Background(), testProgram(t, remoteCoords),
			RunOptions{Shots: 10, Wait: false})
		require.NoError(t, err)

		require.NoError(t, job.Cancel(context.Background()))
		assert.True(t, job.Cancelled())
		assert.Equal(t, []string{"batch-1"}, sess.cancelled)

		// A terminal job cannot be cancelled again.
		assert.ErrorIs(t, job.Cancel(context.Background()), ErrNotCancellable)
	})
}

func fresnelDevices() map[string]device.Spec {
	return map[string]device.Spec{
		"FRESNEL": {
			Name:              "FRESNEL",
			MaxAtomNum:        80,
			MaxRadialDistance: 38,
			MinAtomDistance:   5,
			AcceptsNewLayouts: true,
			PreCalibratedLayouts: []device.LayoutSpec{
				{Slug: "TriangularLatticeLayout(61, 5µm)", Traps: device.TriangularLayout(61, 5).Traps()},
			},
		},
	}
}

func TestQPURun(t *testing.T) {
	counts := map[string]int{"01": 7, "10": 3}
	sess := &fakeSession{
		devices: fresnelDevices(),
		states: []*cloud.Batch{
			batchState(cloud.StatusRunning, cloud.Job{ID: "cj-1", Status: cloud.StatusDone, Counts: counts}),
		},
	}
	be := remoteBackend(t, TagQPU, sess)
	assert.Equal(t, "FRESNEL", be.Target().Device().Name)

	job, err := be.Run(context.Background(), testProgram(t, remoteCoords),
		RunOptions{Shots: 10, Wait: true})
	require.NoError(t, err)
	assert.True(t, job.Done())
	assert.Equal(t, counts, job.Result().Counts)
	assert.Equal(t, "qpu", job.Result().Metadata["source"])

	require.Len(t, sess.created, 1)
	assert.Equal(t, device.DeviceFresnel, sess.created[0].DeviceType)
	assert.Empty(t, sess.created[0].Emulator)
}

func TestQPURun_InvalidRegister(t *testing.T) {
	sess := &fakeSession{devices: fresnelDevices()}
	be := remoteBackend(t, TagQPU, sess)

	// Atoms 1µm apart violate the minimal distance; nothing is submitted.
	_, err := be.Run(context.Background(), testProgram(t, [][2]float64{{0, 0}, {0, 1}}),
		RunOptions{Shots: 10, Wait: true})
	assert.ErrorIs(t, err, device.ErrRegisterIncompatible)
	assert.Empty(t, sess.created)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "INITIALIZING", StatusInitializing.String())
	assert.Equal(t, "RUNNING", StatusRunning.String())
	assert.Equal(t, "DONE", StatusDone.String())
	assert.Equal(t, "ERROR", StatusError.String())
	assert.Equal(t, "CANCELLED", StatusCancelled.String())
	assert.False(t, StatusRunning.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}
