package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_UnknownTag(t *testing.T) {
	_, err := New(context.Background(), "does-not-exist", Options{})
	assert.ErrorIs(t, err, ErrUnsupportedBackend)
}

func TestNew_LocalBackends(t *testing.T) {
	for _, tag := range []string{TagQutip, TagEmuMPS} {
		t.Run(tag, func(t *testing.T) {
			be, err := New(context.Background(), tag, Options{})
			require.NoError(t, err)
			assert.Equal(t, tag, be.Name())
			assert.NotNil(t, be.Target())
		})
	}
}

func TestNew_RemoteWithoutCredentials(t *testing.T) {
	// Construction must fail before any network interaction happens.
	for _, tag := range []string{TagRemoteEmuFree, TagRemoteEmuMPS, TagRemoteEmuFresnel, TagFresnel, TagQPU} {
		t.Run(tag, func(t *testing.T) {
			_, err := New(context.Background(), tag, Options{})
			assert.ErrorIs(t, err, ErrMissingRemoteConfig)
		})
	}
}

func TestNew_EmuMPSUnsupportedPlatform(t *testing.T) {
	prev := hostOS
	hostOS = "windows"
	defer func() { hostOS = prev }()

	_, err := New(context.Background(), TagEmuMPS, Options{})
	assert.ErrorIs(t, err, ErrPlatformUnsupported)
}

func TestTags(t *testing.T) {
	assert.Equal(t, []string{
		TagEmuMPS,
		TagFresnel,
		TagQPU,
		TagQutip,
		TagRemoteEmuFree,
		TagRemoteEmuFresnel,
		TagRemoteEmuMPS,
	}, Tags())
}
