package cli

import (
	stderrors "errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/fadenav/pkg/errors"
	"github.com/go-drift/fadenav/pkg/platform"
)

func TestRunFailsOnMissingInputDevice(t *testing.T) {
	device := filepath.Join(t.TempDir(), "event0")
	_, _, err := execute(t, "run", "--config", "testdata/fadenav.yaml", "--evdev", device)
	require.Error(t, err)

	var platformErr *errors.Error
	require.True(t, stderrors.As(err, &platformErr))
	assert.Equal(t, errors.KindPlatform, platformErr.Kind)
	assert.Equal(t, device, platformErr.Source)
	assert.Zero(t, platform.BackButton.HandlerCount(), "router should be unmounted on exit")
}

func TestRunRejectsBadConfig(t *testing.T) {
	_, _, err := execute(t, "run", "--config", "testdata/nope.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestRunFlags(t *testing.T) {
	cmd := NewRunCommand(&RootOptions{})
	for _, name := range []string{"evdev", "metrics-addr", "trace", "trace-out", "log-file"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "fadenav-trace.json", cmd.Flags().Lookup("trace-out").DefValue)
}
