//go:build !linux

package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-drift/fadenav/pkg/errors"
)

// WatchInputDevice is only available on Linux.
func WatchInputDevice(ctx context.Context, path string) (stop func(), err error) {
	return nil, &errors.Error{
		Op:     "platform.WatchInputDevice",
		Kind:   errors.KindPlatform,
		Source: path,
		Err:    fmt.Errorf("evdev input is not supported on %s", runtime.GOOS),
	}
}
