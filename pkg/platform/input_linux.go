//go:build linux

package platform

import (
	"context"
	"sync"

	"github.com/holoplot/go-evdev"

	"github.com/go-drift/fadenav/pkg/errors"
)

// keyPressed is the evdev value for a key going down. Releases are 0 and
// autorepeats are 2.
const keyPressed = 1

type inputDevice interface {
	ReadOne() (*evdev.InputEvent, error)
	Close() error
}

// WatchInputDevice opens a Linux evdev device and turns KEY_BACK and KEY_ESC
// presses into back signals delivered on the UI thread through [Dispatch].
// The returned stop function closes the device; cancelling ctx does the
// same. Read failures other than a requested stop are reported to the
// global error handler with [errors.KindPlatform], as is the first press
// dropped for lack of a dispatcher.
func WatchInputDevice(ctx context.Context, path string) (stop func(), err error) {
	device, err := evdev.Open(path)
	if err != nil {
		return nil, &errors.Error{
			Op:     "platform.WatchInputDevice",
			Kind:   errors.KindPlatform,
			Source: path,
			Err:    err,
		}
	}
	return watchDevice(ctx, device, path, BackButton), nil
}

func watchDevice(ctx context.Context, device inputDevice, source string, target *BackButtonService) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	var closeOnce sync.Once
	closeDevice := func() {
		closeOnce.Do(func() { _ = device.Close() })
	}

	go func() {
		<-ctx.Done()
		closeDevice()
	}()

	var dropped sync.Once
	go func() {
		defer errors.Recover("platform.WatchInputDevice")
		defer cancel()
		for {
			event, err := device.ReadOne()
			if err != nil {
				if ctx.Err() == nil {
					errors.Report(&errors.Error{
						Op:     "platform.WatchInputDevice",
						Kind:   errors.KindPlatform,
						Source: source,
						Err:    err,
					})
				}
				return
			}
			if isBackKey(event) && !target.PressFromBackground() {
				dropped.Do(func() {
					errors.Report(&errors.Error{
						Op:     "platform.WatchInputDevice",
						Kind:   errors.KindPlatform,
						Source: source,
						Err:    ErrNoDispatcher,
					})
				})
			}
		}
	}()

	return cancel
}

func isBackKey(event *evdev.InputEvent) bool {
	if event == nil || event.Type != evdev.EV_KEY || event.Value != keyPressed {
		return false
	}
	return event.Code == evdev.KEY_BACK || event.Code == evdev.KEY_ESC
}

