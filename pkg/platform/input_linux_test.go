//go:build linux

package platform

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/fadenav/pkg/errors"
)

var errDeviceClosed = stderrors.New("device closed")

type fakeDevice struct {
	events chan *evdev.InputEvent
	closed chan struct{}
	once   sync.Once
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{events: make(chan *evdev.InputEvent), closed: make(chan struct{})}
}

func (d *fakeDevice) ReadOne() (*evdev.InputEvent, error) {
	select {
	case event, ok := <-d.events:
		if !ok {
			return nil, stderrors.New("unexpected eof")
		}
		return event, nil
	case <-d.closed:
		return nil, errDeviceClosed
	}
}

func (d *fakeDevice) Close() error {
	d.once.Do(func() { close(d.closed) })
	return nil
}

type platformErrors struct {
	mu   sync.Mutex
	errs []*errors.Error
}

func (h *platformErrors) HandleError(err *errors.Error) {
	h.mu.Lock()
	h.errs = append(h.errs, err)
	h.mu.Unlock()
}
func (h *platformErrors) HandlePanic(*errors.PanicError)      {}
func (h *platformErrors) HandleBuildError(*errors.BuildError) {}

func (h *platformErrors) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.errs)
}

func key(code evdev.EvCode, value int32) *evdev.InputEvent {
	return &evdev.InputEvent{Type: evdev.EV_KEY, Code: code, Value: value}
}

func TestIsBackKey(t *testing.T) {
	assert.True(t, isBackKey(key(evdev.KEY_BACK, 1)))
	assert.True(t, isBackKey(key(evdev.KEY_ESC, 1)))
	assert.False(t, isBackKey(key(evdev.KEY_ESC, 0)), "release")
	assert.False(t, isBackKey(key(evdev.KEY_ESC, 2)), "autorepeat")
	assert.False(t, isBackKey(key(evdev.KEY_A, 1)))
	assert.False(t, isBackKey(&evdev.InputEvent{Type: evdev.EV_SYN, Code: evdev.KEY_ESC, Value: 1}))
	assert.False(t, isBackKey(nil))
}

func TestWatchDeviceDispatchesBackPresses(t *testing.T) {
	SetupTestDispatch(t.Cleanup)
	queue := NewDispatchQueue(nil)
	RegisterDispatch(queue.Post)

	target := &BackButtonService{}
	presses := 0
	target.AddHandler(func() bool { presses++; return true })

	device := newFakeDevice()
	stop := watchDevice(context.Background(), device, "fake", target)
	t.Cleanup(stop)

	device.events <- key(evdev.KEY_A, 1)
	device.events <- key(evdev.KEY_BACK, 1)
	device.events <- key(evdev.KEY_BACK, 0)
	device.events <- key(evdev.KEY_ESC, 1)

	require.Eventually(t, func() bool { return queue.Len() == 2 }, time.Second, 5*time.Millisecond)
	assert.Zero(t, presses, "presses must wait for the UI thread")
	queue.Drain()
	assert.Equal(t, 2, presses)
}

func TestWatchDeviceStopDoesNotReport(t *testing.T) {
	SetupTestDispatch(t.Cleanup)
	rec := &platformErrors{}
	prev := errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(prev) })

	ctx, cancel := context.WithCancel(context.Background())
	device := newFakeDevice()
	watchDevice(ctx, device, "fake", &BackButtonService{})
	cancel()

	require.Eventually(t, func() bool {
		select {
		case <-device.closed:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
	assert.Zero(t, rec.count())
}

func TestWatchDeviceReportsReadFailure(t *testing.T) {
	SetupTestDispatch(t.Cleanup)
	rec := &platformErrors{}
	prev := errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(prev) })

	device := newFakeDevice()
	watchDevice(context.Background(), device, "/dev/input/event9", &BackButtonService{})
	close(device.events)

	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, errors.KindPlatform, rec.errs[0].Kind)
	assert.Equal(t, "/dev/input/event9", rec.errs[0].Source)
}

func TestWatchDeviceReportsDroppedPressOnce(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	rec := &platformErrors{}
	prev := errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(prev) })

	target := &BackButtonService{}
	presses := 0
	target.AddHandler(func() bool { presses++; return true })

	device := newFakeDevice()
	stop := watchDevice(context.Background(), device, "/dev/input/event4", target)
	t.Cleanup(stop)

	device.events <- key(evdev.KEY_BACK, 1)
	device.events <- key(evdev.KEY_ESC, 1)
	device.events <- key(evdev.KEY_A, 1)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.errs, 1)
	assert.ErrorIs(t, rec.errs[0], ErrNoDispatcher)
	assert.Equal(t, "/dev/input/event4", rec.errs[0].Source)
	assert.Zero(t, presses)
}

func TestWatchInputDeviceMissingPath(t *testing.T) {
	_, err := WatchInputDevice(context.Background(), "/dev/input/does-not-exist")
	var platformErr *errors.Error
	require.ErrorAs(t, err, &platformErr)
	assert.Equal(t, errors.KindPlatform, platformErr.Kind)
}
