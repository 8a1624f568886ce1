//go:build linux

package joystick

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

const inputPath = "/dev/input"

// joydev ioctl request codes (linux/joystick.h).
const (
	jsiocgVersion = 0x80046a01
	jsiocgAxes    = 0x80016a11
	jsiocgButtons = 0x80016a12
	jsiocgName    = 0x80006a13 + (128 << 16)
	jsiocgAxMap   = 0x80406a32
	jsiocgBtnMap  = 0x80406a34
)

// jsEvent mirrors struct js_event from linux/joystick.h.
type jsEvent struct {
	Timestamp uint32
	Value     int16
	Type      uint8
	Index     uint8
}

type linuxBus struct {
	mu      sync.RWMutex
	devices map[string]*linuxDevice

	ctx    context.Context
	cancel context.CancelFunc
	events chan Event
	errs   chan error

	closeOnce sync.Once
}

type linuxDevice struct {
	Device
	path string

	readCancel context.CancelFunc
	subscribed bool
}

func newBus() (Bus, error) {
	ctx, cancel := context.WithCancel(context.Background())
	b := &linuxBus{
		devices: make(map[string]*linuxDevice),
		ctx:     ctx,
		cancel:  cancel,
		events:  make(chan Event, 256),
		errs:    make(chan error, 16),
	}

	entries, err := os.ReadDir(inputPath)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("joystick: scanning %s: %w", inputPath, err)
	}
	for _, entry := range entries {
		if isJoystickNode(entry.Name()) {
			b.attach(entry.Name())
		}
	}

	go b.watchHotplug()
	return b, nil
}

// isJoystickNode reports whether a /dev/input entry is a js* device node.
func isJoystickNode(name string) bool {
	return strings.HasPrefix(name, "js") && len(name) > 2
}

func (b *linuxBus) Devices() []Device {
	b.mu.RLock()
	defer b.mu.RUnlock()
	devices := make([]Device, 0, len(b.devices))
	for _, d := range b.devices {
		devices = append(devices, d.Device)
	}
	return devices
}

func (b *linuxBus) Events() <-chan Event { return b.events }
func (b *linuxBus) Errors() <-chan error { return b.errs }

func (b *linuxBus) Subscribe(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	dev, ok := b.devices[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrDeviceNotFound, id)
	}
	if dev.subscribed {
		return fmt.Errorf("%w: %s", ErrAlreadySubscribed, id)
	}

	f, err := os.Open(dev.path)
	if err != nil {
		return fmt.Errorf("joystick: opening %s: %w", dev.path, err)
	}

	ctx, cancel := context.WithCancel(b.ctx)
	dev.readCancel = cancel
	dev.subscribed = true

	go b.readDevice(ctx, f, id)
	return nil
}

func (b *linuxBus) Unsubscribe(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	dev, ok := b.devices[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrDeviceNotFound, id)
	}
	if !dev.subscribed {
		return fmt.Errorf("%w: %s", ErrNotSubscribed, id)
	}
	dev.readCancel()
	dev.subscribed = false
	return nil
}

func (b *linuxBus) Close() {
	b.closeOnce.Do(func() {
		b.cancel()
		b.mu.Lock()
		for _, dev := range b.devices {
			if dev.subscribed {
				dev.readCancel()
				dev.subscribed = false
			}
		}
		b.mu.Unlock()
		close(b.events)
	})
}

// readDevice streams js events from an open device file until the context is
// cancelled or the device disappears.
func (b *linuxBus) readDevice(ctx context.Context, f *os.File, id string) {
	defer f.Close()

	// Unblock the binary.Read below when the context ends.
	go func() {
		<-ctx.Done()
		f.Close()
	}()

	for {
		var e jsEvent
		if err := binary.Read(f, binary.LittleEndian, &e); err != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}

		kind := ControlKind(e.Type) &^ controlInit
		b.emit(Event{
			Kind: EventControl,
			ID:   id,
			Control: ControlEvent{
				Timestamp: e.Timestamp,
				Kind:      kind,
				Index:     int(e.Index),
				Value:     e.Value,
			},
		})
	}
}

// emit delivers an event unless the bus is shutting down.
func (b *linuxBus) emit(ev Event) {
	select {
	case <-b.ctx.Done():
	case b.events <- ev:
	}
}

func (b *linuxBus) reportErr(err error) {
	select {
	case b.errs <- err:
	default: // Drop when nobody is draining.
	}
}

// attach queries a device node and adds it to the bus, emitting Connected.
func (b *linuxBus) attach(name string) {
	path := filepath.Join(inputPath, name)
	dev, err := queryDevice(name, path)
	if err != nil {
		b.reportErr(err)
		return
	}

	b.mu.Lock()
	b.devices[name] = dev
	b.mu.Unlock()

	b.emit(Event{Kind: EventConnected, ID: name, Device: dev.Device})
}

// detach removes a device, stopping its reader, and emits Disconnected.
func (b *linuxBus) detach(name string) {
	b.mu.Lock()
	dev, ok := b.devices[name]
	if ok {
		if dev.subscribed {
			dev.readCancel()
		}
		delete(b.devices, name)
	}
	b.mu.Unlock()

	if ok {
		b.emit(Event{Kind: EventDisconnected, ID: name})
	}
}

// watchHotplug watches /dev/input with inotify for device arrival and removal.
func (b *linuxBus) watchHotplug() {
	fd, err := unix.InotifyInit()
	if err != nil {
		b.reportErr(fmt.Errorf("joystick: inotify init: %w", err))
		return
	}
	defer unix.Close(fd)

	wd, err := unix.InotifyAddWatch(fd, inputPath, unix.IN_CREATE|unix.IN_DELETE|unix.IN_ATTRIB)
	if err != nil {
		b.reportErr(fmt.Errorf("joystick: inotify watch: %w", err))
		return
	}
	defer unix.InotifyRmWatch(fd, uint32(wd))

	go func() {
		<-b.ctx.Done()
		unix.Close(fd) // Unblocks the read below.
	}()

	buf := make([]byte, 4096)
	for {
		n, err := unix.Read(fd, buf)
		if err != nil {
			select {
			case <-b.ctx.Done():
			default:
				b.reportErr(fmt.Errorf("joystick: inotify read: %w", err))
			}
			return
		}

		var offset uint32
		for offset+unix.SizeofInotifyEvent <= uint32(n) {
			event := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
			nameBytes := buf[offset+unix.SizeofInotifyEvent : offset+unix.SizeofInotifyEvent+event.Len]
			name := trimNul(nameBytes)
			offset += unix.SizeofInotifyEvent + event.Len

			if !isJoystickNode(name) {
				continue
			}
			switch {
			case event.Mask&unix.IN_CREATE != 0, event.Mask&unix.IN_ATTRIB != 0:
				b.mu.RLock()
				_, known := b.devices[name]
				b.mu.RUnlock()
				if !known {
					b.attach(name)
				}
			case event.Mask&unix.IN_DELETE != 0:
				b.detach(name)
			}
		}
	}
}

// queryDevice opens a device node and reads its identity via joydev ioctls.
func queryDevice(name, path string) (*linuxDevice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("joystick: opening %s: %w", path, err)
	}
	defer f.Close()

	var (
		axes    uint8
		buttons uint8
		version int32
		axMap   [64]uint8
		btnMap  [768]uint16
		rawName [128]byte
	)
	if err := ioctl(f, jsiocgName, unsafe.Pointer(&rawName[0])); err != nil {
		return nil, err
	}
	if err := ioctl(f, jsiocgAxes, unsafe.Pointer(&axes)); err != nil {
		return nil, err
	}
	if err := ioctl(f, jsiocgButtons, unsafe.Pointer(&buttons)); err != nil {
		return nil, err
	}
	if err := ioctl(f, jsiocgVersion, unsafe.Pointer(&version)); err != nil {
		return nil, err
	}
	if err := ioctl(f, jsiocgAxMap, unsafe.Pointer(&axMap[0])); err != nil {
		return nil, err
	}
	if err := ioctl(f, jsiocgBtnMap, unsafe.Pointer(&btnMap[0])); err != nil {
		return nil, err
	}

	dev := &linuxDevice{path: path}
	dev.ID = name
	dev.Model = trimNul(rawName[:])
	dev.Axes = int(axes)
	dev.Buttons = int(buttons)
	dev.AxisMap = make([]int, 0, axes)
	for i := 0; i < int(axes) && i < len(axMap); i++ {
		dev.AxisMap = append(dev.AxisMap, int(axMap[i]))
	}
	dev.ButtonMap = make([]int, 0, buttons)
	for i := 0; i < int(buttons) && i < len(btnMap); i++ {
		dev.ButtonMap = append(dev.ButtonMap, int(btnMap[i]))
	}
	return dev, nil
}

func ioctl(f *os.File, req uintptr, dest unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), req, uintptr(dest))
	if errno != 0 {
		return fmt.Errorf("joystick: ioctl 0x%x: %w", req, errno)
	}
	return nil
}

func trimNul(src []byte) string {
	if i := indexNul(src); i >= 0 {
		return string(src[:i])
	}
	return string(src)
}

func indexNul(src []byte) int {
	for i, b := range src {
		if b == 0 {
			return i
		}
	}
	return -1
}
