//go:build !linux

package joystick

func newBus() (Bus, error) {
	return nil, ErrOSNotSupported
}
