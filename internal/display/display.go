// Package display owns the presentation mode (orientation and windowing)
// and the atomic switch into portrait fullscreen.
package display

import "errors"

// ErrModeUnsupported is returned when the backend cannot provide the
// requested mode. The previous mode is always retained on failure.
var ErrModeUnsupported = errors.New("display: mode unsupported")

// Orientation of the play area.
type Orientation uint8

const (
	Landscape Orientation = iota
	Portrait
)

func (o Orientation) String() string {
	if o == Portrait {
		return "portrait"
	}
	return "landscape"
}

// Presentation of the window.
type Presentation uint8

const (
	Windowed Presentation = iota
	Fullscreen
)

func (p Presentation) String() string {
	if p == Fullscreen {
		return "fullscreen"
	}
	return "windowed"
}

// Mode is the current display configuration.
type Mode struct {
	Orientation  Orientation
	Presentation Presentation
}

// PortraitFullscreen is the mode produced by TogglePortraitFullscreen.
var PortraitFullscreen = Mode{Orientation: Portrait, Presentation: Fullscreen}

// Reconfigurer is the boundary to the actual display/window system.
type Reconfigurer interface {
	// SetPortraitFullscreen reconfigures the output for portrait fullscreen.
	// Must either fully apply or leave the display untouched.
	SetPortraitFullscreen() error
}

// Controller tracks the mode and drives reconfigurations through the backend.
type Controller struct {
	mode    Mode
	backend Reconfigurer
}

// NewController creates a controller starting in windowed landscape.
func NewController(backend Reconfigurer) *Controller {
	return &Controller{backend: backend}
}

// Mode returns the current display mode.
func (c *Controller) Mode() Mode { return c.mode }

// TogglePortraitFullscreen switches orientation to portrait and presentation
// to fullscreen in one step. Idempotent when already in that mode. On backend
// failure the previous mode is retained and the error is returned.
func (c *Controller) TogglePortraitFullscreen() error {
	if c.mode == PortraitFullscreen {
		return nil
	}
	if c.backend != nil {
		if err := c.backend.SetPortraitFullscreen(); err != nil {
			return err
		}
	}
	c.mode = PortraitFullscreen
	return nil
}
