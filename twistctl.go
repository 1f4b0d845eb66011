// Package twistctl bridges a Midi Fighter Twister to typed, observable
// application parameters. Rotating an encoder updates the bound numeric
// parameter and vice versa; pressing an encoder toggles a bound boolean;
// the encoder LEDs reflect bound values and can be styled freely.
//
// Typical use:
//
//	tw := twistctl.New()
//	tw.Setup()
//	tw.SetParams(param.NewGroup(
//		param.NewFloat("cutoff", 0.5, 0, 1),
//		param.NewBool("mute", false),
//	))
//	for range time.Tick(16 * time.Millisecond) {
//		tw.Update()
//	}
package twistctl

import (
	"log/slog"

	"github.com/glowbeam/twistctl/config"
	"github.com/glowbeam/twistctl/internal/device"
	"github.com/glowbeam/twistctl/internal/wire"
	"github.com/glowbeam/twistctl/param"
)

// NumSlots is the number of encoder slots on the device.
const NumSlots = wire.NumSlots

// Animation selects an LED animation program.
type Animation = wire.AnimationKind

const (
	AnimationNone    = wire.AnimationNone
	AnimationStrobe  = wire.AnimationStrobe
	AnimationPulse   = wire.AnimationPulse
	AnimationRainbow = wire.AnimationRainbow
)

// Option configures a Twister.
type Option func(*Twister)

// WithDeviceName overrides the port-name prefix scanned for at setup.
func WithDeviceName(name string) Option {
	return func(t *Twister) { t.deviceName = name }
}

// WithLogger routes the bridge's warnings and errors to l.
func WithLogger(l *slog.Logger) Option {
	return func(t *Twister) { t.log = l }
}

// Twister is the public handle. Methods called before Setup log a warning,
// set up implicitly, and then proceed; nothing here fails outward.
//
// Update must be polled from one consistent goroutine.
type Twister struct {
	log        *slog.Logger
	deviceName string
	ctrl       *device.Controller
}

// New creates an unattached handle. Call Setup, or let the first method
// call set up implicitly.
func New(opts ...Option) *Twister {
	t := &Twister{log: slog.Default()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Setup scans for the device and attaches input and output. Safe to call
// when no device is present: the handle stays usable and all sends no-op.
// Calling Setup again drops the previous attachment and rescans.
func (t *Twister) Setup() {
	if t.ctrl != nil {
		t.ctrl.Close()
	}
	t.ctrl = device.NewController(device.Options{
		DeviceName: t.deviceName,
		Logger:     t.log,
	})
	t.ctrl.Setup()
}

// ensure returns the controller, setting up implicitly on first use.
func (t *Twister) ensure(method string) *device.Controller {
	if t.ctrl == nil {
		t.log.Warn("Setup was not called before first use, setting up implicitly",
			"method", method)
		t.Setup()
	}
	return t.ctrl
}

// Close releases all bindings and detaches from the device.
func (t *Twister) Close() {
	if t.ctrl != nil {
		t.ctrl.Close()
		t.ctrl = nil
	}
}

// Clear force-unbinds all 16 slots.
func (t *Twister) Clear() {
	t.ensure("Clear").Clear()
}

// Update drains pending hardware input and routes it into the bound
// parameters. Call once per tick.
func (t *Twister) Update() {
	t.ensure("Update").Update()
}

// SetParams rebinds all 16 slots from the group in one pass. Slots beyond
// the group's length are forced off; this is a full replace, not a merge.
func (t *Twister) SetParams(group param.Group) {
	t.ensure("SetParams").SetParams(group)
}

// SetParam binds one slot to a float, int or bool parameter. Other kinds
// clear the slot.
func (t *Twister) SetParam(slot int, p param.Param) {
	t.ensure("SetParam").SetParam(slot, p)
}

// ClearParam unbinds one slot. The binding must be cleared before the bound
// parameter is destroyed.
func (t *Twister) ClearParam(slot int, force bool) {
	t.ensure("ClearParam").ClearParam(slot, force)
}

// SetHueRGB sets a slot's RGB ring hue, hue in [0,1].
func (t *Twister) SetHueRGB(slot int, hue float64) {
	t.ensure("SetHueRGB").SetHueRGB(slot, hue)
}

// SetColorRGB sets a slot's RGB ring to the nearest hue for an RGB color.
func (t *Twister) SetColorRGB(slot int, r, g, b uint8) {
	t.ensure("SetColorRGB").SetColorRGB(slot, r, g, b)
}

// SetBrightnessRGB sets a slot's RGB ring brightness, b in [0,1].
func (t *Twister) SetBrightnessRGB(slot int, b float64) {
	t.ensure("SetBrightnessRGB").SetBrightnessRGB(slot, b)
}

// SetAnimationRGB starts an RGB ring animation, rate in 0-7.
func (t *Twister) SetAnimationRGB(slot int, a Animation, rate uint8) {
	t.ensure("SetAnimationRGB").SetAnimationRGB(slot, a, rate)
}

// SetBrightnessRotary sets a slot's rotary indicator brightness, b in [0,1].
func (t *Twister) SetBrightnessRotary(slot int, b float64) {
	t.ensure("SetBrightnessRotary").SetBrightnessRotary(slot, b)
}

// SetAnimationRotary starts a rotary ring animation, rate in 0-7. The
// rotary ring has no rainbow mode; requesting it is a no-op.
func (t *Twister) SetAnimationRotary(slot int, a Animation, rate uint8) {
	t.ensure("SetAnimationRotary").SetAnimationRotary(slot, a, rate)
}

// ApplyStyleFile loads a styling preset file and applies it to the device.
// An empty path means the default config location. Callers that already hold
// a loaded config should use ApplyStyle instead.
func (t *Twister) ApplyStyleFile(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	t.ApplyStyle(cfg)
	return nil
}

// ApplyStyle applies an already-loaded styling preset to the device. Slots
// the preset does not mention keep their current look.
func (t *Twister) ApplyStyle(cfg *config.Config) {
	c := t.ensure("ApplyStyle")
	for _, s := range cfg.Slots {
		if s.Hue != nil {
			c.SetHueRGB(s.Slot, *s.Hue)
		}
		if s.BrightnessRGB != nil {
			c.SetBrightnessRGB(s.Slot, *s.BrightnessRGB)
		}
		if s.BrightnessRotary != nil {
			c.SetBrightnessRotary(s.Slot, *s.BrightnessRotary)
		}
		if a, ok := parseAnimation(s.Animation); ok {
			c.SetAnimationRGB(s.Slot, a, s.AnimationRate)
		}
	}
}

func parseAnimation(name string) (Animation, bool) {
	switch name {
	case "none":
		return AnimationNone, true
	case "strobe":
		return AnimationStrobe, true
	case "pulse":
		return AnimationPulse, true
	case "rainbow":
		return AnimationRainbow, true
	default:
		return AnimationNone, false
	}
}
