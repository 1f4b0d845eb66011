// Package device drives the 16-encoder Midi Fighter Twister: port
// discovery, the per-slot encoder state machines, and the bidirectional
// translation between hardware values and bound parameters.
package device

import (
	"log/slog"
	"math"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/glowbeam/twistctl/internal/queue"
	"github.com/glowbeam/twistctl/internal/wire"
	"github.com/glowbeam/twistctl/param"
)

// DefaultDeviceName is the port-name prefix the controller scans for.
const DefaultDeviceName = "Midi Fighter Twister"

// Options configures a Controller.
type Options struct {
	// DeviceName overrides the port-name prefix to match. Empty means
	// DefaultDeviceName.
	DeviceName string

	// Logger receives warnings and errors. Nil means slog.Default.
	Logger *slog.Logger
}

// Controller owns the transport handles, the callback-to-update queue, the
// fixed array of 16 encoders and the pending high-resolution low byte.
//
// Update must be called from one consistent goroutine. Outbound sends are
// serialized internally because parameter listeners push values to the
// device from whichever goroutine mutates the parameter.
type Controller struct {
	log        *slog.Logger
	deviceName string

	in   drivers.In
	stop func()

	sendMu sync.Mutex
	out    sendFunc

	in2app   *queue.Queue[wire.Message]
	encoders [wire.NumSlots]Encoder

	// Low 7 bits of the last hi-res prefix message, consumed by the next
	// rotary value message and reset afterwards.
	hiResLowByte uint8
}

// NewController creates an inert controller. Setup attaches it to the
// hardware; without a device every send stays a no-op.
func NewController(opts Options) *Controller {
	if opts.DeviceName == "" {
		opts.DeviceName = DefaultDeviceName
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	c := &Controller{
		log:        opts.Logger,
		deviceName: opts.DeviceName,
		in2app:     queue.New[wire.Message](),
	}
	for i := range c.encoders {
		c.encoders[i].pos = uint8(i)
		c.encoders[i].log = opts.Logger
	}
	return c
}

// Setup scans the available ports for the device and wires input and
// output. The two directions are independent: either may fail without
// affecting the other, and any failure is logged, never returned. A missing
// device leaves the controller usable but inert.
func (c *Controller) Setup() {
	if in := findInPort(c.deviceName); in == nil {
		c.log.Warn("midi input port not found", "device", c.deviceName)
	} else {
		stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
			// Driver callback goroutine: decode and enqueue, nothing
			// else. Undecodable buffers are dropped here.
			if m, ok := wire.Decode(msg.Bytes()); ok {
				c.in2app.Send(m)
			}
		})
		if err != nil {
			c.log.Warn("opening midi input failed", "device", c.deviceName, "err", err)
		} else {
			c.in = in
			c.stop = stop
		}
	}

	if out := findOutPort(c.deviceName); out == nil {
		c.log.Warn("midi output port not found", "device", c.deviceName)
	} else if send, err := midi.SendTo(out); err != nil {
		c.log.Warn("opening midi output failed", "device", c.deviceName, "err", err)
	} else {
		c.setOutput(send)
	}
}

// setOutput installs the raw send closure behind a mutex. The lock is held
// across a whole batch so a hi-res prefix and its value message from one
// slot cannot interleave with another slot's pair.
func (c *Controller) setOutput(raw func(midi.Message) error) {
	var wrapped sendFunc
	if raw != nil {
		wrapped = func(msgs ...midi.Message) error {
			c.sendMu.Lock()
			defer c.sendMu.Unlock()
			for _, m := range msgs {
				if err := raw(m); err != nil {
					return err
				}
			}
			return nil
		}
	}
	for i := range c.encoders {
		c.encoders[i].send = wrapped
	}
	c.out = wrapped
}

// Close releases all bindings and detaches from the input port.
func (c *Controller) Close() {
	c.Clear()
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
	c.in = nil
	c.setOutput(nil)
}

// Clear force-unbinds all 16 slots.
func (c *Controller) Clear() {
	for i := range c.encoders {
		c.clearParam(&c.encoders[i], true)
	}
}

// SetParams rebinds all 16 slots from the group in one pass: a full
// replace, never a merge. Parameters of unrecognized kind clear their slot;
// slots beyond the group's length are forced off even if previously bound.
func (c *Controller) SetParams(group param.Group) {
	for i := range c.encoders {
		e := &c.encoders[i]

		if i >= len(group) {
			c.clearParam(e, true)
			continue
		}

		switch p := group[i].(type) {
		case param.Float:
			c.bindFloat(e, p)
		case param.Int:
			c.bindInt(e, p)
		case param.Bool:
			c.bindBool(e, p)
		default:
			c.log.Warn("unsupported parameter kind, clearing slot",
				"slot", i, "param", group[i].Name())
			c.clearParam(e, false)
		}
	}
}

// SetParam binds one slot to one parameter. Out-of-range slots are ignored.
func (c *Controller) SetParam(slot int, p param.Param) {
	if slot < 0 || slot >= len(c.encoders) {
		return
	}
	e := &c.encoders[slot]

	switch p := p.(type) {
	case param.Float:
		c.bindFloat(e, p)
	case param.Int:
		c.bindInt(e, p)
	case param.Bool:
		c.bindBool(e, p)
	default:
		c.log.Warn("unsupported parameter kind, clearing slot",
			"slot", slot, "param", p.Name())
		c.clearParam(e, false)
	}
}

// ClearParam unbinds one slot, disabling both sides regardless of which one
// was active.
func (c *Controller) ClearParam(slot int, force bool) {
	if slot < 0 || slot >= len(c.encoders) {
		return
	}
	c.clearParam(&c.encoders[slot], force)
}

func (c *Controller) clearParam(e *Encoder, force bool) {
	e.SetRotaryState(false, force)
	e.SetSwitchState(false, force)
	e.clearBinding()
}

func (c *Controller) bindFloat(e *Encoder, p param.Float) {
	c.clearParam(e, false)
	e.SetRotaryState(true, false)

	// Capture the range by value; the parameter may be gone by the time a
	// stale closure would read it otherwise.
	min, max := p.Min(), p.Max()

	e.SetRotaryValue(toHardware(p.Get(), min, max))

	e.updateRotaryParam = func(msb, lsb uint8) {
		p.Set(fromHardware(wire.JoinValue(msb, lsb), min, max))
	}

	// Echo loop: a hardware turn writes the parameter, whose change
	// listener immediately sends the value back to the ring. Redundant
	// but harmless; it keeps the ring honest on external changes.
	e.removeRotaryListener = p.OnChange(func(v float64) {
		e.SetRotaryValue(toHardware(v, min, max))
	})
}

func (c *Controller) bindInt(e *Encoder, p param.Int) {
	c.clearParam(e, false)
	e.SetRotaryState(true, false)

	min, max := float64(p.Min()), float64(p.Max())

	e.SetRotaryValue(toHardware(float64(p.Get()), min, max))

	e.updateRotaryParam = func(msb, lsb uint8) {
		p.Set(int(math.Round(fromHardware(wire.JoinValue(msb, lsb), min, max))))
	}

	e.removeRotaryListener = p.OnChange(func(v int) {
		e.SetRotaryValue(toHardware(float64(v), min, max))
	})
}

func (c *Controller) bindBool(e *Encoder, p param.Bool) {
	c.clearParam(e, false)
	e.SetSwitchState(true, false)

	e.SetSwitchValue(boolToHardware(p.Get()))

	e.updateSwitchParam = func(msb, lsb uint8) {
		p.Set(msb > 63)
	}

	e.removeSwitchListener = p.OnChange(func(v bool) {
		e.SetSwitchValue(boolToHardware(v))
	})
}

// Update drains the queue completely, routing each decoded message to its
// slot. Call once per tick from a single goroutine.
func (c *Controller) Update() {
	for {
		m, ok := c.in2app.TryReceive()
		if !ok {
			return
		}
		if m.Command() != wire.CommandControlChange {
			continue
		}

		switch m.Channel() {
		case wire.ChannelRotary:
			if m.Controller == wire.ControllerHiRes {
				c.hiResLowByte = m.Value & 0x7F
				continue
			}
			if int(m.Controller) < len(c.encoders) {
				e := &c.encoders[m.Controller]
				if e.rotaryEnabled && e.updateRotaryParam != nil {
					e.updateRotaryParam(m.Value, c.hiResLowByte)
				}
			}
			// The low byte pairs with exactly one value message; reset
			// even when the slot was disabled or out of range so it
			// cannot leak into an unrelated later read.
			c.hiResLowByte = 0

		case wire.ChannelSwitch:
			if int(m.Controller) >= len(c.encoders) {
				continue
			}
			e := &c.encoders[m.Controller]
			if e.switchEnabled && e.updateSwitchParam != nil {
				e.updateSwitchParam(m.Value, 0)
			}
		}
	}
}

// toHardware maps v in [min,max] onto the 14-bit range, saturating.
func toHardware(v, min, max float64) uint16 {
	if max <= min {
		return 0
	}
	x := (v - min) / (max - min)
	if x < 0 {
		x = 0
	} else if x > 1 {
		x = 1
	}
	return uint16(math.Round(x * wire.MaxEncoderValue))
}

// fromHardware maps a 14-bit value onto [min,max].
func fromHardware(v uint16, min, max float64) float64 {
	return min + float64(v)/wire.MaxEncoderValue*(max-min)
}

func boolToHardware(v bool) uint16 {
	if v {
		return wire.MaxEncoderValue
	}
	return 0
}
