package device

import (
	"log/slog"

	"gitlab.com/gomidi/midi/v2"

	"github.com/glowbeam/twistctl/internal/wire"
)

// sendFunc writes a batch of messages to the device output port as one
// unit; the hi-res prefix and its value message must reach the wire
// back-to-back. A nil sendFunc means no device is connected and every send
// is a no-op.
type sendFunc func(...midi.Message) error

// Encoder owns one physical slot: its rotary/switch enable state, the
// outbound protocol messages for that slot, and the two translation
// closures installed while a parameter is bound.
//
// Encoders are created once per Controller and live in its fixed array for
// the Controller's whole life; bindings come and go.
type Encoder struct {
	pos  uint8
	send sendFunc
	log  *slog.Logger

	rotaryEnabled bool
	switchEnabled bool

	// Installed while a parameter is bound, nil otherwise. Invoked from
	// the update loop with the two 7-bit halves of the hardware value.
	updateRotaryParam func(msb, lsb uint8)
	updateSwitchParam func(msb, lsb uint8)

	// Listener removals for the bound parameter's change notifications.
	removeRotaryListener func()
	removeSwitchListener func()
}

// SetRotaryState enables or disables the rotary side. A phenotype message
// is only emitted on an actual transition, or when forced. Disabling emits
// PhenotypeOff only once the switch side is also disabled, so an active
// switch binding on the same ring is not clobbered.
func (e *Encoder) SetRotaryState(enabled, force bool) {
	if e.rotaryEnabled == enabled && !force {
		return
	}

	if enabled {
		e.emit(wire.PhenotypeControl(e.pos, wire.PhenotypeRotary))
	} else if !e.switchEnabled {
		e.emit(wire.PhenotypeControl(e.pos, wire.PhenotypeOff))
	}

	e.rotaryEnabled = enabled
}

// SetSwitchState is the switch-side counterpart of SetRotaryState.
func (e *Encoder) SetSwitchState(enabled, force bool) {
	if e.switchEnabled == enabled && !force {
		return
	}

	if enabled {
		e.emit(wire.PhenotypeControl(e.pos, wire.PhenotypeSwitch))
	} else if !e.rotaryEnabled {
		e.emit(wire.PhenotypeControl(e.pos, wire.PhenotypeOff))
	}

	e.switchEnabled = enabled
}

// SetRotaryValue pushes a 14-bit value to the rotary ring. Rejected with a
// logged error if the rotary side is not enabled.
func (e *Encoder) SetRotaryValue(v uint16) {
	if !e.rotaryEnabled {
		e.log.Error("cannot send rotary value to disabled encoder", "slot", e.pos)
		return
	}

	msb, lsb := wire.SplitValue(v)
	e.emit(wire.RotaryValue(e.pos, msb, lsb)...)
}

// SetSwitchValue pushes a 14-bit value to the switch indicator; only the
// high byte goes on the wire. Rejected with a logged error if the switch
// side is not enabled.
func (e *Encoder) SetSwitchValue(v uint16) {
	if !e.switchEnabled {
		e.log.Error("cannot send switch value to disabled encoder", "slot", e.pos)
		return
	}

	msb, _ := wire.SplitValue(v)
	e.emit(wire.SwitchValue(e.pos, msb))
}

// Styling calls are unconditional: they do not care about the enable state
// and only no-op when no output port is connected.

func (e *Encoder) SetHueRGB(h float64) {
	e.emit(wire.Hue(e.pos, h))
}

func (e *Encoder) SetBrightnessRGB(b float64) {
	e.emit(wire.BrightnessRGB(e.pos, b))
}

func (e *Encoder) SetBrightnessRotary(b float64) {
	e.emit(wire.BrightnessRotary(e.pos, b))
}

func (e *Encoder) SetAnimation(code uint8) {
	e.emit(wire.Animation(e.pos, code))
}

func (e *Encoder) emit(msgs ...midi.Message) {
	if e.send == nil {
		return
	}
	if err := e.send(msgs...); err != nil {
		e.log.Error("midi send failed", "slot", e.pos, "err", err)
	}
}

// clearBinding drops the translation closures and detaches the parameter
// listeners. Must be called before the bound parameter is destroyed.
func (e *Encoder) clearBinding() {
	if e.removeRotaryListener != nil {
		e.removeRotaryListener()
		e.removeRotaryListener = nil
	}
	if e.removeSwitchListener != nil {
		e.removeSwitchListener()
		e.removeSwitchListener = nil
	}
	e.updateRotaryParam = nil
	e.updateSwitchParam = nil
}
