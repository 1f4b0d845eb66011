// Package wire implements the Control-Change message format spoken by the
// Midi Fighter Twister: the 3-byte layout, the 14-bit high-resolution value
// split, and the channel assignments for values, switches, styling and
// encoder phenotype control.
package wire

import (
	"math"

	"gitlab.com/gomidi/midi/v2"
)

const (
	// CommandControlChange is the high nibble of the status byte for every
	// message this device sends or accepts.
	CommandControlChange = 0xB

	// Channel assignment is a fixed contract with the device firmware.
	ChannelRotary    = 0x0 // rotary value in/out + hi-res prefix
	ChannelSwitch    = 0x1 // switch press in, switch value / color out
	ChannelStyle     = 0x2 // brightness and animation out
	ChannelPhenotype = 0x4 // encoder behavior mode out

	// ControllerHiRes is the controller byte of the high-resolution prefix
	// message carrying the low 7 bits of a 14-bit value.
	ControllerHiRes = 0x58

	// MaxEncoderValue is the top of the 14-bit hardware value range.
	MaxEncoderValue = 0x3FFF

	// NumSlots is the number of physical encoders, addressed 0-15 row-major.
	NumSlots = 16

	// SwitchOn and SwitchOff are the 7-bit values representing a pressed
	// and released switch.
	SwitchOn  = 127
	SwitchOff = 0
)

// Phenotype is the behavior mode of one encoder slot.
type Phenotype uint8

const (
	PhenotypeRotary Phenotype = 0
	PhenotypeSwitch Phenotype = 1
	PhenotypeOff    Phenotype = 2
)

// Message is one decoded 3-byte Control-Change message.
type Message struct {
	Status     uint8 // command in the high nibble, channel in the low nibble
	Controller uint8 // slot index 0-15, or ControllerHiRes
	Value      uint8 // 7-bit payload
}

// Command returns the high nibble of the status byte.
func (m Message) Command() uint8 {
	return m.Status >> 4
}

// Channel returns the low nibble of the status byte.
func (m Message) Channel() uint8 {
	return m.Status & 0x0F
}

// Decode parses a raw buffer delivered by the input port. Only exactly
// 3-byte buffers are accepted; anything else is dropped, not an error.
func Decode(buf []byte) (Message, bool) {
	if len(buf) != 3 {
		return Message{}, false
	}
	return Message{Status: buf[0], Controller: buf[1], Value: buf[2]}, true
}

// SplitValue decomposes a 14-bit value into its 7-bit halves.
func SplitValue(v uint16) (msb, lsb uint8) {
	return uint8((v >> 7) & 0x7F), uint8(v & 0x7F)
}

// JoinValue reassembles a 14-bit value from its 7-bit halves.
func JoinValue(msb, lsb uint8) uint16 {
	return uint16(msb&0x7F)<<7 | uint16(lsb&0x7F)
}

// RotaryValue builds the two-message sequence setting a rotary ring to a
// 14-bit value. The hi-res prefix carrying the low byte must be sent before
// the value message carrying the high byte.
func RotaryValue(pos uint8, msb, lsb uint8) []midi.Message {
	return []midi.Message{
		midi.ControlChange(ChannelRotary, ControllerHiRes, lsb),
		midi.ControlChange(ChannelRotary, pos, msb),
	}
}

// SwitchValue builds the message setting a switch indicator to a 7-bit
// value. Boolean parameters map to SwitchOn/SwitchOff at the caller.
func SwitchValue(pos uint8, v uint8) midi.Message {
	return midi.ControlChange(ChannelSwitch, pos, v)
}

// PhenotypeControl builds the message switching a slot's behavior mode.
func PhenotypeControl(pos uint8, p Phenotype) midi.Message {
	return midi.ControlChange(ChannelPhenotype, pos, uint8(p))
}

// Hue builds the message setting the RGB ring hue. The hue wheel occupies
// the value range 1-126 on the switch channel.
func Hue(pos uint8, h float64) midi.Message {
	return midi.ControlChange(ChannelSwitch, pos, mapRange(h, 1, 126))
}

// BrightnessRotary builds the message setting rotary indicator brightness,
// mapped onto the 65-95 band of the style channel.
func BrightnessRotary(pos uint8, b float64) midi.Message {
	return midi.ControlChange(ChannelStyle, pos, mapRange(b, 65, 95))
}

// BrightnessRGB builds the message setting RGB ring brightness, mapped onto
// the 17-47 band of the style channel.
func BrightnessRGB(pos uint8, b float64) midi.Message {
	return midi.ControlChange(ChannelStyle, pos, mapRange(b, 17, 47))
}

// Animation builds the message setting a raw animation code. Codes come
// from RGBAnimation or RotaryAnimation.
func Animation(pos uint8, code uint8) midi.Message {
	return midi.ControlChange(ChannelStyle, pos, code)
}

// mapRange maps x in [0,1] linearly onto [lo,hi], saturating at the ends.
func mapRange(x float64, lo, hi uint8) uint8 {
	if x < 0 {
		x = 0
	} else if x > 1 {
		x = 1
	}
	return uint8(math.Round(float64(lo) + x*float64(hi-lo)))
}
