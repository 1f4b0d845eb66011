package device

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/glowbeam/twistctl/internal/wire"
)

// Styling is independent of the binding state: it addresses the LEDs, not
// the phenotype. Out-of-range slots and rates are silently ignored at this
// boundary, matching the rest of the public surface.

// SetHueRGB sets the RGB ring hue, hue in [0,1] around the wheel.
func (c *Controller) SetHueRGB(slot int, hue float64) {
	if slot < 0 || slot >= len(c.encoders) {
		return
	}
	c.encoders[slot].SetHueRGB(hue)
}

// SetColorRGB sets the RGB ring to the nearest hue for an 8-bit RGB color.
// The Twister only takes a hue, so saturation and value are discarded.
func (c *Controller) SetColorRGB(slot int, r, g, b uint8) {
	if slot < 0 || slot >= len(c.encoders) {
		return
	}
	h, _, _ := colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}.Hsv()
	c.encoders[slot].SetHueRGB(h / 360)
}

// SetBrightnessRGB sets RGB ring brightness, b in [0,1].
func (c *Controller) SetBrightnessRGB(slot int, b float64) {
	if slot < 0 || slot >= len(c.encoders) {
		return
	}
	c.encoders[slot].SetBrightnessRGB(b)
}

// SetAnimationRGB starts an RGB ring animation. Rates above
// wire.MaxAnimationRate are ignored.
func (c *Controller) SetAnimationRGB(slot int, a wire.AnimationKind, rate uint8) {
	if slot < 0 || slot >= len(c.encoders) {
		return
	}
	code, ok := wire.RGBAnimationCode(a, rate)
	if !ok {
		return
	}
	c.encoders[slot].SetAnimation(code)
}

// SetBrightnessRotary sets rotary indicator brightness, b in [0,1].
func (c *Controller) SetBrightnessRotary(slot int, b float64) {
	if slot < 0 || slot >= len(c.encoders) {
		return
	}
	c.encoders[slot].SetBrightnessRotary(b)
}

// SetAnimationRotary starts a rotary ring animation. The rotary ring has no
// rainbow mode; requesting it is a no-op, as are out-of-range rates.
func (c *Controller) SetAnimationRotary(slot int, a wire.AnimationKind, rate uint8) {
	if slot < 0 || slot >= len(c.encoders) {
		return
	}
	code, ok := wire.RotaryAnimationCode(a, rate)
	if !ok {
		return
	}
	c.encoders[slot].SetAnimation(code)
}
