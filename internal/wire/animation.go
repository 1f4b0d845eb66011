package wire

// AnimationKind selects one of the device's LED animation programs.
type AnimationKind int

const (
	AnimationNone AnimationKind = iota
	AnimationStrobe
	AnimationPulse
	AnimationRainbow
)

// MaxAnimationRate is the highest speed step the firmware accepts.
const MaxAnimationRate = 7

// RGBAnimationCode resolves an animation and rate to the raw code for the
// RGB ring. Rates above MaxAnimationRate are rejected.
func RGBAnimationCode(a AnimationKind, rate uint8) (uint8, bool) {
	if rate > MaxAnimationRate {
		return 0, false
	}
	switch a {
	case AnimationNone:
		return 0, true
	case AnimationStrobe:
		return 1 + rate, true
	case AnimationPulse:
		return 9 + rate, true
	default:
		// Rainbow ignores the rate entirely.
		return 127, true
	}
}

// RotaryAnimationCode resolves an animation and rate to the raw code for the
// rotary indicator ring. The rotary ring has no rainbow mode; requesting it
// is rejected, as are rates above MaxAnimationRate.
func RotaryAnimationCode(a AnimationKind, rate uint8) (uint8, bool) {
	if rate > MaxAnimationRate || a == AnimationRainbow {
		return 0, false
	}
	switch a {
	case AnimationNone:
		return 48, true
	case AnimationStrobe:
		return 49 + rate, true
	default:
		return 57 + rate, true
	}
}
