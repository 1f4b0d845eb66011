package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitJoinRoundTrip(t *testing.T) {
	for v := uint16(0); v <= MaxEncoderValue; v++ {
		msb, lsb := SplitValue(v)
		assert.LessOrEqual(t, msb, uint8(0x7F))
		assert.LessOrEqual(t, lsb, uint8(0x7F))
		if got := JoinValue(msb, lsb); got != v {
			t.Fatalf("round trip broke at %d: got %d", v, got)
		}
	}
}

func TestJoinMasksHighBits(t *testing.T) {
	// Values with the MIDI status bit set must not leak into the result.
	assert.Equal(t, uint16(0), JoinValue(0x80, 0x80))
	assert.Equal(t, uint16(MaxEncoderValue), JoinValue(0xFF, 0xFF))
}

func TestDecode(t *testing.T) {
	m, ok := Decode([]byte{0xB0, 0x03, 0x20})
	require.True(t, ok)
	assert.Equal(t, uint8(CommandControlChange), m.Command())
	assert.Equal(t, uint8(ChannelRotary), m.Channel())
	assert.Equal(t, uint8(0x03), m.Controller)
	assert.Equal(t, uint8(0x20), m.Value)

	m, ok = Decode([]byte{0xB1, 0x05, 0x7F})
	require.True(t, ok)
	assert.Equal(t, uint8(ChannelSwitch), m.Channel())

	// Non-CC commands still decode; routing discards them later.
	m, ok = Decode([]byte{0x90, 0x40, 0x10})
	require.True(t, ok)
	assert.Equal(t, uint8(0x9), m.Command())
}

func TestDecodeDropsWrongLengths(t *testing.T) {
	for _, buf := range [][]byte{
		nil,
		{},
		{0xB0},
		{0xB0, 0x58},
		{0xB0, 0x58, 0x10, 0x00},
	} {
		_, ok := Decode(buf)
		assert.False(t, ok, "buffer length %d must be dropped", len(buf))
	}
}

func TestRotaryValuePrefixOrder(t *testing.T) {
	msgs := RotaryValue(3, 0x20, 0x10)
	require.Len(t, msgs, 2)

	// The hi-res low-byte prefix must precede the value message.
	assert.Equal(t, []byte{0xB0, 0x58, 0x10}, msgs[0].Bytes())
	assert.Equal(t, []byte{0xB0, 0x03, 0x20}, msgs[1].Bytes())
}

func TestSwitchValue(t *testing.T) {
	assert.Equal(t, []byte{0xB1, 0x05, 127}, SwitchValue(5, 127).Bytes())
	assert.Equal(t, []byte{0xB1, 0x05, 0}, SwitchValue(5, 0).Bytes())
}

func TestPhenotypeControl(t *testing.T) {
	assert.Equal(t, []byte{0xB4, 0x02, 0}, PhenotypeControl(2, PhenotypeRotary).Bytes())
	assert.Equal(t, []byte{0xB4, 0x02, 1}, PhenotypeControl(2, PhenotypeSwitch).Bytes())
	assert.Equal(t, []byte{0xB4, 0x02, 2}, PhenotypeControl(2, PhenotypeOff).Bytes())
}

func TestHueMapSaturates(t *testing.T) {
	assert.Equal(t, []byte{0xB1, 0x00, 1}, Hue(0, 0).Bytes())
	assert.Equal(t, []byte{0xB1, 0x00, 126}, Hue(0, 1).Bytes())
	assert.Equal(t, []byte{0xB1, 0x00, 1}, Hue(0, -3).Bytes())
	assert.Equal(t, []byte{0xB1, 0x00, 126}, Hue(0, 2.5).Bytes())
}

func TestBrightnessBands(t *testing.T) {
	assert.Equal(t, []byte{0xB2, 0x07, 65}, BrightnessRotary(7, 0).Bytes())
	assert.Equal(t, []byte{0xB2, 0x07, 95}, BrightnessRotary(7, 1).Bytes())
	assert.Equal(t, []byte{0xB2, 0x07, 17}, BrightnessRGB(7, 0).Bytes())
	assert.Equal(t, []byte{0xB2, 0x07, 47}, BrightnessRGB(7, 1).Bytes())
	assert.Equal(t, []byte{0xB2, 0x07, 47}, BrightnessRGB(7, 9.9).Bytes())
}

func TestRGBAnimationCodes(t *testing.T) {
	for _, tc := range []struct {
		anim AnimationKind
		rate uint8
		code uint8
	}{
		{AnimationNone, 0, 0},
		{AnimationNone, 7, 0},
		{AnimationStrobe, 0, 1},
		{AnimationStrobe, 7, 8},
		{AnimationPulse, 0, 9},
		{AnimationPulse, 7, 16},
		{AnimationRainbow, 0, 127},
		{AnimationRainbow, 7, 127},
	} {
		code, ok := RGBAnimationCode(tc.anim, tc.rate)
		require.True(t, ok)
		assert.Equal(t, tc.code, code, "anim %d rate %d", tc.anim, tc.rate)
	}

	_, ok := RGBAnimationCode(AnimationStrobe, MaxAnimationRate+1)
	assert.False(t, ok)
}

func TestRotaryAnimationCodes(t *testing.T) {
	for _, tc := range []struct {
		anim AnimationKind
		rate uint8
		code uint8
	}{
		{AnimationNone, 0, 48},
		{AnimationStrobe, 0, 49},
		{AnimationStrobe, 7, 56},
		{AnimationPulse, 0, 57},
		{AnimationPulse, 7, 64},
	} {
		code, ok := RotaryAnimationCode(tc.anim, tc.rate)
		require.True(t, ok)
		assert.Equal(t, tc.code, code, "anim %d rate %d", tc.anim, tc.rate)
	}

	// The rotary ring has no rainbow mode, for any rate.
	for rate := uint8(0); rate <= MaxAnimationRate+1; rate++ {
		_, ok := RotaryAnimationCode(AnimationRainbow, rate)
		assert.False(t, ok)
	}

	_, ok := RotaryAnimationCode(AnimationPulse, MaxAnimationRate+1)
	assert.False(t, ok)
}
