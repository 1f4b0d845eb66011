package device

import (
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register rtmidi driver
)

// The device registers its ports with a platform-dependent suffix, so ports
// are matched by name prefix, first match wins.

func findInPort(prefix string) drivers.In {
	for _, in := range midi.GetInPorts() {
		if strings.HasPrefix(in.String(), prefix) {
			return in
		}
	}
	return nil
}

func findOutPort(prefix string) drivers.Out {
	for _, out := range midi.GetOutPorts() {
		if strings.HasPrefix(out.String(), prefix) {
			return out
		}
	}
	return nil
}
