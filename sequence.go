package otm3201a

import (
	"fmt"
	"time"
)

// Command is one register write of the initialization sequence.
type Command struct {
	Name    string
	Payload []byte        // Register address followed by its parameters
	Delay   time.Duration // Wait after the write completes
}

// Register returns the register address the command writes to.
func (c *Command) Register() byte {
	if len(c.Payload) == 0 {
		return 0
	}
	return c.Payload[0]
}

func (c *Command) String() string {
	return fmt.Sprintf("%s (R%02Xh)", c.Name, c.Register())
}

// Delays required by the controller.
const (
	sleepOutDelay  = 10 * time.Millisecond
	displayOnDelay = 10 * time.Millisecond
	sleepInDelay   = 120 * time.Millisecond
)

// Register addresses.
const (
	regSleepIn          = 0x10
	regSleepOut         = 0x11
	regInversionOff     = 0x20
	regDisplayOff       = 0x28
	regDisplayOn        = 0x29
	regMADCTL           = 0x36
	regIdleOff          = 0x38
	regPixelFormat      = 0x3A
	regReadModeEnable   = 0xA0
	regInversionControl = 0xB1
	regBlankingPorch    = 0xB3
	regGammaVoltage     = 0xB5
	regWaveformCycle    = 0xBA
	regMuxCKH           = 0xBD
	regGammaRPos        = 0xC0
	regGammaRNeg        = 0xC1
	regGammaGPos        = 0xC2
	regGammaGNeg        = 0xC3
	regGammaBPos        = 0xC4
	regGammaBNeg        = 0xC5
	regMIPIRxDelay      = 0xE2
	regLineClock        = 0xE9
	regEngineeringMode  = 0xF0
)

// gammaCurve is shared by all six gamma correction registers.
var gammaCurve = []byte{
	0x00, 0x06, 0x17, 0x11, 0x16, 0x25, 0x0E, 0x0C,
	0x0C, 0x0E, 0x0C, 0x0F, 0x07, 0x0A, 0x3F, 0x3F,
	0x3F,
}

// porch returns the RB3h payload: VFP, VBP, HFP, HBP and VSW/HSW packed in
// one byte.
func porch() []byte {
	return []byte{
		regBlankingPorch,
		lowerMargin,
		upperMargin,
		rightMargin,
		leftMargin,
		vsyncLen<<4 | hsyncLen,
	}
}

func gamma(reg byte) []byte {
	return append([]byte{reg}, gammaCurve...)
}

var initSequence = []Command{
	{Name: "Orise engineering mode enable", Payload: []byte{regEngineeringMode, 0x54, 0x47}},
	{Name: "Register read mode enable", Payload: []byte{regReadModeEnable, 0x00}},
	{Name: "Display inversion control", Payload: []byte{regInversionControl, 0x22}},
	{Name: "Memory data access control", Payload: []byte{regMADCTL, 0x00}},
	{Name: "Interface pixel format", Payload: []byte{regPixelFormat, 0x77}},
	{Name: "RGB interface blanking porch", Payload: porch()},
	{Name: "Mux1 to 9 CKH timing", Payload: []byte{regMuxCKH, 0x00, 0x01, 0x31}},
	{Name: "Display waveform cycle", Payload: []byte{regWaveformCycle, 0x05, 0x15, 0x20, 0x01}},
	{Name: "Landscape video mode line clock", Payload: []byte{regLineClock, 0x16}},
	{Name: "MIPI RX delay", Payload: []byte{regMIPIRxDelay, 0xF5}},
	{Name: "Gamma voltage adjust", Payload: []byte{regGammaVoltage, 0x5C, 0x5C, 0x7A, 0xFA}},
	{Name: "Display inversion off", Payload: []byte{regInversionOff}},
	{Name: "Gamma R+", Payload: gamma(regGammaRPos)},
	{Name: "Gamma R-", Payload: gamma(regGammaRNeg)},
	{Name: "Gamma G+", Payload: gamma(regGammaGPos)},
	{Name: "Gamma G-", Payload: gamma(regGammaGNeg)},
	{Name: "Gamma B+", Payload: gamma(regGammaBPos)},
	{Name: "Gamma B-", Payload: gamma(regGammaBNeg)},
	{Name: "Idle mode off", Payload: []byte{regIdleOff}},
	{Name: "Sleep out", Payload: []byte{regSleepOut}, Delay: sleepOutDelay},
	{Name: "Display on", Payload: []byte{regDisplayOn}, Delay: displayOnDelay},
}

var haltSequence = []Command{
	{Name: "Display off", Payload: []byte{regDisplayOff}},
	{Name: "Sleep in", Payload: []byte{regSleepIn}, Delay: sleepInDelay},
}

// Sequence returns a copy of the initialization sequence sent by Init.
func Sequence() []Command {
	return cloneCommands(initSequence)
}

func cloneCommands(src []Command) []Command {
	out := make([]Command, len(src))
	for i := range src {
		out[i] = src[i].clone()
	}
	return out
}

func (c *Command) clone() Command {
	return Command{
		Name:    c.Name,
		Payload: append([]byte(nil), c.Payload...),
		Delay:   c.Delay,
	}
}
