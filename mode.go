package otm3201a

import (
	"periph.io/x/devices/v3/otm3201a/dsi"
	"periph.io/x/devices/v3/otm3201a/fbmode"
)

// Panel timing from the OTM3201A datasheet.
//
//	Linux name     Orise name  value
//	left margin    HBP         12
//	right margin   HFP         12
//	upper margin   VBP         2
//	lower margin   VFP         18
//	hsync length   HSW         10
//	vsync length   VSW         2
const (
	Width  = 320
	Height = 320

	refresh     = 60
	leftMargin  = 12
	rightMargin = 12
	upperMargin = 2
	lowerMargin = 18
	hsyncLen    = 10
	vsyncLen    = 2
)

var modedb = [...]fbmode.VideoMode{
	{
		Name:        "OTM3201A",
		Refresh:     refresh,
		XRes:        Width,
		YRes:        Height,
		PixClock:    fbmode.PixClock(Width, Height, leftMargin, rightMargin, upperMargin, lowerMargin, hsyncLen, vsyncLen, refresh),
		LeftMargin:  leftMargin,
		RightMargin: rightMargin,
		UpperMargin: upperMargin,
		LowerMargin: lowerMargin,
		HSyncLen:    hsyncLen,
		VSyncLen:    vsyncLen,
		Sync:        fbmode.SyncOELowAct,
		VMode:       fbmode.VModeNonInterlaced,
		Flag:        0,
	},
}

var lcdConfig = dsi.LCDConfig{
	VirtualChannel:  0,
	DataLanes:       1,
	MaxPHYClockMbps: 800,
	DPIFormat:       dsi.RGB565Packed,
}

// VideoMode returns the video modes supported by the panel and the DSI link
// configuration it requires from the host.
//
// The returned values are copies; modifying them does not affect the driver.
func VideoMode() ([]fbmode.VideoMode, dsi.LCDConfig) {
	modes := make([]fbmode.VideoMode, len(modedb))
	copy(modes, modedb[:])
	return modes, lcdConfig
}
