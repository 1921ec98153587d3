// Package fbmode describes framebuffer video modes in the layout used by the
// Linux fbdev subsystem (struct fb_videomode).
//
// All margins and sync lengths are expressed in pixel clocks (horizontal) or
// lines (vertical). The pixel clock is a period in picoseconds.
package fbmode

import (
	"errors"
	"fmt"
	"strings"
)

// Sync is a bit set of synchronization flags.
type Sync uint32

// Sync flags, matching linux/fb.h and linux/mxcfb.h.
const (
	SyncHorHighAct  Sync = 1 << 0
	SyncVertHighAct Sync = 1 << 1
	SyncExt         Sync = 1 << 2
	SyncCompHighAct Sync = 1 << 3
	SyncBroadcast   Sync = 1 << 4
	SyncOnGreen     Sync = 1 << 5

	SyncSwapRGB    Sync = 0x04000000
	SyncSharpMode  Sync = 0x08000000
	SyncClkIdleEn  Sync = 0x10000000
	SyncDataInvert Sync = 0x20000000
	SyncClkLatFall Sync = 0x40000000
	SyncOELowAct   Sync = 0x80000000
)

// VMode is the scan mode of a video mode.
type VMode uint32

const (
	VModeNonInterlaced VMode = 0
	VModeInterlaced    VMode = 1
	VModeDouble        VMode = 2
)

// VideoMode is a single entry of a video mode database.
type VideoMode struct {
	Name        string
	Refresh     int // Hz
	XRes        int
	YRes        int
	PixClock    uint32 // picoseconds
	LeftMargin  int
	RightMargin int
	UpperMargin int
	LowerMargin int
	HSyncLen    int
	VSyncLen    int
	Sync        Sync
	VMode       VMode
	Flag        uint32
}

// geometryDepth is the bits per pixel printed by String.
const geometryDepth = 24

var (
	errNoResolution = errors.New("fbmode: resolution must be non-zero")
	errNoRefresh    = errors.New("fbmode: refresh rate must be non-zero")
	errNoPixClock   = errors.New("fbmode: pixel clock must be non-zero")
)

// PixClock returns the pixel clock period in picoseconds for the given
// geometry, truncated to an integer.
//
// Returns 0 when any total is zero.
func PixClock(xres, yres, left, right, upper, lower, hsync, vsync, refresh int) uint32 {
	htotal := xres + left + right + hsync
	vtotal := yres + upper + lower + vsync
	if htotal <= 0 || vtotal <= 0 || refresh <= 0 {
		return 0
	}
	return uint32(1e12 / float64(htotal*vtotal*refresh))
}

// HTotal returns the number of pixel clocks per line.
func (m *VideoMode) HTotal() int {
	return m.XRes + m.LeftMargin + m.RightMargin + m.HSyncLen
}

// VTotal returns the number of lines per frame.
func (m *VideoMode) VTotal() int {
	return m.YRes + m.UpperMargin + m.LowerMargin + m.VSyncLen
}

// PixelClockHz returns the pixel clock frequency.
func (m *VideoMode) PixelClockHz() float64 {
	if m.PixClock == 0 {
		return 0
	}
	return 1e12 / float64(m.PixClock)
}

// HSyncHz returns the line frequency.
func (m *VideoMode) HSyncHz() float64 {
	if m.HTotal() == 0 {
		return 0
	}
	return m.PixelClockHz() / float64(m.HTotal())
}

// VSyncHz returns the frame frequency derived from the pixel clock.
func (m *VideoMode) VSyncHz() float64 {
	if m.VTotal() == 0 {
		return 0
	}
	return m.HSyncHz() / float64(m.VTotal())
}

// Validate checks that the mode can be consumed by a framebuffer driver.
func (m *VideoMode) Validate() error {
	if m.XRes <= 0 || m.YRes <= 0 {
		return errNoResolution
	}
	if m.Refresh <= 0 {
		return errNoRefresh
	}
	if m.PixClock == 0 {
		return errNoPixClock
	}
	return nil
}

// String renders the mode the way `fbset --info` prints it.
//
// VideoMode carries no color depth, so the geometry line always reports
// 24 bits per pixel, the depth of the mxc DSI framebuffer.
func (m *VideoMode) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "mode \"%dx%d-%d\"\n", m.XRes, m.YRes, m.Refresh)
	fmt.Fprintf(&b, "    # D: %.3f MHz, H: %.3f kHz, V: %.3f Hz\n",
		m.PixelClockHz()/1e6, m.HSyncHz()/1e3, m.VSyncHz())
	fmt.Fprintf(&b, "    geometry %d %d %d %d %d\n", m.XRes, m.YRes, m.XRes, m.YRes, geometryDepth)
	fmt.Fprintf(&b, "    timings %d %d %d %d %d %d %d\n",
		m.PixClock, m.LeftMargin, m.RightMargin, m.UpperMargin, m.LowerMargin, m.HSyncLen, m.VSyncLen)
	if m.VMode&VModeInterlaced != 0 {
		b.WriteString("    laced true\n")
	}
	if m.VMode&VModeDouble != 0 {
		b.WriteString("    double true\n")
	}
	fmt.Fprintf(&b, "    sync 0x%x\n", uint32(m.Sync))
	b.WriteString("endmode")
	return b.String()
}
