// Package otm3201a initializes an Orise OTM3201A based LCD panel over MIPI
// DSI.
//
// The OTM3201A drives 320×320 RGB panels in DSI video mode. Pixels are
// streamed by the host DSI controller; this driver only declares the timing
// the host has to generate and sends the register writes that bring the
// controller out of reset.
//
// # Panel Characteristics
//
// - 320×320 pixels at 60Hz, pixel clock 137663ps (about 7.26MHz)
// - One DSI data lane, up to 800Mbps
// - RGB565 packed DPI stream, output enable active low
// - Fixed gamma curves and porches taken from the datasheet
//
// # Hardware Connection
//
// The panel is attached to a DSI host. Anything implementing dsi.Writer can
// carry the command packets; dsi.Conn sends them over a periph.io connection,
// for example the SPI command port of a DSI bridge.
//
// Clocks, supplies and the reset line belong to the host and must be
// sequenced before Init is called.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/otm3201a"
//		"periph.io/x/devices/v3/otm3201a/dsi"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open SPI bus and wrap it as a DSI command channel
//		spiBus, _ := spireg.Open("")
//		link, _ := dsi.NewSPI(spiBus, nil)
//
//		// Program the host video path
//		modes, lcd := otm3201a.VideoMode()
//		_, _ = modes, lcd
//
//		// Bring the panel up
//		dev, _ := otm3201a.New(link, nil)
//		dev.Init()
//		defer dev.Halt()
//	}
//
// # Initialization Sequence
//
// Init writes 21 generic long packets in a fixed order: manufacturer
// registers first (engineering mode, porches, waveform, gamma), then Idle
// Off, Sleep Out and Display On. The driver waits 10ms after Sleep Out
// before turning the display on, and another 10ms afterwards.
//
// The first failing write stops the sequence. The error is a *CommandError
// naming the register and wrapping the transport error.
//
// # Datasheet
//
// Orise Technology OTM3201A, 320RGB×320 dot TFT LCD single chip driver.
package otm3201a
