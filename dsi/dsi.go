package dsi

import "fmt"

// DataType is the six bit data type of a DSI packet.
type DataType byte

// Processor-to-peripheral data types used for panel configuration.
const (
	GenericShortWrite0 DataType = 0x03
	GenericShortWrite1 DataType = 0x13
	GenericShortWrite2 DataType = 0x23
	GenericLongWrite   DataType = 0x29
	DCSShortWrite      DataType = 0x05
	DCSShortWriteParam DataType = 0x15
	DCSLongWrite       DataType = 0x39
)

// IsLong reports whether packets of this type carry a word count and a
// checksummed payload. Undefined data types are reported as short.
func (t DataType) IsLong() bool {
	switch t {
	case 0x09, // null
		0x19,             // blanking
		0x29,             // generic long write
		0x39,             // DCS long write
		0x0A,             // picture parameter set
		0x0B,             // compressed pixel stream
		0x0C, 0x1C, 0x2C, // packed YCbCr
		0x0D, 0x1D, 0x3D, // packed RGB101010, RGB121212, YCbCr12
		0x0E, 0x1E, 0x2E, 0x3E: // packed RGB565, RGB666, loose RGB666, RGB888
		return true
	}
	return false
}

func (t DataType) String() string {
	switch t {
	case GenericShortWrite0:
		return "GenericShortWrite0"
	case GenericShortWrite1:
		return "GenericShortWrite1"
	case GenericShortWrite2:
		return "GenericShortWrite2"
	case GenericLongWrite:
		return "GenericLongWrite"
	case DCSShortWrite:
		return "DCSShortWrite"
	case DCSShortWriteParam:
		return "DCSShortWriteParam"
	case DCSLongWrite:
		return "DCSLongWrite"
	default:
		return fmt.Sprintf("DataType(0x%02X)", byte(t))
	}
}

// Writer sends one DSI command packet to a peripheral.
//
// Implementations must either transmit the whole packet or return an error;
// there is no partial write.
type Writer interface {
	WritePacket(t DataType, payload []byte) error
}

// DPIFormat is the pixel format of the DPI (video) stream.
type DPIFormat int

const (
	RGB565Packed DPIFormat = iota
	RGB565Loose
	RGB565Config
	RGB666Loose
	RGB666Packed
	RGB888
)

// BitsPerPixel returns the number of bits each pixel occupies on the link.
func (f DPIFormat) BitsPerPixel() int {
	switch f {
	case RGB565Packed:
		return 16
	case RGB666Packed:
		return 18
	case RGB565Loose, RGB565Config, RGB666Loose, RGB888:
		return 24
	default:
		return 0
	}
}

func (f DPIFormat) String() string {
	switch f {
	case RGB565Packed:
		return "RGB565Packed"
	case RGB565Loose:
		return "RGB565Loose"
	case RGB565Config:
		return "RGB565Config"
	case RGB666Loose:
		return "RGB666Loose"
	case RGB666Packed:
		return "RGB666Packed"
	case RGB888:
		return "RGB888"
	default:
		return fmt.Sprintf("DPIFormat(%d)", int(f))
	}
}

// LCDConfig is the link configuration a panel asks of the host DSI
// controller.
type LCDConfig struct {
	VirtualChannel  uint8
	DataLanes       int
	MaxPHYClockMbps int
	DPIFormat       DPIFormat
}
