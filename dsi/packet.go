package dsi

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// MaxPayload is the largest payload a long packet can carry; the word count
// field is 16 bits wide.
const MaxPayload = 0xFFFF

var (
	errVirtualChannel = errors.New("dsi: virtual channel must be between 0 and 3")
	errDataType       = errors.New("dsi: data type must fit in 6 bits")
)

// PacketError is returned when a packet cannot be framed.
type PacketError struct {
	Type   DataType
	Length int
	Reason string
}

func (e *PacketError) Error() string {
	return fmt.Sprintf("dsi: cannot encode %s packet of %d bytes: %s", e.Type, e.Length, e.Reason)
}

// Packet is a single DSI packet addressed to a virtual channel.
type Packet struct {
	VirtualChannel uint8
	Type           DataType
	Payload        []byte
}

// Encode returns the bytes of the packet as they appear on the link.
func (p *Packet) Encode() ([]byte, error) {
	if p.VirtualChannel > 3 {
		return nil, errVirtualChannel
	}
	if p.Type > 0x3F {
		return nil, errDataType
	}
	di := p.VirtualChannel<<6 | byte(p.Type)

	if !p.Type.IsLong() {
		if len(p.Payload) > 2 {
			return nil, &PacketError{Type: p.Type, Length: len(p.Payload), Reason: "short packets carry at most 2 bytes"}
		}
		hdr := [3]byte{di, 0, 0}
		copy(hdr[1:], p.Payload)
		return []byte{hdr[0], hdr[1], hdr[2], ECC(hdr)}, nil
	}

	if len(p.Payload) > MaxPayload {
		return nil, &PacketError{Type: p.Type, Length: len(p.Payload), Reason: "payload exceeds word count"}
	}
	out := make([]byte, 4, 4+len(p.Payload)+2)
	hdr := [3]byte{di, byte(len(p.Payload)), byte(len(p.Payload) >> 8)}
	copy(out, hdr[:])
	out[3] = ECC(hdr)
	out = append(out, p.Payload...)
	return binary.LittleEndian.AppendUint16(out, Checksum(p.Payload)), nil
}

// eccMasks lists, for each parity bit P0..P5, the header bits D0..D23 it
// covers.
var eccMasks = [6]uint32{
	0xF12CB7, // P0: D0 D1 D2 D4 D5 D7 D10 D11 D13 D16 D20 D21 D22 D23
	0xF2555B, // P1: D0 D1 D3 D4 D6 D8 D10 D12 D14 D17 D20 D21 D22 D23
	0x749A6D, // P2: D0 D2 D3 D5 D6 D9 D11 D12 D15 D18 D20 D21 D22
	0xB8E38E, // P3: D1 D2 D3 D7 D8 D9 D13 D14 D15 D19 D20 D21 D23
	0xDF03F0, // P4: D4..D9 D16..D20 D22 D23
	0xEFFC00, // P5: D10..D19 D21 D22 D23
}

// ECC returns the Hamming code protecting a packet header. Bits 6 and 7 are
// always zero.
func ECC(header [3]byte) byte {
	d := uint32(header[0]) | uint32(header[1])<<8 | uint32(header[2])<<16
	var ecc byte
	for i, m := range eccMasks {
		if parity(d & m) {
			ecc |= 1 << i
		}
	}
	return ecc
}

func parity(v uint32) bool {
	v ^= v >> 16
	v ^= v >> 8
	v ^= v >> 4
	v ^= v >> 2
	v ^= v >> 1
	return v&1 != 0
}

// Checksum returns the CRC-16 of a long packet payload: polynomial
// x^16+x^12+x^5+1, bit-reversed, seeded with 0xFFFF and without final XOR.
func Checksum(payload []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range payload {
		crc ^= uint16(b)
		for i := 0; i < 8; i++ {
			if crc&1 != 0 {
				crc = crc>>1 ^ 0x8408
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}
