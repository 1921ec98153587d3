package dsi

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// ConnOpts is the configuration of a Conn.
type ConnOpts struct {
	VirtualChannel uint8            // 0-3
	Freq           physic.Frequency // SPI clock (default: 10MHz)
	Mode           spi.Mode         // SPI mode (default: Mode0)
}

// DefaultConnOpts is used when nil is passed to NewSPI or NewConn.
var DefaultConnOpts = ConnOpts{
	VirtualChannel: 0,
	Freq:           10 * physic.MegaHertz,
	Mode:           spi.Mode0,
}

var errNilConn = errors.New("dsi: nil connection")

// Conn is a Writer that frames packets and sends each one with a single
// transaction on an underlying periph.io connection, typically the command
// port of a SPI to DSI bridge.
type Conn struct {
	c  conn.Conn
	vc uint8
}

// NewSPI connects to a SPI port and returns a Conn sending packets over it.
//
// opts can be nil to use DefaultConnOpts.
func NewSPI(p spi.Port, opts *ConnOpts) (*Conn, error) {
	if opts == nil {
		opts = &DefaultConnOpts
	}
	freq := opts.Freq
	if freq == 0 {
		freq = DefaultConnOpts.Freq
	}
	c, err := p.Connect(freq, opts.Mode, 8)
	if err != nil {
		return nil, fmt.Errorf("dsi: failed to connect SPI port: %w", err)
	}
	return NewConn(c, opts)
}

// NewConn returns a Conn sending packets over an already connected c.
//
// opts can be nil to use DefaultConnOpts. Only VirtualChannel is used.
func NewConn(c conn.Conn, opts *ConnOpts) (*Conn, error) {
	if c == nil {
		return nil, errNilConn
	}
	if opts == nil {
		opts = &DefaultConnOpts
	}
	if opts.VirtualChannel > 3 {
		return nil, errVirtualChannel
	}
	return &Conn{c: c, vc: opts.VirtualChannel}, nil
}

// WritePacket implements Writer.
func (c *Conn) WritePacket(t DataType, payload []byte) error {
	p := Packet{VirtualChannel: c.vc, Type: t, Payload: payload}
	b, err := p.Encode()
	if err != nil {
		return err
	}
	if err := c.c.Tx(b, nil); err != nil {
		return fmt.Errorf("dsi: %s write failed: %w", t, err)
	}
	return nil
}

// String returns a description of the link.
func (c *Conn) String() string {
	return fmt.Sprintf("dsi.Conn{%s, vc=%d}", c.c, c.vc)
}

var _ Writer = (*Conn)(nil)
