// Package dsi implements the command side of a MIPI DSI link: packet data
// types, packet framing (header ECC and payload checksum) and a Writer backed
// by a periph.io connection.
//
// Panel drivers only depend on the Writer interface. A host that already owns
// a DSI controller implements Writer directly; Conn is provided for setups
// where DSI packets are pushed through a bridge reachable over SPI or another
// periph.io conn.Conn.
//
// # Packet format
//
// A short packet is four bytes: data identifier (DI), two data bytes and an
// ECC byte. A long packet is a four byte header (DI, word count LSB, word
// count MSB, ECC) followed by the payload and a two byte checksum, LSB first.
//
// The DI byte holds the virtual channel in its two upper bits and the data
// type in the lower six.
package dsi
