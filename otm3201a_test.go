package otm3201a

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/devices/v3/otm3201a/dsi"
	"periph.io/x/devices/v3/otm3201a/fbmode"
)

// recorder logs packet writes and sleeps in a single timeline.
type recorder struct {
	events  []string
	packets [][]byte
	types   []dsi.DataType
	failAt  int // 1-based index of the write to fail, 0 for none
	err     error
}

func (r *recorder) WritePacket(t dsi.DataType, payload []byte) error {
	if r.failAt != 0 && len(r.packets)+1 == r.failAt {
		return r.err
	}
	r.types = append(r.types, t)
	r.packets = append(r.packets, append([]byte(nil), payload...))
	r.events = append(r.events, fmt.Sprintf("write %02X", payload[0]))
	return nil
}

func (r *recorder) sleep(d time.Duration) {
	r.events = append(r.events, "sleep "+d.String())
}

// Write receives zerolog output so log lines land on the same timeline.
func (r *recorder) Write(p []byte) (int, error) {
	r.events = append(r.events, "log")
	return len(p), nil
}

func newTestDev(t *testing.T, r *recorder, opts *Opts) *Dev {
	t.Helper()
	d, err := New(r, opts)
	require.NoError(t, err)
	d.sleep = r.sleep
	return d
}

func TestNewNilWriter(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, errNilWriter)
}

func TestInitSequence(t *testing.T) {
	r := &recorder{}
	d := newTestDev(t, r, nil)
	require.NoError(t, d.Init())

	want := [][]byte{
		{0xF0, 0x54, 0x47},
		{0xA0, 0x00},
		{0xB1, 0x22},
		{0x36, 0x00},
		{0x3A, 0x77},
		{0xB3, 0x12, 0x02, 0x0C, 0x0C, 0x2A},
		{0xBD, 0x00, 0x01, 0x31},
		{0xBA, 0x05, 0x15, 0x20, 0x01},
		{0xE9, 0x16},
		{0xE2, 0xF5},
		{0xB5, 0x5C, 0x5C, 0x7A, 0xFA},
		{0x20},
	}
	for reg := byte(0xC0); reg <= 0xC5; reg++ {
		want = append(want, []byte{reg, 0x00, 0x06, 0x17, 0x11, 0x16, 0x25, 0x0E, 0x0C, 0x0C, 0x0E, 0x0C, 0x0F, 0x07, 0x0A, 0x3F, 0x3F, 0x3F})
	}
	want = append(want, []byte{0x38}, []byte{0x11}, []byte{0x29})

	assert.Equal(t, want, r.packets)
	for i, typ := range r.types {
		assert.Equalf(t, dsi.GenericLongWrite, typ, "packet %d", i)
	}
}

func TestInitGammaLength(t *testing.T) {
	for _, c := range Sequence() {
		if c.Register() >= 0xC0 && c.Register() <= 0xC5 {
			assert.Lenf(t, c.Payload, 18, "%s", c.Name)
		}
	}
}

func TestInitDelays(t *testing.T) {
	r := &recorder{}
	d := newTestDev(t, r, nil)
	require.NoError(t, d.Init())

	n := len(r.events)
	require.GreaterOrEqual(t, n, 4)
	assert.Equal(t, []string{
		"write 11",
		"sleep 10ms",
		"write 29",
		"sleep 10ms",
	}, r.events[n-4:])

	sleeps := 0
	for _, e := range r.events {
		if e[:5] == "sleep" {
			sleeps++
		}
	}
	assert.Equal(t, 2, sleeps)
}

func TestInitStopsOnFirstError(t *testing.T) {
	tests := []struct {
		name   string
		failAt int
		reg    byte
	}{
		{"first write", 1, 0xF0},
		{"porch", 6, 0xB3},
		{"sleep out", 20, 0x11},
		{"display on", 21, 0x29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			busErr := errors.New("bus fault")
			r := &recorder{failAt: tt.failAt, err: busErr}
			d := newTestDev(t, r, nil)

			err := d.Init()
			require.Error(t, err)
			assert.ErrorIs(t, err, busErr)

			var ce *CommandError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.failAt-1, ce.Index)
			assert.Equal(t, tt.reg, ce.Command.Register())

			assert.Len(t, r.packets, tt.failAt-1, "no write after the failing one")
			if tt.failAt == 21 {
				assert.Equal(t, "sleep 10ms", r.events[len(r.events)-1], "sleep out delay precedes display on")
			}
		})
	}
}

func TestCommandErrorMessage(t *testing.T) {
	r := &recorder{failAt: 6, err: errors.New("timeout")}
	d := newTestDev(t, r, nil)
	err := d.Init()
	assert.EqualError(t, err, "otm3201a: command 5 RGB interface blanking porch (RB3h) failed: timeout")
}

func TestCommandErrorDoesNotAlias(t *testing.T) {
	r := &recorder{failAt: 1, err: errors.New("x")}
	d := newTestDev(t, r, nil)
	var ce *CommandError
	require.ErrorAs(t, d.Init(), &ce)
	ce.Command.Payload[0] = 0x00
	assert.Equal(t, byte(0xF0), Sequence()[0].Register())
}

func TestInitLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)
	r := &recorder{}
	d := newTestDev(t, r, &Opts{Logger: &logger})
	require.NoError(t, d.Init())
	assert.Contains(t, buf.String(), "MIPI DSI LCD setup")
	assert.Contains(t, buf.String(), "OTM3201A MIPI DSI setup done")
	assert.Contains(t, buf.String(), `"dev":"otm3201a"`)

	buf.Reset()
	r = &recorder{failAt: 3, err: errors.New("nak")}
	d = newTestDev(t, r, &Opts{Logger: &logger})
	require.Error(t, d.Init())
	assert.Contains(t, buf.String(), "write failed")
	assert.Contains(t, buf.String(), "Display inversion control")
	assert.NotContains(t, buf.String(), "setup done")
}

func TestInitLogsDoneBeforeFinalDelay(t *testing.T) {
	r := &recorder{}
	logger := zerolog.New(r).Level(zerolog.InfoLevel)
	d := newTestDev(t, r, &Opts{Logger: &logger})
	require.NoError(t, d.Init())

	n := len(r.events)
	require.GreaterOrEqual(t, n, 3)
	assert.Equal(t, []string{"write 29", "log", "sleep 10ms"}, r.events[n-3:])
	assert.Equal(t, "log", r.events[0], "setup is logged before the first write")
}

func TestHaltDoesNotLogDone(t *testing.T) {
	r := &recorder{}
	logger := zerolog.New(r).Level(zerolog.InfoLevel)
	d := newTestDev(t, r, &Opts{Logger: &logger})
	require.NoError(t, d.Halt())
	assert.Equal(t, []string{"write 28", "write 10", "sleep 120ms"}, r.events)
}

func TestHalt(t *testing.T) {
	r := &recorder{}
	d := newTestDev(t, r, nil)
	require.NoError(t, d.Init())
	r.events = nil
	r.packets = nil

	require.NoError(t, d.Halt())
	assert.True(t, d.Halted())
	assert.Equal(t, []string{"write 28", "write 10", "sleep 120ms"}, r.events)

	// Halting twice is a no-op.
	require.NoError(t, d.Halt())
	assert.Len(t, r.packets, 2)

	require.NoError(t, d.Init())
	assert.False(t, d.Halted())
}

func TestHaltError(t *testing.T) {
	r := &recorder{failAt: 2, err: errors.New("nak")}
	d := newTestDev(t, r, nil)
	err := d.Halt()
	var ce *CommandError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, byte(0x10), ce.Command.Register())
	assert.False(t, d.Halted())
}

func TestDevString(t *testing.T) {
	d := newTestDev(t, &recorder{}, nil)
	assert.Equal(t, "otm3201a.Dev{320x320}", d.String())
}

func TestVideoMode(t *testing.T) {
	modes, cfg := VideoMode()
	require.Len(t, modes, 1)

	m := modes[0]
	assert.Equal(t, fbmode.VideoMode{
		Name:        "OTM3201A",
		Refresh:     60,
		XRes:        320,
		YRes:        320,
		PixClock:    137663,
		LeftMargin:  12,
		RightMargin: 12,
		UpperMargin: 2,
		LowerMargin: 18,
		HSyncLen:    10,
		VSyncLen:    2,
		Sync:        fbmode.SyncOELowAct,
		VMode:       fbmode.VModeNonInterlaced,
	}, m)
	require.NoError(t, m.Validate())

	assert.Equal(t, dsi.LCDConfig{
		VirtualChannel:  0,
		DataLanes:       1,
		MaxPHYClockMbps: 800,
		DPIFormat:       dsi.RGB565Packed,
	}, cfg)
}

func TestVideoModeIsCopy(t *testing.T) {
	modes, cfg := VideoMode()
	modes[0].XRes = 1
	cfg.DataLanes = 4

	modes, cfg = VideoMode()
	assert.Equal(t, 320, modes[0].XRes)
	assert.Equal(t, 1, cfg.DataLanes)
}

func TestSequenceIsCopy(t *testing.T) {
	s := Sequence()
	require.Len(t, s, 21)
	s[0].Payload[1] = 0xFF
	s[0].Name = "changed"
	assert.Equal(t, byte(0x54), Sequence()[0].Payload[1])
	assert.Equal(t, "Orise engineering mode enable", Sequence()[0].Name)
}

func TestPorchMatchesMode(t *testing.T) {
	modes, _ := VideoMode()
	m := modes[0]
	var p []byte
	for _, c := range Sequence() {
		if c.Register() == 0xB3 {
			p = c.Payload
		}
	}
	require.Len(t, p, 6)
	assert.Equal(t, m.LowerMargin, int(p[1]), "VFP")
	assert.Equal(t, m.UpperMargin, int(p[2]), "VBP")
	assert.Equal(t, m.RightMargin, int(p[3]), "HFP")
	assert.Equal(t, m.LeftMargin, int(p[4]), "HBP")
	assert.Equal(t, m.VSyncLen, int(p[5]>>4), "VSW")
	assert.Equal(t, m.HSyncLen, int(p[5]&0x0F), "HSW")
}

func TestCommandString(t *testing.T) {
	c := Command{Name: "Sleep out", Payload: []byte{0x11}}
	assert.Equal(t, "Sleep out (R11h)", c.String())
	assert.Equal(t, byte(0), (&Command{}).Register())
}

func TestInitOverConn(t *testing.T) {
	rec := &conntest.Record{}
	c, err := dsi.NewConn(rec, nil)
	require.NoError(t, err)
	d, err := New(c, nil)
	require.NoError(t, err)
	d.sleep = func(time.Duration) {}

	require.NoError(t, d.Init())
	require.Len(t, rec.Ops, 21)
	assert.Equal(t, []byte{0x29, 0x03, 0x00, 0x1A, 0xF0, 0x54, 0x47, 0x2B, 0x37}, rec.Ops[0].W)
	last := rec.Ops[20].W
	assert.Equal(t, []byte{0x29, 0x01, 0x00, 0x06, 0x29, 0x44, 0xB3}, last)
}
