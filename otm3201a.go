package otm3201a

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3"
	"periph.io/x/devices/v3/otm3201a/dsi"
)

// Opts is the configuration for the OTM3201A panel.
type Opts struct {
	// Logger receives setup progress and write failures (default: disabled).
	Logger *zerolog.Logger
}

// Dev is the device handle for the OTM3201A panel.
type Dev struct {
	w     dsi.Writer
	log   zerolog.Logger
	sleep func(time.Duration)

	halted bool
}

// CommandError is returned when a register write of a sequence fails. The
// remaining writes of the sequence are not sent.
type CommandError struct {
	Index   int // Position in the sequence
	Command Command
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("otm3201a: command %d %s failed: %v", e.Index, &e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

var errNilWriter = errors.New("otm3201a: nil DSI writer")

// New returns a handle to a panel reachable through w.
//
// The panel is not touched until Init is called. opts can be nil to use
// defaults.
func New(w dsi.Writer, opts *Opts) (*Dev, error) {
	if w == nil {
		return nil, errNilWriter
	}
	if opts == nil {
		opts = &Opts{}
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("dev", "otm3201a").Logger()
	}
	return &Dev{
		w:     w,
		log:   log,
		sleep: time.Sleep,
	}, nil
}

// Init sends the power-on sequence that takes the panel from reset to an
// active display.
//
// The host must have started the DSI link with the configuration returned by
// VideoMode before calling Init. The first failing write aborts the sequence
// and is returned as a *CommandError.
func (d *Dev) Init() error {
	d.log.Info().Msg("MIPI DSI LCD setup")
	if err := d.run(initSequence, "OTM3201A MIPI DSI setup done"); err != nil {
		return err
	}
	d.halted = false
	return nil
}

// Halt turns the display off and puts the controller to sleep.
//
// Init must be called again to use the panel afterwards.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	if err := d.run(haltSequence, ""); err != nil {
		return err
	}
	d.halted = true
	return nil
}

// Halted reports whether Halt completed since the last Init.
func (d *Dev) Halted() bool {
	return d.halted
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("otm3201a.Dev{%dx%d}", Width, Height)
}

// run writes cmds in order, honoring the delay of each one. All packets are
// sent as generic long writes, as the controller expects for both its
// manufacturer and DCS registers.
//
// done, if not empty, is logged once the last write succeeded, before its
// delay.
func (d *Dev) run(cmds []Command, done string) error {
	for i := range cmds {
		c := &cmds[i]
		d.log.Debug().Int("index", i).Str("command", c.Name).Hex("payload", c.Payload).Msg("write")
		if err := d.w.WritePacket(dsi.GenericLongWrite, c.Payload); err != nil {
			d.log.Error().Err(err).Int("index", i).Str("command", c.Name).Msg("write failed")
			return &CommandError{Index: i, Command: c.clone(), Err: err}
		}
		if done != "" && i == len(cmds)-1 {
			d.log.Info().Msg(done)
		}
		if c.Delay > 0 {
			d.sleep(c.Delay)
		}
	}
	return nil
}

var _ conn.Resource = (*Dev)(nil)
