package nagp1250

import (
	"fmt"
	"time"

	"github.com/catlinkintsugi/nagp1250/image1bit"
)

// Argument encodings used by the command table.
type argKind uint8

const (
	argU8  argKind = iota // one byte
	argU16                // two bytes, little-endian
)

type argSpec struct {
	name string
	kind argKind
	min  int
	max  int
}

// command is one row of the logical-operation table: a fixed opcode prefix
// followed by range-checked parameters. All validation happens before any
// byte reaches the link.
type command struct {
	name   string
	opcode []byte
	args   []argSpec
	ready  bool // wait for SBUSY to clear after transmission
}

// Opcodes mirrored from the NAGP1250 command reference. The escape prefixes
// are ESC (1B) and US (1F); grouped commands use US ( <group>.
var (
	cmdInitialize  = command{"initialize", []byte{0x1B, 0x40}, nil, true}
	cmdFont        = command{"set font", []byte{0x1B, 0x52}, []argSpec{{"font", argU8, 0, 13}}, false}
	cmdCodePage    = command{"set code page", []byte{0x1B, 0x74}, []argSpec{{"page", argU8, 0x00, 0x13}}, false}
	cmdCursorBlink = command{"set cursor blink", []byte{0x1F, 0x43}, []argSpec{{"mode", argU8, 0, 1}}, false}
	cmdScrollSpeed = command{"set scroll speed", []byte{0x1F, 0x73}, []argSpec{{"speed", argU8, 1, 31}}, false}
	cmdLuminance   = command{"set luminance", []byte{0x1F, 0x58}, []argSpec{{"level", argU8, 1, 8}}, false}
	cmdOverwrite   = command{"overwrite mode", []byte{0x1F, 0x01}, nil, false}
	cmdVertScroll  = command{"vertical scroll mode", []byte{0x1F, 0x02}, nil, false}
	cmdHorizScroll = command{"horizontal scroll mode", []byte{0x1F, 0x03}, nil, false}
	cmdMagnify     = command{"set magnification", []byte{0x1F, 0x28, 0x67, 0x40}, []argSpec{{"h", argU8, 1, 2}, {"v", argU8, 1, 2}}, false}
	cmdSpacing     = command{"set character spacing", []byte{0x1F, 0x28, 0x67, 0x03}, []argSpec{{"mode", argU8, 0, 3}}, false}
	cmdCursor      = command{"set cursor", []byte{0x1F, 0x24}, []argSpec{{"col", argU16, 0, VirtualWidth - 1}, {"row", argU16, 0, Rows - 1}}, false}
	cmdReverse     = command{"set reverse", []byte{0x1F, 0x72}, []argSpec{{"mode", argU8, 0, 1}}, false}
	cmdWriteMode   = command{"set write mode", []byte{0x1F, 0x77}, []argSpec{{"mode", argU8, 0, 3}}, false}
	cmdClear       = command{"clear", []byte{0x0C}, nil, true}
	cmdHome        = command{"home", []byte{0x0B}, nil, false}
	cmdLineFeed    = command{"line feed", []byte{0x0A}, nil, false}
	cmdBackspace   = command{"backspace", []byte{0x08}, nil, false}
	cmdTab         = command{"tab", []byte{0x09}, nil, false}
	cmdCarriageRet = command{"carriage return", []byte{0x0D}, nil, false}
	cmdBlink       = command{"blink", []byte{0x1F, 0x28, 0x61, 0x11}, []argSpec{{"pattern", argU8, 0, 2}, {"normal", argU8, 1, 255}, {"blank", argU8, 1, 255}, {"repeat", argU8, 1, 255}}, false}
	cmdWait        = command{"wait", []byte{0x1F, 0x28, 0x61, 0x01}, []argSpec{{"duration", argU8, 0, 255}}, true}
	cmdScreenSaver = command{"screen saver", []byte{0x1F, 0x28, 0x61, 0x40}, []argSpec{{"pattern", argU8, 0, 4}}, false}
	cmdScrollShift = command{"scroll shift", []byte{0x1F, 0x28, 0x61, 0x10}, []argSpec{{"shift", argU16, 0, 0xFFFF}, {"repeat", argU16, 0, 0xFFFF}, {"speed", argU8, 0, 255}}, true}
	cmdSelectWin   = command{"select window", []byte{0x1F, 0x28, 0x77, 0x01}, []argSpec{{"window", argU8, 0, 4}}, false}
	cmdImage       = command{"draw image", []byte{0x1F, 0x28, 0x66, 0x11}, []argSpec{{"width", argU16, 1, VirtualWidth}, {"height", argU16, 1, Rows}, {"mode", argU8, 1, 1}}, true}
)

// exec validates every argument of c, then transmits the opcode and encoded
// arguments as one sequence. A range violation transmits nothing.
func (d *Dev) exec(c command, args ...int) error {
	if d.halted {
		return ErrHalted
	}
	if len(args) != len(c.args) {
		return fmt.Errorf("%w: %s takes %d arguments, got %d", ErrInvalidArgument, c.name, len(c.args), len(args))
	}
	seq := make([]byte, 0, len(c.opcode)+2*len(args))
	seq = append(seq, c.opcode...)
	for i, v := range args {
		s := c.args[i]
		if v < s.min || v > s.max {
			return fmt.Errorf("%w: %s %s must be %d-%d, got %d", ErrInvalidArgument, c.name, s.name, s.min, s.max, v)
		}
		switch s.kind {
		case argU8:
			seq = append(seq, byte(v))
		case argU16:
			seq = append(seq, byte(v), byte(v>>8))
		}
	}
	if err := d.link.SendBytes(seq); err != nil {
		return err
	}
	if c.ready {
		return d.link.WaitReady(d.busyTimeout)
	}
	return nil
}

// SetFont selects the international font variant for characters 20h-7Fh.
// See the Font constants.
func (d *Dev) SetFont(f Font) error {
	return d.exec(cmdFont, int(f))
}

// SetCursorBlink enables or disables the roughly 1Hz cursor blink.
func (d *Dev) SetCursorBlink(on bool) error {
	return d.exec(cmdCursorBlink, boolArg(on))
}

// SetScrollSpeed sets the horizontal scroll speed for MD3 mode, about
// speed*14ms per column. Valid range is 1 to 31.
func (d *Dev) SetScrollSpeed(speed int) error {
	if err := d.exec(cmdScrollSpeed, speed); err != nil {
		return err
	}
	d.windows[d.active].ScrollSpeed = speed
	return nil
}

// SetLuminance sets the display brightness in eighths: 1 is 12.5%, 8 is
// 100%.
func (d *Dev) SetLuminance(level int) error {
	if err := d.exec(cmdLuminance, level); err != nil {
		return err
	}
	d.luminance = level
	return nil
}

// DisplayMode selects how the active window treats writes past its edge.
type DisplayMode uint8

// Display modes.
const (
	ModeOverwrite        DisplayMode = iota // MD1: wrap to the top left
	ModeVerticalScroll                      // MD2: scroll up one character row
	ModeHorizontalScroll                    // MD3: shift left at the scroll speed
)

// SetDisplayMode selects the overwrite/scroll behavior of the active
// window.
func (d *Dev) SetDisplayMode(m DisplayMode) error {
	switch m {
	case ModeOverwrite:
		return d.exec(cmdOverwrite)
	case ModeVerticalScroll:
		return d.exec(cmdVertScroll)
	case ModeHorizontalScroll:
		return d.exec(cmdHorizScroll)
	}
	return fmt.Errorf("%w: display mode %d", ErrInvalidArgument, m)
}

// SetMagnification sets the character cell multiplier for subsequent text.
// Both factors must be 1 or 2.
func (d *Dev) SetMagnification(h, v int) error {
	if err := d.exec(cmdMagnify, h, v); err != nil {
		return err
	}
	w := &d.windows[d.active]
	w.MagH, w.MagV = h, v
	return nil
}

// CharacterSpacing selects fixed or proportional character advance.
type CharacterSpacing uint8

// Character spacing modes.
const (
	SpacingFixedRight        CharacterSpacing = 0
	SpacingFixedBoth         CharacterSpacing = 1
	SpacingProportionalRight CharacterSpacing = 2
	SpacingProportionalBoth  CharacterSpacing = 3
)

// SetCharacterSpacing selects the character advance mode.
func (d *Dev) SetCharacterSpacing(m CharacterSpacing) error {
	return d.exec(cmdSpacing, int(m))
}

// SetCursor positions the active window's cursor. col is in dots across the
// virtual area, row is in 8-dot character rows.
func (d *Dev) SetCursor(col, row int) error {
	if err := d.exec(cmdCursor, col, row); err != nil {
		return err
	}
	w := &d.windows[d.active]
	w.CursorCol, w.CursorRow = col, row
	return nil
}

// SetReverse enables or disables reverse video for subsequent writes.
// Data already on screen is unaffected.
func (d *Dev) SetReverse(on bool) error {
	if err := d.exec(cmdReverse, boolArg(on)); err != nil {
		return err
	}
	d.windows[d.active].Reverse = on
	return nil
}

// SetWriteMode selects how new pixel data merges with display memory:
// image1bit.OpNormal replaces, OpOr/OpAnd/OpXor combine bitwise. The same
// operators drive image1bit.Combine for software merging.
func (d *Dev) SetWriteMode(op image1bit.CombineOp) error {
	if err := d.exec(cmdWriteMode, int(op)); err != nil {
		return err
	}
	d.windows[d.active].WriteMode = op
	return nil
}

// Home moves the cursor to the top left of the active window.
func (d *Dev) Home() error {
	if err := d.exec(cmdHome); err != nil {
		return err
	}
	w := &d.windows[d.active]
	w.CursorCol, w.CursorRow = 0, 0
	return nil
}

// LineFeed moves the cursor to the next character row.
func (d *Dev) LineFeed() error {
	return d.exec(cmdLineFeed)
}

// Backspace moves the cursor back one character position.
func (d *Dev) Backspace() error {
	return d.exec(cmdBackspace)
}

// Tab advances the cursor by one character position.
func (d *Dev) Tab() error {
	return d.exec(cmdTab)
}

// CarriageReturn moves the cursor to the start of the current row.
func (d *Dev) CarriageReturn() error {
	return d.exec(cmdCarriageRet)
}

// BlinkPattern selects what the display alternates with while blinking.
type BlinkPattern uint8

// Blink patterns.
const (
	BlinkOff     BlinkPattern = 0 // steady normal display
	BlinkBlank   BlinkPattern = 1 // alternate with a blank screen
	BlinkReverse BlinkPattern = 2 // alternate with reverse video
)

// Blink alternates the whole display between normal and the pattern state.
// normal and blank are display times in roughly 14ms units, repeat the
// number of cycles before returning to normal.
func (d *Dev) Blink(p BlinkPattern, normal, blank, repeat int) error {
	return d.exec(cmdBlink, int(p), normal, blank, repeat)
}

// Wait pauses command processing inside the device for roughly
// duration*0.5s.
func (d *Dev) Wait(duration int) error {
	return d.exec(cmdWait, duration)
}

// ScreenSaverPattern selects a screen saver behavior.
type ScreenSaverPattern uint8

// Screen saver patterns.
const (
	SaverPowerOff ScreenSaverPattern = 0 // switch the internal supply off
	SaverPowerOn  ScreenSaverPattern = 1
	SaverAllOff   ScreenSaverPattern = 2 // blank dots, memory kept
	SaverAllOn    ScreenSaverPattern = 3
	SaverAlt      ScreenSaverPattern = 4 // alternate all-on and reverse
)

// ScreenSaver selects a screen saver pattern. Display memory is preserved
// for the dot patterns.
func (d *Dev) ScreenSaver(p ScreenSaverPattern) error {
	return d.exec(cmdScreenSaver, int(p))
}

// ScrollShift shifts the display left by shift bytes, repeat times, with
// speed*14ms between steps. Shifting by a full height's worth of bytes
// moves the image one dot column.
func (d *Dev) ScrollShift(shift, repeat, speed int) error {
	return d.exec(cmdScrollShift, shift, repeat, speed)
}

// DrawImage uploads b at the active window's cursor in realtime image mode.
// The bitmap is packed into the column-major wire format and streamed in
// 8-byte chunks, pacing each chunk with the busy handshake and the
// configured inter-chunk delay so the device's draw processor is not
// overrun. The device merges the image per the active write mode.
func (d *Dev) DrawImage(b *image1bit.Bitmap) error {
	if d.halted {
		return ErrHalted
	}
	w := b.Bounds().Dx()
	h := b.Bounds().Dy()
	blocks := (h + 7) / 8
	if w < 1 || w > VirtualWidth || blocks < 1 || blocks > Rows {
		return fmt.Errorf("%w: image %dx%d exceeds %dx%d", ErrInvalidArgument, w, h, VirtualWidth, Height)
	}
	if err := d.link.WaitReady(d.busyTimeout); err != nil {
		return err
	}
	if err := d.exec(cmdImage, w, blocks, 1); err != nil {
		return err
	}
	data := b.Pack()
	for i := 0; i < len(data); i += imageChunkSize {
		end := min(i+imageChunkSize, len(data))
		if err := d.link.SendBytes(data[i:end]); err != nil {
			return err
		}
		if err := d.link.WaitReady(d.busyTimeout); err != nil {
			return err
		}
		if d.imageChunkDelay > 0 {
			time.Sleep(d.imageChunkDelay)
		}
	}
	return nil
}

// imageChunkSize is how many image bytes are sent between busy checks.
const imageChunkSize = 8

func boolArg(b bool) int {
	if b {
		return 1
	}
	return 0
}
