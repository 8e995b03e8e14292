package nagp1250

import (
	"fmt"

	"github.com/catlinkintsugi/nagp1250/image1bit"
)

// Display geometry. The tube shows VisibleWidth dots; display memory
// extends to VirtualWidth dots, the hidden region being reachable by
// scrolling or window placement.
const (
	VisibleWidth = 140
	VirtualWidth = 256
	Height       = 32
	Rows         = Height / 8 // 8-dot character rows
)

// Window counts. Window 0 is the base window and always exists; windows
// 1 to maxWindow are user-defined.
const (
	baseWindow = 0
	maxWindow  = 4
)

// Window is one addressable region of display memory with its own cursor
// and write attributes. User windows are inert until defined: selecting an
// undefined window targets a zero-size rectangle.
type Window struct {
	X, Y    int
	W, H    int
	Defined bool

	CursorCol, CursorRow int
	MagH, MagV           int
	Reverse              bool
	ScrollSpeed          int
	WriteMode            image1bit.CombineOp
}

var (
	cmdDefineWin = command{"define window", []byte{0x1F, 0x28, 0x77, 0x02}, nil, false}
	cmdBaseWin   = command{"set base window extent", []byte{0x1F, 0x28, 0x77, 0x10}, []argSpec{{"mode", argU8, 0, 1}}, false}
)

// DefineWindow defines (or redefines) user window id as the pixel rectangle
// (x, y, w, h). The rectangle must lie within the virtual area; y and h
// must be multiples of 8 because the device addresses rows in 8-dot blocks.
// The window's cursor is reset to its origin.
func (d *Dev) DefineWindow(id, x, y, w, h int) error {
	if d.halted {
		return ErrHalted
	}
	if id < 1 || id > maxWindow {
		return fmt.Errorf("%w: window id must be 1-%d, got %d", ErrInvalidArgument, maxWindow, id)
	}
	if x < 0 || y < 0 || w < 1 || h < 1 || x+w > VirtualWidth || y+h > Height {
		return fmt.Errorf("%w: window %dx%d at (%d,%d) exceeds %dx%d", ErrInvalidArgument, w, h, x, y, VirtualWidth, Height)
	}
	if y%8 != 0 || h%8 != 0 {
		return fmt.Errorf("%w: window y and height must be multiples of 8", ErrInvalidArgument)
	}
	seq := append([]byte{}, cmdDefineWin.opcode...)
	seq = append(seq, byte(id), 0x01)
	seq = appendU16(seq, x)
	seq = appendU16(seq, y/8)
	seq = appendU16(seq, w)
	seq = appendU16(seq, h/8)
	if err := d.link.SendBytes(seq); err != nil {
		return err
	}
	d.windows[id] = Window{
		X: x, Y: y, W: w, H: h,
		Defined: true,
		MagH:    1, MagV: 1,
		WriteMode: image1bit.OpNormal,
	}
	return nil
}

// DeleteWindow removes user window id. When clear is set the window's
// content is cleared first.
func (d *Dev) DeleteWindow(id int, clear bool) error {
	if d.halted {
		return ErrHalted
	}
	if id < 1 || id > maxWindow {
		return fmt.Errorf("%w: window id must be 1-%d, got %d", ErrInvalidArgument, maxWindow, id)
	}
	if clear {
		if err := d.ClearWindow(id); err != nil {
			return err
		}
	}
	seq := append([]byte{}, cmdDefineWin.opcode...)
	seq = append(seq, byte(id), 0x00)
	if err := d.link.SendBytes(seq); err != nil {
		return err
	}
	d.windows[id] = Window{}
	if d.active == id {
		d.active = baseWindow
	}
	return nil
}

// SelectWindow makes window id the active context for cursor, text and
// attribute operations. Selecting a user window that was never defined is
// legal but targets a zero-size rectangle; no window is created implicitly.
func (d *Dev) SelectWindow(id int) error {
	if err := d.exec(cmdSelectWin, id); err != nil {
		return err
	}
	d.active = id
	return nil
}

// ClearWindow clears window id and leaves it selected.
func (d *Dev) ClearWindow(id int) error {
	if err := d.SelectWindow(id); err != nil {
		return err
	}
	return d.Clear()
}

// Clear erases the active window and homes its cursor.
func (d *Dev) Clear() error {
	if err := d.exec(cmdClear); err != nil {
		return err
	}
	w := &d.windows[d.active]
	w.CursorCol, w.CursorRow = 0, 0
	return nil
}

// SetBaseWindowExtent sizes window 0 to the visible area (extended false)
// or the full virtual area (extended true).
func (d *Dev) SetBaseWindowExtent(extended bool) error {
	if err := d.exec(cmdBaseWin, boolArg(extended)); err != nil {
		return err
	}
	w := &d.windows[baseWindow]
	if extended {
		w.W = VirtualWidth
	} else {
		w.W = VisibleWidth
	}
	return nil
}

// ActiveWindow returns the id of the active window.
func (d *Dev) ActiveWindow() int {
	return d.active
}

// WindowState returns a copy of the tracked state of window id.
func (d *Dev) WindowState(id int) (Window, error) {
	if id < 0 || id > maxWindow {
		return Window{}, fmt.Errorf("%w: window id must be 0-%d, got %d", ErrInvalidArgument, maxWindow, id)
	}
	return d.windows[id], nil
}

func appendU16(p []byte, v int) []byte {
	return append(p, byte(v), byte(v>>8))
}
