package nagp1250

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"

	"github.com/catlinkintsugi/nagp1250/image1bit"
)

// Opts is the configuration for the NAGP1250 display.
type Opts struct {
	// Initial brightness, 1 (12.5%) to 8 (100%). 0 selects the default of 4.
	Luminance int

	// Initial display mode of the base window.
	Mode DisplayMode

	// CursorBlink enables the hardware cursor blink at power up.
	CursorBlink bool

	// ResetSettle is how long the RESET line is held at each level during a
	// hardware reset. 0 selects the default of 100ms.
	ResetSettle time.Duration

	// BusyTimeout bounds every SBUSY poll. 0 selects the default of 10ms.
	BusyTimeout time.Duration

	// ImageChunkDelay is the pause between 8-byte image chunks so the
	// device's draw processor is not overrun. 0 selects the default of
	// 100µs; use a negative value to disable the pause.
	ImageChunkDelay time.Duration
}

// Defaults applied by the constructors.
const (
	DefaultLuminance       = 4
	DefaultResetSettle     = 100 * time.Millisecond
	DefaultBusyTimeout     = 10 * time.Millisecond
	DefaultImageChunkDelay = 100 * time.Microsecond
)

func (o *Opts) withDefaults() Opts {
	out := Opts{}
	if o != nil {
		out = *o
	}
	if out.Luminance == 0 {
		out.Luminance = DefaultLuminance
	}
	if out.ResetSettle == 0 {
		out.ResetSettle = DefaultResetSettle
	}
	if out.BusyTimeout == 0 {
		out.BusyTimeout = DefaultBusyTimeout
	}
	if out.ImageChunkDelay == 0 {
		out.ImageChunkDelay = DefaultImageChunkDelay
	} else if out.ImageChunkDelay < 0 {
		out.ImageChunkDelay = 0
	}
	return out
}

// Dev is the device handle for the NAGP1250 display. It owns all volatile
// device state: the window table, the active window, the code page and the
// brightness. The driver is strictly synchronous and assumes one writer; a
// caller introducing concurrency must serialize whole logical commands.
type Dev struct {
	link Link

	busyTimeout     time.Duration
	imageChunkDelay time.Duration

	windows [maxWindow + 1]Window
	active  int

	codePage  CodePage
	luminance int
	halted    bool
}

// NewSPI creates a NAGP1250 device clocked through a SPI port. The port
// supplies SIN and SCK; busy (SBUSY) and rst (RESET) are optional GPIOs;
// without SBUSY the busy handshake degrades to fixed pacing, without RESET
// the driver relies on power-on reset.
//
// opts can be nil to use defaults.
func NewSPI(p spi.Port, busy gpio.PinIn, rst gpio.PinIO, opts *Opts) (*Dev, error) {
	o := opts.withDefaults()
	l, err := newSPILink(p, busy, rst, o.ResetSettle)
	if err != nil {
		return nil, err
	}
	return New(l, &o)
}

// NewBitBang creates a NAGP1250 device driven entirely from GPIOs, clocking
// SIN against SCK MSB-first. Use this when no SPI port is free.
//
// opts can be nil to use defaults.
func NewBitBang(sin, sck gpio.PinOut, busy gpio.PinIn, rst gpio.PinIO, opts *Opts) (*Dev, error) {
	o := opts.withDefaults()
	l, err := newBitBangLink(sin, sck, busy, rst, o.ResetSettle)
	if err != nil {
		return nil, err
	}
	return New(l, &o)
}

// New creates a NAGP1250 device on an existing Link and runs the
// initialization sequence: hardware reset, software initialize, then the
// configured luminance, cursor blink and display mode.
func New(l Link, opts *Opts) (*Dev, error) {
	o := opts.withDefaults()
	if o.Luminance < 1 || o.Luminance > 8 {
		return nil, fmt.Errorf("%w: luminance must be 1-8, got %d", ErrInvalidArgument, o.Luminance)
	}
	d := &Dev{
		link:            l,
		busyTimeout:     o.BusyTimeout,
		imageChunkDelay: o.ImageChunkDelay,
		codePage:        PagePC437,
		luminance:       o.Luminance,
	}
	d.windows[baseWindow] = Window{
		W: VisibleWidth, H: Height,
		Defined: true,
		MagH:    1, MagV: 1,
	}
	if err := d.init(&o); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) init(o *Opts) error {
	if err := d.link.Reset(); err != nil {
		return err
	}
	if err := d.exec(cmdInitialize); err != nil {
		return err
	}
	if err := d.SetLuminance(o.Luminance); err != nil {
		return err
	}
	if o.CursorBlink {
		if err := d.SetCursorBlink(true); err != nil {
			return err
		}
	}
	if o.Mode != ModeOverwrite {
		if err := d.SetDisplayMode(o.Mode); err != nil {
			return err
		}
	}
	return nil
}

// Reset pulses the hardware reset line and re-runs the software initialize
// command, returning the device to its power-on state. This is the only
// recovery path after a busy timeout, which may leave the command stream
// desynchronized.
func (d *Dev) Reset() error {
	if err := d.link.Reset(); err != nil {
		return err
	}
	d.halted = false
	if err := d.exec(cmdInitialize); err != nil {
		return err
	}
	for i := range d.windows {
		d.windows[i] = Window{}
	}
	d.windows[baseWindow] = Window{
		W: VisibleWidth, H: Height,
		Defined: true,
		MagH:    1, MagV: 1,
	}
	d.active = baseWindow
	d.codePage = PagePC437
	return d.SetLuminance(d.luminance)
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the visible area of the display.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, VisibleWidth, Height)
}

// Draw draws src onto the display. The destination rectangle is clipped to
// the visible area and must start on an 8-dot row boundary. The image is
// converted through image1bit, packed and uploaded at the corresponding
// cursor position; it merges with display memory per the active write
// mode.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}
	dst = dst.Intersect(d.Bounds())
	if dst.Empty() {
		return nil
	}
	if dst.Min.Y%8 != 0 {
		return fmt.Errorf("%w: destination must start on an 8-dot row boundary", ErrInvalidArgument)
	}
	b := image1bit.New(dst.Dx(), dst.Dy())
	for y := 0; y < dst.Dy(); y++ {
		for x := 0; x < dst.Dx(); x++ {
			b.Set(x, y, src.At(sp.X+x, sp.Y+y))
		}
	}
	if err := d.SetCursor(dst.Min.X, dst.Min.Y/8); err != nil {
		return err
	}
	return d.DrawImage(b)
}

// CodePage returns the active character code page.
func (d *Dev) CodePage() CodePage {
	return d.codePage
}

// Luminance returns the current brightness level, 1 to 8.
func (d *Dev) Luminance() int {
	return d.luminance
}

// Halt switches the display's internal power supply off. Further commands
// fail with ErrHalted until Reset is called.
func (d *Dev) Halt() error {
	if err := d.ScreenSaver(SaverPowerOff); err != nil {
		return err
	}
	d.halted = true
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("nagp1250.Dev{%dx%d}", VisibleWidth, Height)
}
