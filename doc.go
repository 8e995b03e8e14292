// Package nagp1250 controls a Futaba NAGP1250 vacuum-fluorescent display
// over a clocked serial link.
//
// The NAGP1250 is a 140×32 dot graphic VFD with a 5×7 character generator,
// up to four user-definable windows beside the base window, and display
// memory extending to a 256×32 virtual area. The module draws nothing by
// itself: graphics are rasterized in software with the image1bit
// subpackage, packed to the device's column-major format and uploaded.
//
// # Display Characteristics
//
//   - 140×32 visible dots, 256×32 virtual display memory
//   - One base window plus four user windows, each with its own cursor
//   - Character magnification ×1/×2, reverse video, write mix modes
//     (normal, OR, AND, XOR) applied by the display on upload
//   - Brightness in eight steps, blink and screen saver patterns
//   - International fonts and single-byte character code pages
//     (PC437 default, Katakana and others)
//
// # Hardware Connection
//
// The module speaks a clocked serial protocol with a busy handshake:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 5V
//	SIN         → SPI MOSI (or any GPIO for bit-banging)
//	SCK         → SPI CLK  (or any GPIO)
//	SBUSY       → GPIO input (optional but recommended)
//	RESET       → GPIO output (optional)
//
// # Basic Usage
//
//	package main
//
//	import (
//		"github.com/catlinkintsugi/nagp1250"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		port, _ := spireg.Open("")
//		busy := gpioreg.ByName("GPIO24")
//		rst := gpioreg.ByName("GPIO23")
//
//		dev, _ := nagp1250.NewSPI(port, busy, rst, nil)
//		dev.WriteText("Hello VFD")
//	}
//
// # Windows
//
// Up to four user windows can be laid over the base window. Cursor, text
// and attribute commands always apply to the active window:
//
//	dev.DefineWindow(1, 0, 0, 70, 32)
//	dev.SelectWindow(1)
//	dev.SetMagnification(2, 2)
//	dev.WriteText("BIG")
//	dev.SelectWindow(0)
//
// Window rectangles live in pixel coordinates inside the 256×32 virtual
// area; the vertical extent is addressed in 8-dot rows, so y and height
// must be multiples of 8.
//
// # Graphics
//
// Build a bitmap with the rasterizer, then upload it at the cursor:
//
//	b := image1bit.New(140, 32)
//	image1bit.DrawLine(b, image1bit.Line{X: 70, Y: 16, Angle: 0, Length: 30})
//	image1bit.DrawCircle(b, image1bit.Circle{X: 20, Y: 16, R: 10})
//	image1bit.DrawBox(b, image1bit.Box{X: 100, Y: 4, W: 30, H: 24, Radius: 5})
//
//	dev.SetCursor(0, 0)
//	dev.DrawImage(b)
//
// Partial updates can merge with what is already on screen instead of
// replacing it:
//
//	dev.SetWriteMode(image1bit.OpOr)
//
// The same operators are available in software via image1bit.Combine for
// merging bitmaps before upload.
//
// # Error Handling
//
// Out-of-range parameters fail with ErrInvalidArgument before any byte is
// transmitted, so the command stream never carries a partial command.
// Characters missing from the active code page fail per character with
// UnsupportedCharError and nothing is sent. A busy timeout (ErrTimeout) is
// fatal to the in-flight command and may leave the device desynchronized;
// the driver never retries, call Reset to recover. Out-of-bounds drawing
// coordinates are not errors: the rasterizer clips silently.
//
// # Timing
//
// The hardware fudge factors are explicit in Opts: ResetSettle for the
// reset pulse, BusyTimeout for the SBUSY poll bound, and ImageChunkDelay
// for the pause between image chunks that keeps the device's draw
// processor from being overrun.
//
// # Concurrency
//
// The driver is strictly synchronous and holds no locks: it assumes a
// single writer. Callers adding concurrency must serialize whole logical
// commands, never individual bytes.
package nagp1250
