package nagp1250

import (
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
)

// fakeOutPin records the level sequence driven onto it.
type fakeOutPin struct {
	name   string
	levels []gpio.Level
	onOut  func(gpio.Level)
}

func (p *fakeOutPin) String() string   { return p.name }
func (p *fakeOutPin) Halt() error      { return nil }
func (p *fakeOutPin) Name() string     { return p.name }
func (p *fakeOutPin) Number() int      { return -1 }
func (p *fakeOutPin) Function() string { return "Out" }
func (p *fakeOutPin) Out(l gpio.Level) error {
	p.levels = append(p.levels, l)
	if p.onOut != nil {
		p.onOut(l)
	}
	return nil
}
func (p *fakeOutPin) PWM(gpio.Duty, physic.Frequency) error { return nil }

func TestBitBangMSBFirst(t *testing.T) {
	sin := &fakeOutPin{name: "SIN"}
	sck := &fakeOutPin{name: "SCK"}

	// Sample SIN on every rising SCK edge.
	var bits []gpio.Level
	var cur gpio.Level
	sin.onOut = func(l gpio.Level) { cur = l }
	sck.onOut = func(l gpio.Level) {
		if l == gpio.High {
			bits = append(bits, cur)
		}
	}

	l, err := newBitBangLink(sin, sck, nil, nil, time.Millisecond)
	if err != nil {
		t.Fatalf("newBitBangLink() error: %v", err)
	}
	bits = nil // drop the idle setup

	if err := l.SendByte(0xA3); err != nil {
		t.Fatalf("SendByte() error: %v", err)
	}
	want := []gpio.Level{gpio.High, gpio.Low, gpio.High, gpio.Low, gpio.Low, gpio.Low, gpio.High, gpio.High}
	if len(bits) != 8 {
		t.Fatalf("clocked %d bits, want 8", len(bits))
	}
	for i, b := range bits {
		if b != want[i] {
			t.Errorf("bit %d = %v, want %v (expected MSB-first)", i, b, want[i])
		}
	}
}

func TestBitBangSendBytesOrder(t *testing.T) {
	sin := &fakeOutPin{name: "SIN"}
	sck := &fakeOutPin{name: "SCK"}

	// Reassemble bytes from SIN levels: the link drives SIN once per bit,
	// MSB first.
	var got []byte
	var assembled byte
	n := 0
	sin.onOut = func(l gpio.Level) {
		assembled <<= 1
		if l == gpio.High {
			assembled |= 1
		}
		if n++; n == 8 {
			got = append(got, assembled)
			assembled = 0
			n = 0
		}
	}

	l, err := newBitBangLink(sin, sck, nil, nil, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	got, assembled, n = nil, 0, 0 // drop the idle setup

	if err := l.SendBytes([]byte{0x1B, 0x40, 0xFF}); err != nil {
		t.Fatalf("SendBytes() error: %v", err)
	}
	if len(got) != 3 || got[0] != 0x1B || got[1] != 0x40 || got[2] != 0xFF {
		t.Errorf("reassembled %x, want 1b40ff", got)
	}
}

func TestBitBangRequiresPins(t *testing.T) {
	if _, err := newBitBangLink(nil, nil, nil, nil, time.Millisecond); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestResetPulse(t *testing.T) {
	rst := &gpiotest.Pin{N: "RESET"}
	p := &pinLink{rst: rst, settle: time.Millisecond}

	start := time.Now()
	if err := p.Reset(); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	if rst.L != gpio.High {
		t.Error("RESET line not released after Reset()")
	}
	if elapsed := time.Since(start); elapsed < 2*time.Millisecond {
		t.Errorf("Reset() settled for %v, want at least 2ms", elapsed)
	}
}

func TestResetWithoutPin(t *testing.T) {
	p := &pinLink{settle: time.Millisecond}
	if err := p.Reset(); err != nil {
		t.Errorf("Reset() without a RESET pin = %v", err)
	}
}

func TestWaitReady(t *testing.T) {
	busy := &gpiotest.Pin{N: "SBUSY", L: gpio.Low}
	p := &pinLink{busy: busy}
	if err := p.WaitReady(time.Millisecond); err != nil {
		t.Errorf("WaitReady() with SBUSY low = %v", err)
	}
}

func TestWaitReadyTimeout(t *testing.T) {
	busy := &gpiotest.Pin{N: "SBUSY", L: gpio.High}
	p := &pinLink{busy: busy}

	err := p.WaitReady(2 * time.Millisecond)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("WaitReady() with SBUSY stuck = %v, want ErrTimeout", err)
	}
}

func TestWaitReadyWithoutPin(t *testing.T) {
	p := &pinLink{}
	if err := p.WaitReady(time.Millisecond); err != nil {
		t.Errorf("WaitReady() without an SBUSY pin = %v", err)
	}
}
