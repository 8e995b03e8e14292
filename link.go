package nagp1250

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Link is the byte sink the driver talks through. Bytes are clocked out
// MSB-first and delivered in order. A Link performs no retries: WaitReady
// reports a timeout as an error and leaves recovery to the caller.
type Link interface {
	// Reset pulses the RESET line and blocks for the settle interval.
	Reset() error
	// WaitReady polls the SBUSY line until it clears or timeout elapses.
	WaitReady(timeout time.Duration) error
	// SendByte transmits one byte.
	SendByte(v byte) error
	// SendBytes transmits a sequence of bytes back to back.
	SendBytes(p []byte) error
}

// busyPollInterval is how often the SBUSY line is sampled during WaitReady.
const busyPollInterval = 10 * time.Microsecond

// pinLink is the RESET/SBUSY handling shared by both transports.
type pinLink struct {
	rst    gpio.PinIO // optional
	busy   gpio.PinIn // optional
	settle time.Duration
}

func (p *pinLink) Reset() error {
	if p.rst == nil {
		return nil
	}
	if err := p.rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("nagp1250: failed to pull RESET low: %w", err)
	}
	time.Sleep(p.settle)
	if err := p.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("nagp1250: failed to pull RESET high: %w", err)
	}
	time.Sleep(p.settle)
	return nil
}

func (p *pinLink) WaitReady(timeout time.Duration) error {
	if p.busy == nil {
		return nil
	}
	deadline := time.Now().Add(timeout)
	for p.busy.Read() == gpio.High {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
		time.Sleep(busyPollInterval)
	}
	return nil
}

// spiLink clocks bytes through a SPI port. The port supplies SIN and SCK;
// RESET and SBUSY stay on plain GPIOs.
type spiLink struct {
	pinLink
	c conn.Conn
}

func newSPILink(p spi.Port, busy gpio.PinIn, rst gpio.PinIO, settle time.Duration) (*spiLink, error) {
	// The module samples SIN on the rising SCK edge at up to 500kbit/s;
	// 115200 matches the vendor wiring examples.
	c, err := p.Connect(115200*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("nagp1250: failed to connect SPI: %w", err)
	}
	return &spiLink{
		pinLink: pinLink{rst: rst, busy: busy, settle: settle},
		c:       c,
	}, nil
}

func (l *spiLink) SendByte(v byte) error {
	return l.c.Tx([]byte{v}, nil)
}

func (l *spiLink) SendBytes(p []byte) error {
	return l.c.Tx(p, nil)
}

// bitBangLink drives SIN/SCK directly for hosts without a free SPI port.
type bitBangLink struct {
	pinLink
	sin gpio.PinOut
	sck gpio.PinOut
}

func newBitBangLink(sin, sck gpio.PinOut, busy gpio.PinIn, rst gpio.PinIO, settle time.Duration) (*bitBangLink, error) {
	if sin == nil || sck == nil {
		return nil, fmt.Errorf("%w: SIN and SCK pins are required", ErrInvalidArgument)
	}
	if err := sck.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("nagp1250: failed to idle SCK: %w", err)
	}
	if err := sin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("nagp1250: failed to idle SIN: %w", err)
	}
	return &bitBangLink{
		pinLink: pinLink{rst: rst, busy: busy, settle: settle},
		sin:     sin,
		sck:     sck,
	}, nil
}

func (l *bitBangLink) SendByte(v byte) error {
	for i := 7; i >= 0; i-- { // MSB-first
		bit := gpio.Low
		if v&(1<<uint(i)) != 0 {
			bit = gpio.High
		}
		if err := l.sin.Out(bit); err != nil {
			return err
		}
		if err := l.sck.Out(gpio.High); err != nil {
			return err
		}
		if err := l.sck.Out(gpio.Low); err != nil {
			return err
		}
	}
	return nil
}

func (l *bitBangLink) SendBytes(p []byte) error {
	for _, v := range p {
		if err := l.SendByte(v); err != nil {
			return err
		}
	}
	return nil
}
