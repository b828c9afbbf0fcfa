package sx126x

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// PeriphDevice is a Transport over a periph.io SPI port. It covers hosts
// where spidev is not available directly, such as USB-to-SPI bridges with
// periph drivers.
type PeriphDevice struct {
	port  spi.PortCloser
	conn  spi.Conn
	reset gpio.PinIO
}

// OpenPeriph opens the named SPI port (empty selects the first available)
// and optionally claims a reset pin by name.
func OpenPeriph(spiDev, resetPin string) (*PeriphDevice, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	p, err := spireg.Open(spiDev)
	if err != nil {
		return nil, err
	}
	c, err := p.Connect(2*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	d := &PeriphDevice{port: p, conn: c}
	if resetPin != "" {
		d.reset = gpioreg.ByName(resetPin)
		if d.reset == nil {
			_ = p.Close()
			return nil, errors.New("failed to find reset pin " + resetPin)
		}
		if err := d.reset.Out(gpio.High); err != nil {
			_ = p.Close()
			return nil, err
		}
	}
	return d, nil
}

// Exchange performs one full-duplex transfer.
func (d *PeriphDevice) Exchange(tx []byte) ([]byte, error) {
	rx := make([]byte, len(tx))
	if err := d.conn.Tx(tx, rx); err != nil {
		return nil, err
	}
	return rx, nil
}

// Reset pulses NRESET low. No-op when no reset pin was claimed.
func (d *PeriphDevice) Reset() error {
	if d.reset == nil {
		return nil
	}
	if err := d.reset.Out(gpio.Low); err != nil {
		return err
	}
	time.Sleep(200 * time.Microsecond)
	err := d.reset.Out(gpio.High)
	time.Sleep(10 * time.Millisecond)
	return err
}

// Close closes the SPI port.
func (d *PeriphDevice) Close() error {
	return d.port.Close()
}
