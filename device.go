package sx126x

import (
	"time"

	"github.com/ecc1/gpio"
	"github.com/ecc1/spi"
)

// Default wiring for a Pinedio-style USB dongle exposed through the Linux
// spidev driver. The SX126x SPI bus tolerates up to 16 MHz, but USB
// bridges run far slower.
const (
	defaultDevice = "/dev/spidev0.0"
	defaultSpeed  = 2000000 // Hz
)

// SpiConfig describes how to reach the chip through spidev.
type SpiConfig struct {
	Device   string // spidev path; empty means defaultDevice
	Speed    int    // bus speed in Hz; 0 means defaultSpeed
	CustomCS int    // GPIO number for a non-native chip select; 0 = native
	ResetPin int    // GPIO number driving NRESET (active low); 0 = not wired
}

// SpiDevice is a Transport over a Linux spidev device.
type SpiDevice struct {
	device   *spi.Device
	resetPin gpio.OutputPin
}

// OpenSpi opens the SPI device and, when configured, claims the NRESET
// pin. SPI mode 0 is the only bus mode the chip supports.
func OpenSpi(cfg SpiConfig) (*SpiDevice, error) {
	if cfg.Device == "" {
		cfg.Device = defaultDevice
	}
	if cfg.Speed == 0 {
		cfg.Speed = defaultSpeed
	}
	d := &SpiDevice{}
	var err error
	d.device, err = spi.Open(cfg.Device, cfg.Speed, cfg.CustomCS)
	if err != nil {
		return nil, err
	}
	if cfg.ResetPin != 0 {
		d.resetPin, err = gpio.Output(cfg.ResetPin, true, false)
		if err != nil {
			_ = d.device.Close()
			return nil, err
		}
	}
	return d, nil
}

// Exchange performs one full-duplex transfer. The input is copied so the
// caller's frame survives for tracing and decoding.
func (d *SpiDevice) Exchange(tx []byte) ([]byte, error) {
	buf := make([]byte, len(tx))
	copy(buf, tx)
	if err := d.device.Transfer(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Reset pulses NRESET low. The chip reboots into STDBY_RC and all
// configuration is lost. No-op when the pin is not wired.
func (d *SpiDevice) Reset() error {
	if d.resetPin == nil {
		return nil
	}
	if err := d.resetPin.Write(true); err != nil {
		return err
	}
	time.Sleep(200 * time.Microsecond)
	err := d.resetPin.Write(false)
	time.Sleep(10 * time.Millisecond)
	return err
}

// Close closes the SPI device.
func (d *SpiDevice) Close() error {
	return d.device.Close()
}
