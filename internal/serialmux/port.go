package serialmux

import "io"

// SerialPorter is what the mux needs from a serial device: a byte stream
// and a way to shut it down. The camera link is one-way; the firmware
// streams telemetry and the host only listens, so ports carry no write
// side.
type SerialPorter interface {
	io.Reader
	io.Closer
}
