package nitroup

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.bug.st/serial"
)

// settleDelay is how long the PIC bridge needs between the request write and
// the first response byte. Measured on hardware; shorter waits return
// half-filled buffers.
const settleDelay = 2 * time.Second

type SerialTelemetryReader struct {
	device      string
	baudRate    int
	readTimeout time.Duration
	decoder     *Decoder
	logger      *log.Logger

	port serial.Port
}

// CreateSerialTelemetryReader builds a reader for a USB CDC serial device
// (/dev/ttyACM0 style). The port is opened by Open, not here.
func CreateSerialTelemetryReader(device string, baudRate int, readTimeout time.Duration,
	decoder *Decoder, logger *log.Logger) (*SerialTelemetryReader, error) {
	if device == "" {
		return nil, errors.New("nitroup: serial device is required")
	}
	if baudRate <= 0 {
		return nil, fmt.Errorf("nitroup: invalid baud rate %d", baudRate)
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &SerialTelemetryReader{
		device:      device,
		baudRate:    baudRate,
		readTimeout: readTimeout,
		decoder:     decoder,
		logger:      logger,
	}, nil
}

func (r *SerialTelemetryReader) Open() error {
	port, err := serial.Open(r.device, &serial.Mode{BaudRate: r.baudRate})
	if err != nil {
		return fmt.Errorf("nitroup: open %s: %w", r.device, err)
	}
	if err := port.SetReadTimeout(r.readTimeout); err != nil {
		port.Close()
		return err
	}
	r.port = port
	return nil
}

func (r *SerialTelemetryReader) Close() error {
	if r.port == nil {
		return nil
	}
	err := r.port.Close()
	r.port = nil
	return err
}

// exchange writes one request and collects the response until maxLen bytes
// arrived or a read times out with data in hand.
func (r *SerialTelemetryReader) exchange(request []byte, maxLen int) ([]byte, error) {
	if r.port == nil {
		return nil, errors.New("nitroup: port not open")
	}
	if err := r.port.ResetInputBuffer(); err != nil {
		return nil, err
	}
	if _, err := r.port.Write(request); err != nil {
		return nil, fmt.Errorf("nitroup: write request: %w", err)
	}

	time.Sleep(settleDelay)

	response := make([]byte, 0, maxLen)
	chunk := make([]byte, maxLen)
	for len(response) < maxLen {
		n, err := r.port.Read(chunk)
		if err != nil {
			return nil, fmt.Errorf("nitroup: read response: %w", err)
		}
		if n == 0 {
			// read timeout
			break
		}
		response = append(response, chunk[:n]...)
	}
	if len(response) == 0 {
		return nil, errors.New("nitroup: no response from UPS")
	}
	r.logger.Debugf("nitroup: received %d bytes: %x", len(response), response)
	return response, nil
}

func (r *SerialTelemetryReader) GetTelemetry() (*Telemetry, error) {
	response, err := r.exchange(TelemetryRequest(), ResponseBufferSize)
	if err != nil {
		return nil, err
	}
	return r.decoder.Decode(response)
}

func (r *SerialTelemetryReader) GetDeviceInfo() (*DeviceInfo, error) {
	response, err := r.exchange(TelemetryRequest(), ResponseBufferSize)
	if err != nil {
		return nil, err
	}
	return r.decoder.DecodeDeviceInfo(response)
}

// ReadRegister performs a single raw exchange and returns the response bytes
// unparsed. Meant for protocol exploration, not for the normal poll path.
func (r *SerialTelemetryReader) ReadRegister(register uint16, length uint8) ([]byte, error) {
	return r.exchange(BuildRequest(register, length), ResponseBufferSize)
}

// GetBatteryCapacity reads the 1-byte capacity register (Ah). The device
// answers AA <type> <value>.
func (r *SerialTelemetryReader) GetBatteryCapacity() (uint8, error) {
	response, err := r.exchange(BuildRequest(RegisterBatteryCapacity, 1), 8)
	if err != nil {
		return 0, err
	}
	if len(response) < 3 || response[0] != HeaderByte0 {
		return 0, fmt.Errorf("nitroup: short capacity response: %x", response)
	}
	return response[2], nil
}
