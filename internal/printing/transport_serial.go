package printing

import (
	"fmt"
	"sync"

	"github.com/tarm/serial"
)

type serialTransport struct {
	port *serial.Port
	mu   sync.Mutex
}

// openSerial opens a serial printer. Most thermal printers default to
// 9600 baud.
func openSerial(path string, baud int) (*serialTransport, error) {
	if baud == 0 {
		baud = 9600
	}

	port, err := serial.OpenPort(&serial.Config{Name: path, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", path, err)
	}
	return &serialTransport{port: port}, nil
}

func (t *serialTransport) Write(data []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.port.Write(data)
}

func (t *serialTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.port != nil {
		return t.port.Close()
	}
	return nil
}
