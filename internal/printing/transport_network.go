package printing

import (
	"fmt"
	"net"
	"sync"
	"time"
)

const networkDialTimeout = 5 * time.Second

type networkTransport struct {
	conn net.Conn
	mu   sync.Mutex
}

// openNetwork dials a raw-socket printer, typically on port 9100.
func openNetwork(host string, port int) (*networkTransport, error) {
	conn, err := net.DialTimeout("tcp", fmt.Sprintf("%s:%d", host, port), networkDialTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to network printer: %w", err)
	}
	return &networkTransport{conn: conn}, nil
}

func (t *networkTransport) Write(data []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn.Write(data)
}

func (t *networkTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != nil {
		return t.conn.Close()
	}
	return nil
}
