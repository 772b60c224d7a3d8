package printing

import (
	"fmt"
	"image"
	"sync"
)

// Transport is an open byte channel to a printer.
type Transport interface {
	Write(data []byte) (int, error)
	Close() error
}

// Pool lazily opens and caches one transport per printer.
type Pool struct {
	transports map[string]Transport
	mu         sync.Mutex
}

// NewPool creates an empty transport pool.
func NewPool() *Pool {
	return &Pool{transports: make(map[string]Transport)}
}

// PrintImage rasterizes the receipt image to ESC/POS and sends it to
// the printer, opening a transport if none is cached.
func (p *Pool) PrintImage(d *Device, img image.Image) error {
	t, err := p.transport(d)
	if err != nil {
		return err
	}

	if _, err := t.Write(EncodeRaster(img)); err != nil {
		// The channel is likely broken. Drop it so the next attempt
		// reconnects.
		p.Disconnect(d.ID)
		return fmt.Errorf("failed to write to printer %s: %w", d.DisplayName(), err)
	}
	return nil
}

func (p *Pool) transport(d *Device) (Transport, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if t, ok := p.transports[d.ID]; ok {
		return t, nil
	}

	var (
		t   Transport
		err error
	)
	switch d.Kind {
	case KindUSB:
		t, err = openUSB(d.VID, d.PID)
	case KindSerial:
		t, err = openSerial(d.Path, 9600)
	case KindNetwork:
		t, err = openNetwork(d.Host, d.Port)
	default:
		return nil, fmt.Errorf("unsupported printer kind: %s", d.Kind)
	}
	if err != nil {
		return nil, err
	}

	p.transports[d.ID] = t
	return t, nil
}

// Disconnect closes and forgets the transport for a printer.
func (p *Pool) Disconnect(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if t, ok := p.transports[id]; ok {
		t.Close()
		delete(p.transports, id)
	}
}

// Close closes every cached transport.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, t := range p.transports {
		t.Close()
		delete(p.transports, id)
	}
}
