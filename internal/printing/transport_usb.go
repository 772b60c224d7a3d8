package printing

import (
	"fmt"
	"sync"

	"github.com/google/gousb"
)

type usbTransport struct {
	ctx      *gousb.Context
	device   *gousb.Device
	iface    *gousb.Interface
	done     func()
	endpoint *gousb.OutEndpoint
	mu       sync.Mutex
}

// openUSB claims the printer's default interface and its first OUT
// endpoint.
func openUSB(vid, pid uint16) (*usbTransport, error) {
	ctx := gousb.NewContext()

	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vid), gousb.ID(pid))
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("failed to open USB device: %w", err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("USB device not found: %04X:%04X", vid, pid)
	}

	iface, done, err := dev.DefaultInterface()
	if err != nil {
		// The kernel may hold the interface. Detach and retry once.
		dev.SetAutoDetach(true)
		iface, done, err = dev.DefaultInterface()
	}
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("failed to claim USB interface: %w", err)
	}

	var endpoint *gousb.OutEndpoint
	for _, epDesc := range iface.Setting.Endpoints {
		if epDesc.Direction == gousb.EndpointDirectionOut {
			if ep, err := iface.OutEndpoint(epDesc.Number); err == nil {
				endpoint = ep
				break
			}
		}
	}
	if endpoint == nil {
		done()
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("no OUT endpoint on USB printer %04X:%04X", vid, pid)
	}

	return &usbTransport{
		ctx:      ctx,
		device:   dev,
		iface:    iface,
		done:     done,
		endpoint: endpoint,
	}, nil
}

func (t *usbTransport) Write(data []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.endpoint.Write(data)
}

func (t *usbTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done != nil {
		t.done()
	}
	if t.device != nil {
		t.device.Close()
	}
	if t.ctx != nil {
		t.ctx.Close()
	}
	return nil
}
