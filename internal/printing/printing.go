// Package printing detects ESC/POS receipt printers over USB, serial,
// and network transports, and spools rendered receipt images to them.
package printing

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/google/gousb"
	"github.com/tarm/serial"
)

// Kind is the transport a printer is reached over.
type Kind string

const (
	KindUSB     Kind = "usb"
	KindSerial  Kind = "serial"
	KindNetwork Kind = "network"
)

// Device is a detected or registered printer.
type Device struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"`
	Description string `json:"description"`
	Name        string `json:"name,omitempty"` // custom user-set name
	VID         uint16 `json:"vid,omitempty"`
	PID         uint16 `json:"pid,omitempty"`
	Path        string `json:"path,omitempty"` // serial device path
	Host        string `json:"host,omitempty"`
	Port        int    `json:"port,omitempty"`
}

// DisplayName prefers the custom name over the detected description.
func (d *Device) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Description
}

// Manager tracks the known printers and assigns them stable identities
// through the registry.
type Manager struct {
	registry *Registry
	devices  map[string]*Device
	mu       sync.RWMutex

	onAttached func(*Device)
	onDetached func(string)
}

// NewManager creates a manager backed by the registry file at path.
func NewManager(registryPath string) (*Manager, error) {
	reg, err := NewRegistry(registryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open printer registry: %w", err)
	}
	return &Manager{
		registry: reg,
		devices:  make(map[string]*Device),
	}, nil
}

// Scan detects printers on all transports and replaces the known set.
// Network printers are registered manually and survive every scan.
func (m *Manager) Scan() ([]*Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var devices []*Device
	if usb, err := m.scanUSB(); err == nil {
		devices = append(devices, usb...)
	}
	devices = append(devices, m.scanSerial()...)

	next := make(map[string]*Device, len(devices))
	for _, d := range devices {
		next[d.ID] = d
	}
	// Carry network printers over.
	for id, d := range m.devices {
		if d.Kind == KindNetwork {
			next[id] = d
		}
	}
	m.devices = next

	return devices, nil
}

// Get returns the device with the given id, or nil.
func (m *Manager) Get(id string) *Device {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.devices[id]
}

// All returns all known devices.
func (m *Manager) All() []*Device {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Device, 0, len(m.devices))
	for _, d := range m.devices {
		out = append(out, d)
	}
	return out
}

// AddNetwork registers a network printer and returns its stable id.
func (m *Manager) AddNetwork(host string, port int, description string) string {
	if description == "" {
		description = fmt.Sprintf("Network: %s:%d", host, port)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	d := &Device{Kind: KindNetwork, Host: host, Port: port, Description: description}
	d.ID = m.registry.Ensure(d)
	d.Name = m.registry.NameOf(d.ID)
	m.devices[d.ID] = d
	return d.ID
}

// Rename stores a custom name for the printer.
func (m *Manager) Rename(id, name string) bool {
	if !m.registry.Rename(id, name) {
		return false
	}
	m.mu.Lock()
	if d, ok := m.devices[id]; ok {
		d.Name = name
	}
	m.mu.Unlock()
	return true
}

// OnAttached registers a callback fired by the monitor when a printer
// appears.
func (m *Manager) OnAttached(fn func(*Device)) { m.onAttached = fn }

// OnDetached registers a callback fired when a printer disappears.
func (m *Manager) OnDetached(fn func(string)) { m.onDetached = fn }

func (m *Manager) scanUSB() ([]*Device, error) {
	ctx := gousb.NewContext()
	defer ctx.Close()

	opened, err := ctx.OpenDevices(func(*gousb.DeviceDesc) bool { return true })
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate USB devices: %w", err)
	}

	var devices []*Device
	for _, dev := range opened {
		desc := dev.Desc
		if !isPrinterClass(desc) {
			dev.Close()
			continue
		}

		manufacturer, _ := dev.Manufacturer()
		product, _ := dev.Product()
		description := fmt.Sprintf("USB: %04X:%04X", desc.Vendor, desc.Product)
		if manufacturer != "" || product != "" {
			description = fmt.Sprintf("USB: %s %s (%04X:%04X)", manufacturer, product, desc.Vendor, desc.Product)
		}

		d := &Device{
			Kind:        KindUSB,
			Description: description,
			VID:         uint16(desc.Vendor),
			PID:         uint16(desc.Product),
		}
		d.ID = m.registry.Ensure(d)
		d.Name = m.registry.NameOf(d.ID)
		devices = append(devices, d)
		dev.Close()
	}
	return devices, nil
}

func isPrinterClass(desc *gousb.DeviceDesc) bool {
	if desc.Class == gousb.ClassPrinter {
		return true
	}
	for _, cfg := range desc.Configs {
		for _, iface := range cfg.Interfaces {
			for _, alt := range iface.AltSettings {
				if alt.Class == gousb.ClassPrinter {
					return true
				}
			}
		}
	}
	return false
}

func (m *Manager) scanSerial() []*Device {
	var devices []*Device
	for _, path := range serialPortCandidates() {
		// Open briefly to confirm the port exists.
		port, err := serial.OpenPort(&serial.Config{Name: path, Baud: 9600})
		if err != nil {
			continue
		}
		port.Close()

		d := &Device{
			Kind:        KindSerial,
			Description: fmt.Sprintf("Serial: %s", filepath.Base(path)),
			Path:        path,
		}
		d.ID = m.registry.Ensure(d)
		d.Name = m.registry.NameOf(d.ID)
		devices = append(devices, d)
	}
	return devices
}

func serialPortCandidates() []string {
	var ports []string
	switch runtime.GOOS {
	case "darwin":
		skip := []string{"Bluetooth", "Modem", "SPP", "DialIn", "Callout", "KeySerial", "debug-console"}
		cu, _ := filepath.Glob("/dev/cu.*")
		tty, _ := filepath.Glob("/dev/tty.*")
		for _, p := range append(cu, tty...) {
			skipped := false
			for _, s := range skip {
				if strings.Contains(p, s) {
					skipped = true
					break
				}
			}
			if !skipped {
				ports = append(ports, p)
			}
		}
	case "linux":
		usb, _ := filepath.Glob("/dev/ttyUSB*")
		acm, _ := filepath.Glob("/dev/ttyACM*")
		ports = append(append(ports, usb...), acm...)
	case "windows":
		for i := 1; i <= 64; i++ {
			ports = append(ports, fmt.Sprintf("COM%d", i))
		}
	}
	return ports
}
