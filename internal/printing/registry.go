package printing

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
)

// Registry persists printer identities and custom names so a printer
// keeps the same id across rescans and restarts.
type Registry struct {
	filePath string
	entries  map[string]*registryEntry
	mu       sync.RWMutex
}

type registryEntry struct {
	ID          string `json:"id"`
	IdentityKey string `json:"identity_key"`
	Kind        Kind   `json:"kind"`
	VID         uint16 `json:"vid,omitempty"`
	PID         uint16 `json:"pid,omitempty"`
	Path        string `json:"path,omitempty"`
	Host        string `json:"host,omitempty"`
	Port        int    `json:"port,omitempty"`
	Description string `json:"description"`
	Name        string `json:"name,omitempty"`
}

// NewRegistry loads the registry at filePath, creating it lazily on
// first save if it does not exist yet.
func NewRegistry(filePath string) (*Registry, error) {
	r := &Registry{
		filePath: filePath,
		entries:  make(map[string]*registryEntry),
	}
	if err := r.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load registry: %w", err)
		}
	}
	return r, nil
}

// Ensure returns the persistent id for the device, minting one when
// the device is seen for the first time.
func (r *Registry) Ensure(d *Device) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := identityKey(d)
	if entry, ok := r.entries[key]; ok {
		return entry.ID
	}

	entry := &registryEntry{
		ID:          uuid.New().String(),
		IdentityKey: key,
		Kind:        d.Kind,
		VID:         d.VID,
		PID:         d.PID,
		Path:        d.Path,
		Host:        d.Host,
		Port:        d.Port,
		Description: d.Description,
	}
	r.entries[key] = entry

	// A failed save is non-fatal, the next mutation retries.
	r.save()

	return entry.ID
}

// NameOf returns the custom name for a printer, or "" if none is set.
func (r *Registry) NameOf(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.entries {
		if entry.ID == id {
			return entry.Name
		}
	}
	return ""
}

// Rename stores a custom name for a printer. Returns false when the
// id is unknown.
func (r *Registry) Rename(id, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		if entry.ID == id {
			entry.Name = name
			r.save()
			return true
		}
	}
	return false
}

// Remove drops a printer from the registry.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, entry := range r.entries {
		if entry.ID == id {
			delete(r.entries, key)
			r.save()
			return true
		}
	}
	return false
}

func (r *Registry) load() error {
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &r.entries)
}

func (r *Registry) save() error {
	data, err := json.MarshalIndent(r.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.filePath, data, 0644)
}

// identityKey derives a stable key from the device's physical
// characteristics so it survives reconnects and reboots.
func identityKey(d *Device) string {
	switch d.Kind {
	case KindUSB:
		if d.VID != 0 && d.PID != 0 {
			return fmt.Sprintf("usb:%04X:%04X", d.VID, d.PID)
		}
	case KindSerial:
		if d.Path != "" {
			return fmt.Sprintf("serial:%s", d.Path)
		}
	case KindNetwork:
		if d.Host != "" {
			return fmt.Sprintf("network:%s:%d", d.Host, d.Port)
		}
	}

	hash := md5.Sum([]byte(d.Description))
	return fmt.Sprintf("hash:%x", hash)
}
