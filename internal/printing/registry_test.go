package printing

import (
	"path/filepath"
	"testing"
)

func TestRegistryEnsureUSB(t *testing.T) {
	reg, err := NewRegistry(filepath.Join(t.TempDir(), "registry.json"))
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}

	d := &Device{Kind: KindUSB, VID: 0x04B8, PID: 0x0E15, Description: "Epson TM-T20"}

	id1 := reg.Ensure(d)
	if id1 == "" {
		t.Error("expected non-empty printer id")
	}

	id2 := reg.Ensure(d)
	if id1 != id2 {
		t.Errorf("expected same id for same printer: %s != %s", id1, id2)
	}
}

func TestRegistryEnsureNetwork(t *testing.T) {
	reg, _ := NewRegistry(filepath.Join(t.TempDir(), "registry.json"))

	d := &Device{Kind: KindNetwork, Host: "192.168.1.100", Port: 9100, Description: "Network Printer"}
	if id := reg.Ensure(d); id == "" {
		t.Error("expected non-empty printer id")
	}
}

func TestRegistryRename(t *testing.T) {
	reg, _ := NewRegistry(filepath.Join(t.TempDir(), "registry.json"))

	id := reg.Ensure(&Device{Kind: KindUSB, VID: 0x04B8, PID: 0x0E15, Description: "Test Printer"})

	if !reg.Rename(id, "Kitchen Printer") {
		t.Error("expected rename to succeed")
	}
	if name := reg.NameOf(id); name != "Kitchen Printer" {
		t.Errorf("expected 'Kitchen Printer', got %q", name)
	}

	if reg.Rename("no-such-id", "x") {
		t.Error("expected rename of unknown id to fail")
	}
}

func TestRegistryRemove(t *testing.T) {
	reg, _ := NewRegistry(filepath.Join(t.TempDir(), "registry.json"))

	id := reg.Ensure(&Device{Kind: KindUSB, VID: 0x1234, PID: 0x5678, Description: "Test"})

	if !reg.Remove(id) {
		t.Error("expected removal to succeed")
	}
	if reg.NameOf(id) != "" {
		t.Error("expected no entry after removal")
	}
}

func TestRegistryPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")

	d := &Device{Kind: KindUSB, VID: 0xAAAA, PID: 0xBBBB, Description: "Persistent Printer"}

	reg1, _ := NewRegistry(path)
	id1 := reg1.Ensure(d)
	reg1.Rename(id1, "Persistent Name")

	// Simulate an app restart.
	reg2, err := NewRegistry(path)
	if err != nil {
		t.Fatalf("failed to reload registry: %v", err)
	}

	id2 := reg2.Ensure(d)
	if id1 != id2 {
		t.Errorf("expected same id after reload: %s != %s", id1, id2)
	}
	if name := reg2.NameOf(id2); name != "Persistent Name" {
		t.Errorf("expected name to persist, got %q", name)
	}
}
