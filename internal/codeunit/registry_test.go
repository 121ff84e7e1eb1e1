package codeunit

import (
	"errors"
	"testing"
	"testing/fstest"
)

func replaceRegistry(t *testing.T) func() {
	t.Helper()
	prev := globalRegistry
	globalRegistry = newRegistry()
	return func() { globalRegistry = prev }
}

func TestRegisterAndLoad(t *testing.T) {
	cleanup := replaceRegistry(t)
	defer cleanup()

	if err := Register(Unit{Name: "Mod.B", Files: fstest.MapFS{}}); err != nil {
		t.Fatalf("register Mod.B failed: %v", err)
	}
	if err := Register(Unit{Name: " Mod.A ", Files: fstest.MapFS{}}); err != nil {
		t.Fatalf("register Mod.A failed: %v", err)
	}

	unit, err := RegistryLoader().Load("Mod.A")
	if err != nil {
		t.Fatalf("expected Mod.A to load: %v", err)
	}
	if unit.Name != "Mod.A" {
		t.Fatalf("unexpected unit name %q", unit.Name)
	}

	if _, err := RegistryLoader().Load("mod.a"); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("names should be case-sensitive, got %v", err)
	}

	names := Names()
	if len(names) != 2 || names[0] != "Mod.A" || names[1] != "Mod.B" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestRegisterRejectsInvalidUnits(t *testing.T) {
	cleanup := replaceRegistry(t)
	defer cleanup()

	if err := Register(Unit{Name: "", Files: fstest.MapFS{}}); err == nil {
		t.Fatalf("empty name should fail")
	}
	if err := Register(Unit{Name: "Mod.A"}); err == nil {
		t.Fatalf("unit without files should fail")
	}
	if err := Register(Unit{Name: "Mod.A", Files: fstest.MapFS{}}); err != nil {
		t.Fatalf("first registration should succeed: %v", err)
	}
	if err := Register(Unit{Name: "Mod.A", Files: fstest.MapFS{}}); err == nil {
		t.Fatalf("duplicate registration should fail")
	}
}

func TestLoadErrorCarriesName(t *testing.T) {
	cleanup := replaceRegistry(t)
	defer cleanup()

	_, err := RegistryLoader().Load("Missing")
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if loadErr.Name != "Missing" {
		t.Fatalf("unexpected name %q", loadErr.Name)
	}
}
