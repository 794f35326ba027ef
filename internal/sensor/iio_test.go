package sensor

import (
	"os"
	"path/filepath"
	"testing"
)

func writeAttr(t *testing.T, dir, name, value string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(value), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestIIOReaderRead(t *testing.T) {
	dir := t.TempDir()
	writeAttr(t, dir, "in_temp_input", "24500\n")
	writeAttr(t, dir, "in_humidityrelative_input", "55000\n")

	r := NewIIOReader(dir)
	got, err := r.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TemperatureC != 24.5 {
		t.Errorf("temperature: got %v, want 24.5", got.TemperatureC)
	}
	if got.HumidityPct != 55.0 {
		t.Errorf("humidity: got %v, want 55.0", got.HumidityPct)
	}
	if !got.Valid() {
		t.Error("expected valid reading")
	}
}

func TestIIOReaderNegativeTemperature(t *testing.T) {
	dir := t.TempDir()
	writeAttr(t, dir, "in_temp_input", "-5200")
	writeAttr(t, dir, "in_humidityrelative_input", "81000")

	r := NewIIOReader(dir)
	got, err := r.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TemperatureC != -5.2 {
		t.Errorf("temperature: got %v, want -5.2", got.TemperatureC)
	}
}

func TestIIOReaderMissingAttribute(t *testing.T) {
	dir := t.TempDir()
	writeAttr(t, dir, "in_temp_input", "24500")
	// humidity attribute missing

	r := NewIIOReader(dir)
	if _, err := r.Read(); err == nil {
		t.Error("expected error when an attribute is missing")
	}
}

func TestIIOReaderGarbageAttribute(t *testing.T) {
	dir := t.TempDir()
	writeAttr(t, dir, "in_temp_input", "not-a-number")
	writeAttr(t, dir, "in_humidityrelative_input", "55000")

	r := NewIIOReader(dir)
	if _, err := r.Read(); err == nil {
		t.Error("expected error for unparseable attribute")
	}
}

func TestIIOReaderDefaultDir(t *testing.T) {
	r := NewIIOReader("")
	if r.dir != DefaultIIODir {
		t.Errorf("dir: got %q, want %q", r.dir, DefaultIIODir)
	}
}
