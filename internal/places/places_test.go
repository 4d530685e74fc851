package places

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if c.Len() < 50 {
		t.Errorf("expected a sizeable embedded corpus, got %d places", c.Len())
	}
	fr, ok := c.Lookup("fr")
	if !ok {
		t.Fatalf("expected France in corpus")
	}
	if fr.Name != "France" {
		t.Errorf("Lookup(fr).Name = %q", fr.Name)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "places.toml")
	data := `
[[place]]
key = "aa"
name = "Alpha"
lat = 1
lng = 2

[[place]]
key = "BB"
name = "Beta"
lat = -3
lng = 4
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 places, got %d", c.Len())
	}
	if c.At(0).Key != "AA" {
		t.Errorf("keys should be upper-cased, got %q", c.At(0).Key)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		list    []Place
		wantErr string
	}{
		{"too small", []Place{{Key: "A", Name: "A"}}, "at least two"},
		{"duplicate", []Place{{Key: "A", Name: "A"}, {Key: "a", Name: "B"}}, "duplicate"},
		{"missing name", []Place{{Key: "A", Name: "A"}, {Key: "B"}}, "required"},
		{"bad lat", []Place{{Key: "A", Name: "A"}, {Key: "B", Name: "B", Lat: 91}}, "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.list)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("New() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestAllReturnsCopy(t *testing.T) {
	c, err := New([]Place{{Key: "A", Name: "A"}, {Key: "B", Name: "B"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	all := c.All()
	all[0].Name = "changed"
	if c.At(0).Name != "A" {
		t.Errorf("corpus mutated through All()")
	}
}
