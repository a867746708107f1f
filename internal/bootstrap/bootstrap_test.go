package bootstrap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"app.example.yaml":           {Data: []byte("indent: 4\n")},
		"templates/a.md.tmpl":        {Data: []byte("A")},
		"templates/sub/b.md.tmpl":    {Data: []byte("B")},
		"templates/lyrics_x.md.tmpl": {Data: []byte("X")},
	}
}

func TestEnsureConfigPresent(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "nested", "app.yaml")

	created, err := EnsureConfigPresent(dst, testFS(), "app.example.yaml")
	if err != nil || !created {
		t.Fatalf("first call: created=%v err=%v", created, err)
	}
	if err := os.WriteFile(dst, []byte("indent: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	created, err = EnsureConfigPresent(dst, testFS(), "app.example.yaml")
	if err != nil || created {
		t.Fatalf("second call: created=%v err=%v", created, err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "indent: 2\n" {
		t.Errorf("existing config was overwritten: %q", got)
	}

	if _, err := EnsureConfigPresent(filepath.Join(t.TempDir(), "x.yaml"), testFS(), "missing.yaml"); err == nil {
		t.Error("missing asset should fail")
	}
}

func TestEnsureTemplatesPresent_KeepsUserFiles(t *testing.T) {
	tplDir := filepath.Join(t.TempDir(), "templates")
	if err := os.MkdirAll(tplDir, 0o755); err != nil {
		t.Fatal(err)
	}
	user := filepath.Join(tplDir, "a.md.tmpl")
	if err := os.WriteFile(user, []byte("mine"), 0o644); err != nil {
		t.Fatal(err)
	}

	srcs := []string{"templates/a.md.tmpl", "templates/lyrics_x.md.tmpl"}
	if err := EnsureTemplatesPresent(tplDir, testFS(), srcs); err != nil {
		t.Fatalf("EnsureTemplatesPresent: %v", err)
	}
	if got, _ := os.ReadFile(user); string(got) != "mine" {
		t.Errorf("user template replaced: %q", got)
	}
	if got, _ := os.ReadFile(filepath.Join(tplDir, "lyrics_x.md.tmpl")); string(got) != "X" {
		t.Errorf("missing template not copied: %q", got)
	}

	if err := EnsureTemplatesPresent(filepath.Join(t.TempDir(), "no", "templates"), testFS(), srcs); err == nil {
		t.Error("missing parent should fail")
	}
}

func TestExportDefaults(t *testing.T) {
	dest := t.TempDir()

	status, err := ExportDefaults(testFS(), "templates", dest, false)
	if err != nil {
		t.Fatalf("ExportDefaults: %v", err)
	}
	if status["templates/sub/b.md.tmpl"] != StatusWritten {
		t.Errorf("status = %v", status)
	}
	if got, _ := os.ReadFile(filepath.Join(dest, "sub", "b.md.tmpl")); string(got) != "B" {
		t.Errorf("nested file = %q", got)
	}

	if err := os.WriteFile(filepath.Join(dest, "a.md.tmpl"), []byte("edited"), 0o644); err != nil {
		t.Fatal(err)
	}
	status, err = ExportDefaults(testFS(), "templates", dest, false)
	if err != nil {
		t.Fatalf("ExportDefaults: %v", err)
	}
	if status["templates/a.md.tmpl"] != StatusSkipped || status["templates/lyrics_x.md.tmpl"] != StatusUnchanged {
		t.Errorf("status without force = %v", status)
	}

	status, err = ExportDefaults(testFS(), "templates", dest, true)
	if err != nil {
		t.Fatalf("ExportDefaults force: %v", err)
	}
	if status["templates/a.md.tmpl"] != StatusOverwritten {
		t.Errorf("status with force = %v", status)
	}
	if got, _ := os.ReadFile(filepath.Join(dest, "a.md.tmpl")); string(got) != "A" {
		t.Errorf("file not overwritten: %q", got)
	}
	entries, _ := os.ReadDir(dest)
	var backups int
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "a.md.tmpl.bak.") {
			backups++
		}
	}
	if backups != 1 {
		t.Errorf("expected one backup, got %d", backups)
	}
}
