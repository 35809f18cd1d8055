package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestWritePatchResultInPlace(t *testing.T) {
	dir := t.TempDir()
	targetPath := filepath.Join(dir, "target.bin")
	target := []byte{0xaa, 0xbb}
	patched := []byte{0x11, 0xbb}
	if err := os.WriteFile(targetPath, target, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &PatchConfig{MainConfig: &MainConfig{}, Backup: ".bak"}
	if err := writePatchResult(cfg, nil, targetPath, target, patched); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(targetPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, patched) {
		t.Errorf("target = % x, want % x", got, patched)
	}
	backup, err := os.ReadFile(targetPath + ".bak")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(backup, target) {
		t.Errorf("backup = % x, want pre-patch % x", backup, target)
	}
}

func TestWritePatchResultRedirected(t *testing.T) {
	dir := t.TempDir()
	targetPath := filepath.Join(dir, "target.bin")
	target := []byte{0xaa, 0xbb}
	patched := []byte{0x11, 0xbb}
	if err := os.WriteFile(targetPath, target, 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	cfg := &PatchConfig{MainConfig: &MainConfig{Out: filepath.Join(dir, "out.bin")}}
	if err := writePatchResult(cfg, &out, targetPath, target, patched); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(out.Bytes(), patched) {
		t.Errorf("redirected output = % x, want % x", out.Bytes(), patched)
	}
	got, err := os.ReadFile(targetPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, target) {
		t.Error("target changed despite -o redirect")
	}
}
