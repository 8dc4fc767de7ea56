//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "prodpick-e2e")
	if err != nil {
		fmt.Printf("Failed to create build directory: %v\n", err)
		os.Exit(1)
	}
	binPath = filepath.Join(dir, "prodpick_e2e")

	// Build the binary from the main module
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Printf("Failed to build test binary: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}
