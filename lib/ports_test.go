package lib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestScanSerialPorts(t *testing.T) {
	dev := t.TempDir()
	touch(t, filepath.Join(dev, "cu.usbserial-1410"))
	touch(t, filepath.Join(dev, "cu.usbmodem14101"))
	touch(t, filepath.Join(dev, "tty.usbserial-1410"))
	touch(t, filepath.Join(dev, "cu.Bluetooth-Incoming-Port"))

	patterns := []string{
		filepath.Join(dev, "cu.usbserial*"),
		filepath.Join(dev, "cu.usbmodem*"),
		filepath.Join(dev, "tty.usbserial*"),
		// overlapping pattern, matches must still be unique
		filepath.Join(dev, "cu.usb*"),
	}

	ports := ScanSerialPorts(patterns)
	assert.Equal(t, []string{
		filepath.Join(dev, "cu.usbmodem14101"),
		filepath.Join(dev, "cu.usbserial-1410"),
		filepath.Join(dev, "tty.usbserial-1410"),
	}, ports, "deduplicated and sorted ascending")

	assert.Equal(t, ports, ScanSerialPorts(patterns), "idempotent on an unchanged filesystem")
}

func TestScanSerialPortsNoMatches(t *testing.T) {
	ports := ScanSerialPorts([]string{filepath.Join(t.TempDir(), "cu.usbserial*")})
	assert.Empty(t, ports, "a pattern matching nothing is not an error")
	assert.NotNil(t, ports)
}

func TestScanSerialPortsBadPattern(t *testing.T) {
	dev := t.TempDir()
	touch(t, filepath.Join(dev, "cu.usbserial-A50285BI"))

	ports := ScanSerialPorts([]string{
		"[-", // malformed glob, skipped
		filepath.Join(dev, "cu.usbserial*"),
	})
	assert.Equal(t, []string{filepath.Join(dev, "cu.usbserial-A50285BI")}, ports)
}
