package lib

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"go.bug.st/serial/enumerator"
)

// DefaultPortPatterns lists the device-file globs USB serial adapters show up
// under, the call-out (cu) namespace first, the call-in (tty) namespace after.
var DefaultPortPatterns = []string{
	"/dev/cu.usbserial*",
	"/dev/cu.usbmodem*",
	"/dev/cu.wchusbserial*",
	"/dev/tty.usbserial*",
	"/dev/tty.usbmodem*",
	"/dev/tty.wchusbserial*",
}

// ScanSerialPorts expands every pattern, drops duplicates and returns the
// paths sorted ascending. A pattern that matches nothing is not an error.
func ScanSerialPorts(patterns []string) []string {
	seen := make(map[string]bool)
	ports := []string{}
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			log.Printf("Skipping bad pattern %s: %s", pattern, err)
			continue
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				ports = append(ports, match)
			}
		}
	}
	sort.Strings(ports)
	return ports
}

// PortDetail carries the USB identity the OS attaches to a serial port.
type PortDetail struct {
	VidPid       string `yaml:"vidPid"`
	SerialNumber string `yaml:"serialNumber,omitempty"`
}

// DetailedPorts maps port path to USB identity, as far as the OS serial
// enumerator can tell. Any failure just means no detail.
func DetailedPorts() map[string]PortDetail {
	details := make(map[string]PortDetail)
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		log.Printf("Could not enumerate serial ports: %s", err)
		return details
	}
	for _, port := range ports {
		if !port.IsUSB {
			continue
		}
		details[port.Name] = PortDetail{
			VidPid:       fmt.Sprintf("%s:%s", strings.ToLower(port.VID), strings.ToLower(port.PID)),
			SerialNumber: port.SerialNumber,
		}
	}
	return details
}
