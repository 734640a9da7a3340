package lib

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// SysfsSource walks /sys/bus/usb/devices and rebuilds the physical device
// tree from the bus-port.port entry names. Interface entries (1-2:1.0) and
// root hub entries (usb1) are skipped, matching what system_profiler reports
// on the other platform.
type SysfsSource struct {
	// Root overrides the sysfs directory, for tests.
	Root string
}

var sysfsEntry = regexp.MustCompile("^([0-9]+)-([0-9.]+)$")

func (s SysfsSource) Name() string {
	return "sysfs"
}

func (s SysfsSource) Topology() ([]*DeviceNode, error) {
	root := s.Root
	if root == "" {
		root = "/sys/bus/usb/devices"
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", root, err)
	}

	nodes := make(map[string]*DeviceNode)
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !sysfsEntry.MatchString(name) {
			continue
		}
		dir := filepath.Join(root, name)
		nodes[name] = &DeviceNode{
			Name:         readAttr(dir, "product"),
			VendorID:     readAttr(dir, "idVendor"),
			ProductID:    readAttr(dir, "idProduct"),
			Version:      readAttr(dir, "bcdDevice"),
			Speed:        speedLabel(readAttr(dir, "speed")),
			LocationID:   name,
			SerialNumber: readAttr(dir, "serial"),
		}
		names = append(names, name)
	}

	// ReadDir returns entries sorted by name, so a parent (1-2) is always
	// seen before its children (1-2.1) and sibling order is stable.
	var roots []*DeviceNode
	for _, name := range names {
		if parent, ok := nodes[parentEntry(name)]; ok {
			parent.Children = append(parent.Children, nodes[name])
		} else {
			roots = append(roots, nodes[name])
		}
	}
	return roots, nil
}

// parentEntry maps 1-2.1.3 to 1-2.1. Entries directly on the bus (1-2) have
// no parent entry and become roots.
func parentEntry(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[:idx]
	}
	return ""
}

// readAttr returns the trimmed contents of a sysfs attribute file, or the
// empty string when the attribute does not exist for this device.
func readAttr(dir, attr string) string {
	raw, err := os.ReadFile(filepath.Join(dir, attr))
	if err != nil {
		return ""
	}
	return strings.Trim(string(raw), "\n \r")
}

func speedLabel(speed string) string {
	if speed == "" {
		return ""
	}
	return speed + " Mb/s"
}
