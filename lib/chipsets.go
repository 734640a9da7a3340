package lib

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ChipsetTable maps a normalized USB vendor id to the manufacturer of the
// serial bridge chipset using that id.
type ChipsetTable map[string]string

// DefaultChipsets covers the bridge chips found on official Arduino boards
// and the common clones.
func DefaultChipsets() ChipsetTable {
	return ChipsetTable{
		"2341": "Arduino (official)",
		"1a86": "CH340/CH341",
		"0403": "FTDI",
		"10c4": "Silicon Labs CP210x",
		"067b": "Prolific PL2303",
	}
}

// NormalizeVendorID reduces the vendor id strings the various topology
// sources report ("0x1A86", "1a86", "0x1a86  (QinHeng Electronics)") to the
// bare lowercase hex form used as table key.
func NormalizeVendorID(vid string) string {
	fields := strings.Fields(vid)
	if len(fields) == 0 {
		return ""
	}
	vid = strings.ToLower(fields[0])
	return strings.TrimPrefix(vid, "0x")
}

// Lookup resolves a raw vendor id to a manufacturer label, "Unknown" when the
// id is absent or not in the table.
func (t ChipsetTable) Lookup(vid string) string {
	if label, ok := t[NormalizeVendorID(vid)]; ok {
		return label
	}
	return unknown
}

// LoadOverlay merges extra vendorId: manufacturer pairs from a YAML file into
// the table. Overlay entries win on conflict.
func (t ChipsetTable) LoadOverlay(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read chipset overlay: %w", err)
	}
	overlay := make(map[string]string)
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return fmt.Errorf("parse chipset overlay %s: %w", path, err)
	}
	for vid, label := range overlay {
		t[NormalizeVendorID(vid)] = label
	}
	return nil
}
