package lib

import "strings"

const unknown = "Unknown"

// DeviceNode is one entry in the host USB topology. The tree is built by a
// TopologySource, lives for a single scan and is never mutated afterwards.
type DeviceNode struct {
	Name         string        `yaml:"name,omitempty"`
	VendorID     string        `yaml:"vendorId,omitempty"`
	ProductID    string        `yaml:"productId,omitempty"`
	Version      string        `yaml:"version,omitempty"`
	Speed        string        `yaml:"speed,omitempty"`
	LocationID   string        `yaml:"locationId,omitempty"`
	SerialNumber string        `yaml:"serialNumber,omitempty"`
	Children     []*DeviceNode `yaml:"children,omitempty"`
}

// Candidate is the flattened record for a node that passed the filter.
// Absent attributes are reported as "Unknown".
type Candidate struct {
	Name         string `yaml:"name"`
	Manufacturer string `yaml:"manufacturer"`
	VendorID     string `yaml:"vendorId"`
	ProductID    string `yaml:"productId"`
	Version      string `yaml:"version"`
	Speed        string `yaml:"speed"`
	LocationID   string `yaml:"locationId"`
	SerialNumber string `yaml:"serialNumber"`
}

var nameHints = []string{"arduino", "serial", "ch340", "ftdi", "usb2.0-serial"}

// Classify decides whether a device looks like an Arduino-compatible board
// and resolves its manufacturer in one step. A vendor id in the chipset table
// is enough on its own; otherwise the display name is searched for the usual
// marketing strings. The signals are OR'ed on purpose: clone boards ship with
// wildly inconsistent ids and names, and requiring both would miss most of
// them.
func Classify(vendorID, name string, table ChipsetTable) (bool, string) {
	if label, ok := table[NormalizeVendorID(vendorID)]; ok {
		return true, label
	}
	lower := strings.ToLower(name)
	for _, hint := range nameHints {
		if strings.Contains(lower, hint) {
			return true, unknown
		}
	}
	return false, unknown
}

// FindCandidates walks the topology depth-first, parents before children,
// siblings in the order the source presented them, and flattens every
// matching node. Nodes failing the filter contribute nothing but their
// descendants are still visited.
func FindCandidates(roots []*DeviceNode, table ChipsetTable) []Candidate {
	var found []Candidate
	for _, node := range roots {
		found = appendCandidates(found, node, table)
	}
	return found
}

func appendCandidates(found []Candidate, node *DeviceNode, table ChipsetTable) []Candidate {
	if node == nil {
		return found
	}
	if ok, manufacturer := Classify(node.VendorID, node.Name, table); ok {
		found = append(found, Candidate{
			Name:         orUnknown(node.Name),
			Manufacturer: manufacturer,
			VendorID:     orUnknown(node.VendorID),
			ProductID:    orUnknown(node.ProductID),
			Version:      orUnknown(node.Version),
			Speed:        orUnknown(node.Speed),
			LocationID:   orUnknown(node.LocationID),
			SerialNumber: orUnknown(node.SerialNumber),
		})
	}
	for _, child := range node.Children {
		found = appendCandidates(found, child, table)
	}
	return found
}

func orUnknown(value string) string {
	if value == "" {
		return unknown
	}
	return value
}
