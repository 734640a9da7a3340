package lib

import (
	"encoding/json"
	"fmt"
	"os/exec"
)

// TopologySource supplies the host USB topology, or fails. A failed source is
// logged by the caller and treated as an empty tree, never as a fatal error.
type TopologySource interface {
	Name() string
	Topology() ([]*DeviceNode, error)
}

// ProfilerSource shells out to system_profiler, the macOS USB inventory
// command, and decodes its JSON device tree.
type ProfilerSource struct {
	// Command overrides the binary name, for tests.
	Command string
}

type profilerItem struct {
	Name       string         `json:"_name"`
	VendorID   string         `json:"vendor_id"`
	ProductID  string         `json:"product_id"`
	BcdDevice  string         `json:"bcd_device"`
	Speed      string         `json:"speed"`
	LocationID string         `json:"location_id"`
	SerialNum  string         `json:"serial_num"`
	Items      []profilerItem `json:"_items"`
}

type profilerReport struct {
	Buses []profilerItem `json:"SPUSBDataType"`
}

func (s ProfilerSource) Name() string {
	return "system_profiler"
}

func (s ProfilerSource) Topology() ([]*DeviceNode, error) {
	command := s.Command
	if command == "" {
		command = "system_profiler"
	}
	out, err := exec.Command(command, "SPUSBDataType", "-json").Output()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", command, err)
	}
	return decodeProfilerReport(out)
}

func decodeProfilerReport(data []byte) ([]*DeviceNode, error) {
	var report profilerReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode system_profiler output: %w", err)
	}
	var roots []*DeviceNode
	for _, bus := range report.Buses {
		// The bus entry itself is the controller, not an attached
		// device; its items are the tree we care about.
		for _, item := range bus.Items {
			roots = append(roots, item.toNode())
		}
	}
	return roots, nil
}

func (item profilerItem) toNode() *DeviceNode {
	node := &DeviceNode{
		Name:         item.Name,
		VendorID:     item.VendorID,
		ProductID:    item.ProductID,
		Version:      item.BcdDevice,
		Speed:        item.Speed,
		LocationID:   item.LocationID,
		SerialNumber: item.SerialNum,
	}
	for _, child := range item.Items {
		node.Children = append(node.Children, child.toNode())
	}
	return node
}
