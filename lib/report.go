package lib

import (
	"fmt"
	"io"
	"log"
	"strings"

	"gopkg.in/yaml.v3"
)

// ScanResult aggregates one detection pass over both evidence sources.
// TotalDevices counts the matched device files, which is what the report's
// found/not-found decision keys on.
type ScanResult struct {
	Source       string                `yaml:"source,omitempty"`
	SerialPorts  []string              `yaml:"serialPorts"`
	PortDetails  map[string]PortDetail `yaml:"portDetails,omitempty"`
	Devices      []Candidate           `yaml:"usbDevices"`
	TotalDevices int                   `yaml:"totalDevices"`
}

// Detect runs the device-file scan and the topology classification and
// merges both into one result. The two sources are independent: a failing
// topology source is logged and contributes zero candidates, the device-file
// results still stand.
func Detect(patterns []string, source TopologySource, table ChipsetTable) ScanResult {
	ports := ScanSerialPorts(patterns)
	result := ScanResult{
		SerialPorts:  ports,
		TotalDevices: len(ports),
	}
	if source == nil {
		return result
	}
	result.Source = source.Name()
	roots, err := source.Topology()
	if err != nil {
		log.Printf("Could not query USB topology via %s: %s", source.Name(), err)
		return result
	}
	result.Devices = FindCandidates(roots, table)
	return result
}

// UsagePorts filters for the call-out namespace preferred for interactive
// use. The prefix is data so hosts with another convention can pass theirs.
func UsagePorts(ports []string, prefix string) []string {
	var usable []string
	for _, port := range ports {
		if strings.HasPrefix(port, prefix) {
			usable = append(usable, port)
		}
	}
	return usable
}

// WriteReport renders the result as a human-readable scan report. Pure
// formatting; all decisions were made while building the result.
func WriteReport(w io.Writer, result ScanResult, usagePrefix string) {
	banner := strings.Repeat("=", 60)
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "ARDUINO DEVICE DETECTION RESULTS")
	fmt.Fprintln(w, banner)

	if result.TotalDevices == 0 {
		fmt.Fprintln(w, "No Arduino devices found.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tips:")
		fmt.Fprintln(w, "  - Make sure your Arduino is connected via USB")
		fmt.Fprintln(w, "  - Check that the USB cable supports data transfer")
		fmt.Fprintln(w, "  - Try a different USB port")
		return
	}

	fmt.Fprintf(w, "Found %d potential Arduino device(s)\n", result.TotalDevices)

	fmt.Fprintf(w, "\nSerial ports (%d):\n", len(result.SerialPorts))
	for idx, port := range result.SerialPorts {
		fmt.Fprintf(w, "  %d. %s\n", idx+1, port)
		if detail, ok := result.PortDetails[port]; ok {
			fmt.Fprintf(w, "     USB ID     %s\n", detail.VidPid)
			if detail.SerialNumber != "" {
				fmt.Fprintf(w, "     USB serial %s\n", detail.SerialNumber)
			}
		}
	}

	if len(result.Devices) > 0 {
		fmt.Fprintf(w, "\nUSB device details (%d):\n", len(result.Devices))
		for idx, device := range result.Devices {
			fmt.Fprintf(w, "\n  Device %d:\n", idx+1)
			fmt.Fprintf(w, "    Name: %s\n", device.Name)
			fmt.Fprintf(w, "    Manufacturer: %s\n", device.Manufacturer)
			fmt.Fprintf(w, "    Vendor ID: %s\n", device.VendorID)
			fmt.Fprintf(w, "    Product ID: %s\n", device.ProductID)
			fmt.Fprintf(w, "    Version: %s\n", device.Version)
			fmt.Fprintf(w, "    Speed: %s\n", device.Speed)
			fmt.Fprintf(w, "    Location: %s\n", device.LocationID)
			if device.SerialNumber != unknown {
				fmt.Fprintf(w, "    Serial Number: %s\n", device.SerialNumber)
			}
		}
	}

	if usage := UsagePorts(result.SerialPorts, usagePrefix); len(usage) > 0 {
		fmt.Fprintln(w, "\nUsage in Arduino IDE (Tools > Port):")
		for _, port := range usage {
			fmt.Fprintf(w, "  - %s\n", port)
		}
	}
}

// WriteYAML encodes the result for machine consumption.
func WriteYAML(w io.Writer, result ScanResult) error {
	return yaml.NewEncoder(w).Encode(result)
}
