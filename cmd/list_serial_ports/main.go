package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/tobias-/detect-arduino-devices/lib"
	"gopkg.in/yaml.v3"
)

var opts struct {
	Patterns []string `short:"p" long:"pattern" description:"Device-file glob to scan. Should be repeated. Replaces the defaults"`
	Yaml     bool     `short:"y" long:"yaml" description:"Encode the port list as YAML"`
}

type portListing struct {
	Path         string `yaml:"path"`
	VidPid       string `yaml:"vidPid,omitempty"`
	SerialNumber string `yaml:"serialNumber,omitempty"`
}

func main() {
	_, err := flags.ParseArgs(&opts, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = lib.DefaultPortPatterns
	}
	ports := lib.ScanSerialPorts(patterns)
	details := lib.DetailedPorts()

	listings := make([]portListing, len(ports))
	for idx, port := range ports {
		listings[idx] = portListing{Path: port}
		if detail, ok := details[port]; ok {
			listings[idx].VidPid = detail.VidPid
			listings[idx].SerialNumber = detail.SerialNumber
		}
	}

	if opts.Yaml {
		if err := yaml.NewEncoder(os.Stdout).Encode(listings); err != nil {
			log.Fatalf("%s", err)
		}
		return
	}
	if len(listings) == 0 {
		fmt.Println("No serial ports found")
		return
	}
	for _, listing := range listings {
		fmt.Printf("Port: %s\n", listing.Path)
		if listing.VidPid != "" {
			fmt.Printf("   USB ID     %s\n", listing.VidPid)
		}
		if listing.SerialNumber != "" {
			fmt.Printf("   USB serial %s\n", listing.SerialNumber)
		}
	}
}
