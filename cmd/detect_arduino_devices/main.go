package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"

	"github.com/jessevdk/go-flags"
	"github.com/tobias-/detect-arduino-devices/lib"
)

var opts struct {
	Source      string   `short:"s" long:"source" default:"auto" choice:"auto" choice:"profiler" choice:"sysfs" choice:"gousb" description:"USB topology source"`
	SysfsRoot   string   `long:"sysfs-root" default:"/sys/bus/usb/devices" description:"Root of the sysfs USB device directory"`
	Patterns    []string `short:"p" long:"pattern" description:"Device-file glob to scan. Should be repeated. Replaces the defaults"`
	Chipsets    string   `short:"c" long:"chipsets" description:"YAML file with extra vendorId: manufacturer entries"`
	UsagePrefix string   `long:"usage-prefix" default:"/dev/cu." description:"Path prefix of the namespace preferred for interactive use"`
	Yaml        bool     `short:"y" long:"yaml" description:"Encode the result as YAML instead of the text report"`
}

func main() {
	_, err := flags.ParseArgs(&opts, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	table := lib.DefaultChipsets()
	if opts.Chipsets != "" {
		if err := table.LoadOverlay(opts.Chipsets); err != nil {
			log.Fatalf("Could not load chipset table: %s", err)
		}
	}

	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = lib.DefaultPortPatterns
	}

	if !opts.Yaml {
		fmt.Println("Scanning for Arduino devices...")
		fmt.Println()
	}
	result := lib.Detect(patterns, pickSource(), table)
	result.PortDetails = lib.DetailedPorts()

	if opts.Yaml {
		if err := lib.WriteYAML(os.Stdout, result); err != nil {
			log.Fatalf("Could not encode result: %s", err)
		}
		return
	}
	lib.WriteReport(os.Stdout, result, opts.UsagePrefix)
}

func pickSource() lib.TopologySource {
	switch opts.Source {
	case "profiler":
		return lib.ProfilerSource{}
	case "sysfs":
		return lib.SysfsSource{Root: opts.SysfsRoot}
	case "gousb":
		return lib.GousbSource{}
	}
	if _, err := exec.LookPath("system_profiler"); err == nil {
		return lib.ProfilerSource{}
	}
	if _, err := os.Stat(opts.SysfsRoot); err == nil {
		return lib.SysfsSource{Root: opts.SysfsRoot}
	}
	return lib.GousbSource{}
}
