package lib

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/gousb"
	"github.com/google/gousb/usbid"
)

// GousbSource enumerates device descriptors through libusb and rebuilds the
// tree from bus number and hub port path. Used when neither system_profiler
// nor sysfs is available.
type GousbSource struct{}

func (GousbSource) Name() string {
	return "libusb"
}

func (GousbSource) Topology() ([]*DeviceNode, error) {
	ctx := gousb.NewContext()
	defer func(ctx *gousb.Context) {
		_ = ctx.Close()
	}(ctx)

	var descriptors []*gousb.DeviceDesc
	// The filter never admits a device, so nothing is opened; only the
	// descriptors are collected.
	if _, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		descriptors = append(descriptors, desc)
		return false
	}); err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	return descriptorTree(descriptors), nil
}

// descriptorTree nests descriptors by hub port path. libusb reports a flat
// list; a device whose path extends another device's path by one port hangs
// off that device.
func descriptorTree(descriptors []*gousb.DeviceDesc) []*DeviceNode {
	sort.Slice(descriptors, func(i, j int) bool {
		return pathKey(descriptors[i]) < pathKey(descriptors[j])
	})

	nodes := make(map[string]*DeviceNode)
	var roots []*DeviceNode
	for _, desc := range descriptors {
		node := &DeviceNode{
			Name:       usbid.Describe(desc),
			VendorID:   desc.Vendor.String(),
			ProductID:  desc.Product.String(),
			Version:    desc.Device.String(),
			Speed:      desc.Speed.String(),
			LocationID: fmt.Sprintf("%03d.%03d", desc.Bus, desc.Address),
		}
		nodes[pathKey(desc)] = node
		if parent, ok := nodes[parentKey(desc)]; ok {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}
	return roots
}

func pathKey(desc *gousb.DeviceDesc) string {
	parts := make([]string, 0, len(desc.Path)+1)
	parts = append(parts, strconv.Itoa(desc.Bus))
	for _, port := range desc.Path {
		parts = append(parts, strconv.Itoa(port))
	}
	return strings.Join(parts, ".")
}

func parentKey(desc *gousb.DeviceDesc) string {
	key := pathKey(desc)
	if idx := strings.LastIndex(key, "."); idx >= 0 {
		return key[:idx]
	}
	return ""
}
