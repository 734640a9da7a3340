package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Trimmed from a real `system_profiler SPUSBDataType -json` run with an Uno
// clone behind a hub.
const profilerSample = `{
  "SPUSBDataType" : [
    {
      "_name" : "USB31Bus",
      "host_controller" : "AppleT8103USBXHCI",
      "_items" : [
        {
          "_name" : "USB3.1 Hub",
          "vendor_id" : "0x2109  (VIA Labs, Inc.)",
          "product_id" : "0x0817",
          "bcd_device" : "3.93",
          "speed" : "Up to 5 Gb/s",
          "location_id" : "0x02100000 / 1",
          "_items" : [
            {
              "_name" : "USB2.0-Serial",
              "vendor_id" : "0x1a86",
              "product_id" : "0x7523",
              "bcd_device" : "2.64",
              "speed" : "Up to 12 Mb/s",
              "location_id" : "0x02140000 / 2"
            }
          ]
        }
      ]
    },
    {
      "_name" : "USB31Bus",
      "_items" : [
        {
          "_name" : "Arduino Uno",
          "vendor_id" : "0x2341",
          "product_id" : "0x0043",
          "serial_num" : "85736323838351F0E1E1"
        }
      ]
    }
  ]
}`

func TestDecodeProfilerReport(t *testing.T) {
	roots, err := decodeProfilerReport([]byte(profilerSample))
	require.NoError(t, err)
	require.Len(t, roots, 2, "one root per bus item, buses themselves dropped")

	hub := roots[0]
	assert.Equal(t, "USB3.1 Hub", hub.Name)
	assert.Equal(t, "0x2109  (VIA Labs, Inc.)", hub.VendorID)
	require.Len(t, hub.Children, 1)

	serial := hub.Children[0]
	assert.Equal(t, "USB2.0-Serial", serial.Name)
	assert.Equal(t, "0x1a86", serial.VendorID)
	assert.Equal(t, "2.64", serial.Version)
	assert.Equal(t, "Up to 12 Mb/s", serial.Speed)
	assert.Equal(t, "0x02140000 / 2", serial.LocationID)
	assert.Empty(t, serial.SerialNumber)

	uno := roots[1]
	assert.Equal(t, "Arduino Uno", uno.Name)
	assert.Equal(t, "85736323838351F0E1E1", uno.SerialNumber)
}

func TestDecodeProfilerReportFeedsClassifier(t *testing.T) {
	roots, err := decodeProfilerReport([]byte(profilerSample))
	require.NoError(t, err)

	found := FindCandidates(roots, DefaultChipsets())
	require.Len(t, found, 2, "the hub is not a candidate, both boards are")
	assert.Equal(t, "CH340/CH341", found[0].Manufacturer)
	assert.Equal(t, "Arduino (official)", found[1].Manufacturer)
	assert.Equal(t, "Unknown", found[0].SerialNumber)
}

func TestDecodeProfilerReportMalformed(t *testing.T) {
	_, err := decodeProfilerReport([]byte("not json at all"))
	assert.Error(t, err)
}

func TestDecodeProfilerReportEmpty(t *testing.T) {
	roots, err := decodeProfilerReport([]byte(`{"SPUSBDataType": []}`))
	require.NoError(t, err)
	assert.Empty(t, roots)
}

func TestProfilerSourceCommandFailure(t *testing.T) {
	source := ProfilerSource{Command: "definitely-not-system-profiler"}
	_, err := source.Topology()
	assert.Error(t, err, "an unreachable collaborator must surface as an error, not a panic")
}
