package host

import (
	"path/filepath"
	"sort"
)

var portPatterns = []string{
	"/dev/ttyACM*",
	"/dev/ttyUSB*",
	"/dev/tty.usb*",
	"/dev/cu.usb*",
}

// Ports enumerates available stream endpoints.
func Ports() []string {
	var ports []string
	for _, pattern := range portPatterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		ports = append(ports, matches...)
	}
	sort.Strings(ports)
	return ports
}
