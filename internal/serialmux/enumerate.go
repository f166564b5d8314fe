package serialmux

import (
	"fmt"

	"go.bug.st/serial/enumerator"
)

// PortInfo identifies one serial device present on the system.
type PortInfo struct {
	Device      string
	Description string
}

// EnumeratePorts lists the serial devices currently attached, with enough
// description to pick the right -port value. It backs the diagnostic printed
// when the configured port cannot be opened.
func EnumeratePorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerate serial ports: %w", err)
	}

	infos := make([]PortInfo, 0, len(details))
	for _, d := range details {
		info := PortInfo{Device: d.Name, Description: d.Product}
		if info.Description == "" {
			info.Description = "serial device"
		}
		if d.IsUSB {
			info.Description = fmt.Sprintf("%s (USB %s:%s)", info.Description, d.VID, d.PID)
		}
		infos = append(infos, info)
	}
	return infos, nil
}
