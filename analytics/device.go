// api/analytics/device.go
package analytics

import "strings"

type DeviceClass string

const (
	DeviceMobile  DeviceClass = "Mobile"
	DeviceDesktop DeviceClass = "Desktop"
	DeviceTablet  DeviceClass = "Tablet"
)

// ClassifyDevice maps a raw user-agent string to a coarse device class.
// Deliberately not a full UA parser: case-insensitive substring checks, with
// the mobile check taking precedence over tablet ("Android ... Tablet" is
// Mobile). No signal at all means Desktop.
func ClassifyDevice(userAgent string) DeviceClass {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "mobile"), strings.Contains(ua, "android"), strings.Contains(ua, "iphone"):
		return DeviceMobile
	case strings.Contains(ua, "tablet"), strings.Contains(ua, "ipad"):
		return DeviceTablet
	default:
		return DeviceDesktop
	}
}
