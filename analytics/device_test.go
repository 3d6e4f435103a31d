package analytics

import "testing"

func TestClassifyDevice(t *testing.T) {
	cases := []struct {
		ua   string
		want DeviceClass
	}{
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", DeviceMobile},
		{"Mozilla/5.0 (Linux; Android 14; SM-S918B)", DeviceMobile},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) Mobile Safari", DeviceMobile},
		{"Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X)", DeviceTablet},
		{"Mozilla/5.0 (Linux; U; Tablet PC)", DeviceTablet},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36", DeviceDesktop},
		{"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)", DeviceDesktop},
		{"", DeviceDesktop},
		{"curl/8.4.0", DeviceDesktop},
		// The mobile check precedes the tablet check.
		{"Mozilla/5.0 (Linux; Android 14; Tablet)", DeviceMobile},
		{"IPHONE", DeviceMobile},
		{"iPad Mobile", DeviceMobile},
	}

	for _, tc := range cases {
		if got := ClassifyDevice(tc.ua); got != tc.want {
			t.Errorf("ClassifyDevice(%q) = %s, want %s", tc.ua, got, tc.want)
		}
	}
}
