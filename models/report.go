// api/models/report.go
package models

// AnalyticsReport is the dashboard summary, computed on demand and never
// persisted. Field groupings mirror what the dashboard renders.
type AnalyticsReport struct {
	Overview  Overview        `json:"overview"`
	Countries ReportCountries `json:"countries"`
	Trends    ReportTrends    `json:"trends"`
	Devices   DeviceBreakdown `json:"devices"`
	Recent    RecentActivity  `json:"recent"`
	Period    string          `json:"period"`
}

type Overview struct {
	TotalVisitors        uint64  `json:"totalVisitors"`
	TotalSubmissions     uint64  `json:"totalSubmissions"`
	ConversionRate       float64 `json:"conversionRate"`
	PeriodVisitors       uint64  `json:"periodVisitors"`
	PeriodSubmissions    uint64  `json:"periodSubmissions"`
	PeriodConversionRate float64 `json:"periodConversionRate"`
}

type ReportCountries struct {
	Visitors    []CountryCount `json:"visitors"`
	Submissions []CountryCount `json:"submissions"`
}

type ReportTrends struct {
	Daily DailyTrends `json:"daily"`
}

type DailyTrends struct {
	Visitors    []DailyCount `json:"visitors"`
	Submissions []DailyCount `json:"submissions"`
}

// DailyCount is one calendar day of the trend series. Date is an ISO
// calendar date (2006-01-02) in UTC.
type DailyCount struct {
	Date  string `json:"date"`
	Count uint64 `json:"count"`
}

type DeviceBreakdown struct {
	Mobile  uint64 `json:"mobile"`
	Desktop uint64 `json:"desktop"`
	Tablet  uint64 `json:"tablet"`
}

type RecentActivity struct {
	Visitors    []Visitor    `json:"visitors"`
	Submissions []Submission `json:"submissions"`
}
