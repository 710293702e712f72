package model

// DayStats is one day of the weekly attendance and revenue chart.
type DayStats struct {
	Day     string  `json:"day"`  // Mon, Tue, ...
	Date    string  `json:"date"` // YYYY-MM-DD
	Morning int     `json:"morning"`
	Evening int     `json:"evening"`
	Total   int     `json:"total"`
	Revenue float64 `json:"revenue"`
}

// DashboardStats summarizes the gym for the admin landing page.
type DashboardStats struct {
	TotalMembers      int     `json:"totalMembers"`
	ActiveMembers     int     `json:"activeMembers"`
	InactiveMembers   int     `json:"inactiveMembers"`
	TodayAttendance   int     `json:"todayAttendance"`
	MorningAttendance int     `json:"morningAttendance"`
	EveningAttendance int     `json:"eveningAttendance"`
	TotalPayments     int     `json:"totalPayments"`
	PaidPayments      int     `json:"paidPayments"`
	PendingPayments   int     `json:"pendingPayments"`
	OverduePayments   int     `json:"overduePayments"`
	TotalRevenue      float64 `json:"totalRevenue"`
	NewContacts       int     `json:"newContacts"`
}
