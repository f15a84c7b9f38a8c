package domain

// Stats is the admin dashboard rollup. TotalUsers excludes administrators and
// TotalRevenue sums confirmed bookings only.
type Stats struct {
	TotalFlights  int64 `json:"totalFlights"`
	TotalBookings int64 `json:"totalBookings"`
	TotalUsers    int64 `json:"totalUsers"`
	TotalRevenue  int64 `json:"totalRevenue"`
}
