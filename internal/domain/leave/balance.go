package leave

// ComputeRemaining returns total - used - pending. The result is not clamped:
// a negative value means the balance is overdrawn.
func ComputeRemaining(total, used, pending int) int {
	return total - used - pending
}

// BalanceSummary is the aggregate "Total Leaves" view across leave types.
type BalanceSummary struct {
	Total            int     `json:"total"`
	Used             int     `json:"used"`
	Pending          int     `json:"pending"`
	Remaining        int     `json:"remaining"`
	UsedPercent      float64 `json:"usedPercent"`
	PendingPercent   float64 `json:"pendingPercent"`
	RemainingPercent float64 `json:"remainingPercent"`
}

// Aggregate sums balances across leave types and derives percentage-of-total.
// Percentages are 0 when the total is 0.
func Aggregate(balances []LeaveBalance) BalanceSummary {
	var s BalanceSummary
	for _, b := range balances {
		s.Total += b.Total
		s.Used += b.Used
		s.Pending += b.Pending
		s.Remaining += b.Remaining()
	}
	s.UsedPercent = percentOf(s.Used, s.Total)
	s.PendingPercent = percentOf(s.Pending, s.Total)
	s.RemainingPercent = percentOf(s.Remaining, s.Total)
	return s
}

func percentOf(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
