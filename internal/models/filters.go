package models

// Sort keys
const (
	SortRecent       = "recent"
	SortDueSoonest   = "due-soonest"
	SortDueLatest    = "due-latest"
	SortProgressHigh = "progress-high"
	SortProgressLow  = "progress-low"
	SortNameAZ       = "name-az"
)

// Status filter values
const (
	StatusAll       = "all"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Due-date filter values
const (
	DueAll     = "all"
	DueOverdue = "overdue"
	Due7Days   = "7days"
	Due30Days  = "30days"
	DueNone    = "none"
)

// Progress filter values
const (
	ProgressAll     = "all"
	ProgressZero    = "0"
	ProgressPartial = "1-99"
	ProgressDone    = "100"
)

// JobFilters is the last-used list configuration
type JobFilters struct {
	Sort     string `json:"sort"`
	Status   string `json:"status"`
	Due      string `json:"due"`
	Progress string `json:"progress"`
}

// DefaultFilters returns the filter set used when nothing is stored
func DefaultFilters() JobFilters {
	return JobFilters{
		Sort:     SortRecent,
		Status:   StatusAll,
		Due:      DueAll,
		Progress: ProgressAll,
	}
}
