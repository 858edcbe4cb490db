package payroll

const (
	StatusDraft    = "draft"
	StatusApproved = "approved"
	StatusPaid     = "paid"
)

// MonthFormat is the YYYY-MM period key every record is stored under.
const MonthFormat = "2006-01"
