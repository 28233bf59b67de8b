package middleware

// Headers set on detailed report downloads.
const (
	HeaderReportCount      = "X-Report-Count"
	HeaderReportGrandTotal = "X-Report-Grand-Total"
)
