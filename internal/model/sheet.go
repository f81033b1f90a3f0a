package model

// Sheet holds the raw field values of the working calculation, exactly as
// entered. Numeric fields stay strings so that unparsable input can fall back
// to zero when evaluated.
type Sheet struct {
	WorkerName    string        `json:"worker_name"`
	ClientName    string        `json:"client_name"`
	ClientAddress string        `json:"client_address"`
	HourlyRate    string        `json:"hourly_rate"`
	StartTime     string        `json:"start_time"`
	EndTime       string        `json:"end_time"`
	DurationText  string        `json:"duration"`
	Expenses      []ExpenseItem `json:"expenses"`
}

// ExpenseItem is one expense line of a sheet.
type ExpenseItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}
