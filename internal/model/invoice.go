package model

import "time"

// Invoice is the flat description handed to the document renderer.
type Invoice struct {
	Number        string        `json:"number"`
	Issuer        string        `json:"issuer"`
	ClientName    string        `json:"client_name"`
	ClientAddress string        `json:"client_address"`
	IssueDate     time.Time     `json:"issue_date"`
	DueDate       time.Time     `json:"due_date"`
	Lines         []InvoiceLine `json:"lines"`
	Currency      string        `json:"currency"`
	Notes         string        `json:"notes,omitempty"`
	Terms         string        `json:"terms,omitempty"`
}

// InvoiceLine is a single row of the invoice table. The amount is not stored;
// renderers compute it as Quantity × Rate. Hours marks a labor line whose
// quantity is worked time.
type InvoiceLine struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Hours       bool    `json:"hours,omitempty"`
}
