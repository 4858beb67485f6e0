package entity

import "time"

type Workflow struct {
	WorkflowID       string
	ReadableID       string
	Title            string
	Status           string
	Step             string
	IsComplete       bool
	IsCancelled      bool
	RecordType       string
	LegalEntity      string
	Department       string
	OwnerName        string
	CounterpartyName string
	DocumentType     string
	AgreementDate    *time.Time
	ExpirationDate   *time.Time
	ContractValue    *float64
	ValueCurrency    string
	Attributes       map[string]interface{}
	CreatedAt        *time.Time
	LastUpdatedAt    *time.Time
}

// VendorLabel is the display name preference used across answers:
// counterparty, then legal entity, then title.
func (w *Workflow) VendorLabel() string {
	if w.CounterpartyName != "" {
		return w.CounterpartyName
	}
	if w.LegalEntity != "" {
		return w.LegalEntity
	}
	return w.Title
}
