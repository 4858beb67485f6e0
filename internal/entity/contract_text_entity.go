package entity

// ContractText is the full extracted text of one contract document, used
// when a document has no chunked representation.
type ContractText struct {
	ReadableID string
	WorkflowID string
	Title      string
	Text       string
	TokenCount int
}
