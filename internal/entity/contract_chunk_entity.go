package entity

type ContractChunk struct {
	ReadableID string
	ChunkID    int
	WorkflowID string
	StartChar  int
	EndChar    int
	ChunkText  string
}

// ScoredContractChunk is a chunk with its vector-search similarity (1 -
// cosine distance, higher is closer).
type ScoredContractChunk struct {
	ContractChunk
	Similarity float64
}

// ChunkSnippet is a trimmed text hit from keyword or proximity search.
type ChunkSnippet struct {
	ReadableID string
	ChunkID    int
	Snippet    string
}
