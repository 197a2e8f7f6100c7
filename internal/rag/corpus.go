// Package rag answers questions from a vector-indexed rule corpus.
package rag

// CorpusID identifies a knowledge corpus. Each corpus maps to one Qdrant
// collection.
type CorpusID string

const (
	// CorpusProtected holds the rule texts of the protected areas,
	// organized by protection level section.
	CorpusProtected CorpusID = "protected_areas_rules"
	// CorpusGeneral holds the general environmental rules that apply
	// outside any protected zone.
	CorpusGeneral CorpusID = "general_rules"
)

func (c CorpusID) String() string { return string(c) }
