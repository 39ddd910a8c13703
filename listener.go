package xlmerge

// MergeListener is notified while a merge runs. Implement it for progress
// reporting or logging; the engine itself never logs.
type MergeListener interface {
	// Cleared is called once the summary body has been emptied.
	Cleared(removed int)

	// SourceAppended is called after a source's rows were appended.
	SourceAppended(name string, rows, hidden int)

	// SourceSkipped is called for a source that contributed nothing.
	SourceSkipped(name, reason string)
}
