package report

// Store is an interface for run-report stores.
type Store interface {
	// LastRunIndex returns the index of the most recent report, or -1 when
	// the store is empty.
	LastRunIndex() int

	// GetReport returns the report with the given run index.
	GetReport(index int) (*Report, error)

	// SetReport appends a report to the run history, stamping its Index.
	SetReport(*Report) error

	// Close closes the underlying database.
	Close() error

	// StorePath returns the filepath of the underlying database.
	StorePath() string
}
