package report

import (
	"strconv"

	cm "github.com/mosaicnetworks/beaconsim/src/common"
)

// InmemStore implements the Store interface with in-memory maps. It is the
// default report store: run histories live as long as the process.
type InmemStore struct {
	reports      map[int]*Report
	lastRunIndex int
}

// NewInmemStore is a factory method for an InmemStore.
func NewInmemStore() *InmemStore {
	return &InmemStore{
		reports:      make(map[int]*Report),
		lastRunIndex: -1,
	}
}

// LastRunIndex implements the Store interface.
func (s *InmemStore) LastRunIndex() int {
	return s.lastRunIndex
}

// GetReport implements the Store interface.
func (s *InmemStore) GetReport(index int) (*Report, error) {
	report, ok := s.reports[index]
	if !ok {
		return nil, cm.NewStoreErr("ReportStore", cm.KeyNotFound, strconv.Itoa(index))
	}
	return report, nil
}

// SetReport implements the Store interface.
func (s *InmemStore) SetReport(report *Report) error {
	s.lastRunIndex++
	report.Index = s.lastRunIndex
	s.reports[report.Index] = report
	return nil
}

// Close implements the Store interface.
func (s *InmemStore) Close() error {
	return nil
}

// StorePath implements the Store interface.
func (s *InmemStore) StorePath() string {
	return ""
}
