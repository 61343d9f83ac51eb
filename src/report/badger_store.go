package report

import (
	"fmt"

	"github.com/dgraph-io/badger"
	cm "github.com/mosaicnetworks/beaconsim/src/common"
)

const reportPrefix = "report"

// BadgerStore is a write-through wrapper around an InmemStore that persists
// reports to a Badger key-value database, so run histories survive the
// process that produced them.
type BadgerStore struct {
	inmemStore    *InmemStore
	db            *badger.DB
	path          string
	needBootstrap bool
}

//NewBadgerStore opens the database at path, creating it if needed, and
//bootstraps the in-memory view from the reports it already contains
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.SyncWrites = false
	opts.Logger = nil
	handle, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	store := &BadgerStore{
		inmemStore: NewInmemStore(),
		db:         handle,
		path:       path,
	}

	if err := store.dbBootstrap(); err != nil {
		store.db.Close()
		return nil, err
	}

	return store, nil
}

//NeedBootstrap reports whether the database held reports from previous runs
func (s *BadgerStore) NeedBootstrap() bool {
	return s.needBootstrap
}

//==============================================================================
//Implement the Store interface

// LastRunIndex implements the Store interface.
func (s *BadgerStore) LastRunIndex() int {
	return s.inmemStore.LastRunIndex()
}

// GetReport implements the Store interface.
func (s *BadgerStore) GetReport(index int) (*Report, error) {
	report, err := s.inmemStore.GetReport(index)
	if err != nil {
		report, err = s.dbGetReport(index)
	}
	return report, mapError(err, "Report", string(reportKey(index)))
}

// SetReport implements the Store interface.
func (s *BadgerStore) SetReport(report *Report) error {
	if err := s.inmemStore.SetReport(report); err != nil {
		return err
	}
	return s.dbSetReport(report)
}

// Close implements the Store interface.
func (s *BadgerStore) Close() error {
	if err := s.inmemStore.Close(); err != nil {
		return err
	}
	return s.db.Close()
}

// StorePath implements the Store interface.
func (s *BadgerStore) StorePath() string {
	return s.path
}

//==============================================================================
//DB Methods

func reportKey(index int) []byte {
	return []byte(fmt.Sprintf("%s_%09d", reportPrefix, index))
}

// dbBootstrap replays the persisted run history, in index order, into the
// in-memory view.
func (s *BadgerStore) dbBootstrap() error {
	index := 0
	for {
		report, err := s.dbGetReport(index)
		if err != nil {
			if isDBKeyNotFound(err) {
				break
			}
			return err
		}

		if err := s.inmemStore.SetReport(report); err != nil {
			return err
		}

		index++
	}

	s.needBootstrap = index > 0

	return nil
}

func (s *BadgerStore) dbGetReport(index int) (*Report, error) {
	var reportBytes []byte
	key := reportKey(index)
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		reportBytes, err = item.ValueCopy(nil)
		return err
	})

	if err != nil {
		return nil, err
	}

	report := new(Report)
	if err := report.Unmarshal(reportBytes); err != nil {
		return nil, err
	}

	return report, nil
}

func (s *BadgerStore) dbSetReport(report *Report) error {
	tx := s.db.NewTransaction(true)
	defer tx.Discard()

	key := reportKey(report.Index)
	val, err := report.Marshal()
	if err != nil {
		return err
	}

	//insert [report_index] => [report bytes]
	if err := tx.Set(key, val); err != nil {
		return err
	}

	return tx.Commit()
}

//++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++

func isDBKeyNotFound(err error) bool {
	return err == badger.ErrKeyNotFound
}

func mapError(err error, name, key string) error {
	if err != nil {
		if isDBKeyNotFound(err) {
			return cm.NewStoreErr(name, cm.KeyNotFound, key)
		}
	}
	return err
}
