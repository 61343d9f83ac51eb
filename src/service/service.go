package service

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/mosaicnetworks/beaconsim/src/report"
	"github.com/mosaicnetworks/beaconsim/src/sim"
	"github.com/sirupsen/logrus"
)

// Service exposes the outcome of simulation runs over HTTP.
type Service struct {
	sync.Mutex

	bindAddress string
	runner      *sim.Runner
	store       report.Store
	logger      *logrus.Entry
}

// NewService ...
func NewService(bindAddress string, runner *sim.Runner, store report.Store, logger *logrus.Entry) *Service {
	service := Service{
		bindAddress: bindAddress,
		runner:      runner,
		store:       store,
		logger:      logger,
	}

	service.registerHandlers()

	return &service
}

// registerHandlers registers the API handlers with the DefaultServerMux of the
// http package. It is possible that another server in the same process is
// simultaneously using the DefaultServerMux. In which case, the handlers will
// be accessible from both servers.
func (s *Service) registerHandlers() {
	s.logger.Debug("Registering beaconsim API handlers")
	http.HandleFunc("/stats", s.makeHandler(s.GetStats))
	http.HandleFunc("/report", s.makeHandler(s.GetLastReport))
	http.HandleFunc("/report/", s.makeHandler(s.GetReport))
	http.HandleFunc("/nodes", s.makeHandler(s.GetNodes))
}

func (s *Service) makeHandler(fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Lock()
		defer s.Unlock()

		// enable CORS
		w.Header().Set("Access-Control-Allow-Origin", "*")

		fn(w, r)
	}
}

// Serve calls ListenAndServe. This is a blocking call. It is not necessary to
// call Serve when another server has already been started with the
// DefaultServerMux and the same address:port combination. Indeed, the API
// handlers have already been registered when the service was instantiated.
func (s *Service) Serve() {
	s.logger.WithField("bind_address", s.bindAddress).Debug("Serving beaconsim API")

	// Use the DefaultServerMux
	err := http.ListenAndServe(s.bindAddress, nil)
	if err != nil {
		s.logger.Error(err)
	}
}

// GetStats returns the aggregate statistics of the last run.
func (s *Service) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := s.runner.GetStats()

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(stats)
}

// GetLastReport returns the most recent run report in the store.
func (s *Service) GetLastReport(w http.ResponseWriter, r *http.Request) {
	s.returnReport(w, s.store.LastRunIndex())
}

// GetReport returns the report whose run index is given in the URL path.
func (s *Service) GetReport(w http.ResponseWriter, r *http.Request) {
	param := r.URL.Path[len("/report/"):]

	runIndex, err := strconv.Atoi(param)

	if err != nil {
		s.logger.WithError(err).Errorf("Parsing run_index parameter %s", param)

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	s.returnReport(w, runIndex)
}

// GetNodes returns the per-node records of the last run.
func (s *Service) GetNodes(w http.ResponseWriter, r *http.Request) {
	rep := s.runner.LastReport()

	if rep == nil {
		http.Error(w, "no run has completed yet", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(rep.Records)
}

func (s *Service) returnReport(w http.ResponseWriter, runIndex int) {
	rep, err := s.store.GetReport(runIndex)

	if err != nil {
		s.logger.WithError(err).Errorf("Retrieving report %d", runIndex)

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(rep)
}
