package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mosaicnetworks/beaconsim/src/common"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default filenames.
const (
	// DefaultBadgerFile is the default name of the folder containing the
	// Badger database of run reports
	DefaultBadgerFile = "badger_db"
)

// Default configuration values.
const (
	DefaultLogLevel     = "debug"
	DefaultNodes        = 100
	DefaultMaxCycles    = 5
	DefaultTotalTokens  = 100.0
	DefaultSeed         = 0
	DefaultMaxSteps     = 0
	DefaultVirtualTime  = false
	DefaultFailureMu    = 1.0
	DefaultFailureSigma = 0.0
	DefaultStore        = false
	DefaultServe        = false
	DefaultServiceAddr  = "127.0.0.1:8000"
)

// Config contains all the configuration properties of a simulation run.
type Config struct {
	// DataDir is the top-level directory containing beaconsim configuration
	// and data
	DataDir string `mapstructure:"datadir"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// LogFile, when set, routes a copy of every log entry to a file on top
	// of the standard output.
	LogFile string `mapstructure:"log-file"`

	// Nodes is the number of nodes in the simulated population.
	Nodes int `mapstructure:"nodes"`

	// MaxCycles is the lifecycle budget of each node: a node is Done once
	// its cycle count exceeds it.
	MaxCycles int `mapstructure:"max-cycles"`

	// TotalTokens is the total token amount of the simulated network. It is
	// carried into run reports for staking-economics analysis but not yet
	// consumed by the lifecycle.
	TotalTokens float64 `mapstructure:"total-tokens"`

	// Seed is the master seed behind every random draw of a run. Zero means
	// derive a seed from the wall clock; the derived value is logged so the
	// run can be reproduced.
	Seed uint64 `mapstructure:"seed"`

	// MaxSteps bounds the number of continuations the scheduler may execute,
	// guarding runs against unbounded retry loops in the lifecycle. Zero
	// means no bound.
	MaxSteps int `mapstructure:"max-steps"`

	// VirtualTime dispatches work in order of sampled durations on a virtual
	// clock, instead of strict registration order.
	VirtualTime bool `mapstructure:"virtual-time"`

	// FailureMu and FailureSigma parameterise the log-normal draw behind the
	// transient-failure check performed at every state entry. The defaults
	// make every check fail; widen sigma to let nodes make progress.
	FailureMu    float64 `mapstructure:"failure-mu"`
	FailureSigma float64 `mapstructure:"failure-sigma"`

	// Store activates persistent storage of run reports.
	Store bool `mapstructure:"store"`

	// DatabaseDir is the directory containing database files.
	DatabaseDir string `mapstructure:"db"`

	// Serve keeps the process alive after the run to expose the HTTP API.
	Serve bool `mapstructure:"serve"`

	// ServiceAddr is the address:port of the HTTP service. The API handlers
	// are registered with the DefaultServerMux of the http package. It is
	// possible that another server in the same process is simultaneously
	// using the DefaultServerMux. In which case, the handlers will be
	// accessible from both servers.
	ServiceAddr string `mapstructure:"service-listen"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	config := &Config{
		DataDir:      DefaultDataDir(),
		LogLevel:     DefaultLogLevel,
		Nodes:        DefaultNodes,
		MaxCycles:    DefaultMaxCycles,
		TotalTokens:  DefaultTotalTokens,
		Seed:         DefaultSeed,
		MaxSteps:     DefaultMaxSteps,
		VirtualTime:  DefaultVirtualTime,
		FailureMu:    DefaultFailureMu,
		FailureSigma: DefaultFailureSigma,
		Store:        DefaultStore,
		DatabaseDir:  DefaultDatabaseDir(),
		Serve:        DefaultServe,
		ServiceAddr:  DefaultServiceAddr,
	}

	return config
}

// NewTestConfig returns a config object with default values and a special
// logger for debugging tests.
func NewTestConfig(t testing.TB) *Config {
	config := NewDefaultConfig()
	config.logger = common.NewTestLogger(t)
	return config
}

// Validate fails fast on configuration values the simulation must not start
// with.
func (c *Config) Validate() error {
	if c.Nodes <= 0 {
		return fmt.Errorf("config: nodes must be positive, not %d", c.Nodes)
	}
	if c.MaxCycles < 1 {
		return fmt.Errorf("config: max-cycles must be at least 1, not %d", c.MaxCycles)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("config: max-steps must not be negative, not %d", c.MaxSteps)
	}
	if c.FailureSigma < 0 {
		return fmt.Errorf("config: failure-sigma must not be negative, not %f", c.FailureSigma)
	}
	return nil
}

// SetDataDir sets the top-level beaconsim directory, and updates the database
// directory if it is currently set to the default value. If the database
// directory is not currently the default, it means the user has explicitely
// set it to something else, so avoid changing it again here.
func (c *Config) SetDataDir(dataDir string) {
	c.DataDir = dataDir
	if c.DatabaseDir == DefaultDatabaseDir() {
		c.DatabaseDir = filepath.Join(dataDir, DefaultBadgerFile)
	}
}

// Logger returns a formatted logrus Entry, with prefix set to "beaconsim".
// When LogFile is set, entries are also mirrored to that file.
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)

		if c.LogFile != "" {
			if file, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666); err != nil {
				c.logger.WithError(err).Error("Failed to open log file, using default stderr")
			} else {
				file.Close()
				pathMap := lfshook.PathMap{
					logrus.DebugLevel: c.LogFile,
					logrus.InfoLevel:  c.LogFile,
					logrus.WarnLevel:  c.LogFile,
					logrus.ErrorLevel: c.LogFile,
					logrus.FatalLevel: c.LogFile,
					logrus.PanicLevel: c.LogFile,
				}
				c.logger.Hooks.Add(lfshook.NewHook(
					pathMap,
					&logrus.TextFormatter{},
				))
			}
		}
	}
	return c.logger.WithField("prefix", "beaconsim")
}

// DefaultDatabaseDir returns the default path for the badger database files.
func DefaultDatabaseDir() string {
	return filepath.Join(DefaultDataDir(), DefaultBadgerFile)
}

// DefaultDataDir return the default directory name for top-level beaconsim
// config based on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".BeaconSim")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "BeaconSim")
		} else {
			return filepath.Join(home, ".beaconsim")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a Logrus log level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}
