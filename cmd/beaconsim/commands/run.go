package commands

import (
	"fmt"

	"github.com/mosaicnetworks/beaconsim/src/beaconsim"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

//NewRunCmd returns the command that runs a simulation
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Run simulation",
		PreRunE: loadConfig,
		RunE:    runSim,
	}
	AddRunFlags(cmd)
	return cmd
}

/*******************************************************************************
* RUN
*******************************************************************************/

func runSim(cmd *cobra.Command, args []string) error {
	engine := beaconsim.NewBeaconsim(_config)

	if err := engine.Init(); err != nil {
		_config.Logger().Error("Cannot initialize engine:", err)
		return err
	}

	defer engine.Shutdown()

	if err := engine.Run(); err != nil {
		_config.Logger().Error("Simulation failed:", err)
		return err
	}

	if report := engine.Runner.LastReport(); report != nil {
		fmt.Print(report.FormatSummary())
	}

	if _config.Serve {
		engine.Service.Serve()
	}

	return nil
}

/*******************************************************************************
* CONFIG
*******************************************************************************/

//AddRunFlags adds flags to the Run command
func AddRunFlags(cmd *cobra.Command) {

	cmd.Flags().String("datadir", _config.DataDir, "Top-level directory for configuration and data")
	cmd.Flags().String("log", _config.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.Flags().String("log-file", _config.LogFile, "Also write log output to this file")

	// Population
	cmd.Flags().IntP("nodes", "n", _config.Nodes, "Number of nodes in the simulated population")
	cmd.Flags().IntP("max-cycles", "c", _config.MaxCycles, "Entry generation cycles each node must complete")
	cmd.Flags().Float64("total-tokens", _config.TotalTokens, "Total token amount of the simulated network")

	// Scheduling
	cmd.Flags().Uint64P("seed", "s", _config.Seed, "Master seed of the run, 0 derives one from the clock")
	cmd.Flags().Int("max-steps", _config.MaxSteps, "Max continuations to dispatch, 0 means unbounded")
	cmd.Flags().Bool("virtual-time", _config.VirtualTime, "Dispatch work on a virtual clock instead of FIFO order")

	// Failure model
	cmd.Flags().Float64("failure-mu", _config.FailureMu, "Mu of the log-normal failure draw")
	cmd.Flags().Float64("failure-sigma", _config.FailureSigma, "Sigma of the log-normal failure draw")

	// Store
	cmd.Flags().Bool("store", _config.Store, "Use badgerDB instead of in-mem DB")
	cmd.Flags().String("db", _config.DatabaseDir, "Dabatabase directory")

	// Service
	cmd.Flags().Bool("serve", _config.Serve, "Keep the process alive and expose the HTTP API after the run")
	cmd.Flags().String("service-listen", _config.ServiceAddr, "Listen IP:Port for HTTP service")
}

func loadConfig(cmd *cobra.Command, args []string) error {

	err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	// If --datadir was explicitely set, but not --db, this will update the
	// default database dir to be inside the new datadir
	_config.SetDataDir(_config.DataDir)

	logFields := logrus.Fields{
		"DataDir":      _config.DataDir,
		"LogLevel":     _config.LogLevel,
		"Nodes":        _config.Nodes,
		"MaxCycles":    _config.MaxCycles,
		"TotalTokens":  _config.TotalTokens,
		"Seed":         _config.Seed,
		"MaxSteps":     _config.MaxSteps,
		"VirtualTime":  _config.VirtualTime,
		"FailureMu":    _config.FailureMu,
		"FailureSigma": _config.FailureSigma,
		"Store":        _config.Store,
		"Serve":        _config.Serve,
		"ServiceAddr":  _config.ServiceAddr,
	}

	if _config.Store {
		logFields["DatabaseDir"] = _config.DatabaseDir
	}

	_config.Logger().WithFields(logFields).Debug("RUN")

	return nil
}

// Bind all flags and read the config into viper
func bindFlagsLoadViper(cmd *cobra.Command) error {
	// Register flags with viper. Include flags from this command and all other
	// persistent flags from the parent
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// first unmarshal to read from CLI flags
	if err := viper.Unmarshal(_config); err != nil {
		return err
	}

	// look for config file in [datadir]/beaconsim.toml (.json, .yaml also work)
	viper.SetConfigName("beaconsim")     // name of config file (without extension)
	viper.AddConfigPath(_config.DataDir) // search root directory

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		_config.Logger().Debugf("Using config file: %s", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		_config.Logger().Debugf("No config file found in: %s", _config.DataDir)
	} else {
		return err
	}

	// second unmarshal to read from config file
	return viper.Unmarshal(_config)
}
