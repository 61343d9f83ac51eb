package commands

import (
	"github.com/mosaicnetworks/beaconsim/src/config"
	"github.com/spf13/cobra"
)

var (
	_config = config.NewDefaultConfig()
)

//RootCmd is the root command for beaconsim
var RootCmd = &cobra.Command{
	Use:              "beaconsim",
	Short:            "randomness beacon capacity simulator",
	TraverseChildren: true,
}
