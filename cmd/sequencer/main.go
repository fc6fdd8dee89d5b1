// Command sequencer runs the pre-block sequencer and talks to a running one.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sequencer/config"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loader loads the configuration once flags are parsed.
type loader func() (config.Config, error)

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "sequencer",
		Short:         "Time-boxed transaction sequencer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.String("rpc-addr", "", "gRPC address to serve on or connect to")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("data-dir", "", "storage directory")
	_ = v.BindPFlag("rpc_addr", flags.Lookup("rpc-addr"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("storage.dir", flags.Lookup("data-dir"))

	load := func() (config.Config, error) {
		return config.Load(v, cfgFile)
	}

	root.AddCommand(
		newServeCmd(load),
		newVerifyCmd(load),
		newHeadCmd(load),
		newRangeCmd(load),
		newSubmitCmd(load),
		newTailCmd(load),
	)
	return root
}
