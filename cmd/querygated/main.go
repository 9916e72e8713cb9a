// Package querygated provides the daemon serving the SQL endpoint.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/canonical/lxd/shared/logger"
	"github.com/spf13/cobra"

	"github.com/querygate/querygate/internal/daemon"
	"github.com/querygate/querygate/internal/sys"
	"github.com/querygate/querygate/internal/version"
)

type cmdGlobal struct {
	flagHelp    bool
	flagVersion bool

	flagLogDebug   bool
	flagLogVerbose bool

	flagConfig string
}

func (c *cmdGlobal) run(cmd *cobra.Command, args []string) error {
	return logger.InitLogger("", "", c.flagLogVerbose, c.flagLogDebug, nil)
}

type cmdDaemon struct {
	global *cmdGlobal

	flagListen string
}

func (c *cmdDaemon) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "querygated",
		Short:   "Daemon serving SQL statements against a configured database",
		Version: version.Version(),
		Args:    cobra.NoArgs,
	}

	cmd.RunE = c.run
	cmd.PersistentPreRunE = c.global.run
	cmd.Flags().StringVarP(&c.flagListen, "listen", "l", "", "Address to listen on, overriding the configured address"+"``")

	return cmd
}

func (c *cmdDaemon) run(cmd *cobra.Command, args []string) error {
	d := daemon.NewDaemon(version.Version())

	err := d.Init(cmd.Context(), c.global.flagConfig, c.flagListen)
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	sig := <-sigCh

	return d.Stop(sig)
}

func main() {
	daemonCmd := cmdDaemon{global: &cmdGlobal{}}
	app := daemonCmd.command()
	app.SilenceUsage = true
	app.CompletionOptions = cobra.CompletionOptions{DisableDefaultCmd: true}

	app.PersistentFlags().BoolVarP(&daemonCmd.global.flagHelp, "help", "h", false, "Print help")
	app.PersistentFlags().BoolVar(&daemonCmd.global.flagVersion, "version", false, "Print version number")
	app.PersistentFlags().BoolVarP(&daemonCmd.global.flagLogDebug, "debug", "d", false, "Show all debug messages")
	app.PersistentFlags().BoolVarP(&daemonCmd.global.flagLogVerbose, "verbose", "v", false, "Show all information messages")
	configPath := os.Getenv(sys.ConfigPath)
	if configPath == "" {
		configPath = sys.DefaultConfigPath
	}

	app.PersistentFlags().StringVarP(&daemonCmd.global.flagConfig, "config", "c", configPath, "Path to the daemon configuration"+"``")

	app.SetVersionTemplate("{{.Version}}\n")

	var cmdConfig = cmdConfig{global: daemonCmd.global}
	app.AddCommand(cmdConfig.command())

	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
