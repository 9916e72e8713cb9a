package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/querygate/querygate/internal/config"
)

type cmdConfig struct {
	global *cmdGlobal
}

func (c *cmdConfig) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the daemon configuration",
		RunE:  c.run,
	}

	var cmdInit = cmdConfigInit{global: c.global}
	cmd.AddCommand(cmdInit.command())

	return cmd
}

func (c *cmdConfig) run(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

type cmdConfigInit struct {
	global *cmdGlobal

	flagForce bool
}

func (c *cmdConfigInit) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [<path>]",
		Short: "Write a configuration file holding the defaults",
		Example: `  querygated config init /etc/querygate/daemon.yaml
    querygated --config ./daemon.yaml config init`,
		RunE: c.run,
	}

	cmd.Flags().BoolVarP(&c.flagForce, "force", "f", false, "Overwrite an existing configuration file")

	return cmd
}

func (c *cmdConfigInit) run(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return cmd.Help()
	}

	path := c.global.flagConfig
	if len(args) == 1 {
		path = args[0]
	}

	if !c.flagForce {
		_, err := os.Stat(path)
		if err == nil {
			return fmt.Errorf("Configuration file %q already exists", path)
		}
	}

	err := config.NewDaemonConfig(path).Write()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %q. Set secret_store.secret_id and the database section before starting the daemon.\n", path)

	return nil
}
