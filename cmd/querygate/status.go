package main

import (
	"fmt"
	"strconv"

	cli "github.com/canonical/lxd/shared/cmd"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/querygate/querygate/client"
)

type cmdStatus struct {
	common *CmdControl
}

func (c *cmdStatus) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the version and database the daemon is serving",
		RunE:  c.run,
	}

	return cmd
}

func (c *cmdStatus) run(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return cmd.Help()
	}

	err := validFormat(c.common.FlagFormat)
	if err != nil {
		return err
	}

	qc, err := client.New(c.common.FlagEndpoint)
	if err != nil {
		return err
	}

	server, err := qc.GetServer(cmd.Context())
	if err != nil {
		return err
	}

	switch c.common.FlagFormat {
	case formatJSON:
		return printValue(cmd.OutOrStdout(), server)
	case formatYAML:
		data, err := yaml.Marshal(server)
		if err != nil {
			return fmt.Errorf("Failed to encode status as yaml: %w", err)
		}

		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	header := []string{"VERSION", "ENDPOINT", "DRIVER", "HOST", "PORT", "DATABASE"}
	data := [][]string{{
		server.Version,
		server.Endpoint,
		server.Database.Driver,
		server.Database.Host,
		strconv.Itoa(server.Database.Port),
		server.Database.Name,
	}}

	return cli.RenderTable(c.common.FlagFormat, header, data, server)
}
