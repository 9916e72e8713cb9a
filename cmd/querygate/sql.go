package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/querygate/querygate/client"
)

type cmdSQL struct {
	common *CmdControl

	flagRows bool
}

func (c *cmdSQL) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "querygate <query>",
		Short: "Run a SQL statement through the querygate endpoint",
		Long: `Run a SQL statement through the querygate endpoint.

Only statements starting with SELECT, INSERT, UPDATE or DELETE are accepted by the daemon.`,
		Example: `  querygate "SELECT * FROM employees"
    querygate --format table "SELECT id, name FROM employees"
    querygate --endpoint https://example.com/prod/execute-sql "UPDATE employees SET name = 'B' WHERE id = 1"`,
		Args: cobra.ArbitraryArgs,
		RunE: c.run,
	}

	cmd.Flags().BoolVar(&c.flagRows, "rows", false, "Request rows as JSON objects instead of a rendered listing")

	return cmd
}

func (c *cmdSQL) run(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return cmd.Help()
	}

	err := validFormat(c.common.FlagFormat)
	if err != nil {
		return err
	}

	query := args[0]
	out := cmd.OutOrStdout()

	// Tables need the row objects rather than the rendered listing.
	rows := c.flagRows || isTableFormat(c.common.FlagFormat)

	fmt.Fprintf(out, "Applying query '%s' ...\n", query)

	qc, err := client.New(c.common.FlagEndpoint)
	if err != nil {
		return err
	}

	resp, err := qc.ExecuteSQL(cmd.Context(), query, rows)
	if err != nil {
		fmt.Fprintf(out, "An error occurred: %v\n", err)
		return errReported
	}

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(out, "Failed to execute query. Status code: %d\n", resp.StatusCode)
		fmt.Fprintln(out, resp.Body)
		return errReported
	}

	fmt.Fprint(out, "--\nResponse:\n")

	return printBody(out, c.common.FlagFormat, resp.Body)
}
