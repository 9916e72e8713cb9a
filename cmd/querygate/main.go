// Package querygate provides the client tool for the SQL endpoint.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/canonical/lxd/shared/logger"
	"github.com/spf13/cobra"

	"github.com/querygate/querygate/internal/sys"
	"github.com/querygate/querygate/internal/version"
)

// defaultEndpoint is used when neither --endpoint nor QUERYGATE_ENDPOINT is set.
const defaultEndpoint = "http://127.0.0.1:8443/execute-sql"

// errReported is returned by commands that already printed their failure.
var errReported = errors.New("Failure already reported")

// CmdControl has functions that are common to the querygate commands.
type CmdControl struct {
	FlagHelp       bool
	FlagVersion    bool
	FlagLogDebug   bool
	FlagLogVerbose bool
	FlagEndpoint   string
	FlagFormat     string
}

func (c *CmdControl) initLogger(cmd *cobra.Command, args []string) error {
	return logger.InitLogger("", "", c.FlagLogVerbose, c.FlagLogDebug, nil)
}

func main() {
	// common flags.
	commonCmd := CmdControl{}

	endpoint := os.Getenv(sys.Endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	var cmdSQL = cmdSQL{common: &commonCmd}
	app := cmdSQL.command()
	app.Version = version.Version()
	app.SilenceUsage = true
	app.SilenceErrors = true
	app.CompletionOptions = cobra.CompletionOptions{DisableDefaultCmd: true}
	app.PersistentPreRunE = commonCmd.initLogger

	app.PersistentFlags().StringVarP(&commonCmd.FlagEndpoint, "endpoint", "e", endpoint, "URL of the SQL endpoint, defaults to $"+sys.Endpoint+"``")
	app.PersistentFlags().StringVarP(&commonCmd.FlagFormat, "format", "f", formatJSON, "Format (json|yaml|table|csv|compact)"+"``")
	app.PersistentFlags().BoolVarP(&commonCmd.FlagHelp, "help", "h", false, "Print help")
	app.PersistentFlags().BoolVar(&commonCmd.FlagVersion, "version", false, "Print version number")
	app.PersistentFlags().BoolVarP(&commonCmd.FlagLogDebug, "debug", "d", false, "Show all debug messages")
	app.PersistentFlags().BoolVarP(&commonCmd.FlagLogVerbose, "verbose", "v", false, "Show all information messages")

	app.SetVersionTemplate("{{.Version}}\n")

	var cmdStatus = cmdStatus{common: &commonCmd}
	app.AddCommand(cmdStatus.command())

	app.InitDefaultHelpCmd()

	err := app.Execute()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		os.Exit(1)
	}
}
