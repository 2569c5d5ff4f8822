// swapsiesd runs the swap engine over a local database.
//
// The database lives in the home directory and is initialized from a
// genesis file. Every command acting on behalf of a party takes its address
// with the --as flag.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/app"
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/log"
)

const (
	flagHome     = "home"
	flagLogLevel = "log-level"
	flagAs       = "as"
)

// envReplacer maps a flag like --log-level to SWAPSIES_LOG_LEVEL.
var envReplacer = strings.NewReplacer("-", "_")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code. Errors
// are reported with their code. Messages of unclassified errors are only
// shown with the debug log level.
func run(args []string, out, errOut io.Writer) int {
	e := newEnv(errOut)
	root := e.rootCmd(out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		code, msg := errors.Info(err, e.v.GetString(flagLogLevel) == "debug")
		fmt.Fprintf(errOut, "error %d: %s\n", code, msg)
		return 1
	}
	return 0
}

// env carries the configuration shared by all commands.
type env struct {
	v      *viper.Viper
	errOut io.Writer
}

func newEnv(errOut io.Writer) *env {
	return &env{v: viper.New(), errOut: errOut}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	return newEnv(errOut).rootCmd(out)
}

func (e *env) rootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "swapsiesd",
		Short:         "Trustless two party swaps of token bundles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(e.errOut)

	flags := root.PersistentFlags()
	flags.String(flagHome, defaultHome(), "directory holding the database")
	flags.String(flagLogLevel, "info", "log level: debug, info, error or none")
	flags.String(flagAs, "", "address of the party running the command")
	if err := e.v.BindPFlags(flags); err != nil {
		panic(err)
	}
	e.v.SetEnvPrefix("SWAPSIES")
	e.v.SetEnvKeyReplacer(envReplacer)
	e.v.AutomaticEnv()

	root.AddCommand(
		initCmd(e),
		fingerprintCmd(),
		askCmd(e),
		cashCmd(e),
		nftCmd(e),
		versionCmd(),
	)
	return root
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".swapsies"
	}
	return filepath.Join(home, ".swapsies")
}

func (e *env) logger() (log.Logger, error) {
	return log.NewFilter(log.NewTMLogger(log.NewSyncWriter(e.errOut)), e.v.GetString(flagLogLevel))
}

// openApp opens the application database in the home directory. The caller
// must close it.
func (e *env) openApp() (*app.App, error) {
	logger, err := e.logger()
	if err != nil {
		return nil, err
	}
	home := e.v.GetString(flagHome)
	if err := os.MkdirAll(home, 0o700); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "home directory: %s", err)
	}
	return app.Open(home, logger)
}

// caller returns a context authenticated as the --as address.
func (e *env) caller(ctx context.Context, a *app.App) (context.Context, error) {
	raw := e.v.GetString(flagAs)
	if raw == "" {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing --as")
	}
	addr, err := swapsies.ParseAddress(raw)
	if err != nil {
		return nil, errors.Wrap(err, "--as")
	}
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "--as")
	}
	return a.As(ctx, addr), nil
}

// withApp opens the application, runs fn and closes it.
func (e *env) withApp(fn func(a *app.App) error) error {
	a, err := e.openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), swapsies.Version())
		},
	}
}

func initCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "init <genesis.json>",
		Short: "Initialize the database from a genesis file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := app.LoadGenesis(args[0])
			if err != nil {
				return err
			}
			return e.withApp(func(a *app.App) error {
				if err := a.InitGenesis(gen); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "initialized %s\n", gen.ChainID)
				return nil
			})
		},
	}
}
