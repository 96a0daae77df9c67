/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

// Package commands implements the sqlmx-tibero CLI commands.
package commands

import (
	"fmt"
	"io"

	"github.com/TiberoClient/sqlmx-tibero"
	"github.com/TiberoClient/sqlmx-tibero/dialect"
	"github.com/TiberoClient/sqlmx-tibero/internal/config"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Options state shared by all commands, filled before a command runs.
type Options struct {
	ConfigFile string
	Verbose    bool

	viper   *viper.Viper
	Config  *config.Config
	Dialect *dialect.Dialect
	// Open connects to the configured database, used by the db commands
	Open func(d *dialect.Dialect, dsn string) (*sqlmx.DB, error)
}

var (
	keyColor   = color.New(color.FgCyan)
	valueColor = color.New(color.FgGreen)
)

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&Options{Open: sqlmx.OpenWith})
}

func newRootCommand(opts *Options) *cobra.Command {
	opts.viper = viper.New()

	cmd := &cobra.Command{
		Use:           "sqlmx-tibero",
		Short:         "Render Tibero dialect SQL",
		Long:          "Render pagination, locking, sequence, type and function SQL for Tibero and the other sqlmx dialects",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigFile, "config", "", "config file (default .sqlmx-tibero.yaml in . or $HOME)")
	flags.String("dialect", "tibero", "dialect name")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	_ = opts.viper.BindPFlag("dialect", flags.Lookup("dialect"))

	cmd.AddCommand(NewDialectsCommand(opts))
	cmd.AddCommand(NewLimitCommand(opts))
	cmd.AddCommand(NewHintCommand(opts))
	cmd.AddCommand(NewSequenceCommand(opts))
	cmd.AddCommand(NewTypeCommand(opts))
	cmd.AddCommand(NewFnCommand(opts))
	cmd.AddCommand(NewLockCommand(opts))
	cmd.AddCommand(NewIDTableCommand(opts))
	cmd.AddCommand(NewPropsCommand(opts))
	cmd.AddCommand(NewErrCodeCommand(opts))
	cmd.AddCommand(NewDBCommand(opts))
	cmd.AddCommand(NewVersionCommand())
	return cmd
}

func (o *Options) load() error {
	cfg, err := config.Load(o.viper, o.ConfigFile)
	if err != nil {
		return err
	}
	if err = cfg.ConfigureLogging(o.Verbose); err != nil {
		return err
	}
	d, err := cfg.Resolve(sqlmx.LookupDialect)
	if err != nil {
		return err
	}
	o.Config = cfg
	o.Dialect = d
	return nil
}

func printKV(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "%s: %s\n", keyColor.Sprint(key), valueColor.Sprint(value))
}

// printTable renders rows with pterm, the first row is the header
func printTable(w io.Writer, rows [][]string) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(rows)).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
