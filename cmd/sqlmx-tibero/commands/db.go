/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TiberoClient/sqlmx-tibero"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var errNoDSN = errors.New("no data source, set dsn in the config file, SQLMX_DSN or DATABASE_URL")

// NewDBCommand creates the parent db command.
func NewDBCommand(opts *Options) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "db",
		Short: "Run dialect statements against a live database",
	}
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "statement timeout")

	withDB := func(fn func(ctx context.Context, cmd *cobra.Command, db *sqlmx.DB, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			if opts.Config.DSN == "" {
				return errNoDSN
			}
			db, err := opts.Open(opts.Dialect, opts.Config.DSN)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					logrus.WithError(err).Warn("close database")
				}
			}()
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return fn(ctx, cmd, db, args)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "now",
		Short: "Select the database current timestamp",
		Args:  cobra.NoArgs,
		RunE: withDB(func(ctx context.Context, cmd *cobra.Command, db *sqlmx.DB, _ []string) error {
			ts, err := db.CurrentTimestamp(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ts.Format(time.RFC3339Nano))
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Select the current schema",
		Args:  cobra.NoArgs,
		RunE: withDB(func(ctx context.Context, cmd *cobra.Command, db *sqlmx.DB, _ []string) error {
			s, err := db.CurrentSchema(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "guid",
		Short: "Let the database generate a GUID",
		Args:  cobra.NoArgs,
		RunE: withDB(func(ctx context.Context, cmd *cobra.Command, db *sqlmx.DB, _ []string) error {
			s, err := db.SelectGUID(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "sequences",
		Short: "List sequences visible to the current user",
		Args:  cobra.NoArgs,
		RunE: withDB(func(ctx context.Context, cmd *cobra.Command, db *sqlmx.DB, _ []string) error {
			infos, err := db.Sequences(ctx)
			if err != nil {
				return err
			}
			rows := [][]string{{"SCHEMA", "NAME", "START", "MIN", "MAX", "INCREMENT"}}
			for _, s := range infos {
				rows = append(rows, []string{s.Schema, s.Name,
					optional(s.StartValue), optional(s.MinValue), optional(s.MaxValue), optional(s.IncrementBy)})
			}
			return printTable(cmd.OutOrStdout(), rows)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "nextval NAME",
		Short: "Fetch the next value of a sequence",
		Args:  cobra.ExactArgs(1),
		RunE: withDB(func(ctx context.Context, cmd *cobra.Command, db *sqlmx.DB, args []string) error {
			v, err := db.NextSequenceValue(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		}),
	})

	var start, increment int
	create := &cobra.Command{
		Use:   "create-sequence NAME",
		Short: "Create a sequence",
		Args:  cobra.ExactArgs(1),
		RunE: withDB(func(ctx context.Context, cmd *cobra.Command, db *sqlmx.DB, args []string) error {
			if err := db.CreateSequence(ctx, args[0], start, increment); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "sequence %s created\n", args[0])
			return nil
		}),
	}
	create.Flags().IntVar(&start, "start", 1, "initial value")
	create.Flags().IntVar(&increment, "increment", 1, "increment")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "drop-sequence NAME",
		Short: "Drop a sequence",
		Args:  cobra.ExactArgs(1),
		RunE: withDB(func(ctx context.Context, cmd *cobra.Command, db *sqlmx.DB, args []string) error {
			if err := db.DropSequence(ctx, args[0]); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "sequence %s dropped\n", args[0])
			return nil
		}),
	})
	return cmd
}

func optional(v *int64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}
