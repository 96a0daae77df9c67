/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/TiberoClient/sqlmx-tibero/dialect"
	"github.com/TiberoClient/sqlmx-tibero/meta"
	"github.com/spf13/cobra"
)

// NewLimitCommand renders a paginated query.
func NewLimitCommand(opts *Options) *cobra.Command {
	var first, max int
	var count bool

	cmd := &cobra.Command{
		Use:   "limit SQL",
		Short: "Apply a row selection to a query",
		Long: `Rewrite a select statement so that it returns at most --max rows
starting at row --first. The limit arguments are printed in bind order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			query, limitArgs := opts.Dialect.LimitSQL(args[0], dialect.Selection(first, max))
			printKV(w, "sql", query)
			printKV(w, "args", fmt.Sprint(limitArgs))
			if count {
				printKV(w, "count", dialect.CountSQL(args[0]))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&first, "first", 0, "first row, 0 based")
	cmd.Flags().IntVar(&max, "max", 0, "maximum number of rows, 0 for no limit")
	cmd.Flags().BoolVar(&count, "count", false, "also print the count query")
	return cmd
}

// NewHintCommand applies optimizer hints.
func NewHintCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "hint SQL HINTS",
		Short: "Add optimizer hints to a statement",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := opts.Dialect.QueryHint(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), query)
			return nil
		},
	}
}

// NewLockCommand renders a locking clause.
func NewLockCommand(opts *Options) *cobra.Command {
	var mode, aliases string
	var timeout, first, max int

	cmd := &cobra.Command{
		Use:   "lock [SQL]",
		Short: "Render the row lock clause for a lock mode",
		Long: `Print the "for update" clause of the dialect for --mode. When SQL is
given the clause is appended to it, or the follow-on locking decision is
reported when the statement cannot be locked directly.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := dialect.ParseLockMode(mode)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			clause := opts.Dialect.ForUpdate(m, timeout, aliases)
			if len(args) == 0 {
				fmt.Fprintln(w, strings.TrimSpace(clause))
				return nil
			}
			var sel *dialect.RowSelection
			if first > 0 || max > 0 {
				sel = dialect.Selection(first, max)
			}
			if m.Pessimistic() && opts.Dialect.UseFollowOnLocking(args[0], sel) {
				printKV(w, "follow-on locking", true)
				return nil
			}
			fmt.Fprintln(w, args[0]+clause)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "upgrade", "lock mode (upgrade, upgrade_nowait, upgrade_skiplocked, pessimistic_read, pessimistic_write)")
	cmd.Flags().IntVar(&timeout, "timeout", dialect.WaitForever, "lock timeout in milliseconds, -1 waits forever, 0 no wait, -2 skip locked")
	cmd.Flags().StringVar(&aliases, "aliases", "", "comma separated columns for \"for update of\"")
	cmd.Flags().IntVar(&first, "first", 0, "first row of the row selection")
	cmd.Flags().IntVar(&max, "max", 0, "maximum rows of the row selection")
	return cmd
}

// NewTypeCommand resolves a column type.
func NewTypeCommand(opts *Options) *cobra.Command {
	var length int64
	var precision, scale int

	cmd := &cobra.Command{
		Use:   "type TYPE",
		Short: "Resolve the column type for a type name or code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := dialect.ParseTypeCode(args[0])
			if err != nil {
				return err
			}
			name, err := opts.Dialect.ColumnType(code, length, precision, scale)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printKV(w, "column", name)
			if bound := opts.Dialect.SQLType(code); bound != code {
				printKV(w, "bound as", bound)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&length, "length", dialect.DefaultLength, "column length")
	cmd.Flags().IntVar(&precision, "precision", dialect.DefaultPrecision, "numeric precision")
	cmd.Flags().IntVar(&scale, "scale", dialect.DefaultScale, "numeric scale")
	return cmd
}

// NewFnCommand renders a registered SQL function.
func NewFnCommand(opts *Options) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "fn NAME [ARG...]",
		Short: "Render a dialect SQL function",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if list {
				for _, name := range opts.Dialect.Functions.Names() {
					fmt.Fprintln(w, name)
				}
				return nil
			}
			if len(args) == 0 {
				return errors.New("function name required")
			}
			s, err := opts.Dialect.RenderFunction(args[0], args[1:]...)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, s)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list registered functions")
	return cmd
}

// NewSequenceCommand renders sequence statements.
func NewSequenceCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sequence",
		Short: "Render sequence statements",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.load(); err != nil {
				return err
			}
			if opts.Dialect.Sequences == nil {
				return fmt.Errorf("%w: %s", dialect.ErrNoSequences, opts.Dialect.Name)
			}
			return nil
		},
	}

	var start, increment int
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Render a create sequence statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq := opts.Dialect.Sequences
			query := seq.CreateSequenceString(args[0])
			if cmd.Flags().Changed("start") || cmd.Flags().Changed("increment") {
				query = seq.CreateSequenceStringWith(args[0], start, increment)
			}
			fmt.Fprintln(cmd.OutOrStdout(), query)
			return nil
		},
	}
	create.Flags().IntVar(&start, "start", 1, "initial value")
	create.Flags().IntVar(&increment, "increment", 1, "increment")

	drop := &cobra.Command{
		Use:   "drop NAME",
		Short: "Render a drop sequence statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), opts.Dialect.Sequences.DropSequenceString(args[0]))
			return nil
		},
	}

	next := &cobra.Command{
		Use:   "next NAME",
		Short: "Render the next value query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq := opts.Dialect.Sequences
			w := cmd.OutOrStdout()
			printKV(w, "select", seq.NextValString(args[0]))
			printKV(w, "expression", seq.SelectNextValString(args[0]))
			return nil
		},
	}

	cmd.AddCommand(create, drop, next)
	return cmd
}

// NewIDTableCommand renders the DDL of the temporary id table of a table.
// Columns are NAME[:TYPE], TYPE defaults to bigint.
func NewIDTableCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "idtable TABLE COLUMN[:TYPE]...",
		Short: "Render id table create and cleanup statements",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := opts.Dialect.IDTable
			if ids == nil {
				return fmt.Errorf("%w: %s", dialect.ErrNoIDTable, opts.Dialect.Name)
			}
			defs := make([]string, 0, len(args)-1)
			for _, arg := range args[1:] {
				name, typ, ok := strings.Cut(arg, ":")
				if !ok {
					typ = "bigint"
				}
				code, err := dialect.ParseTypeCode(typ)
				if err != nil {
					return err
				}
				col := &meta.Column{ColumnName: opts.Dialect.NameFunc(name), Type: code}
				def, err := col.Definition(opts.Dialect)
				if err != nil {
					return err
				}
				defs = append(defs, def)
			}
			w := cmd.OutOrStdout()
			printKV(w, "create", ids.CreateSQL(args[0], defs))
			printKV(w, "cleanup", ids.CleanupSQL(args[0]))
			return nil
		},
	}
}
