/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package commands

import (
	"errors"
	"fmt"

	"github.com/TiberoClient/sqlmx-tibero/sqlerr"
	"github.com/spf13/cobra"
)

// NewPropsCommand prints the effective dialect properties.
func NewPropsCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "props [KEY]",
		Short: "Print dialect properties with config overrides applied",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			props := opts.Dialect.Properties
			if len(args) == 1 {
				v, ok := props[args[0]]
				if !ok {
					return fmt.Errorf("property %s not set", args[0])
				}
				fmt.Fprintln(w, v)
				return nil
			}
			for _, k := range props.Keys() {
				printKV(w, k, props[k])
			}
			return nil
		},
	}
}

// vendorError driver error carrying a vendor code and SQLSTATE.
type vendorError struct {
	code  int
	state string
	msg   string
}

func (e *vendorError) Error() string    { return e.msg }
func (e *vendorError) ErrorCode() int   { return e.code }
func (e *vendorError) SQLState() string { return e.state }

// NewErrCodeCommand shows how a driver error is translated.
func NewErrCodeCommand(opts *Options) *cobra.Command {
	var code int
	var state string

	cmd := &cobra.Command{
		Use:   "errcode MESSAGE",
		Short: "Translate a driver error message",
		Long: `Classify a driver error the way queries do. The vendor code is read from
--code or from a TBR-nnnn prefix in MESSAGE.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cause error = errors.New(args[0])
			if code != 0 || state != "" {
				cause = &vendorError{code: code, state: state, msg: args[0]}
			}
			translated := opts.Dialect.ConvertError(cause, "", "")

			w := cmd.OutOrStdout()
			var e *sqlerr.Error
			if !errors.As(translated, &e) {
				printKV(w, "kind", "untranslated")
				return nil
			}
			printKV(w, "kind", e.Kind)
			if e.Code != 0 {
				printKV(w, "code", e.Code)
			}
			if e.SQLState != "" {
				printKV(w, "sqlstate", e.SQLState)
			}
			if e.Constraint != "" {
				printKV(w, "constraint", e.Constraint)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&code, "code", 0, "vendor error code")
	cmd.Flags().StringVar(&state, "sqlstate", "", "SQLSTATE of the error")
	return cmd
}
