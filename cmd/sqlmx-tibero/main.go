/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

// Package main is the entry point for the sqlmx-tibero CLI.
package main

import (
	"os"

	"github.com/TiberoClient/sqlmx-tibero/cmd/sqlmx-tibero/commands"
	"github.com/fatih/color"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

func main() {
	if err := run(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return commands.NewRootCommand().Execute()
}
