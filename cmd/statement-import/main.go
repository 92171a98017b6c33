// Package main provides the entry point for the statement-import CLI.
package main

import (
	"os"

	"fjacquet/statement-import/cmd/importer"
	"fjacquet/statement-import/cmd/root"
	"fjacquet/statement-import/cmd/templates"
)

func main() {
	root.Cmd.AddCommand(importer.Cmd)
	root.Cmd.AddCommand(templates.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		root.Log.Error(err.Error())
		os.Exit(1)
	}
}
