package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rtable/pkg/dom"
)

type fitCommandParams struct {
	pageParams
	tablesOnly bool
}

var fitParams = fitCommandParams{}

var fitCommand = &cobra.Command{
	Use:   "fit <file|url>",
	Short: "Fit the responsive tables of an HTML file and print the result",
	Long: `Fit the responsive tables of an HTML file to a viewport width.

The 'fit' command loads the file, attaches a controller to every table
marked data-responsive (or every table with --all-tables), runs the
document's scripts and prints the document with collapsed columns marked
up as the controllers left them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		return fit(fitParams, args[0], cmd.OutOrStdout(), log)
	},
}

func init() {
	addPageFlags(fitCommand, &fitParams.pageParams)
	fitCommand.Flags().BoolVar(&fitParams.tablesOnly, "tables-only", false, "print only the attached tables")
	RootCommand.AddCommand(fitCommand)
}

func fit(params fitCommandParams, filename string, out io.Writer, log logrus.FieldLogger) error {
	p, err := loadPage(params.pageParams, filename, log)
	if err != nil {
		return err
	}
	for i, t := range p.Tables() {
		log.WithFields(logrus.Fields{
			"table":     i,
			"collapsed": t.Collapsed(),
			"columns":   len(t.Columns()),
		}).Debug("Table fitted.")
	}

	if !params.tablesOnly {
		_, err = fmt.Fprintln(out, p.HTML())
		return err
	}
	for _, t := range p.Tables() {
		if _, err := fmt.Fprintln(out, dom.SerializeOuter(t.Node())); err != nil {
			return err
		}
	}
	return nil
}
