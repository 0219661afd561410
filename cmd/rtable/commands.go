package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rtable/pkg/logging"
	"rtable/pkg/page"
	"rtable/pkg/resource"
	"rtable/pkg/responsive"
)

// RootCommand is the base CLI command that all subcommands are added to.
var RootCommand = &cobra.Command{
	Use:   path.Base(os.Args[0]),
	Short: "Responsive HTML tables",
	Long: `Collapse the columns of HTML tables until they fit a viewport.

Every flag can also be set from the environment: RTABLE_<FLAG> for the
global flags and RTABLE_<COMMAND>_<FLAG> for command flags, with dashes
written as underscores.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return checkEnvironmentVariables(cmd)
	},
}

type rootCommandParams struct {
	logLevel  string
	logFormat string
}

var rootParams = rootCommandParams{}

func init() {
	RootCommand.PersistentFlags().StringVar(&rootParams.logLevel, "log-level", "info", "set log level: debug, info, warn or error")
	RootCommand.PersistentFlags().StringVar(&rootParams.logFormat, "log-format", logging.FormatText, "set log format: text, json or json-pretty")
}

func newLogger(w io.Writer) (*logrus.Logger, error) {
	return logging.New(w, rootParams.logLevel, rootParams.logFormat)
}

// pageParams are the flags shared by every command that loads a page.
type pageParams struct {
	width     int
	settings  string
	allTables bool
	noScripts bool
}

func addPageFlags(cmd *cobra.Command, p *pageParams) {
	cmd.Flags().IntVarP(&p.width, "width", "w", 800, "viewport width in pixels")
	cmd.Flags().StringVarP(&p.settings, "settings", "s", "", "YAML file with the default table settings")
	cmd.Flags().BoolVar(&p.allTables, "all-tables", false, "attach every table, not only those marked data-responsive")
	cmd.Flags().BoolVar(&p.noScripts, "no-scripts", false, "do not run the document's scripts")
}

// loadPage reads the HTML document at location, a file path or an HTTP
// URL, and loads it with the settings and flags in params. Linked
// stylesheets are resolved against location.
func loadPage(params pageParams, location string, log logrus.FieldLogger, extra ...page.Option) (*page.Page, error) {
	opts, err := pageOptions(params, location, log)
	if err != nil {
		return nil, err
	}
	fetcher := resource.NewFetcher(location)
	src, _, err := fetcher.Document()
	if err != nil {
		return nil, err
	}
	opts = append(opts, page.WithFetcher(fetcher))
	opts = append(opts, extra...)

	p, err := page.Load(string(src), float64(params.width), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return p, nil
}

// pageOptions translates params into page options.
func pageOptions(params pageParams, location string, log logrus.FieldLogger) ([]page.Option, error) {
	if params.width <= 0 {
		return nil, fmt.Errorf("width must be positive, got %d", params.width)
	}
	opts := []page.Option{page.WithLogger(log.WithField("file", location))}
	if params.settings != "" {
		s, err := readSettings(params.settings)
		if err != nil {
			return nil, err
		}
		opts = append(opts, page.WithSettings(s))
	}
	if params.allTables {
		opts = append(opts, page.WithAllTables())
	}
	if params.noScripts {
		opts = append(opts, page.WithoutScripts())
	}
	return opts, nil
}

func readSettings(filename string) (responsive.Settings, error) {
	f, err := os.Open(filename)
	if err != nil {
		return responsive.Settings{}, err
	}
	defer f.Close()
	s, err := responsive.LoadSettings(f)
	if err != nil {
		return responsive.Settings{}, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}
