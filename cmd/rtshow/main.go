// Command rtshow shows the responsive tables of an HTML file in a window
// and refits them whenever the window is resized.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"rtable/pkg/logging"
	"rtable/pkg/page"
	"rtable/pkg/resource"
	"rtable/pkg/responsive"
)

type params struct {
	width     int
	height    int
	settings  string
	allTables bool
	watch     bool
	logLevel  string
}

func main() {
	var p params
	pflag.IntVarP(&p.width, "width", "w", 800, "initial window width")
	pflag.IntVarP(&p.height, "height", "h", 600, "initial window height")
	pflag.StringVarP(&p.settings, "settings", "s", "", "YAML file with the default table settings")
	pflag.BoolVar(&p.allTables, "all-tables", false, "attach every table, not only those marked data-responsive")
	pflag.BoolVar(&p.watch, "watch", false, "reload the file when it changes")
	pflag.StringVar(&p.logLevel, "log-level", "info", "set log level: debug, info, warn or error")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rtshow [flags] <file|url>\n\nFlags:\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(1)
	}
	if err := run(p, pflag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(p params, filename string) error {
	log, err := logging.New(os.Stderr, p.logLevel, logging.FormatText)
	if err != nil {
		return err
	}
	defaults := responsive.DefaultSettings()
	if p.settings != "" {
		f, err := os.Open(p.settings)
		if err != nil {
			return err
		}
		defaults, err = responsive.LoadSettings(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", p.settings, err)
		}
	}
	fetcher := resource.NewFetcher(filename)
	opts := []page.Option{page.WithSettings(defaults), page.WithLogger(log), page.WithFetcher(fetcher)}
	if p.allTables {
		opts = append(opts, page.WithAllTables())
	}
	load := func(width float64) (*page.Page, error) {
		src, _, err := fetcher.Document()
		if err != nil {
			return nil, err
		}
		return page.Load(string(src), width, opts...)
	}

	pg, err := load(float64(p.width))
	if err != nil {
		return err
	}

	a := app.New()
	w := a.NewWindow("rtshow: " + filepath.Base(filename))
	w.Resize(fyne.NewSize(float32(p.width), float32(p.height)))

	status := widget.NewLabel("")
	view := newTableView(pg)
	view.OnChanged = func(pg *page.Page) { status.SetText(summary(pg)) }
	w.SetContent(container.NewBorder(nil, status, nil, nil, view))

	if p.watch && !resource.IsNetworkURL(filename) {
		watcher, err := watch(filename, log, func() {
			fyne.Do(func() {
				next, err := load(float64(view.Size().Width))
				if err != nil {
					log.WithError(err).Warn("Reload failed.")
					return
				}
				view.SetPage(next)
			})
		})
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	w.ShowAndRun()
	return nil
}

// summary describes the collapsed columns of every table on pg.
func summary(pg *page.Page) string {
	s := fmt.Sprintf("viewport %.0fpx", pg.Viewport())
	for i, t := range pg.Tables() {
		s += fmt.Sprintf("  |  table %d: %d of %d collapsed", i, len(t.Collapsed()), len(t.Columns()))
	}
	return s
}

// watch calls reload from the watcher goroutine whenever filename is
// written or recreated.
func watch(filename string, log logrus.FieldLogger, reload func()) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(filename)); err != nil {
		watcher.Close()
		return nil, err
	}
	abs, _ := filepath.Abs(filename)
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if p, _ := filepath.Abs(ev.Name); p != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				log.WithField("event", ev.Op.String()).Debug("File changed.")
				reload()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("Watch failed.")
			}
		}
	}()
	return watcher, nil
}
