package main

import (
	"fmt"
	"image"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rtable/pkg/visualtest"
)

type renderCommandParams struct {
	pageParams
	height    int
	output    string
	compare   string
	diff      string
	tolerance int
	fuzzy     int
	maxDiff   float64
	update    bool
}

var renderParams = renderCommandParams{}

var renderCommand = &cobra.Command{
	Use:   "render <file|url>",
	Short: "Render the fitted tables of an HTML file to a PNG",
	Long: `Render the fitted tables of an HTML file to a PNG image.

The image is as wide as the viewport. Collapsed columns are drawn with
their vertical label and expand trigger.

If '--compare' names a reference PNG, the render is compared against it
and the command fails when they differ. '--diff' writes an image marking
the differing pixels in red. With '--update' the render replaces the
reference instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		return render(renderParams, args[0], cmd.OutOrStdout(), log)
	},
}

func init() {
	addPageFlags(renderCommand, &renderParams.pageParams)
	renderCommand.Flags().IntVar(&renderParams.height, "height", 600, "image height in pixels")
	renderCommand.Flags().StringVarP(&renderParams.output, "output", "o", "output.png", "output PNG file path")
	renderCommand.Flags().StringVar(&renderParams.compare, "compare", "", "reference PNG to compare the render against")
	renderCommand.Flags().StringVar(&renderParams.diff, "diff", "", "write a difference image to this path (requires --compare)")
	renderCommand.Flags().IntVar(&renderParams.tolerance, "tolerance", visualtest.DefaultOptions().Tolerance, "largest per channel difference counted as equal")
	renderCommand.Flags().IntVar(&renderParams.fuzzy, "fuzzy-radius", 0, "let pixels match within this many pixels")
	renderCommand.Flags().Float64Var(&renderParams.maxDiff, "max-different-percent", 0, "accept up to this share of differing pixels")
	renderCommand.Flags().BoolVar(&renderParams.update, "update", false, "write the render to the --compare path instead of comparing")
	RootCommand.AddCommand(renderCommand)
}

func render(params renderCommandParams, filename string, out io.Writer, log logrus.FieldLogger) error {
	if params.height <= 0 {
		return fmt.Errorf("height must be positive, got %d", params.height)
	}
	if params.diff != "" && params.compare == "" {
		return fmt.Errorf("--diff requires --compare")
	}
	if params.update && params.compare == "" {
		return fmt.Errorf("--update requires --compare")
	}
	opts, err := pageOptions(params.pageParams, filename, log)
	if err != nil {
		return err
	}

	switch {
	case params.update:
		if err := visualtest.UpdateReferenceImage(filename, params.compare, params.width, params.height, opts...); err != nil {
			return err
		}
		log.WithField("reference", params.compare).Info("Reference updated.")
		return nil

	case params.compare == "":
		img, err := visualtest.RenderFile(filename, params.width, params.height, opts...)
		if err != nil {
			return err
		}
		return saveRender(img, params.output, log)
	}

	result, err := visualtest.CheckReference(filename, params.compare, params.width, params.height, visualtest.CompareOptions{
		Tolerance:           params.tolerance,
		FuzzyRadius:         params.fuzzy,
		MaxDifferentPercent: params.maxDiff,
		Diff:                params.diff != "",
	}, opts...)
	if result != nil && result.Actual != nil {
		if err := saveRender(result.Actual, params.output, log); err != nil {
			return err
		}
	}
	if err != nil {
		return err
	}
	if result.Diff != nil {
		if err := visualtest.SavePNG(result.Diff, params.diff); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "%d of %d pixels differ (max channel difference %d)\n",
		result.DifferentPixels, result.TotalPixels, result.MaxDifference)
	if !result.Match {
		return fmt.Errorf("render differs from %s", params.compare)
	}
	return nil
}

func saveRender(img image.Image, path string, log logrus.FieldLogger) error {
	if err := visualtest.SavePNG(img, path); err != nil {
		return err
	}
	log.WithField("output", path).Info("Rendered.")
	return nil
}
