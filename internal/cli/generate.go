package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labelsheet/pkg/fonts"
	"github.com/matzehuels/labelsheet/pkg/pipeline"
	"github.com/matzehuels/labelsheet/pkg/sink"
	"github.com/matzehuels/labelsheet/pkg/storage"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	header      string
	start       int
	count       int
	preset      string
	presetsFile string
	formats     string // comma-separated
	output      string // file, base path, directory or s3:// URL
	resize      bool
	native      bool
	title       string
	cutGuides   bool
	page        int
	scale       float64
	workers     int
	maxCount    int
	noCache     bool
	redisURL    string
	interactive bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{
		header: pipeline.DefaultHeader,
		start:  pipeline.DefaultStart,
		count:  pipeline.DefaultCount,
		preset: pipeline.DefaultPreset,
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a sheet of numbered barcode labels",
		Long: `Generate renders one Code-128 label per number from --start and lays
them out on label sheets.

Examples:
  labelsheet generate -n 300
  labelsheet generate -H "CITY LIBRARY" -s 5001 -n 90 -f pdf,json -o sheets/
  labelsheet generate -p avery5160-compact -o s3://labels/2026/batch.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resize *bool
			switch {
			case cmd.Flags().Changed("resize-barcode"):
				resize = &opts.resize
			case cmd.Flags().Changed("native-barcode"):
				off := !opts.native
				resize = &off
			}
			return c.runGenerate(cmd.Context(), &opts, resize)
		},
	}

	cmd.Flags().StringVarP(&opts.header, "header", "H", opts.header, "text printed at the top of every label")
	cmd.Flags().IntVarP(&opts.start, "start", "s", opts.start, "first barcode number")
	cmd.Flags().IntVarP(&opts.count, "count", "n", opts.count, "number of labels")
	cmd.Flags().StringVarP(&opts.preset, "preset", "p", opts.preset, "label stock preset")
	cmd.Flags().StringVar(&opts.presetsFile, "presets-file", "", "TOML file with additional presets")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatPDF, "output format(s): pdf, png, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, base path, directory or s3://bucket/key")
	cmd.Flags().BoolVar(&opts.resize, "resize-barcode", false, "stretch barcodes to a fixed box")
	cmd.Flags().BoolVar(&opts.native, "native-barcode", false, "paste barcodes at native size")
	cmd.Flags().StringVar(&opts.title, "title", "", "PDF document title (default: header)")
	cmd.Flags().BoolVar(&opts.cutGuides, "cut-guides", false, "draw hairline label outlines in the PDF")
	cmd.Flags().IntVar(&opts.page, "page", 1, "page rendered for png output")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "png pixels per point")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "parallel label renderers (default: one per CPU)")
	cmd.Flags().IntVar(&opts.maxCount, "max-count", pipeline.DefaultMaxCount, "largest accepted --count")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "Redis cache URL (default: $"+envRedisURL+")")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick the preset interactively")
	cmd.MarkFlagsMutuallyExclusive("resize-barcode", "native-barcode")

	return cmd
}

// runGenerate runs the pipeline and writes every requested artifact.
func (c *CLI) runGenerate(ctx context.Context, opts *generateOpts, resize *bool) error {
	logger := loggerFromContext(ctx)

	reg, err := loadRegistry(opts.presetsFile)
	if err != nil {
		return err
	}

	if opts.interactive {
		name, err := pickPreset(reg, opts.preset)
		if err != nil {
			return err
		}
		if name == "" {
			printInfo("No preset selected")
			return nil
		}
		opts.preset = name
	}

	popts := pipeline.Options{
		Header:    opts.header,
		Start:     &opts.start,
		Count:     opts.count,
		Preset:    opts.preset,
		Resize:    resize,
		Formats:   pipeline.ParseFormats(opts.formats),
		Title:     opts.title,
		CutGuides: opts.cutGuides,
		Page:      opts.page,
		Scale:     opts.scale,
		Workers:   opts.workers,
		MaxCount:  opts.maxCount,
		Logger:    logger,
		Registry:  reg,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	plan, err := planOutputs(opts.output, pipeline.DefaultFilename, popts.Formats)
	if err != nil {
		return err
	}
	store, err := plan.store(ctx, logger)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache, opts.redisURL)
	if err != nil {
		return err
	}
	defer runner.Close()

	total := formatCount(popts.Count)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %s labels", total))
	popts.Progress = func(done, _ int) {
		spinner.SetMessage(fmt.Sprintf("Rendering labels %s/%s", formatCount(done), total))
	}
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Generated %s labels (%s)", total, result.Preset.Name))
	printStats(result.Stats.Labels, result.Stats.Pages, result.Stats.FontSource, result.CacheInfo.Hit)
	if result.Stats.FontSource == string(fonts.SourceFallback) {
		printWarning("%s not found, labels use the built-in font", fonts.DefaultName)
	}

	published := newPublishLog(logger)
	for _, format := range popts.Formats {
		data := result.Artifacts[format]
		loc, err := storage.Publish(ctx, store, plan.keys[format], sink.ContentType(format), data)
		if err != nil {
			return fmt.Errorf("write %s: %w", format, err)
		}
		published.add(loc, len(data))
		printFile(loc)
	}
	published.done()
	return nil
}
