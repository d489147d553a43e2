package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labelsheet/pkg/pipeline"
	"github.com/matzehuels/labelsheet/pkg/sink"
	"github.com/matzehuels/labelsheet/pkg/storage"
)

type previewOpts struct {
	value       int
	header      string
	preset      string
	presetsFile string
	output      string
	resize      bool
	native      bool
}

// previewCommand creates the preview command, which renders a single label.
func (c *CLI) previewCommand() *cobra.Command {
	opts := previewOpts{
		value:  pipeline.DefaultStart,
		header: pipeline.DefaultHeader,
		preset: pipeline.DefaultPreset,
	}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render one label as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resize *bool
			switch {
			case cmd.Flags().Changed("resize-barcode"):
				resize = &opts.resize
			case cmd.Flags().Changed("native-barcode"):
				off := !opts.native
				resize = &off
			}
			return c.runPreview(cmd.Context(), &opts, resize)
		},
	}

	cmd.Flags().IntVar(&opts.value, "value", opts.value, "number to encode")
	cmd.Flags().StringVarP(&opts.header, "header", "H", opts.header, "text printed at the top of the label")
	cmd.Flags().StringVarP(&opts.preset, "preset", "p", opts.preset, "label stock preset")
	cmd.Flags().StringVar(&opts.presetsFile, "presets-file", "", "TOML file with additional presets")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: label_<value>.png)")
	cmd.Flags().BoolVar(&opts.resize, "resize-barcode", false, "stretch the barcode to a fixed box")
	cmd.Flags().BoolVar(&opts.native, "native-barcode", false, "paste the barcode at native size")
	cmd.MarkFlagsMutuallyExclusive("resize-barcode", "native-barcode")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, opts *previewOpts, resize *bool) error {
	logger := loggerFromContext(ctx)
	if opts.value < 0 {
		return fmt.Errorf("value must not be negative, got %d", opts.value)
	}

	reg, err := loadRegistry(opts.presetsFile)
	if err != nil {
		return err
	}

	png, err := pipeline.RenderLabel(pipeline.Options{
		Header:   opts.header,
		Count:    1,
		Preset:   opts.preset,
		Resize:   resize,
		Registry: reg,
		Logger:   logger,
	}, opts.value)
	if err != nil {
		return err
	}

	plan, err := planOutputs(opts.output, fmt.Sprintf("label_%d", opts.value), []string{pipeline.FormatPNG})
	if err != nil {
		return err
	}
	store, err := plan.store(ctx, logger)
	if err != nil {
		return err
	}
	published := newPublishLog(logger)
	loc, err := storage.Publish(ctx, store, plan.keys[pipeline.FormatPNG], sink.ContentTypePNG, png)
	if err != nil {
		return err
	}
	published.add(loc, len(png))

	printSuccess("Rendered label %s", formatCount(opts.value))
	printFile(loc)
	published.done()
	return nil
}
