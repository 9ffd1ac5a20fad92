package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

type renderOpts struct {
	out          string  // output directory
	prefix       string  // file name prefix, defaults to the input's base name
	scale        float64 // pixels per point
	workers      int     // concurrent page set preparation
	debugBorders bool    // outline unstyled elements
}

func newRenderCmd() *cobra.Command {
	opts := renderOpts{out: ".", scale: 1}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Lay out a document description and write one PNG per page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			path := args[0]
			prefix := opts.prefix
			if prefix == "" {
				prefix = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}

			prog := newProgress(logger)
			pages, prepared, err := RenderFile(ctx, path, Options{
				Scale:        opts.scale,
				DebugBorders: opts.debugBorders,
				Workers:      opts.workers,
			}, logger)
			if err != nil {
				return err
			}
			files, err := pages.SavePNGs(opts.out, prefix)
			if err != nil {
				return err
			}
			prog.done("rendered", "file", path, "pages", prepared.TotalPageCount)

			w := cmd.OutOrStdout()
			printSuccess(w, "Rendered %s pages from %s", number(prepared.TotalPageCount), path)
			for _, f := range files {
				printFile(w, f)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", opts.out, "output directory")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "output file prefix (default: input base name)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "pixels per point")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "page sets prepared concurrently (default: from file)")
	cmd.Flags().BoolVar(&opts.debugBorders, "debug-borders", false, "outline elements without border or fill")
	return cmd
}
