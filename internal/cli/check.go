package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"pagebox/pkg/errors"
	"pagebox/pkg/render"
)

type checkOpts struct {
	refs    string // reference directory
	diffs   string // where diff images go, none when empty
	update  bool   // rewrite the references instead of comparing
	compare render.CompareOptions
}

func newCheckCmd() *cobra.Command {
	opts := checkOpts{compare: render.CompareOptions{Tolerance: 2}}

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Compare rendered pages with reference PNGs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.refs == "" {
				return errors.New(errors.ErrCodeInvalidArgument, "--refs is required")
			}
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			path := args[0]
			prefix := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

			pages, _, err := RenderFile(ctx, path, Options{}, logger)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if opts.update {
				files, err := pages.SavePNGs(opts.refs, prefix)
				if err != nil {
					return err
				}
				printSuccess(w, "Updated %s references", number(len(files)))
				for _, f := range files {
					printFile(w, f)
				}
				return nil
			}

			failed := 0
			for i, n := 0, pages.PageCount(); i < n; i++ {
				name := fmt.Sprintf("%s-%03d.png", prefix, i+1)
				ok, err := checkPage(pages, i, name, opts)
				if err != nil {
					logger.Error("page check failed", "page", name, "err", err)
					failed++
					continue
				}
				if !ok {
					failed++
				}
			}
			stale := filepath.Join(opts.refs, fmt.Sprintf("%s-%03d.png", prefix, pages.PageCount()+1))
			if _, err := os.Stat(stale); err == nil {
				logger.Error("reference has more pages than the document", "extra", stale)
				failed++
			}

			if failed > 0 {
				return errors.New(errors.ErrCodeRenderFailed, "%d of %d pages differ from %s", failed, pages.PageCount(), opts.refs)
			}
			printSuccess(w, "%s pages match %s", number(pages.PageCount()), opts.refs)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.refs, "refs", "", "reference PNG directory")
	cmd.Flags().StringVar(&opts.diffs, "diffs", "", "directory for diff images of mismatching pages")
	cmd.Flags().BoolVar(&opts.update, "update", false, "write the rendered pages as new references")
	cmd.Flags().IntVar(&opts.compare.Tolerance, "tolerance", opts.compare.Tolerance, "per-channel difference still considered equal")
	cmd.Flags().IntVar(&opts.compare.FuzzyRadius, "fuzzy", 0, "pixel radius searched for a match")
	cmd.Flags().Float64Var(&opts.compare.MaxDifferentPercent, "max-diff", 0, "accepted percentage of differing pixels")
	return cmd
}

func checkPage(pages *render.Document, i int, name string, opts checkOpts) (bool, error) {
	ref, err := render.LoadPNG(filepath.Join(opts.refs, name))
	if err != nil {
		return false, err
	}
	res, err := render.Compare(pages.Page(i), ref, opts.compare)
	if err != nil {
		return false, err
	}
	if res.Match {
		return true, nil
	}
	if opts.diffs != "" {
		if err := os.MkdirAll(opts.diffs, 0o755); err != nil {
			return false, errors.Wrap(errors.ErrCodeRenderFailed, err, "creating %s", opts.diffs)
		}
		if err := render.SavePNG(filepath.Join(opts.diffs, name), res.Diff); err != nil {
			return false, err
		}
	}
	return false, nil
}
