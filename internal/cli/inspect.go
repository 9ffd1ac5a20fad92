package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pagebox/pkg/document"
)

func newInspectCmd() *cobra.Command {
	var elements bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Paginate a document description and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := Open(args[0], Options{}, loggerFromContext(ctx))
			if err != nil {
				return err
			}
			p, err := s.Prepare(ctx)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), s.Document, p, elements)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&elements, "elements", "e", false, "list the elements placed on each page")
	return cmd
}

func printSummary(w io.Writer, doc *document.Document, p *document.Prepared, elements bool) {
	for i, ps := range doc.PageSets() {
		res := p.Results[i]
		size := ps.PageSize()
		printTitle(w, ps.ID())
		printKeyValue(w, "page size", fmt.Sprintf("%g x %g", size.Width, size.Height))
		printKeyValue(w, "header", fmt.Sprintf("%g", res.HeaderHeight))
		printKeyValue(w, "footer", fmt.Sprintf("%g", res.FooterHeight))
		printKeyValue(w, "pages", number(res.PageCount()))
		if !elements {
			continue
		}
		for n, page := range res.Pages() {
			fmt.Fprintf(w, "  %s %d\n", styleDim.Render("page"), n+1)
			for _, ews := range page {
				fmt.Fprintf(w, "    %s %s\n", styleValue.Render(ews.Element.ID()),
					styleDim.Render(fmt.Sprintf("%g x %g", ews.FullSize.Width, ews.FullSize.Height)))
			}
		}
	}
	printKeyValue(w, "total", number(p.TotalPageCount))
}
