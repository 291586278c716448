package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/docscan/cmd/docscan/ui"
	"github.com/gogpu/docscan/pdf"
	"github.com/gogpu/docscan/raster"
	"github.com/gogpu/docscan/storage"
)

func newPreviewCmd(a *app) *cobra.Command {
	var page, maxSide int
	var dpi float64
	var outDir string
	cmd := &cobra.Command{
		Use:   "preview <file.pdf>",
		Short: "Render a page of an exported PDF to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pdf.OpenPreview(args[0])
			if err != nil {
				return err
			}
			defer p.Close()

			img, err := p.RenderPage(page-1, dpi)
			if err != nil {
				return err
			}
			if maxSide > 0 {
				if img, err = raster.Thumbnail(img, maxSide); err != nil {
					return err
				}
			}
			sink := storage.NewFileSink(a.outputDir(outDir), storage.WithEncoding(raster.EncodingPNG))
			path, err := sink.Save(cmd.Context(), img, fmt.Sprintf("page_%d", page))
			if err != nil {
				return err
			}

			ui.Success(cmd.OutOrStdout(), "Rendered %s", path)
			ui.Field(cmd.OutOrStdout(), "page", fmt.Sprintf("%d of %d", page, p.PageCount()))
			ui.Field(cmd.OutOrStdout(), "size", fmt.Sprintf("%dx%d", img.Width(), img.Height()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number, starting at 1")
	cmd.Flags().Float64Var(&dpi, "dpi", pdf.DefaultPreviewDPI, "render resolution")
	cmd.Flags().IntVar(&maxSide, "max-side", 0, "downscale the page so neither side exceeds this (0 keeps full size)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config)")
	return cmd
}
