package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gogpu/docscan/cmd/docscan/ui"
	"github.com/gogpu/docscan/pdf"
	"github.com/gogpu/docscan/storage"
)

func newExportCmd(a *app) *cobra.Command {
	var title, pageSize, out string
	cmd := &cobra.Command{
		Use:   "export <image>...",
		Short: "Bundle images into a PDF, one page each",
		Example: `  docscan export cropped_*.jpg --title "Lease 2026"
  docscan export p1.jpg p2.jpg -o lease.pdf --page-size letter`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.cfg.ExporterOptions()
			if pageSize != "" {
				size, err := pdf.ParsePageSize(pageSize)
				if err != nil {
					return err
				}
				opts = append(opts, pdf.WithPageSize(size))
			}
			if title != "" {
				opts = append(opts, pdf.WithTitle(title))
			}

			var bar *ui.ProgressBar
			opts = append(opts, pdf.WithProgress(func(done, _ int) {
				bar.Set(done)
			}))
			exp, err := pdf.NewExporter(opts...)
			if err != nil {
				return err
			}

			pages := make([]pdf.Page, 0, len(args))
			for _, path := range args {
				img, err := storage.FileSource{}.Load(cmd.Context(), path)
				if err != nil {
					return fmt.Errorf("load %s: %w", path, err)
				}
				pages = append(pages, pdf.Page{Image: img})
			}

			if out == "" {
				out = filepath.Join(a.cfg.OutputDir, pdf.FileName(title))
			}
			bar = ui.NewProgressBar(cmd.ErrOrStderr(), len(pages), "Exporting")
			if err := exp.ExportFile(cmd.Context(), out, pages); err != nil {
				bar.Abort()
				return err
			}
			bar.Finish()

			ui.Success(cmd.OutOrStdout(), "Exported %s", out)
			ui.Field(cmd.OutOrStdout(), "pages", len(pages))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "document title, also used for the file name")
	cmd.Flags().StringVar(&pageSize, "page-size", "", "A3, A4, A5, Letter or Legal (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output PDF path (default <output_dir>/<title>.pdf)")
	return cmd
}
