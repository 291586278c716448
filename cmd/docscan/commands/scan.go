package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gogpu/docscan"
	"github.com/gogpu/docscan/cmd/docscan/ui"
	"github.com/gogpu/docscan/filter"
)

func newCropCmd(a *app) *cobra.Command {
	var quadFlag, outDir string
	cmd := &cobra.Command{
		Use:   "crop <image>",
		Short: "Rectify the document inside a quad into an upright page",
		Example: `  docscan crop photo.jpg --quad "0.21,0.14 0.73,0.19 0.77,0.88 0.18,0.85"
  docscan crop photo.jpg -o scans/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quad, err := parseQuad(quadFlag)
			if err != nil {
				return err
			}
			s, done := a.newScanner(outDir)
			defer done()

			sp := ui.NewSpinner(cmd.ErrOrStderr(), "Rectifying "+args[0])
			sp.Start()
			doc, err := s.Crop(cmd.Context(), args[0], quad)
			sp.Stop()
			if err != nil {
				return err
			}
			printDocument(cmd.OutOrStdout(), "Cropped", doc)
			return nil
		},
	}
	cmd.Flags().StringVarP(&quadFlag, "quad", "q", "", "corners TL TR BR BL as fractional x,y pairs (default full frame)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config)")
	return cmd
}

func newFilterCmd(a *app) *cobra.Command {
	var presetFlag, outDir string
	cmd := &cobra.Command{
		Use:   "filter <image>",
		Short: "Apply a color preset (original, grayscale, high-contrast)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, err := filter.ParsePreset(presetFlag)
			if err != nil {
				return err
			}
			s, done := a.newScanner(outDir)
			defer done()

			doc, err := s.Filter(cmd.Context(), args[0], preset)
			if err != nil {
				return err
			}
			printDocument(cmd.OutOrStdout(), "Filtered ("+preset.String()+")", doc)
			return nil
		},
	}
	cmd.Flags().StringVarP(&presetFlag, "preset", "p", "high-contrast", "color preset")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config)")
	return cmd
}

func newRotateCmd(a *app) *cobra.Command {
	var turns int
	var outDir string
	cmd := &cobra.Command{
		Use:   "rotate <image>",
		Short: "Rotate an image clockwise in quarter turns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done := a.newScanner(outDir)
			defer done()

			doc, err := s.Rotate(cmd.Context(), args[0], turns)
			if err != nil {
				return err
			}
			printDocument(cmd.OutOrStdout(), "Rotated", doc)
			return nil
		},
	}
	cmd.Flags().IntVarP(&turns, "turns", "t", 1, "clockwise quarter turns (negative rotates counter-clockwise)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config)")
	return cmd
}

func printDocument(w io.Writer, action string, doc docscan.Document) {
	ui.Success(w, "%s %s", action, doc.Handle)
	ui.Field(w, "id", doc.ID)
	ui.Field(w, "size", fmt.Sprintf("%dx%d", doc.Width, doc.Height))
	ui.Field(w, "quality", doc.Quality)
}
