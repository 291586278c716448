package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/docscan/cmd/docscan/ui"
	"github.com/gogpu/docscan/internal/overlay"
	"github.com/gogpu/docscan/raster"
	"github.com/gogpu/docscan/storage"
)

func newOverlayCmd(a *app) *cobra.Command {
	var quadFlag, out string
	var noLabels bool
	var maxSide int
	cmd := &cobra.Command{
		Use:   "overlay <image>",
		Short: "Draw the crop quad over the photo for review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quad, err := parseQuad(quadFlag)
			if err != nil {
				return err
			}
			img, err := storage.FileSource{}.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if maxSide > 0 {
				if img, err = raster.Thumbnail(img, maxSide); err != nil {
					return err
				}
			}

			style := overlay.DefaultStyle()
			style.Labels = !noLabels
			drawn, err := overlay.Draw(img, quad.ToPixels(img.Width(), img.Height()), style)
			if err != nil {
				return err
			}

			if out == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				out = filepath.Join(a.cfg.OutputDir, "overlay_"+base+".png")
			}
			if err := storage.WriteFileAtomic(out, func(f *os.File) error {
				return drawn.EncodePNG(f)
			}); err != nil {
				return err
			}
			ui.Success(cmd.OutOrStdout(), "Wrote %s", out)
			ui.Field(cmd.OutOrStdout(), "quad", formatQuad(quad))
			return nil
		},
	}
	cmd.Flags().StringVarP(&quadFlag, "quad", "q", "", "corners TL TR BR BL as fractional x,y pairs (default full frame)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output PNG path (default <output_dir>/overlay_<name>.png)")
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "omit the corner labels")
	cmd.Flags().IntVar(&maxSide, "max-side", 0, "downscale the photo so neither side exceeds this (0 keeps full size)")
	return cmd
}
