package commands

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/docscan/autoscan"
	"github.com/gogpu/docscan/cmd/docscan/ui"
	"github.com/gogpu/docscan/storage"
)

// detector is the document outline detector used by the detect command.
var detector autoscan.Detector = autoscan.Unimplemented{}

func newDetectCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <image>",
		Short: "Suggest initial crop corners for a photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := storage.FileSource{}.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			quad, detected := autoscan.InitialQuad(cmd.Context(), detector, img)
			if !detected {
				ui.Warn(cmd.ErrOrStderr(), "automatic detection is not available; using the full frame")
			}
			ui.Field(cmd.OutOrStdout(), "quad", formatQuad(quad))
			return nil
		},
	}
}
