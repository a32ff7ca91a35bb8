package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"worldvoice.in/web/internal/cms"
	"worldvoice.in/web/internal/handlers"
	"worldvoice.in/web/internal/layout"
)

func newMetaCommand(flags *rootFlags) *cobra.Command {
	var (
		kind   string
		output string
	)
	cmd := &cobra.Command{
		Use:   "meta [slug]",
		Short: "Print the head tags and structured data for a page",
		Long: `Builds the metadata for a page exactly as the server would and prints it.

Without a slug the home page is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			a := newApp(cfg, zap.NewNop())

			target := "/"
			if len(args) == 1 {
				target = strings.TrimSpace(args[0])
			}
			var composed layout.Composed
			if target == "" || target == "/" {
				composed, err = a.pages.BuildHome(cmd.Context())
			} else {
				composed, err = a.pages.BuildPage(cmd.Context(), kind, target)
			}
			if err != nil {
				return fmt.Errorf("build %s: %w", target, err)
			}
			return writeMeta(cmd.OutOrStdout(), composed, output)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", cms.KindPost, "content kind: posts or pages")
	cmd.Flags().StringVarP(&output, "output", "o", "html", "output format: html or json")
	return cmd
}

func writeMeta(w io.Writer, composed layout.Composed, output string) error {
	switch output {
	case "html":
		if composed.Meta.Empty() {
			return nil
		}
		if err := layout.HeadNodes(composed.Meta).Render(w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	case "json":
		return handlers.WriteMeta(w, composed)
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}
