package cli

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pkgbundle/pkg/ui"
	"github.com/spf13/cobra"
)

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "describe [package-dir...]",
		Short:   MsgDescribeShort,
		Long:    MsgDescribeLong,
		Example: MsgDescribeExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			locations := args
			if len(locations) == 0 {
				locations = []string{a.root}
			}

			result := &ui.DescribeResult{}
			for _, location := range locations {
				if !filepath.IsAbs(location) && !strings.HasPrefix(location, "file://") {
					location = filepath.Join(a.root, location)
				}
				desc, err := a.cache.Build(location)
				if err != nil {
					return err
				}
				if desc == nil {
					result.Skipped = append(result.Skipped, location)
					continue
				}
				result.Packages = append(result.Packages, desc.View())
			}

			return a.out.RenderResult(result)
		},
	}
}
