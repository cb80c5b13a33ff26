package cli

import (
	"github.com/arthur-debert/pkgbundle/pkg/externals"
	"github.com/arthur-debert/pkgbundle/pkg/ui"
	"github.com/spf13/cobra"
)

func newMatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "match <specifier...>",
		Short:   MsgMatchShort,
		Long:    MsgMatchLong,
		Example: MsgMatchExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := a.describeRoot()
			if err != nil {
				return err
			}

			var failure error
			for _, specifier := range args {
				verdict, err := externals.Check(desc, specifier)
				if err != nil && failure == nil {
					failure = err
				}
				if rerr := a.out.RenderResult(&ui.MatchResult{
					Package: desc.Name(),
					Root:    desc.Root(),
					Verdict: verdict,
				}); rerr != nil {
					return rerr
				}
			}
			return failure
		},
	}
}
