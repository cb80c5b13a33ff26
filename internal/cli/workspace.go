package cli

import (
	"github.com/arthur-debert/pkgbundle/pkg/errors"
	"github.com/arthur-debert/pkgbundle/pkg/ui"
	"github.com/arthur-debert/pkgbundle/pkg/workspace"
	"github.com/spf13/cobra"
)

func newWorkspaceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspace [package...]",
		Short:   MsgWorkspaceShort,
		Long:    MsgWorkspaceLong,
		Example: MsgWorkspaceExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := workspace.Discover(a.fs, a.root, a.cfg)
			if err != nil {
				return err
			}
			members, err = workspace.Select(members, args)
			if err != nil {
				return err
			}

			results, err := workspace.BuildAll(cmd.Context(), a.cache, workspace.Roots(members), a.cfg.Workspace.Parallelism)
			if err != nil {
				return err
			}

			result := ui.NewWorkspaceResult(a.root, members, results)
			if err := a.out.RenderResult(result); err != nil {
				return err
			}

			if result.Summary.Failed > 0 {
				return errors.Newf(errors.ErrBuildFailed, MsgErrPackagesFailed, result.Summary.Failed, len(results)).
					WithDetail("failed", result.Summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().IntP("parallelism", "j", 0, MsgFlagParallelism)

	return cmd
}
