package cli

import (
	"path/filepath"

	"github.com/arthur-debert/pkgbundle/pkg/externals"
	"github.com/arthur-debert/pkgbundle/pkg/ui"
	"github.com/spf13/cobra"
)

func newAuditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "audit <metafile>",
		Short:   MsgAuditShort,
		Long:    MsgAuditLong,
		Example: MsgAuditExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := a.describeRoot()
			if err != nil {
				return err
			}

			path := args[0]
			if !filepath.IsAbs(path) {
				path = filepath.Join(a.root, path)
			}
			metafile, err := externals.ReadMetafile(a.fs, path)
			if err != nil {
				return err
			}

			report, auditErr := externals.Audit(desc, metafile)
			if err := a.out.RenderResult(&ui.AuditResult{Metafile: path, Report: report}); err != nil {
				return err
			}
			return auditErr
		},
	}
}
