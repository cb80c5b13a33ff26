package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Resolve package bundling settings"
	MsgDescribeShort   = "Print package descriptors"
	MsgMatchShort      = "Decide how imports are bundled"
	MsgAuditShort      = "Check a bundle's external imports"
	MsgWorkspaceShort  = "Build every package of a workspace"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	MsgVersionFormat = "pkgbundle version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	MsgErrNoEntry        = "package at %s has no entry point"
	MsgErrPackagesFailed = "%d of %d package(s) failed to build"

	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot        = "Package or workspace directory"
	MsgFlagFormat      = "Output format: auto, term, text, json, yaml, toml, junit"
	MsgFlagNamespace   = "Manifest key holding tool settings"
	MsgFlagCatchAll    = "Strictness key applying to every dimension"
	MsgFlagEnvFile     = "Environment file loaded before configuration (default <root>/.env)"
	MsgFlagLogFile     = "Log file path (default under the XDG state directory)"
	MsgFlagParallelism = "Maximum number of packages built at once"
	MsgFlagManDir      = "Directory man pages are written to"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/describe-long.txt
	msgDescribeLongRaw string
	MsgDescribeLong    = strings.TrimSpace(msgDescribeLongRaw)

	//go:embed msgs/describe-example.txt
	msgDescribeExampleRaw string
	MsgDescribeExample    = strings.TrimRight(msgDescribeExampleRaw, "\n")

	//go:embed msgs/match-long.txt
	msgMatchLongRaw string
	MsgMatchLong    = strings.TrimSpace(msgMatchLongRaw)

	//go:embed msgs/match-example.txt
	msgMatchExampleRaw string
	MsgMatchExample    = strings.TrimRight(msgMatchExampleRaw, "\n")

	//go:embed msgs/audit-long.txt
	msgAuditLongRaw string
	MsgAuditLong    = strings.TrimSpace(msgAuditLongRaw)

	//go:embed msgs/audit-example.txt
	msgAuditExampleRaw string
	MsgAuditExample    = strings.TrimRight(msgAuditExampleRaw, "\n")

	//go:embed msgs/workspace-long.txt
	msgWorkspaceLongRaw string
	MsgWorkspaceLong    = strings.TrimSpace(msgWorkspaceLongRaw)

	//go:embed msgs/workspace-example.txt
	msgWorkspaceExampleRaw string
	MsgWorkspaceExample    = strings.TrimRight(msgWorkspaceExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
