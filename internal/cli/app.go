package cli

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/pkgbundle/pkg/config"
	"github.com/arthur-debert/pkgbundle/pkg/errors"
	"github.com/arthur-debert/pkgbundle/pkg/filesystem"
	"github.com/arthur-debert/pkgbundle/pkg/logging"
	"github.com/arthur-debert/pkgbundle/pkg/packages"
	"github.com/arthur-debert/pkgbundle/pkg/types"
	"github.com/arthur-debert/pkgbundle/pkg/ui"
	"github.com/arthur-debert/pkgbundle/pkg/workspace"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// flagKeys maps command-line flags to the configuration keys they override.
var flagKeys = map[string]string{
	"namespace":   "manifest.namespace",
	"catch-all":   "strict.catch_all",
	"log-file":    "logging.file",
	"parallelism": "workspace.parallelism",
}

type options struct {
	verbosity int
	root      string
	format    string
	envFile   string
}

// app is the state shared by commands, set up once flags are parsed.
type app struct {
	opts  options
	root  string
	cfg   *config.Config
	fs    types.FS
	cache *workspace.Cache
	out   ui.Renderer
}

func (a *app) setup(cmd *cobra.Command) error {
	root, err := filepath.Abs(a.opts.root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %q", a.opts.root)
	}
	a.root = root

	if err := loadEnv(root, a.opts.envFile); err != nil {
		return err
	}

	cfg, err := config.Load(config.Options{Root: root, Overrides: overrides(cmd)})
	if err != nil {
		return err
	}
	a.cfg = cfg

	logging.SetupLoggerTo(cmd.ErrOrStderr(), a.opts.verbosity, cfg.Logging.File)
	log.Debug().Str("command", cmd.Name()).Str("root", root).Msg("Command started")

	a.fs = filesystem.NewOS()
	a.cache, err = workspace.NewCache(packages.NewBuilder(a.fs, cfg), cfg.Cache.Size)
	if err != nil {
		return err
	}

	format, err := ui.ParseFormat(a.opts.format)
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid --format")
	}
	a.out, err = ui.NewRenderer(format, cmd.OutOrStdout())
	return err
}

// loadEnv loads the environment file. Only an explicitly named file must
// exist.
func loadEnv(root, envFile string) error {
	explicit := envFile != ""
	if !explicit {
		envFile = filepath.Join(root, ".env")
	}
	if _, err := os.Stat(envFile); err != nil {
		if explicit {
			return errors.Wrap(err, errors.ErrConfigLoad, "cannot read environment file").
				WithDetail("path", envFile)
		}
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, "invalid environment file").
			WithDetail("path", envFile)
	}
	return nil
}

func overrides(cmd *cobra.Command) map[string]interface{} {
	out := map[string]interface{}{}
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			out[key] = f.Value.String()
		}
	}
	return out
}

// describeRoot builds the package at the root directory, which must have an
// entry point.
func (a *app) describeRoot() (*packages.Descriptor, error) {
	desc, err := a.cache.Build(a.root)
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, errors.Newf(errors.ErrNotFound, MsgErrNoEntry, a.root).
			WithDetail("root", a.root)
	}
	return desc, nil
}
