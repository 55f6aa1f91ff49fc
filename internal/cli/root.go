// Package cli provides the command-line interface for lottint.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/lottint/internal/colour"
	"github.com/jmylchreest/lottint/internal/version"
)

// Environment variables read by the CLI. Flags take precedence.
const (
	EnvLogLevel = "LOTTINT_LOG_LEVEL"
	EnvLibrary  = "LOTTINT_LIBRARY"
	EnvCacheDir = "LOTTINT_CACHE_DIR"
)

// globals holds the persistent flags and the logger built from them.
type globals struct {
	verbose  bool
	quiet    bool
	cache    bool
	noColour bool
	logger   hclog.Logger
}

// NewRootCmd builds the lottint command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{logger: hclog.NewNullLogger()}

	rootCmd := &cobra.Command{
		Use:   "lottint",
		Short: "Inspect, recolour and compose Lottie animations",
		Long: `lottint reads Lottie (bodymovin) JSON animations and works with their colours
and parts.

It lists the solid fills of a document, groups fills that share a colour so a
whole palette entry can be changed at once, writes recoloured copies, and
assembles characters from a library of pre-authored part fragments.

Documents can be read from files, stdin (-), HTTPS URLs, gzip/xz/bzip2
compressed files and dotLottie (.lottie) containers.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(g, cmd)
			if err != nil {
				return err
			}
			g.logger = logger
			colour.DisableColourOutput = g.noColour
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&g.noColour, "no-colour", false, "disable colour swatches (also NO_COLOR)")
	rootCmd.PersistentFlags().BoolVar(&g.cache, "cache", false, "cache documents fetched from URLs (dir: $"+EnvCacheDir+")")

	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newVersionCmd(),
		newFillsCmd(g),
		newGroupsCmd(g),
		newRecolorCmd(g),
		newComposeCmd(g),
		newExtractCmd(g),
		newStackOrderCmd(g),
		newSwapCmd(g),
	)
	return rootCmd
}

// newLogger builds the root logger. --verbose and --quiet override the
// level from the environment, which defaults to info.
func newLogger(g *globals, cmd *cobra.Command) (hclog.Logger, error) {
	if g.verbose && g.quiet {
		return nil, fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}

	level := hclog.Info
	if env := strings.TrimSpace(os.Getenv(EnvLogLevel)); env != "" {
		level = hclog.LevelFromString(env)
		if level == hclog.NoLevel {
			return nil, fmt.Errorf("invalid %s %q (valid: trace, debug, info, warn, error, off)", EnvLogLevel, env)
		}
	}
	switch {
	case g.verbose:
		level = hclog.Debug
	case g.quiet:
		level = hclog.Error
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "lottint",
		Output: cmd.ErrOrStderr(),
		Level:  level,
	}), nil
}

// normalizeFlagName accepts underscores in flag names, so --seed_mode is
// --seed-mode.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
