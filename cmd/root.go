// Package cmd implements the saferenv command line.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/saferenv/saferenv/internal/config"
	"github.com/saferenv/saferenv/internal/environ"
	"github.com/saferenv/saferenv/internal/logging"
	"github.com/saferenv/saferenv/internal/rules"
	"github.com/saferenv/saferenv/internal/runner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version, Commit, and Date are set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootOptions holds the parsed flags for one invocation.
type rootOptions struct {
	keep        []string
	unset       []string
	ignoreEnv   bool
	showRules   bool
	redactValue string
	configPath  string
	noDefaults  bool
	envFiles    []string
	verbosity   int

	// environ supplies the inherited environment; os.Environ when nil.
	environ func() []string

	// exitCode is the process exit status once RunE returns.
	exitCode int
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "saferenv [flags] [NAME=VALUE]... [COMMAND [ARG]...]",
		Short: "env, but a little safer",
		Long: `saferenv - env, but a little safer

Prints the environment like env(1), replacing the values of variables whose
names look sensitive with a redaction marker. Given a command, runs it with
sensitive variables removed from its environment.

Rules are checked in order and the first match decides:
  1. --keep NAME     keep NAME unchanged
  2. --unset NAME    remove NAME
  3. config rules    patterns from the rules file
  4. defaults        redact names ending in SECRET(S), TOKEN(S), KEY(S),
                     PASSWORD(S) or _PW / -PW
Names that match no rule are kept.

When a command is run, only kept variables are passed to it. Redacted
variables are never passed, neither their value nor the marker.

Exit codes:
  0     Success
  N     Command's exit code (128+N if killed by signal N)
  125   saferenv failed (usage, config, invalid pattern)
  126   Command found but not executable
  127   Command not found

Examples:
  # Show the environment with secrets redacted
  saferenv

  # Reveal one variable
  saferenv --keep AWS_SECRET_ACCESS_KEY

  # Run a command without secrets in its environment
  saferenv -u KUBECONFIG make test

  # Inspect the rules in effect
  saferenv --show-rules --keep KEEPTHIS --unset REMOVETHAT`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts, args)
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("saferenv version {{.Version}} (commit: %s, built: %s)\n", Commit, Date))

	f := root.Flags()
	// Everything from the first positional argument on belongs to the command.
	f.SetInterspersed(false)
	f.StringArrayVarP(&opts.keep, "keep", "k", nil, "Prevent variable `NAME` from being redacted or unset (repeatable)")
	f.StringArrayVarP(&opts.unset, "unset", "u", nil, "Remove variable `NAME` from the environment; --keep has higher priority (repeatable)")
	f.BoolVarP(&opts.ignoreEnv, "ignore-environment", "i", false, "Start with an empty environment; only explicitly kept variables are inherited")
	f.BoolVar(&opts.showRules, "show-rules", false, "Print the rules in precedence order and exit")
	f.StringVarP(&opts.redactValue, "redact-value", "r", environ.DefaultRedactValue, "Show redacted variables with this `VALUE`")
	f.StringVarP(&opts.configPath, "config", "c", "", "Rules `FILE` (default $SAFERENV_CONFIG or <config dir>/saferenv/config.yaml)")
	f.BoolVar(&opts.noDefaults, "no-defaults", false, "Disable the built-in redaction patterns")
	f.StringArrayVar(&opts.envFiles, "env-file", nil, "Load variables from a dotenv `FILE` (repeatable)")
	f.CountVarP(&opts.verbosity, "debug", "v", "Print more detailed logs (repeat up to 3 times: -v, -vv, -vvv)")

	return root
}

// Execute runs saferenv with os.Args and returns the process exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Environ)
}

// run executes one invocation against the given streams and environment.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer, environFn func() []string) int {
	opts := &rootOptions{environ: environFn}
	root := newRootCmd(opts)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprint(stderr, runner.FormatError(err))
		if opts.exitCode == runner.ExitOK {
			opts.exitCode = runner.ExitFailure
		}
	}
	return opts.exitCode
}

// runRoot builds the rules, materializes the environment, and then prints
// it, prints the rules, or runs the command.
func runRoot(cmd *cobra.Command, opts *rootOptions, args []string) error {
	opts.exitCode = runner.ExitOK

	log, err := logging.New(cmd.ErrOrStderr(), opts.verbosity)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	logging.WarnNonUTF8Locale(log, os.Getenv("LANG"))

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		log.Info("loaded config", zap.String("path", cfg.Path), zap.Int("rules", len(cfg.Rules)))
	}

	rs, err := buildRuleSet(opts, cfg)
	if err != nil {
		return err
	}
	log.Debug("rules built", zap.Int("count", rs.Len()))

	if opts.showRules {
		_, err := rs.WriteTo(cmd.OutOrStdout())
		return err
	}

	assignments, command := splitAssignments(args)

	snap, err := buildSnapshot(opts, rs, assignments, log)
	if err != nil {
		return err
	}

	result := environ.Materialize(rs, snap,
		environ.WithRedactValue(redactValue(cmd, opts, cfg)),
		environ.WithLogger(log))

	if len(command) == 0 {
		log.Info("no command provided, printing environment variables")
		_, err := result.WriteTo(cmd.OutOrStdout())
		return err
	}

	return runCommand(cmd, opts, command, result.ChildEnv(), log)
}

// buildRuleSet combines CLI flags, config rules and defaults.
func buildRuleSet(opts *rootOptions, cfg *config.Config) (*rules.RuleSet, error) {
	configRules, err := cfg.PatternActions()
	if err != nil {
		return nil, err
	}

	src := rules.Sources{
		Keep:   opts.keep,
		Unset:  opts.unset,
		Config: configRules,
	}
	if !opts.noDefaults && cfg.DefaultsEnabled() {
		src.Defaults = rules.DefaultPatterns()
	}

	rs, err := rules.Build(src)
	if err != nil {
		if cfg.Path != "" {
			return nil, fmt.Errorf("%s: %w", cfg.Path, err)
		}
		return nil, err
	}
	return rs, nil
}

// buildSnapshot returns the inherited (or isolated) environment with env
// files and NAME=VALUE assignments applied on top.
func buildSnapshot(opts *rootOptions, rs *rules.RuleSet, assignments []string, log *zap.Logger) (*environ.Snapshot, error) {
	environFn := opts.environ
	if environFn == nil {
		environFn = os.Environ
	}
	snap := environ.FromEnviron(environFn())

	if opts.ignoreEnv {
		log.Info("ignore-environment is on; variables are dropped unless kept explicitly")
		snap = environ.Isolate(rs, snap)
	}

	if err := snap.LoadEnvFiles(opts.envFiles...); err != nil {
		return nil, err
	}
	snap.ApplyAssignments(assignments)
	return snap, nil
}

// splitAssignments separates leading NAME=VALUE arguments from the command.
// A "--" ends the assignments.
func splitAssignments(args []string) (assignments, command []string) {
	for i, a := range args {
		if a == "--" {
			return args[:i], args[i+1:]
		}
		if !environ.IsAssignment(a) {
			return args[:i], args[i:]
		}
	}
	return args, nil
}

// redactValue picks the marker: an explicit flag wins over the config.
func redactValue(cmd *cobra.Command, opts *rootOptions, cfg *config.Config) string {
	if cmd.Flags().Changed("redact-value") || cfg.RedactValue == "" {
		return opts.redactValue
	}
	return cfg.RedactValue
}
