// Package cmd implements the provide CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (resolve, check, tree, version).
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/go-drift/provide/cmd/provide/internal/config"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(env *Env, args []string) error
	SubCommands []*Command
}

// Env is the environment a command runs in.
type Env struct {
	Out    io.Writer
	Err    io.Writer
	Logger zerolog.Logger
	Config *config.Resolved
	// Debug overrides both provide.yaml and the manifest when set.
	Debug *bool
}

// GlobalOptions are accepted before or after the command name.
type GlobalOptions struct {
	Debug     bool   `long:"debug" description:"Warn on writes to injected values"`
	NoDebug   bool   `long:"no-debug" description:"Do not warn on writes to injected values"`
	LogLevel  string `long:"log-level" description:"Log level (trace, debug, info, warn, error)"`
	LogFormat string `long:"log-format" description:"Log output format" choice:"console" choice:"json"`
	Config    string `long:"config" description:"Path to provide.yaml"`
}

var rootCmd = &Command{
	Name:  "provide",
	Short: "provide - inspect provide/inject component trees",
	Long: `provide loads component manifests (YAML, TOML or HCL), constructs the
component tree and reports how every injection resolves.

Use "provide <command> --help" for more information about a command.`,
	Usage: "provide <command> [flags] <manifest>",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

// Run runs the CLI with the given arguments and output streams.
func Run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printHelp(stdout, rootCmd)
		return nil
	}

	var global GlobalOptions
	parser := flags.NewParser(&global, flags.IgnoreUnknown|flags.PassDoubleDash)
	rest, err := parser.ParseArgs(args)
	if err != nil {
		return err
	}

	var filtered []string
	for _, arg := range rest {
		switch arg {
		case "-h", "--help", "help":
			if len(filtered) == 0 {
				printHelp(stdout, rootCmd)
				return nil
			}
			filtered = append(filtered, arg)
		case "-v", "--version":
			if len(filtered) == 0 {
				filtered = append(filtered, "version")
				continue
			}
			filtered = append(filtered, arg)
		default:
			filtered = append(filtered, arg)
		}
	}
	if len(filtered) == 0 {
		printHelp(stdout, rootCmd)
		return nil
	}

	// Find and execute the command
	cmdName := filtered[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(stderr, rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := filtered[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(stdout, cmd)
			return nil
		}
	}

	env, err := newEnv(&global, stdout, stderr)
	if err != nil {
		return err
	}
	return cmd.Run(env, cmdArgs)
}

func newEnv(global *GlobalOptions, stdout, stderr io.Writer) (*Env, error) {
	dir, err := config.FindProjectRoot()
	if err != nil {
		// Outside a Go module the working directory is the project.
		if dir, err = os.Getwd(); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Resolve(dir, global.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if global.LogLevel != "" {
		cfg.LogLevel = global.LogLevel
	}
	if global.LogFormat != "" {
		cfg.LogFormat = global.LogFormat
	}

	logger, err := NewLogger(cfg.ProjectName, cfg.LogFormat, cfg.LogLevel, stderr)
	if err != nil {
		return nil, err
	}

	env := &Env{Out: stdout, Err: stderr, Logger: logger, Config: cfg}
	switch {
	case global.Debug && global.NoDebug:
		return nil, fmt.Errorf("--debug and --no-debug are mutually exclusive")
	case global.Debug:
		env.Debug = &global.Debug
	case global.NoDebug:
		off := false
		env.Debug = &off
	}
	return env, nil
}

// parseCommandFlags parses command-specific options into opts and returns
// the positional arguments.
func parseCommandFlags(opts any, args []string) ([]string, error) {
	return flags.NewParser(opts, flags.PassDoubleDash).ParseArgs(args)
}

func printHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(w, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -h, --help           Show help for a command")
	fmt.Fprintln(w, "  -v, --version        Show version information")
	fmt.Fprintln(w, "  --debug, --no-debug  Override debug mode (mutation warnings)")
	fmt.Fprintln(w, "  --log-level LEVEL    Log level (default: info)")
	fmt.Fprintln(w, "  --log-format FORMAT  console or json (default: console)")
	fmt.Fprintln(w, "  --config PATH        Config file (default: ./provide.yaml at the project root)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  provide resolve app.yaml      Show resolved injections")
	fmt.Fprintln(w, "  provide check app.hcl         Fail if any injection is unresolved")
	fmt.Fprintln(w, "  provide tree app.toml         Show the declared tree")
}

func printCommandHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
}
