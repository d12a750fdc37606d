package cli

import (
	"github.com/spf13/cobra"

	"screenlog/internal/config"
)

// CommandType represents the type of CLI command
type CommandType int

// Command type values
const (
	CommandRun CommandType = iota
	CommandConsole
	CommandStored
	CommandVersion
	CommandHelp
)

var commandNames = map[CommandType]string{
	CommandRun:     "run",
	CommandConsole: "console",
	CommandStored:  "stored",
	CommandVersion: "version",
	CommandHelp:    "help",
}

func (t CommandType) String() string {
	return commandNames[t]
}

// Options contains the parsed command-line arguments
type Options struct {
	Type       CommandType
	ConfigPath string
	Init       bool
	NoWatch    bool
	Match      string
	Reset      bool
}

// Parse parses command-line args and returns an Options struct
func Parse(args []string) (*Options, error) {
	result := &Options{
		Type:       CommandRun,
		ConfigPath: config.ConfigFile,
	}

	var showVersion bool

	root := buildRootCommand(result, &showVersion)
	root.AddCommand(
		buildRunCommand(result),
		buildConsoleCommand(result),
		buildStoredCommand(result),
		buildVersionCommand(result),
	)

	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return nil, err
	}

	if showVersion {
		result.Type = CommandVersion
	}

	return result, nil
}

// buildRootCommand creates the root cobra command; without a subcommand it runs the sink
func buildRootCommand(result *Options, showVersion *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:           config.AppName,
		Short:         config.AppDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandRun
		},
	}

	cmd.PersistentFlags().StringVarP(&result.ConfigPath, "config", "c", config.ConfigFile, "Path to the configuration file")
	cmd.Flags().BoolVarP(showVersion, "version", "v", false, "Show version information")

	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		result.Type = CommandHelp
	})

	return cmd
}

// buildRunCommand creates the run subcommand
func buildRunCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run",
		Aliases: []string{"r"},
		Short:   "Capture standard input into the sink",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandRun
		},
	}

	cmd.Flags().BoolVar(&result.Init, "init", false, "Write a starter configuration file when none exists")
	cmd.Flags().BoolVar(&result.NoWatch, "no-watch", false, "Do not reload when the configuration file changes")

	return cmd
}

// buildConsoleCommand creates the console subcommand
func buildConsoleCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "console",
		Aliases: []string{"c"},
		Short:   "Accept device connections and send them commands",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandConsole
		},
	}

	cmd.Flags().StringVarP(&result.Match, "match", "m", "", "Only show entries whose message matches the glob")

	return cmd
}

// buildStoredCommand creates the stored subcommand
func buildStoredCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stored",
		Aliases: []string{"s"},
		Short:   "Print the entries kept by the storage sink",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandStored
		},
	}

	cmd.Flags().BoolVar(&result.Reset, "reset", false, "Delete the stored entries instead of printing them")

	return cmd
}

// buildVersionCommand creates the version subcommand
func buildVersionCommand(result *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandVersion
		},
	}
}
