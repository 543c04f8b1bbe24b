package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/raven-betanet/elfhdr/internal/checks"
	"github.com/raven-betanet/elfhdr/internal/elfheader"
	"github.com/raven-betanet/elfhdr/internal/report"
	"github.com/raven-betanet/elfhdr/internal/source"
	"github.com/raven-betanet/elfhdr/internal/utils"
)

// Exit codes
const (
	exitOK          = 0
	exitCheckFailed = 1
	exitUsage       = 2
	exitBadInput    = 98
)

// exitError carries the process exit code for an error
type exitError struct {
	code      int
	showUsage bool
	err       error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error {
	return &exitError{code: exitUsage, showUsage: true, err: err}
}

func inputError(err error) error {
	return &exitError{code: exitBadInput, err: err}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the exit code
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(context.Background())
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	var exitErr *exitError
	if errors.As(err, &exitErr) && exitErr.showUsage && cmd != nil {
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return exitCode(err)
}

// exitCode maps an error returned by the commands to a process exit code
func exitCode(err error) int {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var decodeErr *elfheader.DecodeError
	if errors.As(err, &decodeErr) {
		return exitBadInput
	}
	return exitCheckFailed
}

// app holds the state shared by the commands of one invocation
type app struct {
	reader     *source.Reader
	config     *utils.ConfigManager
	configFile string
	verbose    bool
	pid        int
}

func newRootCmd() *cobra.Command {
	a := &app{
		reader: source.NewReader(),
		config: utils.NewConfigManager(),
	}

	cmd := &cobra.Command{
		Use:   "elfhdr [flags] <elf-file>",
		Short: "Display the ELF file header",
		Long: `elfhdr decodes the identification block and fixed header of an ELF file and
prints them the way "readelf -h" does.

Both word widths (ELF32, ELF64) and both byte orders are decoded from the
identification bytes of the file itself, independent of the host. Use "-" to
read the file from standard input, or --pid to inspect the executable of a
running process.

Output formats:
  text  - readelf layout (default)
  table - two-column table
  json  - display strings and raw values
  yaml  - display strings and raw values

Configuration is read from elfhdr.yaml in the current directory,
$HOME/.config/elfhdr or /etc/elfhdr, and from ELFHDR_* environment variables.
Flags override both.

Exit codes:
  0  - Header printed
  2  - Invalid arguments or configuration error
  98 - File unreadable, not an ELF file, or header not decodable`,
		Example: `  elfhdr /bin/ls
  elfhdr --full --format table ./a.out
  elfhdr --pid 1234
  cat lib.so | elfhdr --format json -
  elfhdr check ./a.out`,
		Version:           utils.GetVersionString(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              a.inputArgs,
		PersistentPreRunE: a.setup,
		RunE:              a.runShow,
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError(err)
	})

	cmd.Flags().StringP("format", "f", "text", "Output format (text, table, json, yaml)")
	cmd.Flags().BoolP("full", "a", false, "Show every fixed header field")
	cmd.Flags().Bool("pad-addresses", false, "Pad the entry point to the word width of the file")

	cmd.PersistentFlags().String("color", "auto", "Color output (auto, always, never)")
	cmd.PersistentFlags().IntVar(&a.pid, "pid", 0, "Inspect the executable of a running process")
	cmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "Configuration file path")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")

	cmd.AddCommand(a.newCheckCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// inputArgs accepts one file argument, or none when --pid is set
func (a *app) inputArgs(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("pid") {
		if len(args) != 0 {
			return usageError(fmt.Errorf("--pid does not take a file argument, received %d", len(args)))
		}
		return nil
	}
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return usageError(err)
	}
	return nil
}

// setup loads configuration and stores the logger in the command context
func (a *app) setup(cmd *cobra.Command, args []string) error {
	root := cmd.Root()
	bootLevel := utils.LogLevelWarn
	if a.verbose {
		bootLevel = utils.LogLevelDebug
	}
	a.config.SetLogger(utils.NewLogger(utils.LoggerConfig{
		Level:  bootLevel,
		Format: utils.LogFormatText,
		Output: cmd.ErrOrStderr(),
	}))

	bindings := map[string]string{
		"output.format":        "format",
		"output.full":          "full",
		"output.pad_addresses": "pad-addresses",
	}
	for key, name := range bindings {
		if err := a.config.BindFlag(key, root.Flags().Lookup(name)); err != nil {
			return usageError(err)
		}
	}
	if err := a.config.BindFlag("output.color", root.PersistentFlags().Lookup("color")); err != nil {
		return usageError(err)
	}

	if err := a.config.LoadConfig(a.configFile); err != nil {
		return &exitError{code: exitUsage, err: err}
	}

	logConfig := a.config.GetConfig().Log
	logConfig.Output = cmd.ErrOrStderr()
	if a.verbose {
		logConfig.Level = utils.LogLevelDebug
	}
	logger := utils.NewLogger(logConfig)
	cmd.SetContext(utils.WithLogger(cmd.Context(), logger))
	return nil
}

// readInput reads the header bytes named by the arguments or --pid
func (a *app) readInput(cmd *cobra.Command, args []string) (*source.Input, error) {
	logger := utils.LoggerFromContext(cmd.Context())
	a.reader.Stdin = cmd.InOrStdin()

	var (
		in  *source.Input
		err error
	)
	if cmd.Flags().Changed("pid") {
		logger.WithComponent("source").Debugf("Resolving executable of process %d", a.pid)
		in, err = a.reader.ReadPID(a.pid)
	} else {
		in, err = a.reader.ReadFile(args[0])
	}
	if err != nil {
		return nil, inputError(err)
	}

	logger.WithFile("source", in.Name).Debugf("Read %d header bytes", len(in.Bytes))
	return in, nil
}

// decode reads and decodes the input; not-ELF and short inputs are input errors
func (a *app) decode(cmd *cobra.Command, args []string) (*source.Input, *elfheader.View, error) {
	in, err := a.readInput(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	v, err := elfheader.Decode(in.Bytes)
	if err != nil {
		return nil, nil, inputError(fmt.Errorf("%s: %w", in.Name, err))
	}

	logger := utils.LoggerFromContext(cmd.Context())
	entry := logger.WithFile("elfheader", in.Name)
	if herr := v.HeaderErr(); herr != nil {
		entry.Debugf("Header fields not decoded: %v", herr)
	} else {
		entry.Debugf("Decoded %s header", v.LayoutName())
	}
	return in, v, nil
}

// runShow prints the header
func (a *app) runShow(cmd *cobra.Command, args []string) error {
	in, v, err := a.decode(cmd, args)
	if err != nil {
		return err
	}

	cfg := a.config.GetConfig().Output
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return usageError(err)
	}
	colorMode, err := report.ParseColorMode(cfg.Color)
	if err != nil {
		return usageError(err)
	}

	opts := report.Options{
		Format: format,
		Color:  colorMode,
		RenderOptions: elfheader.RenderOptions{
			Full:         cfg.Full,
			PadAddresses: cfg.PadAddresses,
		},
	}
	if err := report.Render(cmd.OutOrStdout(), in.Name, v, opts); err != nil {
		if errors.Is(err, elfheader.ErrTruncated) || errors.Is(err, elfheader.ErrIndeterminateLayout) {
			return inputError(fmt.Errorf("%s: %w", in.Name, err))
		}
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (a *app) newCheckCmd() *cobra.Command {
	var (
		outputFormat string
		only         []string
	)

	cmd := &cobra.Command{
		Use:   "check [flags] <elf-file>",
		Short: "Check the ELF header for internal consistency",
		Long: `Run consistency checks against the ELF header of the specified file.

HEADER CHECKS:
  ident-class     EI_CLASS is ELF32 or ELF64
  ident-data      EI_DATA is little or big endian
  ident-version   EI_VERSION is EV_CURRENT
  header-layout   Fixed header is complete and decodable
  format-version  e_version is EV_CURRENT
  header-size     e_ehsize matches the class
  phentsize       e_phentsize matches the class
  shentsize       e_shentsize matches the class
  shstrndx        e_shstrndx is within the section header table
  entry-point     Executables have a non-zero entry point

Checks that need the fixed header are skipped when it cannot be decoded.

OUTPUT FORMATS:
  text - Human-readable report
  json - Machine-readable report

EXIT CODES:
  0  - All checks passed or were skipped
  1  - One or more checks failed
  2  - Invalid arguments
  98 - File unreadable or not an ELF file`,
		Example: `  elfhdr check ./a.out
  elfhdr check --only header-size,entry-point --format json ./a.out`,
		Args: a.inputArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(outputFormat)
			if err != nil || (format != report.FormatText && format != report.FormatJSON) {
				return usageError(fmt.Errorf("unsupported check report format: %s", outputFormat))
			}
			return a.runChecks(cmd, args, format, only)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text, json)")
	cmd.Flags().StringSliceVar(&only, "only", nil, "Run only the listed checks")

	return cmd
}

// runChecks runs the header checks and reports them
func (a *app) runChecks(cmd *cobra.Command, args []string, format report.Format, only []string) error {
	in, v, err := a.decode(cmd, args)
	if err != nil {
		return err
	}

	runner := checks.NewCheckRunner(checks.NewDefaultRegistry())
	var rep *checks.CheckReport
	if len(only) > 0 {
		rep, err = runner.RunSelected(in.Name, v, only)
		if err != nil {
			return usageError(err)
		}
	} else {
		rep = runner.RunAll(in.Name, v)
	}

	colorMode, err := report.ParseColorMode(a.config.GetConfig().Output.Color)
	if err != nil {
		return usageError(err)
	}
	if err := report.RenderChecks(cmd.OutOrStdout(), rep, format, colorMode); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logger := utils.LoggerFromContext(cmd.Context()).WithFile("checks", in.Name)
	if rep.Summary.Failed > 0 {
		logger.Debugf("Header checks failed: %d/%d checks passed", rep.Summary.Passed, rep.Summary.Total)
		return &exitError{
			code: exitCheckFailed,
			err:  fmt.Errorf("%d of %d header checks failed", rep.Summary.Failed, rep.Summary.Total),
		}
	}
	logger.Debugf("Header checks passed: %d/%d", rep.Summary.Passed, rep.Summary.Total)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return usageError(err)
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "elfhdr version %s\n", utils.Version)
			fmt.Fprintf(out, "Commit: %s\n", utils.Commit)
			fmt.Fprintf(out, "Built: %s\n", utils.Date)
			fmt.Fprintf(out, "Platform: %s\n", utils.GetPlatformString())
		},
	}
}
