package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"sysml2/internal/diag"
	"sysml2/internal/intern"
	"sysml2/internal/model"
	"sysml2/internal/snapshot"
	"sysml2/internal/source"
	"sysml2/internal/validate"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	noteColor    = color.New(color.FgCyan)
	helpColor    = color.New(color.FgGreen)
)

var validateCmd = &cobra.Command{
	Use:   "validate <snapshot...>",
	Short: "Run the seven-pass semantic validator over one or more model snapshots",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().String("config", "", "TOML file of validation options (defaults to every check enabled)")
	validateCmd.Flags().Int("jobs", 0, "max parallel snapshot decoders (0=GOMAXPROCS)")
	validateCmd.Flags().Bool("progress", false, "render a bubbletea progress view while validating")
	validateCmd.Flags().Int("bag-cap", validate.DefaultBagCapacity, "maximum number of diagnostics to retain")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	showProgress, err := cmd.Flags().GetBool("progress")
	if err != nil {
		return fmt.Errorf("failed to get progress flag: %w", err)
	}
	bagCap, err := cmd.Flags().GetInt("bag-cap")
	if err != nil {
		return fmt.Errorf("failed to get bag-cap flag: %w", err)
	}
	withNotes, err := cmd.Root().PersistentFlags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	opts := validate.DefaultOptions()
	if configPath != "" {
		if err := opts.LoadTOML(configPath); err != nil {
			return fmt.Errorf("loading validation config: %w", err)
		}
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	snaps := make([]*snapshot.Snapshot, len(args))
	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			snap, err := snapshot.DecodeFile(path)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", path, err)
			}
			snaps[i] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	in := intern.New(nil)
	fs := source.NewFileSet()
	models := make([]*model.Model, len(snaps))
	for i, snap := range snaps {
		models[i] = snapshot.BuildModel(in, fs, snap)
	}

	vctx := validate.NewContext(in, opts, bagCap, nil)

	var outcome validate.Outcome
	if showProgress {
		outcome, err = runValidateWithUI(vctx, models, opts)
		if err != nil {
			return fmt.Errorf("rendering progress: %w", err)
		}
	} else {
		outcome = validate.ValidateModels(vctx, models, opts)
	}

	diags := outcome.Diagnostics

	useColor := colorMode == "on" || (colorMode == "auto" && isTerminal(os.Stdout))
	prev := color.NoColor
	defer func() { color.NoColor = prev }()
	color.NoColor = !useColor

	rendered := diag.FormatPlain(diags, fs, withNotes)
	if rendered != "" {
		for _, line := range strings.Split(rendered, "\n") {
			fmt.Fprintln(os.Stdout, colorizeLine(line))
		}
	}

	if outcome.HasErrors {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

// colorizeLine styles a FormatPlain line by its leading severity token
// ("error"|"warning"|"note"|"help"), matching the teacher's diagfmt
// convention of coloring per-severity rather than the whole line.
func colorizeLine(line string) string {
	sp := strings.IndexByte(line, ' ')
	if sp < 0 {
		return line
	}
	severity, rest := line[:sp], line[sp+1:]
	switch severity {
	case "error":
		return errorColor.Sprint(severity) + " " + rest
	case "warning":
		return warningColor.Sprint(severity) + " " + rest
	case "note":
		return noteColor.Sprint(severity) + " " + rest
	case "help":
		return helpColor.Sprint(severity) + " " + rest
	default:
		return line
	}
}
