package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sysml2/internal/model"
	"sysml2/internal/modify"
	"sysml2/internal/snapshot"
)

var planCmd = &cobra.Command{
	Use:   "plan <plan.toml> <snapshot>",
	Short: "Apply a delete/merge plan to a model snapshot",
	Long:  `Apply runs a plan's delete and merge operations in order and writes the result, unless the plan sets dry_run, in which case only the report is printed. --apply forces a write even for a dry_run plan; the model written is then the unmodified input.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().Bool("apply", false, "write the output snapshot even when the plan sets dry_run")
	planCmd.Flags().String("out", "", "output snapshot path (defaults to overwriting the input snapshot)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	forceApply, err := cmd.Flags().GetBool("apply")
	if err != nil {
		return fmt.Errorf("failed to get apply flag: %w", err)
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}

	planPath, snapPath := args[0], args[1]

	p, err := modify.LoadPlanTOML(planPath)
	if err != nil {
		return fmt.Errorf("loading plan: %w", err)
	}

	m, in, fs, err := snapshot.Load(snapPath)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	loadFragment := func(path string) (*model.Model, error) {
		snap, err := snapshot.DecodeFile(path)
		if err != nil {
			return nil, fmt.Errorf("decoding fragment %s: %w", path, err)
		}
		return snapshot.BuildModel(in, fs, snap), nil
	}

	result, report, err := modify.Apply(in, m, p, loadFragment)
	if err != nil {
		return fmt.Errorf("applying plan: %w", err)
	}

	fmt.Fprintf(os.Stdout, "deleted=%d added=%d replaced=%d\n", report.Deleted, report.Added, report.Replaced)

	write := forceApply || !p.DryRun
	if !write {
		return nil
	}

	dest := outPath
	if dest == "" {
		dest = snapPath
	}
	if err := snapshot.Save(dest, in, result, fs); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}
