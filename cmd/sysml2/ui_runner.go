package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sysml2/internal/model"
	"sysml2/internal/ui"
	"sysml2/internal/validate"
)

// validateOutcome pairs the result of a ValidateModels call with its goroutine's error.
type validateOutcome struct {
	outcome validate.Outcome
	err     error
}

// runValidateWithUI drives validate.ValidateModels on a background goroutine
// while a bubbletea progress view renders on the foreground, exactly the way
// the teacher's runBuildWithUI drives buildpipeline.Build alongside
// ui.NewProgressModel.
func runValidateWithUI(ctx *validate.Context, models []*model.Model, opts validate.Options) (validate.Outcome, error) {
	events := make(chan validate.Event, 256)
	outcomeCh := make(chan validateOutcome, 1)
	ctx.Events = events

	names := make([]string, len(models))
	for i, m := range models {
		names[i] = m.SourceName
	}

	go func() {
		outcome := validate.ValidateModels(ctx, models, opts)
		outcomeCh <- validateOutcome{outcome: outcome}
		close(events)
	}()

	program := tea.NewProgram(ui.NewProgressModel("validating", names, events), tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	result := <-outcomeCh
	if uiErr != nil {
		return result.outcome, uiErr
	}
	return result.outcome, result.err
}
