package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"projectai/internal/project"
)

var predictFlags struct {
	attrs   project.Attributes
	analyze bool
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Score one project and print the result as JSON",
	RunE:  runPredict,
}

func init() {
	f := predictCmd.Flags()
	a := &predictFlags.attrs
	f.IntVar(&a.DurationMonths, "duration", 0, "Duration in months (required)")
	f.Float64Var(&a.Budget, "budget", 0, "Budget in BRL (required)")
	f.IntVar(&a.TeamSize, "team-size", 0, "Team size (required)")
	f.StringVar(&a.AvailableResources, "resources", "", "Available resources: Baixo, Médio, Alto (required)")
	f.StringVar(&a.Complexity, "complexity", "", "Complexity: Baixa, Média, Alta (required)")
	f.IntVar(&a.ManagerExperienceYears, "manager-experience", 0, "Manager experience in years")
	f.StringVar(&a.ProjectType, "type", "", "Project type: TI, Construção, Marketing, P&D (required)")
	f.BoolVar(&predictFlags.analyze, "analyze", false, "Add the expert narrative")

	for _, name := range []string{"duration", "budget", "team-size", "resources", "complexity", "type"} {
		_ = predictCmd.MarkFlagRequired(name)
	}
}

func runPredict(cmd *cobra.Command, _ []string) error {
	app, err := buildApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	var out any
	if predictFlags.analyze {
		out, err = app.Coordinator.Analyze(cmd.Context(), predictFlags.attrs)
	} else {
		out, err = app.Predictions.Predict(cmd.Context(), predictFlags.attrs)
	}
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
