package main

import (
	"github.com/spf13/cobra"

	"projectai/internal/chat"
	"projectai/internal/narrative"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run the interactive project intake in the terminal",
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, _ []string) error {
	app, err := buildApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	runner := chat.NewRunner(app.Directory, app.Coordinator, app.Prompter, cmd.InOrStdin(), cmd.OutOrStdout())
	if _, placeholder := app.Narrator.(narrative.PlaceholderClient); !placeholder {
		runner.Narrator = app.Narrator
		runner.Timeout = app.Config.NarrativeTimeout
	}
	return runner.Run(cmd.Context())
}
