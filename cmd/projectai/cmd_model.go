package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"projectai/internal/bootstrap"
	"projectai/internal/classifier"
	"projectai/internal/project"
	"projectai/internal/shared/config"
	localstore "projectai/internal/shared/storage/object/local"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Inspect or publish classifier artifacts",
}

var modelInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Validate the configured artifacts and print training metadata",
	RunE:  runModelInfo,
}

var modelPublishFlags struct {
	from string
}

var modelPublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Validate artifacts in a local directory and upload them to the configured store",
	RunE:  runModelPublish,
}

func init() {
	modelPublishCmd.Flags().StringVar(&modelPublishFlags.from, "from", "./models", "Directory holding the exported artifacts")
	modelCmd.AddCommand(modelInfoCmd)
	modelCmd.AddCommand(modelPublishCmd)
}

func runModelInfo(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	store, err := bootstrap.BuildStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	bundle, err := classifier.Load(cmd.Context(), store)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Store:     %s\n", cfg.ModelStoreType)
	fmt.Fprintf(out, "Trees:     %d\n", len(bundle.Forest.Trees))
	fmt.Fprintf(out, "Accuracy:  %.2f\n", bundle.Metadata.Accuracy)
	fmt.Fprintf(out, "Trained:   %s\n", bundle.Metadata.TrainedAt)
	fmt.Fprintf(out, "Features:  %v\n", bundle.Metadata.Features)
	for _, field := range project.CategoricalFields() {
		fmt.Fprintf(out, "Vocab %-20s %v\n", field+":", bundle.Vocabularies[field])
	}
	return nil
}

func runModelPublish(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if _, err := classifier.Load(ctx, localstore.New(modelPublishFlags.from)); err != nil {
		return fmt.Errorf("refusing to publish invalid artifacts: %w", err)
	}

	cfg := config.Load()
	dst, err := bootstrap.BuildStore(ctx, cfg)
	if err != nil {
		return err
	}
	for _, key := range classifier.ArtifactKeys() {
		f, err := os.Open(filepath.Join(modelPublishFlags.from, key))
		if err != nil {
			return err
		}
		n, err := dst.Put(ctx, key, "application/json", f)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("publish %s: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "published %s (%d bytes)\n", key, n)
	}
	return nil
}
