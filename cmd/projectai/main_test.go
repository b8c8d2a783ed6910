package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectai/internal/prediction"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ENV", "dev")
	t.Setenv("MODEL_STORE", "local")
	t.Setenv("MODEL_DIR", "../../models")
	t.Setenv("USERS_CSV_PATH", "../../data/users_data.csv")
	t.Setenv("LLM_PROVIDER", "none")
	t.Setenv("DATABASE_URL", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPredictCommand(t *testing.T) {
	out, err := execute(t, "predict",
		"--duration", "24", "--budget", "200000", "--team-size", "25",
		"--resources", "Baixo", "--complexity", "Alta", "--manager-experience", "2", "--type", "TI")
	require.NoError(t, err, out)

	var res prediction.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.SuccessPredicted)
	assert.Equal(t, prediction.BandMedium, res.ConfidenceBand)
	assert.Len(t, res.Recommendations, 5)
}

func TestModelInfoCommand(t *testing.T) {
	out, err := execute(t, "model", "info")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Trees:     6")
	assert.True(t, strings.Contains(out, "Baixo"))
}

func TestModelPublishToLocalStore(t *testing.T) {
	dst := t.TempDir()
	t.Setenv("MODEL_DIR", dst)
	t.Setenv("ENV", "dev")
	t.Setenv("MODEL_STORE", "local")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"model", "publish", "--from", "../../models"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()), out.String())
	assert.Equal(t, 5, strings.Count(out.String(), "published "))
}
