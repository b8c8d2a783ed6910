// Package analysis combines the ML prediction with an expert narrative from
// the narrative collaborator. The prediction is always returned; the
// narrative degrades to a fixed message when the collaborator fails.
package analysis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"projectai/internal/narrative"
	"projectai/internal/prediction"
	"projectai/internal/project"
	"projectai/internal/shared/metrics"
	"projectai/internal/shared/telemetry"
	"projectai/internal/shared/util"
)

// Status values.
const (
	StatusCombined = "combined"
	StatusMLOnly   = "ml_only"
)

// DegradedNarrative replaces the narrative when the collaborator fails.
const DegradedNarrative = "Análise especialista indisponível no momento. Resultado baseado apenas no modelo de ML."

const DefaultTimeout = 30 * time.Second

const expertSystemPrompt = `Você é um especialista sênior em gestão de projetos chamado ProjectAI.
Analise o projeto com base nos dados e na previsão do modelo de machine learning.
Responda em português, de forma estruturada e objetiva.`

// Result is one hybrid analysis.
type Result struct {
	MLPrediction     prediction.Result `json:"ml_prediction"`
	Narrative        string            `json:"narrative"`
	Status           string            `json:"status"`
	CombinedInsights string            `json:"combined_insights"`
}

// Predictor is the prediction capability the coordinator needs.
type Predictor interface {
	Predict(ctx context.Context, attrs project.Attributes) (prediction.Result, error)
}

// Coordinator is safe for concurrent use.
type Coordinator struct {
	predictor Predictor
	narrator  narrative.Client
	timeout   time.Duration
	cache     *lru.Cache[string, string]
}

// NewCoordinator builds a coordinator. cacheSize <= 0 disables narrative caching.
func NewCoordinator(p Predictor, n narrative.Client, timeout time.Duration, cacheSize int) *Coordinator {
	if n == nil {
		n = narrative.PlaceholderClient{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Coordinator{predictor: p, narrator: n, timeout: timeout}
	if cacheSize > 0 {
		c.cache, _ = lru.New[string, string](cacheSize)
	}
	return c
}

// Analyze predicts first; prediction errors are returned unchanged.
func (c *Coordinator) Analyze(ctx context.Context, attrs project.Attributes) (Result, error) {
	pred, err := c.predictor.Predict(ctx, attrs)
	if err != nil {
		return Result{}, err
	}

	key := cacheKey(attrs)
	if c.cache != nil {
		if text, ok := c.cache.Get(key); ok {
			metrics.ObserveNarrative("cached", 0)
			return newResult(pred, text, StatusCombined), nil
		}
	}

	start := time.Now()
	text, err := c.narrate(ctx, attrs, pred)
	elapsed := time.Since(start)
	if err != nil {
		metrics.ObserveNarrative(StatusMLOnly, elapsed)
		telemetry.Warn("analysis.narrative_failed", map[string]any{
			"error":       err,
			"duration_ms": float64(elapsed.Microseconds()) / 1000.0,
		})
		return newResult(pred, DegradedNarrative, StatusMLOnly), nil
	}

	metrics.ObserveNarrative(StatusCombined, elapsed)
	if c.cache != nil {
		c.cache.Add(key, text)
	}
	return newResult(pred, text, StatusCombined), nil
}

type completion struct {
	text string
	err  error
}

// narrate bounds the collaborator call even if it ignores cancellation.
func (c *Coordinator) narrate(ctx context.Context, attrs project.Attributes, pred prediction.Result) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := narrative.Request{
		System:      expertSystemPrompt,
		Context:     describe(attrs, pred),
		Prompt:      expertPrompt,
		MaxTokens:   800,
		Temperature: 0.7,
	}
	done := make(chan completion, 1)
	go func() {
		text, err := c.narrator.Complete(callCtx, req)
		done <- completion{text: text, err: err}
	}()

	select {
	case <-callCtx.Done():
		return "", fmt.Errorf("narrative: %w", callCtx.Err())
	case out := <-done:
		if out.err != nil {
			return "", out.err
		}
		text := strings.TrimSpace(out.text)
		if text == "" {
			return "", fmt.Errorf("narrative: empty response")
		}
		return text, nil
	}
}

const expertPrompt = `Com base nos dados do projeto e na previsão do modelo, forneça:
1. 🔍 Principais fatores de risco
2. ✅ Fatores de sucesso
3. 💡 Recomendações específicas e acionáveis
4. 📊 Comparação com benchmarks do setor
5. 🚀 Próximos passos sugeridos`

func describe(a project.Attributes, pred prediction.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Duração: %d meses\n", a.DurationMonths)
	fmt.Fprintf(&b, "Orçamento: R$ %s\n", strconv.FormatFloat(a.Budget, 'f', 2, 64))
	fmt.Fprintf(&b, "Equipe: %d pessoas\n", a.TeamSize)
	fmt.Fprintf(&b, "Recursos disponíveis: %s\n", a.AvailableResources)
	fmt.Fprintf(&b, "Complexidade: %s\n", a.Complexity)
	fmt.Fprintf(&b, "Experiência do gerente: %d anos\n", a.ManagerExperienceYears)
	fmt.Fprintf(&b, "Tipo: %s\n", a.ProjectType)
	fmt.Fprintf(&b, "Probabilidade de sucesso (ML): %.1f%%\n", pred.SuccessProbability*100)
	fmt.Fprintf(&b, "Confiança: %s", pred.ConfidenceBand)
	return b.String()
}

func newResult(pred prediction.Result, text, status string) Result {
	return Result{
		MLPrediction:     pred.Clone(),
		Narrative:        text,
		Status:           status,
		CombinedInsights: insights(pred, status),
	}
}

func insights(pred prediction.Result, status string) string {
	line := fmt.Sprintf("Modelo ML: %.1f%% de probabilidade de sucesso (confiança %s)", pred.SuccessProbability*100, pred.ConfidenceBand)
	if status == StatusCombined {
		return line + " + análise especialista."
	}
	return line + "; análise especialista indisponível."
}

func cacheKey(a project.Attributes) string {
	return util.Fingerprint(
		strconv.Itoa(a.DurationMonths),
		strconv.FormatFloat(a.Budget, 'g', -1, 64),
		strconv.Itoa(a.TeamSize),
		a.AvailableResources,
		a.Complexity,
		strconv.Itoa(a.ManagerExperienceYears),
		a.ProjectType,
	)
}
