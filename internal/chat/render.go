package chat

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"projectai/internal/analysis"
	"projectai/internal/project"
)

const barLength = 20

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders an amount as "R$ 1.234.567,89".
func FormatBRL(amount float64) string {
	return "R$ " + brl.Sprintf("%.2f", amount)
}

// Bar renders p as a fixed-width bar; partial cells round down.
func Bar(p float64) string {
	filled := int(p * barLength)
	if filled < 0 {
		filled = 0
	}
	if filled > barLength {
		filled = barLength
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barLength-filled)
}

// Interpretation maps a probability to the one-line reading shown under the report.
func Interpretation(p float64) string {
	switch {
	case p >= 0.8:
		return "🎯 Excelente! Continue com o planejamento atual."
	case p >= 0.6:
		return "👍 Bom! Considere as recomendações para melhorar."
	case p >= 0.4:
		return "⚠️ Atenção! Revise o planejamento antes de prosseguir."
	default:
		return "🚨 Alto risco! Reavaliar escopo e recursos."
	}
}

// summary prints the narrator's take on the collected data, when there is
// one, followed by the fixed field listing.
func (r *Runner) summary(ctx context.Context, a project.Attributes) {
	background := fmt.Sprintf("Dados coletados: duração %d meses, orçamento %s, equipe de %d pessoas, recursos %s, complexidade %s, gerente com %d anos de experiência, tipo %s.",
		a.DurationMonths, FormatBRL(a.Budget), a.TeamSize, a.AvailableResources, a.Complexity, a.ManagerExperienceYears, a.ProjectType)
	text := r.narrate(ctx, "summary", background,
		"Faça um resumo amigável dos dados do projeto que coletamos. Seja positivo e mencione se algo chama atenção.",
		"")
	if text != "" {
		r.printf("\n🤖: %s\n", text)
	}
	writeSummary(r.out, a)
}

func writeSummary(w io.Writer, a project.Attributes) {
	fmt.Fprintf(w, "\n📋 RESUMO DO PROJETO\n%s\n", strings.Repeat("-", 30))
	fmt.Fprintf(w, "⏱️  Duração: %d meses\n", a.DurationMonths)
	fmt.Fprintf(w, "💰 Orçamento: %s\n", FormatBRL(a.Budget))
	fmt.Fprintf(w, "👥 Equipe: %d pessoas\n", a.TeamSize)
	fmt.Fprintf(w, "🔧 Recursos: %s\n", a.AvailableResources)
	fmt.Fprintf(w, "🎯 Complexidade: %s\n", a.Complexity)
	fmt.Fprintf(w, "🎓 Exp. Gerente: %d anos\n", a.ManagerExperienceYears)
	fmt.Fprintf(w, "🏗️  Tipo: %s\n", a.ProjectType)
}

// Report renders a hybrid analysis for the console.
func Report(res analysis.Result) string {
	var b strings.Builder
	pred := res.MLPrediction
	pct := pred.SuccessProbability * 100

	fmt.Fprintf(&b, "\n%s\n📊 RESULTADO DA ANÁLISE\n%s\n", rule, rule)
	if pred.SuccessPredicted {
		b.WriteString("\n🎉 STATUS: SUCESSO\n")
	} else {
		b.WriteString("\n⚠️ STATUS: RISCO\n")
	}
	fmt.Fprintf(&b, "📈 Probabilidade de Sucesso: %.1f%%\n", pct)
	fmt.Fprintf(&b, "🎯 Confiança: %s\n", pred.ConfidenceBand)
	fmt.Fprintf(&b, "📊 [%s] %.1f%%\n", Bar(pred.SuccessProbability), pct)

	if len(pred.Recommendations) > 0 {
		b.WriteString("\n💡 RECOMENDAÇÕES:\n")
		for i, rec := range pred.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
		}
	}

	fmt.Fprintf(&b, "\n🔍 INTERPRETAÇÃO:\n%s\n", Interpretation(pred.SuccessProbability))

	fmt.Fprintf(&b, "\n🤖 ANÁLISE ESPECIALISTA:\n%s\n%s\n", strings.Repeat("=", 40), res.Narrative)
	if res.CombinedInsights != "" {
		fmt.Fprintf(&b, "\n✨ %s\n", res.CombinedInsights)
	}
	return b.String()
}
