// Package recommendations turns project attributes and a success probability
// into ordered advisory messages.
package recommendations

import "projectai/internal/project"

// SuccessThreshold is the probability at or above which only the positive
// message is returned.
const SuccessThreshold = 0.6

// Advisory messages, in the order they are emitted.
const (
	MsgExcellent  = "🎉 Excelente! Projeto com alta probabilidade de sucesso"
	MsgDuration   = "⏰ Considere reduzir duração para 12-15 meses"
	MsgBudget     = "💰 Orçamento pode estar baixo"
	MsgTeamSize   = "👥 Equipe muito grande pode gerar overhead"
	MsgResources  = "🔧 Recursos insuficientes são críticos"
	MsgMentorship = "🎓 Considere mentoria para o gerente"
)

type rule struct {
	applies func(project.Attributes) bool
	message string
}

// rules run in order; every matching rule contributes its message.
var rules = []rule{
	{applies: func(a project.Attributes) bool { return a.DurationMonths > 18 }, message: MsgDuration},
	{applies: func(a project.Attributes) bool { return a.Budget < 500000 }, message: MsgBudget},
	{applies: func(a project.Attributes) bool { return a.TeamSize > 20 }, message: MsgTeamSize},
	{applies: func(a project.Attributes) bool { return a.AvailableResources == project.ResourcesLow }, message: MsgResources},
	{applies: func(a project.Attributes) bool { return a.ManagerExperienceYears < 5 }, message: MsgMentorship},
}

// Advise returns the advisory messages for attrs at the given success
// probability. An empty, non-nil slice means no rule fired.
func Advise(attrs project.Attributes, probability float64) []string {
	if probability >= SuccessThreshold {
		return []string{MsgExcellent}
	}
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.applies(attrs) {
			out = append(out, r.message)
		}
	}
	return out
}
