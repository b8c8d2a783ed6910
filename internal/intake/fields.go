package intake

import "projectai/internal/project"

// Kind selects how a raw answer is parsed.
type Kind int

const (
	KindInteger Kind = iota
	KindBudget
	KindChoice
)

// Field describes one question of the intake.
type Field struct {
	Name     string
	Kind     Kind
	Min, Max int
	Options  []string
	// Topic is the plain question given to prompters.
	Topic string
	// Template is the static question shown by TemplatePrompter.
	Template string
}

// Fields is the fixed question order.
var Fields = []Field{
	{
		Name:     project.FieldDuration,
		Kind:     KindInteger,
		Min:      project.MinDuration,
		Max:      project.MaxDuration,
		Topic:    "Quantos meses o projeto vai durar?",
		Template: "📅 Duração do projeto em meses (3-36)?",
	},
	{
		Name:     project.FieldBudget,
		Kind:     KindBudget,
		Topic:    "Qual o orçamento total do projeto em R$?",
		Template: "💰 Orçamento total em R$ (ex: 1000000)?",
	},
	{
		Name:     project.FieldTeamSize,
		Kind:     KindInteger,
		Min:      project.MinTeamSize,
		Max:      project.MaxTeamSize,
		Topic:    "Quantas pessoas vão trabalhar no projeto?",
		Template: "👥 Quantas pessoas na equipe (3-50)?",
	},
	{
		Name:     project.FieldManagerExperience,
		Kind:     KindInteger,
		Min:      project.MinManagerExperience,
		Max:      project.MaxManagerExperience,
		Topic:    "Quantos anos de experiência tem o gerente?",
		Template: "🎓 Anos de experiência do gerente (0-30)?",
	},
	{
		Name:     project.FieldResources,
		Kind:     KindChoice,
		Options:  project.Options(project.FieldResources),
		Topic:    "Recursos disponíveis?",
		Template: "🔧 Recursos disponíveis?",
	},
	{
		Name:     project.FieldComplexity,
		Kind:     KindChoice,
		Options:  project.Options(project.FieldComplexity),
		Topic:    "Complexidade técnica?",
		Template: "🎯 Complexidade do projeto?",
	},
	{
		Name:     project.FieldProjectType,
		Kind:     KindChoice,
		Options:  project.Options(project.FieldProjectType),
		Topic:    "Tipo do projeto?",
		Template: "🏗️ Tipo do projeto?",
	},
}

// FieldByName returns the field definition for name.
func FieldByName(name string) (Field, bool) {
	for _, f := range Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
