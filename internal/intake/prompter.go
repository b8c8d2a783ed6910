package intake

import (
	"context"
	"fmt"
	"strings"
	"time"

	"projectai/internal/narrative"
	"projectai/internal/shared/telemetry"
)

// User is the authenticated person an intake is run for.
type User struct {
	ID              string
	Name            string
	Role            string
	ExperienceYears int
}

// PromptRequest is everything a prompter may use to phrase a question.
type PromptRequest struct {
	Field           Field
	IsFirstQuestion bool
	Options         []string
	User            *User
	// Greeted is set when the front end already welcomed the user.
	Greeted bool
}

// Prompter phrases the question for the current field.
type Prompter interface {
	Prompt(ctx context.Context, req PromptRequest) (string, error)
}

// TemplatePrompter renders fixed question templates.
type TemplatePrompter struct{}

func (TemplatePrompter) Prompt(_ context.Context, req PromptRequest) (string, error) {
	var b strings.Builder
	if req.IsFirstQuestion && !req.Greeted {
		if req.User != nil && req.User.Name != "" {
			fmt.Fprintf(&b, "Olá, %s! Vamos analisar seu projeto.\n", req.User.Name)
		} else {
			b.WriteString("Olá! Vamos analisar seu projeto.\n")
		}
	}
	b.WriteString(req.Field.Template)
	for i, opt := range req.Options {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, opt)
	}
	return b.String(), nil
}

// SystemPrompt frames the assistant persona for conversational prompts.
const SystemPrompt = `Você é um assistente especialista em gestão de projetos chamado ProjectAI.
Seu objetivo é ajudar gestores a avaliar o sucesso de projetos usando dados e IA.
Seja conversacional, profissional e faça perguntas de forma natural.
Quando coletar dados, explique brevemente por que cada informação é importante.
Use emojis para tornar a conversa mais amigável.`

// NarrativePrompter asks the narrative collaborator to phrase questions and
// falls back to Fallback when it fails.
type NarrativePrompter struct {
	Client   narrative.Client
	Fallback Prompter
	Timeout  time.Duration
}

func (p *NarrativePrompter) Prompt(ctx context.Context, req PromptRequest) (string, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	userName := "usuário"
	if req.User != nil && req.User.Name != "" {
		userName = req.User.Name
	}
	prompt := fmt.Sprintf("Faça uma pergunta natural sobre: %s. Explique brevemente por que essa informação é importante para análise.", req.Field.Topic)
	if !req.IsFirstQuestion || req.Greeted {
		prompt += " Não cumprimente o usuário novamente; a conversa já começou."
	}

	text, err := p.Client.Complete(callCtx, narrative.Request{
		System:      SystemPrompt,
		Context:     fmt.Sprintf("Coletando %s para análise de projeto. Usuário: %s", req.Field.Name, userName),
		Prompt:      prompt,
		MaxTokens:   200,
		Temperature: 0.7,
	})
	text = strings.TrimSpace(text)
	if err != nil || text == "" {
		telemetry.Warn("intake.prompt_fallback", map[string]any{"field": req.Field.Name, "error": err})
		fallback := p.Fallback
		if fallback == nil {
			fallback = TemplatePrompter{}
		}
		return fallback.Prompt(ctx, req)
	}
	if len(req.Options) > 0 {
		text += "\n   Opções: " + strings.Join(req.Options, ", ")
	}
	return text, nil
}
