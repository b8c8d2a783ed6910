// Package chat runs the interactive console conversation: roster login, the
// intake questions, a summary and the hybrid analysis report.
package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"projectai/internal/analysis"
	"projectai/internal/directory"
	"projectai/internal/intake"
	"projectai/internal/narrative"
	"projectai/internal/project"
	"projectai/internal/shared/telemetry"
)

// Analyzer produces the hybrid analysis for a completed project.
type Analyzer interface {
	Analyze(ctx context.Context, attrs project.Attributes) (analysis.Result, error)
}

// Directory is the roster the console authenticates against.
type Directory interface {
	List(ctx context.Context) ([]directory.User, error)
	Lookup(ctx context.Context, id string) (directory.User, error)
}

// Runner owns one console conversation. It is not safe for concurrent use.
type Runner struct {
	Users    Directory
	Analyzer Analyzer
	Prompter intake.Prompter
	// Narrator phrases the welcome, login greeting, summary and goodbye.
	// Static text is printed when it is nil or fails.
	Narrator narrative.Client
	Timeout  time.Duration

	in  *bufio.Scanner
	out io.Writer
}

func NewRunner(users Directory, analyzer Analyzer, prompter intake.Prompter, in io.Reader, out io.Writer) *Runner {
	if prompter == nil {
		prompter = intake.TemplatePrompter{}
	}
	return &Runner{
		Users:    users,
		Analyzer: analyzer,
		Prompter: prompter,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// errInputClosed ends the conversation when the input stream is exhausted.
var errInputClosed = errors.New("input closed")

// Run drives the conversation until the user declines another analysis or
// input ends. End of input is not an error.
func (r *Runner) Run(ctx context.Context) error {
	err := r.run(ctx)
	if errors.Is(err, errInputClosed) {
		r.printf("\n\n👋 Até logo!\n")
		return nil
	}
	return err
}

func (r *Runner) run(ctx context.Context) error {
	r.welcome(ctx)

	user, err := r.authenticate(ctx)
	if err != nil {
		return err
	}

	session := intake.NewSession(r.Prompter, user.IntakeUser())
	session.MarkGreeted()
	for {
		r.printf("\n%s\n🚀 NOVA ANÁLISE DE PROJETO\n%s\n", rule, rule)

		attrs, err := r.collect(ctx, session)
		if err != nil {
			return err
		}
		r.summary(ctx, attrs)

		confirm, err := r.ask("\n❓ Analisar este projeto? (s/n): ")
		if err != nil {
			return err
		}
		if yes(confirm) {
			r.analyze(ctx, attrs)
		}

		again, err := r.ask("\n❓ Analisar outro projeto? (s/n): ")
		if err != nil {
			return err
		}
		if !yes(again) {
			break
		}
		session.Reset()
	}

	r.goodbye(ctx)
	return nil
}

const rule = "============================================================"

func (r *Runner) welcome(ctx context.Context) {
	r.printf("🤖 %s\n", rule)
	r.printf("🎯 CHATBOT DE PREVISÃO DE SUCESSO DE PROJETOS\n")
	r.printf("%s\n", rule)
	text := r.narrate(ctx, "welcome",
		"Início da sessão do chatbot de previsão de sucesso de projetos.",
		"Dê as boas-vindas ao usuário e explique em poucas frases que você vai coletar dados do projeto para prever seu sucesso.",
		"Olá! Vou te ajudar a prever o sucesso do seu projeto!")
	r.printf("%s\n", text)
	r.printf("%s\n\n", rule)
}

func (r *Runner) greet(ctx context.Context, user directory.User) {
	text := r.narrate(ctx, "greeting",
		fmt.Sprintf("Usuário autenticado: %s, cargo %s, %d anos de experiência, %d projetos no histórico.",
			user.Name, user.Role, user.ExperienceYears, user.ProjectHistoryCount),
		"Cumprimente o usuário pelo nome de forma personalizada, considerando o cargo e a experiência dele.",
		"")
	if text == "" {
		r.printf("\n✅ Bem-vindo(a), %s!\n", user.Name)
	} else {
		r.printf("\n🤖: %s\n", text)
	}
}

func (r *Runner) goodbye(ctx context.Context) {
	text := r.narrate(ctx, "goodbye",
		"Fim da sessão.",
		"O usuário está encerrando a sessão. Faça uma despedida amigável e profissional.",
		"👋 Obrigado por usar o Chatbot!")
	r.printf("\n%s\n", text)
}

// narrate returns the narrator's reply, or fallback when there is no
// narrator, the call fails or the reply is blank.
func (r *Runner) narrate(ctx context.Context, step, background, prompt, fallback string) string {
	if r.Narrator == nil {
		return fallback
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := r.Narrator.Complete(callCtx, narrative.Request{
		System:      intake.SystemPrompt,
		Context:     background,
		Prompt:      prompt,
		MaxTokens:   200,
		Temperature: 0.7,
	})
	text = strings.TrimSpace(text)
	if err != nil || text == "" {
		telemetry.Warn("chat.narrative_fallback", map[string]any{"step": step, "error": err})
		return fallback
	}
	return text
}

func (r *Runner) authenticate(ctx context.Context) (directory.User, error) {
	r.printf("🔐 IDENTIFICAÇÃO DO USUÁRIO\n%s\n", strings.Repeat("-", 30))

	users, err := r.Users.List(ctx)
	if err != nil {
		return directory.User{}, fmt.Errorf("list users: %w", err)
	}
	r.printf("Usuários disponíveis:\n")
	for _, u := range users {
		r.printf("  %s. %s (%s)\n", u.ID, u.Name, u.Role)
	}

	for {
		raw, err := r.ask("\nDigite seu ID de usuário: ")
		if err != nil {
			return directory.User{}, err
		}
		id, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			r.printf("❌ Digite um número válido.\n")
			continue
		}
		user, err := r.Users.Lookup(ctx, strconv.Itoa(id))
		if errors.Is(err, directory.ErrNotFound) {
			r.printf("❌ Usuário não encontrado. Tente novamente.\n")
			continue
		}
		if err != nil {
			return directory.User{}, fmt.Errorf("lookup user: %w", err)
		}

		r.greet(ctx, user)
		r.printf("📊 Cargo: %s\n", user.Role)
		r.printf("📈 Histórico: %d projetos\n", user.ProjectHistoryCount)
		r.printf("🎯 Taxa de sucesso: %s%%\n", strconv.FormatFloat(user.AverageSuccessRate, 'f', -1, 64))
		return user, nil
	}
}

func (r *Runner) collect(ctx context.Context, session *intake.Session) (project.Attributes, error) {
	r.printf("\n📋 DADOS DO PROJETO\n%s\n", strings.Repeat("-", 30))
	for {
		if attrs, ok := session.Attributes(); ok {
			return attrs, nil
		}
		question, err := session.Question(ctx)
		if err != nil {
			return project.Attributes{}, err
		}
		raw, err := r.ask("\n🤖: " + question + "\n👤 ")
		if err != nil {
			return project.Attributes{}, err
		}

		var inputErr *intake.InputError
		switch err := session.Answer(raw); {
		case errors.As(err, &inputErr):
			r.printf("%s\n", inputErr.Message)
		case err != nil:
			return project.Attributes{}, err
		}
	}
}

func (r *Runner) analyze(ctx context.Context, attrs project.Attributes) {
	r.printf("\n🔮 ANALISANDO...\n")
	res, err := r.Analyzer.Analyze(ctx, attrs)
	if err != nil {
		telemetry.Error("chat.analysis_failed", map[string]any{"error": err})
		r.printf("❌ Não foi possível fazer a análise.\n")
		return
	}
	r.printf("%s", Report(res))
}

// ask writes prompt and reads one line. It returns errInputClosed at end of input.
func (r *Runner) ask(prompt string) (string, error) {
	r.printf("%s", prompt)
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errInputClosed
	}
	return r.in.Text(), nil
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func yes(answer string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == "s"
}
