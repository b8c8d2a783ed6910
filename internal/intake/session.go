// Package intake runs the question-by-question collection of project
// attributes. A Session is owned by one conversation and is not safe for
// concurrent use; the HTTP Store serializes access per session.
package intake

import (
	"context"
	"fmt"

	"projectai/internal/project"
	"projectai/internal/shared/metrics"
)

// State is either awaiting one field or complete.
type State struct {
	Complete bool   `json:"complete"`
	Field    string `json:"field,omitempty"`
}

// Session holds one intake conversation.
type Session struct {
	prompter Prompter
	user     *User

	index          int
	values         project.Attributes
	collected      map[string]any
	questionsAsked int
	askedIndex     int
	lastQuestion   string
	greeted        bool
}

// NewSession starts an intake awaiting the first field. A nil prompter uses
// TemplatePrompter.
func NewSession(p Prompter, user *User) *Session {
	if p == nil {
		p = TemplatePrompter{}
	}
	s := &Session{prompter: p, user: user}
	s.Reset()
	return s
}

// Reset clears every collected value and zeroes the question counter.
func (s *Session) Reset() {
	s.index = 0
	s.values = project.Attributes{}
	s.collected = make(map[string]any, len(Fields))
	s.questionsAsked = 0
	s.askedIndex = -1
	s.lastQuestion = ""
}

// MarkGreeted records that the user was welcomed before the intake began, so
// the first question carries no greeting. It survives Reset.
func (s *Session) MarkGreeted() {
	s.greeted = true
}

// State reports the current state.
func (s *Session) State() State {
	if s.index >= len(Fields) {
		return State{Complete: true}
	}
	return State{Field: Fields[s.index].Name}
}

// Current returns the field being awaited.
func (s *Session) Current() (Field, bool) {
	if s.index >= len(Fields) {
		return Field{}, false
	}
	return Fields[s.index], true
}

// User returns the user the session was started for.
func (s *Session) User() *User {
	return s.user
}

// QuestionsAsked counts distinct field questions generated so far.
func (s *Session) QuestionsAsked() int {
	return s.questionsAsked
}

// Question returns the prompt for the awaited field. The prompter is called
// once per field; asking again before a valid answer returns the same text
// and does not count as a new question.
func (s *Session) Question(ctx context.Context) (string, error) {
	f, ok := s.Current()
	if !ok {
		return "", ErrComplete
	}
	if s.askedIndex == s.index {
		return s.lastQuestion, nil
	}
	text, err := s.prompter.Prompt(ctx, PromptRequest{
		Field:           f,
		IsFirstQuestion: s.questionsAsked == 0,
		Options:         f.Options,
		User:            s.user,
		Greeted:         s.greeted,
	})
	if err != nil {
		return "", fmt.Errorf("prompt %s: %w", f.Name, err)
	}
	s.questionsAsked++
	s.askedIndex = s.index
	s.lastQuestion = text
	return text, nil
}

// Answer parses raw for the awaited field. A valid answer advances; an
// invalid one returns *InputError and leaves the state unchanged.
func (s *Session) Answer(raw string) error {
	f, ok := s.Current()
	if !ok {
		return ErrComplete
	}
	value, err := s.parse(f, raw)
	if err != nil {
		metrics.IncIntakeAnswer(f.Name, false)
		return err
	}
	metrics.IncIntakeAnswer(f.Name, true)
	s.collected[f.Name] = value
	s.index++
	return nil
}

// Collected returns a copy of the values accepted so far, keyed by field.
func (s *Session) Collected() map[string]any {
	out := make(map[string]any, len(s.collected))
	for k, v := range s.collected {
		out[k] = v
	}
	return out
}

// Attributes returns the completed record once every field is answered.
func (s *Session) Attributes() (project.Attributes, bool) {
	if s.index < len(Fields) {
		return project.Attributes{}, false
	}
	return s.values, true
}

func (s *Session) parse(f Field, raw string) (any, error) {
	switch f.Kind {
	case KindInteger:
		v, err := ParseInteger(f, raw)
		if err != nil {
			return nil, err
		}
		switch f.Name {
		case project.FieldDuration:
			s.values.DurationMonths = v
		case project.FieldTeamSize:
			s.values.TeamSize = v
		case project.FieldManagerExperience:
			s.values.ManagerExperienceYears = v
		}
		return v, nil
	case KindBudget:
		v, err := ParseBudget(raw)
		if err != nil {
			return nil, err
		}
		s.values.Budget = v
		return v, nil
	case KindChoice:
		v, err := MatchChoice(f, raw)
		if err != nil {
			return nil, err
		}
		switch f.Name {
		case project.FieldResources:
			s.values.AvailableResources = v
		case project.FieldComplexity:
			s.values.Complexity = v
		case project.FieldProjectType:
			s.values.ProjectType = v
		}
		return v, nil
	default:
		return nil, fmt.Errorf("field %s has unknown kind %d", f.Name, f.Kind)
	}
}
