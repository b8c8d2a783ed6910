package intake

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"projectai/internal/project"
)

// ParseInteger parses a whole number and enforces [f.Min, f.Max].
func ParseInteger(f Field, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &InputError{Field: f.Name, Input: raw, Message: MsgInvalidNumber}
	}
	if v < f.Min || v > f.Max {
		return 0, &InputError{
			Field:   f.Name,
			Input:   raw,
			Message: fmt.Sprintf("%s Informe um valor entre %d e %d.", MsgOutOfRange, f.Min, f.Max),
		}
	}
	return v, nil
}

// ParseBudget reads an amount in Brazilian notation: an optional "R$", "."
// as thousands separator and "," as decimal separator.
func ParseBudget(raw string) (float64, error) {
	clean := strings.ReplaceAll(raw, "R$", "")
	clean = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, clean)
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &InputError{Field: project.FieldBudget, Input: raw, Message: MsgInvalidFormat}
	}
	if v <= 0 {
		return 0, &InputError{Field: project.FieldBudget, Input: raw, Message: MsgOutOfRange + " O orçamento deve ser maior que zero."}
	}
	return v, nil
}

// MatchChoice resolves raw to one of f.Options. It accepts the option text in
// any case, with or without accents, or its 1-based position.
func MatchChoice(f Field, raw string) (string, error) {
	in := strings.TrimSpace(raw)
	for _, opt := range f.Options {
		if strings.EqualFold(in, opt) {
			return opt, nil
		}
	}
	if n, err := strconv.Atoi(in); err == nil && n >= 1 && n <= len(f.Options) {
		return f.Options[n-1], nil
	}
	folded := foldAccents(in)
	for _, opt := range f.Options {
		if strings.EqualFold(folded, foldAccents(opt)) {
			return opt, nil
		}
	}
	return "", &InputError{
		Field:   f.Name,
		Input:   raw,
		Message: "❌ Escolha uma das opções: " + strings.Join(f.Options, ", "),
	}
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
