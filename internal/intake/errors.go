package intake

import "errors"

// ErrInvalidFieldInput matches every *InputError.
var ErrInvalidFieldInput = errors.New("invalid field input")

// ErrComplete is returned when answering a session that has every field.
var ErrComplete = errors.New("intake already complete")

// Corrective messages.
const (
	MsgInvalidNumber = "❌ Digite um número válido!"
	MsgInvalidFormat = "❌ Formato inválido. Tente novamente."
	MsgOutOfRange    = "❌ Valor inválido!"
)

// InputError describes a rejected answer. The session stays on Field.
type InputError struct {
	Field   string
	Input   string
	Message string
}

func (e *InputError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidFieldInput
}
