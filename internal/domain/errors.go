package domain

import "errors"

var (
	// ErrInvalidTransition возвращается, когда действие недопустимо в текущем статусе записи
	ErrInvalidTransition = errors.New("domain: invalid appointment status transition")

	// ErrNoCounterProposal возвращается при ответе на несуществующее встречное предложение
	ErrNoCounterProposal = errors.New("domain: appointment has no counter-proposal")
)
