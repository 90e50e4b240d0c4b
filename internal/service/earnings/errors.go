package earnings

import "errors"

var (
	ErrInvalidFee      = errors.New("fee must be positive")
	ErrNoActiveRuleSet = errors.New("no active earnings rule set")

	// ErrNoMatchingBand означает дыру в тарифной конфигурации. Ошибка
	// всплывает наружу и блокирует назначение: тихий ноль здесь — потеря денег.
	ErrNoMatchingBand = errors.New("fee matches no rule band")

	ErrInvalidRuleSet = errors.New("invalid earnings rule set")
)
