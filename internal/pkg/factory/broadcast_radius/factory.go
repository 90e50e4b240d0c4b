package broadcast_radius

import "math"

// RadiusPolicy расширяет радиус трансляции при ретрае: монотонно
// неубывающий рост с верхней границей. Конкретный множитель и потолок —
// параметры конфигурации, не зашитые константы.
type RadiusPolicy struct {
	growthFactor float64
	capKm        float64
}

func New(growthFactor, capKm float64) *RadiusPolicy {
	if growthFactor < 1 {
		growthFactor = 1
	}
	return &RadiusPolicy{
		growthFactor: growthFactor,
		capKm:        capKm,
	}
}

func (p *RadiusPolicy) Next(currentKm float64) float64 {
	if currentKm <= 0 {
		// Радиус не задан — трансляция идёт без геофильтра, расширять нечего.
		return currentKm
	}

	widened := currentKm * p.growthFactor
	if p.capKm > 0 {
		widened = math.Min(widened, p.capKm)
	}
	return math.Max(widened, currentKm)
}
