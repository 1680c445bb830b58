package pricing

import "avenqor/internal/domain/value"

// Calculator prices custom-course and AI-strategy selections. Prices are
// pure weighted sums over the config tables: no rounding happens before the
// final integer, and unknown or empty field values contribute zero, so the
// result is always ≥ base and never decreases when options are added.
type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) Calculator {
	return Calculator{cfg: cfg}
}

// CustomCoursePrice returns the token cost of a tailored course request.
func (c Calculator) CustomCoursePrice(sel value.CourseSelection) int64 {
	w := c.cfg.CustomCourse

	price := w.Base
	price += w.Experience[sel.Experience]
	price += w.Deposit[sel.Deposit]
	price += w.Risk[sel.Risk]
	price += int64(len(dedupeMarkets(sel.Markets))) * w.PerMarket
	price += w.Style[sel.Style]
	price += int64(len(dedupeWeekdays(sel.Weekdays))) * w.PerWeekday
	price += int64(len(dedupePlatforms(sel.Platforms))) * w.PerPlatform
	price += extraLanguages(sel.Languages) * w.ExtraLanguage

	return price
}

// AIStrategyPrice returns the token cost of an AI-strategy request.
func (c Calculator) AIStrategyPrice(sel value.StrategySelection) int64 {
	w := c.cfg.AIStrategy

	price := w.Base
	price += w.Experience[sel.Experience]
	price += w.Deposit[sel.Deposit]
	price += w.Risk[sel.Risk]
	price += int64(len(dedupeMarkets(sel.Markets))) * w.PerMarket
	price += w.Style[sel.Style]
	price += w.TimeCommitment[sel.TimeCommitment]
	price += int64(len(dedupePlatforms(sel.Platforms))) * w.PerPlatform
	price += extraLanguages(sel.Languages) * w.ExtraLanguage

	return price
}

// extraLanguages maps the language count onto a surcharge multiplier: the
// first language is included, only the second one costs.
func extraLanguages(languages int) int64 {
	if languages <= 1 {
		return 0
	}

	return int64(languages - 1)
}

func dedupeMarkets(markets []value.Market) []value.Market {
	return dedupe(markets)
}

func dedupeWeekdays(weekdays []value.Weekday) []value.Weekday {
	return dedupe(weekdays)
}

func dedupePlatforms(platforms []value.Platform) []value.Platform {
	return dedupe(platforms)
}

func dedupe[T comparable](items []T) []T {
	if len(items) < 2 {
		return items
	}

	seen := make(map[T]struct{}, len(items))
	result := make([]T, 0, len(items))

	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}

		seen[item] = struct{}{}
		result = append(result, item)
	}

	return result
}
