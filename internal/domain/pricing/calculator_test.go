package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"avenqor/internal/domain/pricing"
	"avenqor/internal/domain/value"
)

func TestCustomCoursePriceEmptySelection(t *testing.T) {
	rq := require.New(t)

	cfg := pricing.DefaultConfig()
	calc := pricing.NewCalculator(cfg)

	price := calc.CustomCoursePrice(value.CourseSelection{})

	rq.Equal(cfg.CustomCourse.Base, price)
	rq.Positive(price)
}

func TestCustomCoursePriceNeverBelowBase(t *testing.T) {
	rq := require.New(t)

	cfg := pricing.DefaultConfig()
	calc := pricing.NewCalculator(cfg)

	selections := []value.CourseSelection{
		{},
		{Experience: value.ExperienceBeginner},
		{Experience: value.ExperienceAdvanced, Risk: value.RiskHigh},
		{Markets: []value.Market{value.MarketForex, value.MarketCrypto, value.MarketBinary}},
		{Weekdays: []value.Weekday{value.WeekdayMon, value.WeekdaySat, value.WeekdaySun}},
		{Platforms: []value.Platform{"mt4", "mt5", "tradingview"}},
		{Languages: 2},
		{
			Experience: value.ExperienceAdvanced,
			Deposit:    value.DepositVeryHigh,
			Risk:       value.RiskHigh,
			Markets:    []value.Market{value.MarketForex, value.MarketCrypto, value.MarketBinary},
			Style:      value.StyleScalping,
			Weekdays: []value.Weekday{
				value.WeekdayMon, value.WeekdayTue, value.WeekdayWed, value.WeekdayThu,
				value.WeekdayFri, value.WeekdaySat, value.WeekdaySun,
			},
			Platforms: []value.Platform{"mt4", "mt5", "tradingview", "ctrader"},
			Languages: 2,
		},
	}

	for _, sel := range selections {
		rq.GreaterOrEqual(calc.CustomCoursePrice(sel), cfg.CustomCourse.Base)
	}
}

func TestCustomCoursePriceMonotonicity(t *testing.T) {
	rq := require.New(t)

	calc := pricing.NewCalculator(pricing.DefaultConfig())

	base := value.CourseSelection{
		Experience: value.ExperienceIntermediate,
		Deposit:    value.DepositMedium,
		Markets:    []value.Market{value.MarketForex},
		Languages:  1,
	}
	basePrice := calc.CustomCoursePrice(base)

	withMarket := base
	withMarket.Markets = append([]value.Market{value.MarketCrypto}, base.Markets...)
	rq.GreaterOrEqual(calc.CustomCoursePrice(withMarket), basePrice)

	withPlatform := base
	withPlatform.Platforms = []value.Platform{"mt5"}
	rq.GreaterOrEqual(calc.CustomCoursePrice(withPlatform), basePrice)

	withWeekday := base
	withWeekday.Weekdays = []value.Weekday{value.WeekdayWed}
	rq.GreaterOrEqual(calc.CustomCoursePrice(withWeekday), basePrice)

	withSecondLanguage := base
	withSecondLanguage.Languages = 2
	rq.GreaterOrEqual(calc.CustomCoursePrice(withSecondLanguage), basePrice)
}

func TestCustomCoursePriceOrdering(t *testing.T) {
	rq := require.New(t)

	calc := pricing.NewCalculator(pricing.DefaultConfig())

	maximal := value.CourseSelection{
		Experience: value.ExperienceAdvanced,
		Deposit:    value.DepositHigh,
		Risk:       value.RiskHigh,
		Markets:    []value.Market{value.MarketForex, value.MarketCrypto},
		Languages:  2,
	}
	minimal := value.CourseSelection{
		Experience: value.ExperienceBeginner,
		Deposit:    value.DepositLow,
		Risk:       value.RiskLow,
		Markets:    []value.Market{value.MarketForex},
		Languages:  1,
	}

	rq.Greater(calc.CustomCoursePrice(maximal), calc.CustomCoursePrice(minimal))
}

func TestCustomCoursePriceDuplicatesIgnored(t *testing.T) {
	rq := require.New(t)

	calc := pricing.NewCalculator(pricing.DefaultConfig())

	once := value.CourseSelection{Markets: []value.Market{value.MarketForex}}
	twice := value.CourseSelection{Markets: []value.Market{value.MarketForex, value.MarketForex}}

	rq.Equal(calc.CustomCoursePrice(once), calc.CustomCoursePrice(twice))
}

func TestCustomCoursePriceUnknownPlatformPricesAsListed(t *testing.T) {
	rq := require.New(t)

	cfg := pricing.DefaultConfig()
	calc := pricing.NewCalculator(cfg)

	sel := value.CourseSelection{Platforms: []value.Platform{"obscure-terminal"}}

	rq.Equal(cfg.CustomCourse.Base+cfg.CustomCourse.PerPlatform, calc.CustomCoursePrice(sel))
}

func TestAIStrategyPrice(t *testing.T) {
	rq := require.New(t)

	cfg := pricing.DefaultConfig()
	calc := pricing.NewCalculator(cfg)

	rq.Equal(cfg.AIStrategy.Base, calc.AIStrategyPrice(value.StrategySelection{}))

	sel := value.StrategySelection{
		Experience:     value.ExperienceAdvanced,
		TimeCommitment: value.CommitmentIntensive,
		Markets:        []value.Market{value.MarketCrypto},
		Languages:      2,
	}

	want := cfg.AIStrategy.Base +
		cfg.AIStrategy.Experience[value.ExperienceAdvanced] +
		cfg.AIStrategy.TimeCommitment[value.CommitmentIntensive] +
		cfg.AIStrategy.PerMarket +
		cfg.AIStrategy.ExtraLanguage

	rq.Equal(want, calc.AIStrategyPrice(sel))
}

func TestConfigValidate(t *testing.T) {
	rq := require.New(t)

	rq.NoError(pricing.DefaultConfig().Validate())

	broken := pricing.DefaultConfig()
	broken.CustomCourse.Base = 0
	rq.Error(broken.Validate())

	negative := pricing.DefaultConfig()
	negative.AIStrategy.Risk[value.RiskHigh] = -1
	rq.Error(negative.Validate())

	noRates := pricing.DefaultConfig()
	noRates.Rates = nil
	rq.Error(noRates.Validate())
}
