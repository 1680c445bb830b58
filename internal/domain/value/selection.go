package value

import "fmt"

// Enumerations of the custom-course and AI-strategy form fields. The zero
// value of every type is the "not chosen" sentinel and prices as zero.

type ExperienceTier string

const (
	ExperienceNone         ExperienceTier = ""
	ExperienceBeginner     ExperienceTier = "beginner"
	ExperienceIntermediate ExperienceTier = "intermediate"
	ExperienceAdvanced     ExperienceTier = "advanced"
)

type DepositBracket string

const (
	DepositNone     DepositBracket = ""
	DepositLow      DepositBracket = "low"
	DepositMedium   DepositBracket = "medium"
	DepositHigh     DepositBracket = "high"
	DepositVeryHigh DepositBracket = "veryHigh"
)

type RiskTolerance string

const (
	RiskNone   RiskTolerance = ""
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

type Market string

const (
	MarketForex  Market = "forex"
	MarketCrypto Market = "crypto"
	MarketBinary Market = "binary"
)

type TradingStyle string

const (
	StyleNone       TradingStyle = ""
	StyleScalping   TradingStyle = "scalping"
	StyleDayTrading TradingStyle = "dayTrading"
	StyleSwing      TradingStyle = "swing"
	StylePosition   TradingStyle = "position"
)

type Weekday string

const (
	WeekdayMon Weekday = "mon"
	WeekdayTue Weekday = "tue"
	WeekdayWed Weekday = "wed"
	WeekdayThu Weekday = "thu"
	WeekdayFri Weekday = "fri"
	WeekdaySat Weekday = "sat"
	WeekdaySun Weekday = "sun"
)

type TimeCommitment string

const (
	CommitmentNone      TimeCommitment = ""
	CommitmentCasual    TimeCommitment = "casual"
	CommitmentRegular   TimeCommitment = "regular"
	CommitmentIntensive TimeCommitment = "intensive"
)

// Platform is a trading-platform slug from the platform catalog (mt4, mt5,
// tradingview, ...). Unknown slugs are tolerated and price as zero.
type Platform string

// CourseSelection is the custom-course form state. Fields left at their zero
// value contribute nothing to the price.
type CourseSelection struct {
	Experience ExperienceTier `json:"experience,omitempty"`
	Deposit    DepositBracket `json:"deposit,omitempty"`
	Risk       RiskTolerance  `json:"risk,omitempty"`
	Markets    []Market       `json:"markets,omitempty"`
	Style      TradingStyle   `json:"style,omitempty"`
	Weekdays   []Weekday      `json:"weekdays,omitempty"`
	Platforms  []Platform     `json:"platforms,omitempty"`
	Languages  int            `json:"languages,omitempty"`
}

// StrategySelection is the AI-strategy form state.
type StrategySelection struct {
	Experience     ExperienceTier `json:"experience,omitempty"`
	Deposit        DepositBracket `json:"deposit,omitempty"`
	Risk           RiskTolerance  `json:"risk,omitempty"`
	Markets        []Market       `json:"markets,omitempty"`
	Style          TradingStyle   `json:"style,omitempty"`
	TimeCommitment TimeCommitment `json:"timeCommitment,omitempty"`
	Platforms      []Platform     `json:"platforms,omitempty"`
	Languages      int            `json:"languages,omitempty"`
}

// Validate rejects values outside the form's enumerations. Zero values pass:
// an untouched field is a valid "not chosen".
func (s CourseSelection) Validate() error {
	if err := validateShared(s.Experience, s.Deposit, s.Risk, s.Style, s.Markets); err != nil {
		return err
	}

	for _, d := range s.Weekdays {
		if _, err := ParseWeekday(string(d)); err != nil {
			return err
		}
	}

	return nil
}

func (s StrategySelection) Validate() error {
	if err := validateShared(s.Experience, s.Deposit, s.Risk, s.Style, s.Markets); err != nil {
		return err
	}

	if _, err := ParseTimeCommitment(string(s.TimeCommitment)); err != nil {
		return err
	}

	return nil
}

func validateShared(
	experience ExperienceTier,
	deposit DepositBracket,
	risk RiskTolerance,
	style TradingStyle,
	markets []Market,
) error {
	if _, err := ParseExperienceTier(string(experience)); err != nil {
		return err
	}

	if _, err := ParseDepositBracket(string(deposit)); err != nil {
		return err
	}

	if _, err := ParseRiskTolerance(string(risk)); err != nil {
		return err
	}

	if _, err := ParseTradingStyle(string(style)); err != nil {
		return err
	}

	for _, m := range markets {
		if _, err := ParseMarket(string(m)); err != nil {
			return err
		}
	}

	return nil
}

func ParseExperienceTier(s string) (ExperienceTier, error) {
	switch ExperienceTier(s) {
	case ExperienceNone, ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return ExperienceTier(s), nil
	default:
		return "", fmt.Errorf("unknown experience tier %q", s)
	}
}

func ParseDepositBracket(s string) (DepositBracket, error) {
	switch DepositBracket(s) {
	case DepositNone, DepositLow, DepositMedium, DepositHigh, DepositVeryHigh:
		return DepositBracket(s), nil
	default:
		return "", fmt.Errorf("unknown deposit bracket %q", s)
	}
}

func ParseRiskTolerance(s string) (RiskTolerance, error) {
	switch RiskTolerance(s) {
	case RiskNone, RiskLow, RiskMedium, RiskHigh:
		return RiskTolerance(s), nil
	default:
		return "", fmt.Errorf("unknown risk tolerance %q", s)
	}
}

func ParseMarket(s string) (Market, error) {
	switch Market(s) {
	case MarketForex, MarketCrypto, MarketBinary:
		return Market(s), nil
	default:
		return "", fmt.Errorf("unknown market %q", s)
	}
}

func ParseTradingStyle(s string) (TradingStyle, error) {
	switch TradingStyle(s) {
	case StyleNone, StyleScalping, StyleDayTrading, StyleSwing, StylePosition:
		return TradingStyle(s), nil
	default:
		return "", fmt.Errorf("unknown trading style %q", s)
	}
}

func ParseWeekday(s string) (Weekday, error) {
	switch Weekday(s) {
	case WeekdayMon, WeekdayTue, WeekdayWed, WeekdayThu, WeekdayFri, WeekdaySat, WeekdaySun:
		return Weekday(s), nil
	default:
		return "", fmt.Errorf("unknown weekday %q", s)
	}
}

func ParseTimeCommitment(s string) (TimeCommitment, error) {
	switch TimeCommitment(s) {
	case CommitmentNone, CommitmentCasual, CommitmentRegular, CommitmentIntensive:
		return TimeCommitment(s), nil
	default:
		return "", fmt.Errorf("unknown time commitment %q", s)
	}
}
