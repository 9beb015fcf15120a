package fintrack

import (
	"fmt"
	"strings"

	"github.com/etnz/fintrack/date"
	"github.com/shopspring/decimal"
)

// Frequency is the pace of contributions toward a wallet goal.
type Frequency string

const (
	FreqDaily        Frequency = "daily"
	FreqBiweekly     Frequency = "biweekly"
	FreqMonthly      Frequency = "monthly"
	FreqQuarterly    Frequency = "quarterly"
	FreqSemiannually Frequency = "semiannually"
	FreqYearly       Frequency = "yearly"
)

// Frequencies lists the valid contribution frequencies.
var Frequencies = []Frequency{FreqDaily, FreqBiweekly, FreqMonthly, FreqQuarterly, FreqSemiannually, FreqYearly}

// ParseFrequency parses a frequency name, case insensitive.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Frequencies {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown frequency %q", s)
}

// periodsBetween returns how many whole contribution periods fit between from and to.
//
// Half month periods count 15 days each.
func (f Frequency) periodsBetween(from, to date.Date) int {
	switch f {
	case FreqDaily:
		return from.DaysUntil(to)
	case FreqBiweekly:
		return from.DaysUntil(to) / 15
	case FreqQuarterly:
		return from.MonthsUntil(to) / 3
	case FreqSemiannually:
		return from.MonthsUntil(to) / 6
	case FreqYearly:
		return from.MonthsUntil(to) / 12
	default:
		return from.MonthsUntil(to)
	}
}

// GoalProgress is the position of a wallet relative to its goal.
type GoalProgress struct {
	Goal      Money
	Balance   Money
	Remaining Money           // Goal - Balance, negative once exceeded
	Percent   decimal.Decimal // Balance/Goal in percent, capped to 100
}

// Reached reports whether the balance meets the goal.
func (p GoalProgress) Reached() bool { return !p.Remaining.IsPositive() }

// ProgressOf returns the progress of the wallet toward its goal, ok is false
// when the wallet has no goal.
func ProgressOf(w Wallet) (p GoalProgress, ok bool) {
	if w.Goal == nil {
		return GoalProgress{}, false
	}
	p = GoalProgress{
		Goal:      w.Goal.Value,
		Balance:   w.Balance,
		Remaining: w.Goal.Value.Sub(w.Balance),
		Percent:   w.Balance.Ratio(w.Goal.Value),
	}
	hundred := decimal.NewFromInt(100)
	if p.Percent.GreaterThan(hundred) {
		p.Percent = hundred
	}
	if p.Percent.IsNegative() {
		p.Percent = decimal.Zero
	}
	return p, true
}

// SimulateTime returns how many contributions of amount are needed to reach
// the goal. It is 0 when the goal is already reached.
func SimulateTime(p GoalProgress, amount Money) (int, error) {
	if !amount.IsPositive() {
		return 0, WithMessage(ErrInvalidSimulation, "contribution must be positive")
	}
	if p.Reached() {
		return 0, nil
	}
	return int(p.Remaining.Decimal().Div(amount.Decimal()).Ceil().IntPart()), nil
}

// SimulateContribution returns the contribution needed every period of
// frequency f, from today, to reach the goal by target.
func SimulateContribution(p GoalProgress, f Frequency, today, target date.Date) (Money, error) {
	if !target.After(today) {
		return Money{}, WithMessage(ErrInvalidSimulation, "target date must be in the future")
	}
	if p.Reached() {
		return Money{}, nil
	}
	periods := f.periodsBetween(today, target)
	if periods <= 0 {
		return Money{}, WithMessage(ErrInvalidSimulation, fmt.Sprintf("no full %s period before %s", f, target))
	}
	return p.Remaining.DivInt(periods), nil
}
