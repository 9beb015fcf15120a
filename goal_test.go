package fintrack

import (
	"errors"
	"testing"

	"github.com/etnz/fintrack/date"
	"github.com/shopspring/decimal"
)

func TestProgressOf(t *testing.T) {
	if _, ok := ProgressOf(Wallet{ID: "w"}); ok {
		t.Errorf("ProgressOf() ok = true for a wallet without goal")
	}
	p, ok := ProgressOf(Wallet{Balance: M(250), Goal: &Goal{Value: M(1000)}})
	if !ok {
		t.Fatalf("ProgressOf() ok = false")
	}
	if !p.Remaining.Equal(M(750)) || !p.Percent.Equal(decimal.NewFromInt(25)) || p.Reached() {
		t.Errorf("ProgressOf() = %+v, want 750 remaining at 25%%", p)
	}
	p, _ = ProgressOf(Wallet{Balance: M(1200), Goal: &Goal{Value: M(1000)}})
	if !p.Reached() || !p.Percent.Equal(decimal.NewFromInt(100)) {
		t.Errorf("ProgressOf() = %+v, want reached at 100%%", p)
	}
}

func TestSimulateTime(t *testing.T) {
	p, _ := ProgressOf(Wallet{Balance: M(250), Goal: &Goal{Value: M(1000)}})
	testCases := []struct {
		amount  Money
		want    int
		wantErr bool
	}{
		{M(100), 8, false},
		{M(750), 1, false},
		{M(0.01), 75000, false},
		{M(0), 0, true},
		{M(-5), 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.amount.String(), func(t *testing.T) {
			got, err := SimulateTime(p, tc.amount)
			if (err != nil) != tc.wantErr {
				t.Fatalf("SimulateTime() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSimulation) {
				t.Errorf("SimulateTime() error = %v, want %v", err, ErrInvalidSimulation)
			}
			if got != tc.want {
				t.Errorf("SimulateTime() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSimulateContribution(t *testing.T) {
	p, _ := ProgressOf(Wallet{Balance: M(0), Goal: &Goal{Value: M(1200)}})
	today := date.New(2024, 1, 15)
	testCases := []struct {
		name    string
		freq    Frequency
		target  date.Date
		want    Money
		wantErr bool
	}{
		{"monthly", FreqMonthly, date.New(2025, 1, 15), M(100), false},
		{"quarterly", FreqQuarterly, date.New(2025, 1, 15), M(300), false},
		{"semiannually", FreqSemiannually, date.New(2025, 1, 15), M(600), false},
		{"yearly", FreqYearly, date.New(2025, 1, 15), M(1200), false},
		{"daily", FreqDaily, date.New(2024, 1, 25), M(120), false},
		{"biweekly", FreqBiweekly, date.New(2024, 2, 14), M(600), false},
		{"rounded", FreqMonthly, date.New(2024, 8, 15), M(171.43), false},
		{"past", FreqMonthly, date.New(2024, 1, 15), Money{}, true},
		{"too close", FreqYearly, date.New(2024, 6, 1), Money{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SimulateContribution(p, tc.freq, today, tc.target)
			if (err != nil) != tc.wantErr {
				t.Fatalf("SimulateContribution() error = %v, wantErr %v", err, tc.wantErr)
			}
			if !got.Equal(tc.want) {
				t.Errorf("SimulateContribution() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseFrequency(t *testing.T) {
	if got, err := ParseFrequency(" Quarterly "); err != nil || got != FreqQuarterly {
		t.Errorf("ParseFrequency() = %v, %v", got, err)
	}
	if _, err := ParseFrequency("hourly"); err == nil {
		t.Errorf("ParseFrequency() error = nil, want an error")
	}
}
