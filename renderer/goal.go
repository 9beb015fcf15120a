package renderer

import (
	"fmt"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/date"
)

// Goal is the content of a goal report of a wallet.
type Goal struct {
	Wallet   fintrack.Wallet
	Progress fintrack.GoalProgress
	Currency string

	// Contribution, when positive, is simulated with Periods, the number of
	// contributions needed to reach the goal.
	Contribution fintrack.Money
	Periods      int

	// Target, when not zero, is simulated with Needed, the contribution
	// needed every Frequency period to reach the goal by Target.
	Target    date.Date
	Frequency fintrack.Frequency
	Needed    fintrack.Money
}

// goalView holds the preformatted strings of the goal templates.
type goalView struct {
	Name, Goal, Balance, Remaining, Percent string
	Reached                                 bool
	Contribution                            string
	Periods                                 int
	Target, Frequency, Needed               string
}

// GoalMarkdown renders the progress of a wallet toward its goal and the
// requested simulations.
func GoalMarkdown(g *Goal) string {
	cur := g.Currency
	v := goalView{
		Name:      g.Wallet.Name,
		Goal:      g.Progress.Goal.Format(cur),
		Balance:   g.Progress.Balance.Format(cur),
		Remaining: g.Progress.Remaining.Format(cur),
		Percent:   fmt.Sprintf("%s%%", g.Progress.Percent.StringFixed(1)),
		Reached:   g.Progress.Reached(),
	}
	partials := map[string]string{"goal_time": "", "goal_contribution": ""}
	if g.Contribution.IsPositive() {
		v.Contribution = g.Contribution.Format(cur)
		v.Periods = g.Periods
		partials["goal_time"] = "goal_time.md"
	}
	if !g.Target.IsZero() {
		v.Target = g.Target.String()
		v.Frequency = string(g.Frequency)
		v.Needed = g.Needed.Format(cur)
		partials["goal_contribution"] = "goal_contribution.md"
	}
	return renderTemplate("goal", "goal.md", partials, v)
}
