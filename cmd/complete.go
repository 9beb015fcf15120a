package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/config"
	"github.com/etnz/fintrack/date"
	"github.com/etnz/fintrack/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the fin command line.
//
// Flag values are predicted from their name: wallet flags complete with
// the wallet ids of the stored ledger.
func Completion(cmds []subcommands.Command) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, c := range cmds {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: flagPredictors(fs)}
		switch c.Name() {
		case "wallet-edit", "wallet-delete", "goal":
			sub.Args = walletIDs
		case "import":
			sub.Args = predict.Files("*.json")
		case "topic":
			sub.Args = topics
		}
		root.Sub[c.Name()] = sub
	}
	return root
}

// flagPredictors predicts the values of the flags in fs.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	periods := make(predict.Set, len(date.Periods))
	for i, p := range date.Periods {
		periods[i] = p.String()
	}
	recurrences := make(predict.Set, len(fintrack.RecurrenceTypes))
	for i, r := range fintrack.RecurrenceTypes {
		recurrences[i] = string(r)
	}
	frequencies := make(predict.Set, len(fintrack.Frequencies))
	for i, f := range fintrack.Frequencies {
		frequencies[i] = string(f)
	}

	out := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		var p complete.Predictor = predict.Something
		switch f.Name {
		case "type":
			p = predict.Set{string(fintrack.Income), string(fintrack.Expense)}
		case "w", "from", "to":
			p = walletIDs
		case "c":
			p = categoryValues
		case "p", "by":
			p = periods
		case "repeat":
			p = recurrences
		case "f":
			p = frequencies
		case "status":
			p = predict.Set{"pending", "settled"}
		case "format":
			p = predict.Set{"json", "csv"}
		case "backend":
			p = predict.Set(config.Backends)
		case "data-dir":
			p = predict.Dirs("*")
		case "o":
			p = predict.Files("*")
		}
		if isBool(f) {
			p = predict.Nothing
		}
		out[f.Name] = p
	})
	return out
}

func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// walletIDs predicts the ids of the stored wallets.
var walletIDs = complete.PredictFunc(func(prefix string) []string {
	var ids []string
	withStoredLedger(func(l *fintrack.Ledger) {
		for _, w := range l.Wallets() {
			if strings.HasPrefix(w.ID, prefix) {
				ids = append(ids, w.ID)
			}
		}
	})
	return ids
})

// categoryValues predicts the values of the stored categories.
var categoryValues = complete.PredictFunc(func(prefix string) []string {
	var values []string
	withStoredLedger(func(l *fintrack.Ledger) {
		for _, c := range l.Categories() {
			if strings.HasPrefix(c.Value, prefix) {
				values = append(values, c.Value)
			}
		}
	})
	return values
})

// topics predicts the documentation topics.
var topics = complete.PredictFunc(func(prefix string) []string {
	names, err := docs.Names()
	if err != nil {
		return nil
	}
	var out []string
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
})

// withStoredLedger calls fn with the stored ledger, silently doing nothing
// when it cannot be opened.
func withStoredLedger(fn func(l *fintrack.Ledger)) {
	s, err := open(context.Background())
	if err != nil {
		return
	}
	defer s.Close()
	fn(s.ledger)
}
