package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
)

type categoriesCmd struct{}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "list categories" }
func (*categoriesCmd) Usage() string {
	return `fin categories

  Lists income and expense categories.
`
}
func (*categoriesCmd) SetFlags(*flag.FlagSet) {}

func (*categoriesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		printMarkdown(renderer.CategoriesMarkdown(s.ledger.Categories()))
		return nil
	})
}

type categoryAddCmd struct {
	typ, value, color string
}

func (*categoryAddCmd) Name() string     { return "category-add" }
func (*categoryAddCmd) Synopsis() string { return "add a category" }
func (*categoryAddCmd) Usage() string {
	return `fin category-add [-type income|expense] [-value <value>] [-color <#rrggbb>] <label>

  Adds a category. Its value, used by transactions, is derived from the
  label unless -value is given.
`
}

func (c *categoryAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", string(fintrack.Expense), "Type of the category, income or expense.")
	f.StringVar(&c.value, "value", "", "Value of the category, derived from the label by default.")
	f.StringVar(&c.color, "color", "", "Color of the category, like #3b82f6.")
}

func (c *categoryAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		label, err := oneArg(f, "label")
		if err != nil {
			return err
		}
		value := c.value
		if value == "" {
			value = strings.Join(strings.Fields(strings.ToLower(label)), "_")
		}
		added, err := s.ledger.AddCategory(fintrack.Category{
			Type:  fintrack.TransactionType(c.typ),
			Value: value,
			Label: label,
			Color: c.color,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Category %q added with value %s and id %s\n", added.Label, added.Value, added.ID)
		return nil
	})
}

type categoryDeleteCmd struct{}

func (*categoryDeleteCmd) Name() string     { return "category-delete" }
func (*categoryDeleteCmd) Synopsis() string { return "delete a category" }
func (*categoryDeleteCmd) Usage() string {
	return `fin category-delete <category-id>

  Deletes a category. Default categories cannot be deleted. Transactions of
  a deleted category keep its value.
`
}
func (*categoryDeleteCmd) SetFlags(*flag.FlagSet) {}

func (*categoryDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		id, err := oneArg(f, "category id")
		if err != nil {
			return err
		}
		if err := s.ledger.DeleteCategory(id); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Category %s deleted\n", id)
		return nil
	})
}
