package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/hourly-rate-calculator/internal/earnings"
)

var (
	expenseQty   int
	expensePrice float64
)

var expenseCmd = &cobra.Command{
	Use:     "expense",
	Aliases: []string{"exp"},
	Short:   "Manage expense items on the sheet",
}

var expenseAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add an expense item",
	Long: `Add an expense item. Without a name on an interactive terminal a form
asks for name, quantity and unit price.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExpenseAdd,
}

var expenseRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove an expense item by ID or unique ID prefix",
	Args:    cobra.ExactArgs(1),
	RunE:    runExpenseRemove,
}

var expenseUpdateCmd = &cobra.Command{
	Use:   "update <id> <field> <value>",
	Short: "Change name, quantity or price of an expense item",
	Args:  cobra.ExactArgs(3),
	RunE:  runExpenseUpdate,
}

var expenseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List expense items",
	Args:    cobra.NoArgs,
	RunE:    runExpenseList,
}

func init() {
	expenseAddCmd.Flags().IntVar(&expenseQty, "qty", 1, "Quantity")
	expenseAddCmd.Flags().Float64Var(&expensePrice, "price", 0, "Unit price")

	expenseCmd.AddCommand(expenseAddCmd)
	expenseCmd.AddCommand(expenseRemoveCmd)
	expenseCmd.AddCommand(expenseUpdateCmd)
	expenseCmd.AddCommand(expenseListCmd)
}

func isInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func runExpenseAdd(cmd *cobra.Command, args []string) error {
	name := ""
	qty, price := expenseQty, expensePrice
	if len(args) == 1 {
		name = args[0]
	} else {
		if !isInteractive() {
			return errors.New("expense name required")
		}
		var err error
		name, qty, price, err = promptExpense(qty, price)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintln(os.Stderr, "Cancelled.")
				return nil
			}
			fail(exitFailure, err)
		}
	}

	s := loadSheet()
	list := earnings.ExpenseList(s.Expenses)
	item := list.Add(strings.TrimSpace(name), qty, price)
	s.Expenses = list
	snap := saveSheet(&s)

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q: %d × %s = %s (net %s)\n",
		shortID(item.ID), item.Name, item.Quantity,
		earnings.FormatAmount(cfg.Invoice.Currency, item.UnitPrice),
		earnings.FormatAmount(cfg.Invoice.Currency, item.LineTotal),
		earnings.FormatAmount(cfg.Invoice.Currency, snap.Totals.NetIncome))
	return nil
}

// promptExpense asks for the fields of a new expense item.
func promptExpense(qty int, price float64) (string, int, float64, error) {
	var name string
	qtyText := strconv.Itoa(qty)
	priceText := ""
	if price > 0 {
		priceText = strconv.FormatFloat(price, 'f', -1, 64)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Item").
				Placeholder("Parking").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Quantity").
				Placeholder("1").
				Value(&qtyText).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Unit Price").
				Placeholder("0.00").
				Value(&priceText).
				Validate(validateNonNegativeAmount),
		),
	).WithTheme(hrcHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", 0, 0, err
	}
	return name, earnings.ParseQuantity(qtyText), earnings.ParseAmount(priceText), nil
}

func validateNonNegativeInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return errors.New("enter a whole number ≥ 0")
	}
	return nil
}

func validateNonNegativeAmount(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return errors.New("enter an amount ≥ 0")
	}
	return nil
}

func runExpenseRemove(cmd *cobra.Command, args []string) error {
	s := loadSheet()
	list := earnings.ExpenseList(s.Expenses)

	item, err := list.Find(args[0])
	if err != nil {
		fail(exitUsage, err)
	}
	list.Remove(item.ID)
	s.Expenses = list
	snap := saveSheet(&s)

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %q. Net income: %s\n",
		shortID(item.ID), item.Name, earnings.FormatAmount(cfg.Invoice.Currency, snap.Totals.NetIncome))
	return nil
}

func runExpenseUpdate(cmd *cobra.Command, args []string) error {
	field, err := earnings.ParseField(args[1])
	if err != nil {
		fail(exitUsage, err)
	}

	s := loadSheet()
	list := earnings.ExpenseList(s.Expenses)
	item, err := list.Find(args[0])
	if err != nil {
		fail(exitUsage, err)
	}
	if err := list.Update(item.ID, field, args[2]); err != nil {
		fail(exitUsage, err)
	}
	s.Expenses = list
	snap := saveSheet(&s)

	updated, _ := list.Find(item.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %q: %d × %s = %s (net %s)\n",
		shortID(updated.ID), updated.Name, updated.Quantity,
		earnings.FormatAmount(cfg.Invoice.Currency, updated.UnitPrice),
		earnings.FormatAmount(cfg.Invoice.Currency, updated.LineTotal),
		earnings.FormatAmount(cfg.Invoice.Currency, snap.Totals.NetIncome))
	return nil
}

func runExpenseList(cmd *cobra.Command, args []string) error {
	s := loadSheet()
	out := cmd.OutOrStdout()
	if len(s.Expenses) == 0 {
		fmt.Fprintln(out, "No expenses.")
		return nil
	}
	fmt.Fprint(out, renderTable(expenseHeaders, expenseRows(s.Expenses, cfg.Invoice.Currency)))
	fmt.Fprintf(out, "\n%s %s\n", styleDim.Render("Total:"),
		styleBold.Render(earnings.FormatAmount(cfg.Invoice.Currency, earnings.ExpenseTotal(s.Expenses))))
	return nil
}
