package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/trezcool/lotus/core"
	"github.com/trezcool/lotus/core/product"
)

var (
	confirmFunc = confirm // mockable

	errHelp     = errors.New("help provided")
	errAborted  = errors.New("aborted")
	errNotATerm = errors.New("stdin is not a terminal: pass -yes to confirm")
)

type commandLine struct {
	productSvc *product.Service
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  list - list the catalog")
	fmt.Fprintln(cli.out, "  add -title TITLE -price PRICE -image URL [-description TEXT] - create a product")
	fmt.Fprintln(cli.out, "  edit -id ID [-title TITLE] [-price PRICE] [-image URL] [-description TEXT] - update a product")
	fmt.Fprintln(cli.out, "  delete -id ID [-yes] - delete a product")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()

	switch args[1] {
	case "list":
		return cli.list(ctx)

	case "add":
		addCmd := flag.NewFlagSet("add", flag.ContinueOnError)
		addCmd.SetOutput(cli.out)
		title := addCmd.String("title", "", "The product name.")
		price := addCmd.String("price", "", "The product price, eg. 12.50")
		image := addCmd.String("image", "", "The product image URL.")
		description := addCmd.String("description", "", "The product description (optional).")
		if err := addCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.add(ctx, product.Candidate{
			Title:       *title,
			Price:       product.ParsePrice(*price),
			Image:       *image,
			Description: *description,
		})

	case "edit":
		editCmd := flag.NewFlagSet("edit", flag.ContinueOnError)
		editCmd.SetOutput(cli.out)
		id := editCmd.Int("id", 0, "The product ID.")
		editCmd.String("title", "", "The new product name.")
		editCmd.String("price", "", "The new product price.")
		editCmd.String("image", "", "The new product image URL.")
		editCmd.String("description", "", "The new product description.")
		if err := editCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *id <= 0 {
			editCmd.Usage()
			return errHelp
		}
		changes := make(map[string]string)
		editCmd.Visit(func(f *flag.Flag) {
			if f.Name != "id" {
				changes[f.Name] = f.Value.String()
			}
		})
		return cli.edit(ctx, *id, changes)

	case "delete":
		deleteCmd := flag.NewFlagSet("delete", flag.ContinueOnError)
		deleteCmd.SetOutput(cli.out)
		id := deleteCmd.Int("id", 0, "The product ID.")
		yes := deleteCmd.Bool("yes", false, "Do not ask for confirmation.")
		if err := deleteCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *id <= 0 {
			deleteCmd.Usage()
			return errHelp
		}
		return cli.delete(ctx, *id, *yes)

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) list(ctx context.Context) error {
	if err := cli.productSvc.Load(ctx); err != nil {
		return err
	}
	cli.printProducts(cli.productSvc.Products()...)
	return nil
}

func (cli *commandLine) add(ctx context.Context, c product.Candidate) error {
	prod, err := cli.productSvc.Create(ctx, c)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "created %s\n", product.FormatID(prod.ID))
	cli.printProducts(prod)
	return nil
}

// edit applies changes over the current remote values of the product.
func (cli *commandLine) edit(ctx context.Context, id int, changes map[string]string) error {
	if err := cli.productSvc.Load(ctx); err != nil {
		return err
	}
	prod, err := cli.productSvc.Get(id)
	if err != nil {
		return err
	}

	c := product.CandidateOf(prod)
	for name, val := range changes {
		switch name {
		case "title":
			c.Title = val
		case "price":
			c.Price = product.ParsePrice(val)
		case "image":
			c.Image = val
		case "description":
			c.Description = val
		}
	}

	if prod, err = cli.productSvc.Update(ctx, id, c); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "updated %s\n", product.FormatID(prod.ID))
	cli.printProducts(prod)
	return nil
}

func (cli *commandLine) delete(ctx context.Context, id int, yes bool) error {
	if !yes {
		ok, err := confirmFunc(fmt.Sprintf("Delete product %s? [y/N] ", product.FormatID(id)))
		if err != nil {
			return err
		}
		if !ok {
			return errAborted
		}
	}
	if err := cli.productSvc.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "deleted %s\n", product.FormatID(id))
	return nil
}

func (cli *commandLine) printProducts(prods ...product.Product) {
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tIMAGE")
	for _, p := range prods {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", product.FormatID(p.ID), p.Title, product.FormatPrice(p.Price), p.Image)
	}
	_ = w.Flush()
}

// confirm asks a yes/no question on the terminal.
func confirm(prompt string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errNotATerm
	}
	fmt.Print(prompt)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer = strings.ToLower(core.CleanString(answer))
	return answer == "y" || answer == "yes", nil
}

// describeErr renders err for the terminal: one line per invalid field,
// the generic message for remote failures.
func describeErr(err error) string {
	var vErr *core.ValidationError
	if errors.As(err, &vErr) {
		fields := vErr.FieldMap()
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)

		var sb strings.Builder
		sb.WriteString("invalid product:")
		for _, name := range names {
			sb.WriteString("\n  " + name + ": " + fields[name])
		}
		return sb.String()
	}
	if tErr, ok := product.AsTransportError(err); ok {
		if status := tErr.Status(); status != 0 {
			return tErr.Message() + " (status " + strconv.Itoa(status) + ")"
		}
		return tErr.Message()
	}
	return err.Error()
}
