package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"

	"github.com/murkotick/catalog-store/internal/app/product/domain"
)

func (a *app) list(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	search := fs.String("search", "", "case-insensitive name substring")
	category := fs.String("category", "", "exact category")
	maxPrice := fs.Float64("max-price", 0, "inclusive price ceiling, 0 for none")
	page := fs.Int("page", 1, "page number, starting at 1")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("list: %w", err)
	}
	if math.IsNaN(*maxPrice) || math.IsInf(*maxPrice, 0) {
		return fmt.Errorf("list: -max-price must be a finite number")
	}

	a.store.SetSearch(*search)
	a.store.SetCategory(*category)
	a.store.SetMaxPrice(*maxPrice)
	a.store.SetPage(*page)

	return printPage(a.out, a.store.Page(), a.store.CurrentPage(), a.store.TotalPages(), len(a.store.Filtered()))
}

// productFlags holds the editable product fields shared by add and update.
type productFlags struct {
	name, description, expires, category, image string
	price                                       float64
}

func newProductFlags(fs *flag.FlagSet) *productFlags {
	f := &productFlags{}
	fs.StringVar(&f.name, "name", "", "product name")
	fs.Float64Var(&f.price, "price", 0, "price")
	fs.StringVar(&f.description, "description", "", "description")
	fs.StringVar(&f.expires, "expires", "", "expiration date YYYY-MM-DD")
	fs.StringVar(&f.category, "category", "", "category name")
	fs.StringVar(&f.image, "image", "", "image URL")
	return f
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := newProductFlags(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("add: %w", err)
	}

	expires, err := domain.ParseDate(f.expires)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	p, err := a.store.Add(ctx, domain.Draft{
		Name:           f.name,
		Price:          f.price,
		Description:    f.description,
		ExpirationDate: expires,
		Category:       f.category,
		Image:          f.image,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "added %s\n", p.ID)
	return nil
}

func (a *app) update(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := newProductFlags(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("update: exactly one product id expected")
	}
	id := fs.Arg(0)

	var patch domain.Patch
	var parseErr error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			patch.Name = &f.name
		case "price":
			patch.Price = &f.price
		case "description":
			patch.Description = &f.description
		case "category":
			patch.Category = &f.category
		case "image":
			patch.Image = &f.image
		case "expires":
			d, err := domain.ParseDate(f.expires)
			if err != nil {
				parseErr = err
				return
			}
			patch.ExpirationDate = &d
		}
	})
	if parseErr != nil {
		return fmt.Errorf("update: %w", parseErr)
	}
	if patch.IsEmpty() {
		return fmt.Errorf("update: nothing to change")
	}
	if _, ok := a.store.Find(id); !ok {
		return fmt.Errorf("update: no product %s", id)
	}

	p, err := a.store.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "updated %s\n", p.ID)
	return nil
}

func (a *app) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("delete: exactly one product id expected")
	}
	if _, ok := a.store.Find(args[0]); !ok {
		return fmt.Errorf("delete: no product %s", args[0])
	}
	if err := a.store.Remove(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted %s\n", args[0])
	return nil
}

func (a *app) categories(ctx context.Context) error {
	var (
		cats []domain.Category
		err  error
	)
	if a.remote != nil {
		cats, err = a.remote.Categories(ctx)
		if err != nil {
			return fmt.Errorf("categories: %w", err)
		}
	} else {
		cats = domain.CategoriesOf(a.store.Products())
	}
	for _, c := range cats {
		fmt.Fprintln(a.out, c.Name)
	}
	return nil
}
