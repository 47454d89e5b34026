package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/murkotick/catalog-store/internal/app/product/domain"
)

func printPage(w io.Writer, items []domain.Product, page, totalPages, total int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tCATEGORY\tEXPIRES")
	for _, p := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, strconv.FormatFloat(p.Price, 'f', 2, 64), p.Category, p.ExpirationDate.String())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "page %d/%d (%d products)\n", page, totalPages, total)
	return err
}
