package exporter

import (
	"fmt"
	"io"
	"text/tabwriter"

	"etfgeo/pkg/contracts/domain"
)

// WriteReport renders a human-readable allocation report. It lists every
// country with its summed weight and percentage, a TOTAL line, the top five
// countries and the summary counts.
func WriteReport(w io.Writer, aggregate *domain.CountryAggregate) error {
	fmt.Fprintln(w, "Country Allocation")
	fmt.Fprintln(w, "==================")

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COUNTRY\tWEIGHT\tPERCENT")
	for _, c := range aggregate.Countries {
		fmt.Fprintf(tw, "%s\t%s\t%s%%\n", c.Country, formatFloat(c.Weight), formatFloat(c.Percentage))
	}
	fmt.Fprintf(tw, "TOTAL\t%s\t100.00%%\n", formatFloat(aggregate.TotalWeight))
	if err := tw.Flush(); err != nil {
		return err
	}

	top := aggregate.TopN(5)
	fmt.Fprintf(w, "\nTop 5 concentration: %s%%\n", formatFloat(top))
	fmt.Fprintf(w, "Herfindahl index: %s\n", formatFloat(aggregate.Herfindahl))
	fmt.Fprintf(w, "Rows: %d equity, %d cash, %d dropped\n",
		aggregate.EquityRows, aggregate.CashRows, aggregate.DroppedRows)
	return nil
}
