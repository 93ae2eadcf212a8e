// Command preview is a development helper: it loads the airport source and
// prints the airports inside a bounding box as a text table. It shares the
// core packages with cmd/api but is never part of the service binary.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"

	"airport_lookup/internal/adapters/observability"
	"airport_lookup/internal/adapters/source"
	"airport_lookup/internal/app"
	"airport_lookup/internal/domain"
	"airport_lookup/internal/shared"
)

func main() {
	var (
		src   = flag.String("source", shared.DefaultSourceURL, "Airport CSV URL or file path")
		lat1  = flag.String("lat1", "-90", "Lower-left latitude")
		lon1  = flag.String("lon1", "-180", "Lower-left longitude")
		lat2  = flag.String("lat2", "90", "Upper-right latitude")
		lon2  = flag.String("lon2", "180", "Upper-right longitude")
		limit = flag.Int("limit", 50, "Maximum rows to print (0 = all)")
	)
	flag.Parse()

	log.Logger = observability.NewLogger("dev")

	box, err := app.ParseBoundingBox(*lat1, *lon1, *lat2, *lon2)
	if err != nil {
		log.Fatal().Err(err).Msg("bad bounding box")
	}

	cl, err := source.New(*src, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("bad source")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	table, err := app.NewLoadService(cl).Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load failed")
	}

	res := app.Within(table, box.LowerLeft(), box.UpperRight())
	printTable(os.Stdout, res, *limit)
	fmt.Fprintf(os.Stdout, "\n%d of %d airports inside box\n", len(res), table.Len())
}

func printTable(w io.Writer, rs []domain.Airport, limit int) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "IATA\tLATITUDE\tLONGITUDE\tNAME")
	for i, a := range rs {
		if limit > 0 && i >= limit {
			fmt.Fprintf(tw, "...\t\t\t(%d more)\n", len(rs)-limit)
			break
		}
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%s\n", a.IATACode, a.Latitude, a.Longitude, a.Name)
	}
	_ = tw.Flush()
}
