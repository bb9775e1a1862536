// Command bazi-trace prints every intermediate value of one chart
// calculation: the Julian Day Number, the four pillars with their cycle
// indices, per-pillar element contributions, the normalized distribution
// and the day-master analysis.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/phrazzld/bazi-api/internal/domain/bazi"
	"github.com/phrazzld/bazi-api/internal/domain/wellness"
	"github.com/phrazzld/bazi-api/internal/report"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "bazi-trace:", err)
		}
		os.Exit(2)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("bazi-trace", flag.ContinueOnError)
	fs.SetOutput(out)
	year := fs.Int("year", 0, "birth year, proleptic Gregorian (required)")
	month := fs.Int("month", 0, "birth month 1-12 (required)")
	day := fs.Int("day", 0, "birth day of month (required)")
	hour := fs.Int("hour", 0, "birth hour 0-23")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var missing []string
	seen := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	for _, name := range []string{"year", "month", "day"} {
		if !seen[name] {
			missing = append(missing, "-"+name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}

	in := bazi.ChartInput{Year: *year, Month: *month, Day: *day, Hour: *hour}
	chart, err := bazi.NewDefaultEngine().Calculate(in)
	if err != nil {
		return err
	}
	return trace(out, chart, bazi.NewDefaultParams())
}

func trace(out io.Writer, chart bazi.Chart, params *bazi.Params) error {
	in := chart.Input
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "input\t%s\n", in)
	fmt.Fprintf(tw, "julian day number\t%d\n", bazi.JulianDayNumber(in.Year, in.Month, in.Day))
	fmt.Fprintf(tw, "hour branch\t%s\n", bazi.HourBranch(in.Hour).Glyph())
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "pillar\tglyphs\tname\tcycle\tstem\tbranch\tweight")
	for pos, p := range chart.Pillars.InOrder() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%.2f\n",
			positionName(pos), p.Glyphs(), p, p.CycleIndex(),
			p.Stem.Element(), p.Branch.Element(), params.PillarWeights[pos])
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "element\tglyph\traw\tpercent")
	for _, e := range bazi.Elements {
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.1f\n", e, report.ElementGlyph(e), chart.Raw[e], chart.Percentages[e])
	}
	fmt.Fprintf(tw, "total\t\t%.4f\t%.1f\n", chart.Raw.Sum(), chart.Percentages.Sum())
	fmt.Fprintln(tw)

	dm := chart.DayMaster
	c := wellness.Classify(chart.Percentages)
	fmt.Fprintf(tw, "day master\t%s %s (%s %s)\n", dm.Stem.Glyph(), dm.Stem.Name(), dm.Polarity, dm.Element)
	fmt.Fprintf(tw, "season\t%s\n", chart.Season)
	fmt.Fprintf(tw, "support\t%.1f%% (%s %.1f + %s %.1f)\n", chart.Support,
		dm.Element, chart.Percentages[dm.Element],
		dm.Element.GeneratedBy(), chart.Percentages[dm.Element.GeneratedBy()])
	fmt.Fprintf(tw, "strength\t%s (weak < %.1f, strong > %.1f)\n", chart.Strength, params.WeakThreshold, params.StrongThreshold)
	fmt.Fprintf(tw, "constitution\t%s, deficient %s, spread %.1f\n", c.Label, c.Deficient, c.Spread)

	return tw.Flush()
}

func positionName(pos int) string {
	return [...]string{"year", "month", "day", "hour"}[pos]
}
