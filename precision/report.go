package precision

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CSVHeader is the first record written by WriteCSV.
var CSVHeader = []string{
	"variant", "demoted", "value", "valid", "reason",
	"rel_error", "rel_error_pct", "deviation", "threshold", "stable",
}

// WriteTable prints the report as a fixed-width table followed by the
// summary lines.
func WriteTable(w io.Writer, r Report) error {
	ew := &errWriter{w: w}
	ew.printf("S = %.15e, N = %d, host = %s (fma=%t)\n", r.Radicand, r.Iterations, hostLabel(r.Host), r.Host.FMA)
	ew.printf("%-22s %-24s %-8s %-18s %-14s %-18s %-8s\n",
		"Variant", "Value", "Status", "Rel Error", "Rel Error %", "Deviation", "Verdict")
	ew.printf("%s\n", strings.Repeat("-", 118))
	for _, res := range r.Results {
		ew.printf("%-22s %-24.15e %-8s %-18.10e %-14.6f %-18.10e %-8s\n",
			res.Variant.Name, res.Value, res.Reason, res.RelError, res.RelError*100,
			res.Deviation, verdict(res))
	}

	sum := r.Summary()
	ew.printf("variants compared: %d\n", sum.Count)
	if sum.Count > 0 {
		ew.printf("mean relative error: %.6e\n", sum.Mean)
		ew.printf("min relative error:  %.6e (%s)\n", sum.Min, sum.MostStable)
		ew.printf("max relative error:  %.6e (%s)\n", sum.Max, sum.LeastStable)
	}
	ew.printf("stable configurations: %s\n", nameList(sum.Stable))
	ew.printf("unstable configurations: %s\n", nameList(sum.Unstable))

	return errors.Wrap(ew.err, "precision: write table")
}

// WriteCSV writes one record per result under CSVHeader.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return errors.Wrap(err, "precision: write csv header")
	}
	for _, res := range r.Results {
		demoted := make([]string, len(res.Variant.Demoted))
		for i, d := range res.Variant.Demoted {
			demoted[i] = string(d)
		}
		rec := []string{
			res.Variant.Name,
			strings.Join(demoted, ";"),
			strconv.FormatFloat(res.Value, 'e', 15, 64),
			strconv.FormatBool(res.Valid),
			res.Reason,
			strconv.FormatFloat(res.RelError, 'e', 10, 64),
			strconv.FormatFloat(res.RelError*100, 'f', 6, 64),
			strconv.FormatFloat(res.Deviation, 'e', 10, 64),
			strconv.FormatFloat(res.Threshold, 'e', 1, 64),
			strconv.FormatBool(res.Stable),
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrapf(err, "precision: write csv record %s", res.Variant.Name)
		}
	}
	cw.Flush()

	return errors.Wrap(cw.Error(), "precision: flush csv")
}

func verdict(res Result) string {
	if res.Stable {
		return "stable"
	}
	return "unstable"
}

func nameList(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

func hostLabel(h Host) string {
	if h.Brand != "" {
		return h.Brand
	}
	if h.Vendor != "" {
		return h.Vendor
	}
	return "unknown"
}

// errWriter keeps the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
