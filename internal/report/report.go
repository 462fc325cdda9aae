package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"dcf-screener/internal/types"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

const disclaimer = "Informational only. Not investment advice."

// Options control how the report is filtered, ordered and rendered.
type Options struct {
	// SortBy is "margin" (highest margin of safety first) or "ticker".
	SortBy string
	// ShowColors enables ANSI coloring of verdict rows.
	ShowColors bool
	// OnlyUndervalued drops every row whose verdict is not Undervalued.
	OnlyUndervalued bool
	// MaxResults caps the rendered rows after filtering and sorting.
	// Zero means unlimited.
	MaxResults int
	// Focus restricts the rendered rows to the given tickers. Empty means
	// all rows.
	Focus []string
}

// Render writes the valuation table, summary and disclaimer to w.
// The summary always reflects the full batch, not the filtered view.
func Render(w io.Writer, results []types.ValuationResult, opts Options) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results to display")
		return
	}

	rows := filterRows(results, opts)
	sortRows(rows, opts.SortBy)
	if opts.MaxResults > 0 && len(rows) > opts.MaxResults {
		rows = rows[:opts.MaxResults]
	}

	writeHeader(w, opts.ShowColors)
	writeTable(w, rows, opts.ShowColors)
	writeSummary(w, results, opts.ShowColors)
	fmt.Fprintln(w, disclaimer)
}

func filterRows(results []types.ValuationResult, opts Options) []types.ValuationResult {
	rows := make([]types.ValuationResult, 0, len(results))

	var focus map[string]struct{}
	if len(opts.Focus) > 0 {
		focus = make(map[string]struct{}, len(opts.Focus))
		for _, t := range opts.Focus {
			focus[t] = struct{}{}
		}
	}

	for _, r := range results {
		if focus != nil {
			if _, ok := focus[r.Ticker]; !ok {
				continue
			}
		}
		if opts.OnlyUndervalued && r.Verdict != types.VerdictUndervalued {
			continue
		}
		rows = append(rows, r)
	}
	return rows
}

// sortRows orders by margin of safety descending, with rows that have no
// margin (failed valuations) after all computed rows. "ticker" sorts
// alphabetically instead.
func sortRows(rows []types.ValuationResult, sortBy string) {
	switch sortBy {
	case "ticker":
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].Ticker < rows[j].Ticker
		})
	default:
		sort.Slice(rows, func(i, j int) bool {
			mi, mj := rows[i].MarginOfSafetyPct, rows[j].MarginOfSafetyPct
			if mi != nil && mj != nil {
				if *mi != *mj {
					return *mi > *mj
				}
				return rows[i].Ticker < rows[j].Ticker
			}
			if mi != nil {
				return true
			}
			if mj != nil {
				return false
			}
			return rows[i].Ticker < rows[j].Ticker
		})
	}
}

func writeHeader(w io.Writer, colors bool) {
	separator := strings.Repeat("=", 110)
	title := fmt.Sprintf("DCF Intrinsic Value Screen - %s", time.Now().Format("2006-01-02 15:04:05"))

	if colors {
		fmt.Fprintf(w, "%s%s%s%s\n", colorBold, colorCyan, separator, colorReset)
		fmt.Fprintf(w, "%s%s%s%s\n", colorBold, colorCyan, title, colorReset)
		fmt.Fprintf(w, "%s%s%s%s\n", colorBold, colorCyan, separator, colorReset)
	} else {
		fmt.Fprintln(w, separator)
		fmt.Fprintln(w, title)
		fmt.Fprintln(w, separator)
	}
}

func writeTable(w io.Writer, rows []types.ValuationResult, colors bool) {
	if colors {
		fmt.Fprintf(w, "%s%-8s %-18s %-12s %-12s %-10s %-22s %-8s %-12s%s\n",
			colorBold, "Ticker", "Tier", "Intrinsic", "Price", "Margin", "Verdict", "P/E", "P/E Check", colorReset)
	} else {
		fmt.Fprintf(w, "%-8s %-18s %-12s %-12s %-10s %-22s %-8s %-12s\n",
			"Ticker", "Tier", "Intrinsic", "Price", "Margin", "Verdict", "P/E", "P/E Check")
	}
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, r := range rows {
		writeRow(w, r, colors)
	}
}

func writeRow(w io.Writer, r types.ValuationResult, colors bool) {
	var color string
	if colors {
		switch r.Verdict {
		case types.VerdictUndervalued:
			color = colorGreen
		case types.VerdictOvervalued:
			color = colorRed
		default:
			color = colorYellow
		}
	}

	tier := r.Tier
	if len(tier) > 18 {
		tier = tier[:15] + "..."
	}

	reset := ""
	if colors {
		reset = colorReset
	}
	fmt.Fprintf(w, "%s%-8s %-18s %-12s %-12s %-10s %-22s %-8s %-12s%s\n",
		color,
		r.Ticker,
		tier,
		money(r.IntrinsicValue),
		money(r.CurrentPrice),
		percent(r.MarginOfSafetyPct),
		r.Verdict,
		ratio(r.PERatio),
		r.PEVerdict,
		reset)

	for _, note := range r.Notes {
		fmt.Fprintf(w, "%s         note: %s%s\n", color, note, reset)
	}
}

func writeSummary(w io.Writer, results []types.ValuationResult, colors bool) {
	undervalued, overvalued, failed := 0, 0, 0
	for _, r := range results {
		switch r.Verdict {
		case types.VerdictUndervalued:
			undervalued++
		case types.VerdictOvervalued:
			overvalued++
		default:
			failed++
		}
	}

	separator := strings.Repeat("=", 110)
	fmt.Fprintf(w, "\n%s\n", separator)
	fmt.Fprintf(w, "Total tickers evaluated: %d\n", len(results))
	if colors {
		fmt.Fprintf(w, "%sUndervalued: %d%s\n", colorGreen, undervalued, colorReset)
		fmt.Fprintf(w, "%sOvervalued: %d%s\n", colorRed, overvalued, colorReset)
		fmt.Fprintf(w, "%sNot valued: %d%s\n", colorYellow, failed, colorReset)
	} else {
		fmt.Fprintf(w, "Undervalued: %d\n", undervalued)
		fmt.Fprintf(w, "Overvalued: %d\n", overvalued)
		fmt.Fprintf(w, "Not valued: %d\n", failed)
	}
	fmt.Fprintln(w, separator)
}

func money(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", *v)
}

func percent(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", *v)
}

func ratio(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *v)
}

// WriteCSV exports the full batch to path, one row per ticker. Failed
// valuations keep their verdict and notes with empty numeric cells.
func WriteCSV(path string, results []types.ValuationResult) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()

	headers := []string{"ticker", "tier", "intrinsic_value", "current_price", "margin_of_safety_pct", "verdict", "pe_ratio", "pe_verdict", "notes"}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, r := range results {
		rec := []string{
			r.Ticker,
			r.Tier,
			csvFloat(r.IntrinsicValue, 2),
			csvFloat(r.CurrentPrice, 2),
			csvFloat(r.MarginOfSafetyPct, 1),
			r.Verdict,
			csvFloat(r.PERatio, 1),
			r.PEVerdict,
			strings.Join(r.Notes, "; "),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func csvFloat(v *float64, prec int) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', prec, 64)
}
