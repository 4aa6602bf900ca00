package engine

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Section headers of the merged report.
const (
	headerPortfolio = "--- ANÁLISIS DE PORTAFOLIO ---"
	headerMarket    = "--- CONTEXTO DE MERCADO ---"
)

// specificHeader derives the header for a non-portfolio section:
// underscores become spaces, upper-cased (ticker_info -> TICKER INFO).
func specificHeader(tipo string) string {
	return "--- ANÁLISIS DE " + strings.ToUpper(strings.ReplaceAll(tipo, "_", " ")) + " ---"
}

// FetchAndMerge retrieves the portfolio analysis for the client and, when
// tipo names a different analysis type, that analysis as well. Fetches run
// concurrently; if either fails the whole call fails without a partial
// report. The results are merged into one titled text document.
func (c *Client) FetchAndMerge(ctx context.Context, clientID int, tipo string) (string, error) {
	g, ctx := errgroup.WithContext(ctx)

	var portfolio, specific Outcome
	g.Go(func() error {
		var err error
		portfolio, err = c.FetchOne(ctx, clientID, TypePortfolio)
		return err
	})

	withSpecific := tipo != TypePortfolio
	if withSpecific {
		g.Go(func() error {
			var err error
			specific, err = c.FetchOne(ctx, clientID, tipo)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return "", err
	}

	if !withSpecific {
		return MergeReport(portfolio, nil, tipo), nil
	}
	return MergeReport(portfolio, &specific, tipo), nil
}

// MergeReport composes the merged report text from the portfolio outcome
// and the optional specific-type outcome. A plain outcome (the engine's
// "no data" message) is emitted verbatim under the same header as a
// structured one, so a missing analysis still produces its section.
func MergeReport(portfolio Outcome, specific *Outcome, tipo string) string {
	var sections []string

	sections = append(sections, headerPortfolio+"\n"+portfolio.Text())
	if portfolio.Kind == OutcomeStructured && portfolio.MarketSummary != "" {
		sections = append(sections, headerMarket+"\n"+portfolio.MarketSummary)
	}
	if specific != nil {
		sections = append(sections, specificHeader(tipo)+"\n"+specific.Text())
	}

	return strings.TrimSpace(strings.Join(sections, "\n\n"))
}
