package engine

// AnalysisType values accepted by the upstream engine.
const (
	TypePortfolio   = "evaluate_portfolio"
	TypeTickerInfo  = "ticker_info"
	TypeReplacement = "replacement"
)

// ValidType reports whether tipo is one of the supported analysis types.
func ValidType(tipo string) bool {
	switch tipo {
	case TypePortfolio, TypeTickerInfo, TypeReplacement:
		return true
	}
	return false
}

// OutcomeKind discriminates the normalized upstream results.
type OutcomeKind int

const (
	// OutcomeStructured carries a parsed analysis payload.
	OutcomeStructured OutcomeKind = iota
	// OutcomePlain carries a human-readable message, produced when the
	// engine reports no data for the requested client/type pair.
	OutcomePlain
)

// Outcome is the normalized result of one upstream fetch. The engine's
// "no data" sentinel (HTTP 404) is a legitimate empty result, not an
// error, so it is represented here rather than as a failure.
type Outcome struct {
	Kind          OutcomeKind
	FullAnalysis  string
	MarketSummary string
	Message       string
}

// Text returns the body text for this outcome: the analysis for a
// structured result, the fallback message otherwise.
func (o Outcome) Text() string {
	if o.Kind == OutcomeStructured {
		return o.FullAnalysis
	}
	return o.Message
}
