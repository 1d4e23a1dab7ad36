package domain

// FetchOutcome is the result class of a single feed fetch attempt
type FetchOutcome int

// fetch outcomes
const (
	OutcomeChanged FetchOutcome = iota
	OutcomeUnchanged
	OutcomeHTTPError
	OutcomeTransportError
	OutcomeUnexpectedError
)

// String returns the outcome name used in logs and stats
func (o FetchOutcome) String() string {
	switch o {
	case OutcomeChanged:
		return "success-changed"
	case OutcomeUnchanged:
		return "success-unchanged"
	case OutcomeHTTPError:
		return "http-error"
	case OutcomeTransportError:
		return "network-error"
	case OutcomeUnexpectedError:
		return "unexpected-error"
	default:
		return "unknown"
	}
}

// Failed reports whether the outcome counts as a failed attempt
func (o FetchOutcome) Failed() bool {
	return o == OutcomeHTTPError || o == OutcomeTransportError || o == OutcomeUnexpectedError
}
