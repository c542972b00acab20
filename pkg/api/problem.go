package api

// DefaultProblemTitle is the title of every Problem written by the
// exception normalizer.
const DefaultProblemTitle = "An error occurred"

// ProblemContentType is the media type of a serialized Problem.
const ProblemContentType = "application/problem+json"

// Problem is the structured error document returned for unhandled
// failures. Status, Title, Type and Detail describe the failure; Instance,
// RequestID and TraceID are filled in by the problem writer from the
// request.
//
// TraceID is a pointer so that it serializes as null when no trace is
// active.
type Problem struct {
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Status    int     `json:"status"`
	Detail    string  `json:"detail"`
	Instance  string  `json:"instance,omitempty"`
	RequestID string  `json:"requestId"`
	TraceID   *string `json:"traceId"`
}
