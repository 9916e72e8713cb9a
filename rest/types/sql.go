package types

// OutputFormat selects how read results are returned.
type OutputFormat string

const (
	// OutputText returns reads as a rendered, human readable listing.
	OutputText OutputFormat = "text"

	// OutputRows returns reads as an array of row objects.
	OutputRows OutputFormat = "rows"
)

// SQLQuery represents a SQL query submitted for execution.
type SQLQuery struct {
	Query  string       `json:"sql_query"        yaml:"sql_query"`
	Format OutputFormat `json:"format,omitempty" yaml:"format,omitempty"`
}

// Response is the outcome of one handler invocation.
// Body always holds a JSON document: the result on success or an error message string.
type Response struct {
	StatusCode int    `json:"statusCode" yaml:"statusCode"`
	Body       string `json:"body"       yaml:"body"`
}
