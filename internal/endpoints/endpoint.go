package endpoints

// Endpoint represents the common methods of an Endpoint.
type Endpoint interface {
	Listen() error
	Serve()
	Close() error
	Type() EndpointType
	Addr() string
}

// EndpointType enumerates the supported endpoints.
type EndpointType int

const (
	// EndpointNetwork represents the SQL API served over tcp.
	EndpointNetwork EndpointType = iota
)

// EndpointsCore is the name of the listener serving the SQL API.
const EndpointsCore string = "core"

// String labels EndpointTypes for logging purposes.
func (et EndpointType) String() string {
	switch et {
	case EndpointNetwork:
		return "http socket"
	default:
		return ""
	}
}
