package nestoria

// Action is a remote operation sent in the action query parameter
type Action int

const (
	ActionSearchListings Action = iota
	ActionMetadata
	ActionKeywords
	ActionEcho
)

// String returns the wire name of the action
func (a Action) String() string {
	switch a {
	case ActionSearchListings:
		return "search_listings"
	case ActionMetadata:
		return "metadata"
	case ActionKeywords:
		return "keywords"
	case ActionEcho:
		return "echo"
	default:
		return "unknown"
	}
}

// Valid reports whether a is one of the supported actions
func (a Action) Valid() bool {
	return a >= ActionSearchListings && a <= ActionEcho
}
