package digest

// Result is the invocation outcome produced at the notify fork.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
	MessageID  string `json:"messageId,omitempty"`
}

// RunPayload optionally overrides the configured source object and
// recipient for one invocation. An empty payload runs with the configured
// values.
type RunPayload struct {
	Bucket string `json:"bucket,omitempty"`
	Key    string `json:"key,omitempty"`
	To     string `json:"to,omitempty"`
}
