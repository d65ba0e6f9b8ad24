package webhook

// Result is the envelope every action endpoint answers with. A false
// Success is an application-level failure carried by a 2xx response and is
// never turned into a Go error by the client.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Failed reports an application-level failure.
func (r Result) Failed() bool {
	return !r.Success
}

// Err converts an application-level failure into an *ActionError for
// callers that prefer error flow.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	msg := r.Error
	if msg == "" {
		msg = r.Message
	}
	if msg == "" {
		msg = "request was not successful"
	}
	return &ActionError{Message: msg}
}

// ActionError wraps the human readable error of a failed action.
type ActionError struct {
	Message string
}

func (e *ActionError) Error() string {
	return e.Message
}
