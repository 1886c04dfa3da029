package types

// Outcome is the success or failure of an operation.
type Outcome int

// Operation outcomes.
const (
	Success Outcome = iota
	Failure
)

// String returns "success" or "failure".
func (o Outcome) String() string {
	if o == Success {
		return "success"
	}
	return "failure"
}

// Reason classifies why an operation failed. Successful results carry ReasonNone.
type Reason int

// Failure reasons.
const (
	ReasonNone Reason = iota
	// ReasonMount: the container could not be opened. No side effects.
	ReasonMount
	// ReasonDeviceIO: a page read or write failed mid-stream.
	ReasonDeviceIO
	// ReasonNeverSaved: the GBA virtual-console title has no save yet.
	ReasonNeverSaved
	// ReasonCommit: the container rejected the commit after a restore copy.
	ReasonCommit
	// ReasonSecureValue: the secure value could not be erased after commit.
	ReasonSecureValue
	// ReasonFileOpen: the flash backup file could not be opened.
	ReasonFileOpen
	// ReasonFilesystem: a copy, create or delete on the backup tree failed.
	ReasonFilesystem
	// ReasonInvalidIndex: the title or backup index is out of range.
	ReasonInvalidIndex
)

var reasonNames = map[Reason]string{
	ReasonNone:         "none",
	ReasonMount:        "mount",
	ReasonDeviceIO:     "device-io",
	ReasonNeverSaved:   "never-saved",
	ReasonCommit:       "commit",
	ReasonSecureValue:  "secure-value",
	ReasonFileOpen:     "file-open",
	ReasonFilesystem:   "filesystem",
	ReasonInvalidIndex: "invalid-index",
}

func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return "unknown"
}

// Result is what every backup, restore and delete operation returns. No
// error crosses an operation boundary; failures are described here.
type Result struct {
	Outcome Outcome
	// Code is 0 on success, otherwise the device or filesystem status code.
	Code    int32
	Message string
	Reason  Reason
}

// OK reports whether the result is a success.
func (r Result) OK() bool { return r.Outcome == Success }

// Succeeded builds a successful result.
func Succeeded(msg string) Result {
	return Result{Outcome: Success, Message: msg}
}

// Failed builds a failed result.
func Failed(reason Reason, code int32, msg string) Result {
	return Result{Outcome: Failure, Code: code, Message: msg, Reason: reason}
}
