package detect

import (
	"errors"
	"fmt"

	"github.com/storewatch/sentinel/internal/model"
)

// RuleErrorCode categorizes rule evaluation failures.
type RuleErrorCode string

const (
	// ErrCodeMalformedTimestamp indicates a record timestamp that does
	// not parse to an absolute point in time.
	ErrCodeMalformedTimestamp RuleErrorCode = "MALFORMED_TIMESTAMP"
)

// RuleError is a structured evaluation failure. It pins the failure to
// one rule, one stream, and one record index so the orchestrator can
// isolate the failing rule and report exactly what broke.
type RuleError struct {
	Code   RuleErrorCode
	Rule   model.EventID
	Stream model.StreamType
	Record int
	Err    error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: rule %s: %s record %d: %v", e.Code, e.Rule, e.Stream, e.Record, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// IsMalformedTimestamp reports whether err is a timestamp parse failure.
// Uses errors.As to handle wrapped errors.
func IsMalformedTimestamp(err error) bool {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Code == ErrCodeMalformedTimestamp
	}
	return false
}

func newTimestampError(rule model.EventID, stream model.StreamType, record int, err error) *RuleError {
	return &RuleError{
		Code:   ErrCodeMalformedTimestamp,
		Rule:   rule,
		Stream: stream,
		Record: record,
		Err:    err,
	}
}
