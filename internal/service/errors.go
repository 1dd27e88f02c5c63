package service

import (
	"fmt"
	"strings"

	apperrors "github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/errors"
)

// SubmissionError reports a submission in which at least one write failed.
// The writes that succeeded are not rolled back; the fields identify them so
// they can be reconciled.
type SubmissionError struct {
	ReviewID                 string
	ProductID                int64
	ReviewPersisted          bool
	PersistedCharacteristics []int64
	Errs                     []error
}

// Persisted reports whether any record of the submission reached storage.
func (e *SubmissionError) Persisted() bool {
	return e.ReviewPersisted || len(e.PersistedCharacteristics) > 0
}

func (e *SubmissionError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("submit review %s: review persisted=%t, characteristics persisted=%v: %s",
		e.ReviewID, e.ReviewPersisted, e.PersistedCharacteristics, strings.Join(msgs, "; "))
}

// Unwrap exposes every underlying failure, plus apperrors.ErrPartialWrite
// when records were left behind.
func (e *SubmissionError) Unwrap() []error {
	errs := make([]error, 0, len(e.Errs)+1)
	if e.Persisted() {
		errs = append(errs, apperrors.ErrPartialWrite)
	}
	return append(errs, e.Errs...)
}
