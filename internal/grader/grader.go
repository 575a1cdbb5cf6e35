// Package grader compares a learner's raw input with a problem's answer.
package grader

import (
	"errors"

	"github.com/abhisek/mathdrill/internal/answer"
)

// Result is the outcome of a well-formed submission.
type Result struct {
	Correct   bool
	Submitted answer.Answer
}

// Grade parses raw into the shape of correct and compares by value.
// Input that cannot be parsed yields an *answer.ParseError and no Result;
// that is an invalid format, not a wrong answer.
func Grade(correct answer.Answer, raw string) (Result, error) {
	got, err := answer.Parse(correct, raw)
	if err != nil {
		return Result{}, err
	}
	return Result{Correct: answer.Equal(correct, got), Submitted: got}, nil
}

// IsFormatError reports whether err came from unparseable input.
func IsFormatError(err error) bool {
	return errors.Is(err, answer.ErrInvalidFormat)
}
