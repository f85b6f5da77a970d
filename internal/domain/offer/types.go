package offer

import (
	"strings"

	"campus-placement/internal/pkg/errs"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusDeclined Status = "DECLINED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined:
		return true
	default:
		return false
	}
}

type Decision string

const (
	DecisionAccept  Decision = "ACCEPT"
	DecisionDecline Decision = "DECLINE"
)

var ErrInvalidDecision = errs.Define(errs.ErrValidation, "decision must be ACCEPT or DECLINE")

func NewDecision(s string) (Decision, error) {
	d := Decision(strings.ToUpper(strings.TrimSpace(s)))
	switch d {
	case DecisionAccept, DecisionDecline:
		return d, nil
	default:
		return "", ErrInvalidDecision
	}
}
