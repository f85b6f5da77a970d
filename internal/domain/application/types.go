package application

type Status string

const (
	StatusApplied       Status = "APPLIED"
	StatusInProgress    Status = "IN_PROGRESS"
	StatusSelected      Status = "SELECTED"
	StatusRejected      Status = "REJECTED"
	StatusOfferAccepted Status = "OFFER_ACCEPTED"
	StatusOfferDeclined Status = "OFFER_DECLINED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusApplied, StatusInProgress, StatusSelected, StatusRejected, StatusOfferAccepted, StatusOfferDeclined:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusOfferAccepted, StatusOfferDeclined:
		return true
	default:
		return false
	}
}

type RoundStatus string

const (
	RoundPending  RoundStatus = "PENDING"
	RoundSelected RoundStatus = "SELECTED"
	RoundRejected RoundStatus = "REJECTED"
)

func (s RoundStatus) IsValid() bool {
	switch s {
	case RoundPending, RoundSelected, RoundRejected:
		return true
	default:
		return false
	}
}

// IsOutcome reports whether s may be recorded as the result of a round.
func (s RoundStatus) IsOutcome() bool {
	return s == RoundSelected || s == RoundRejected
}
