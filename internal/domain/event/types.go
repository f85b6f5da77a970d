package event

import (
	"encoding/json"
	"time"

	"campus-placement/internal/pkg/errs"

	"github.com/google/uuid"
)

type Type string

const (
	TypeApplicationSubmitted Type = "APPLICATION_SUBMITTED"
	TypeRoundOutcome         Type = "ROUND_OUTCOME"
	TypeOfferCreated         Type = "OFFER_CREATED"
	TypeOfferResolved        Type = "OFFER_RESOLVED"
)

// PayloadVersion is bumped only for incompatible changes. Adding a field is not one.
const PayloadVersion = 1

var (
	ErrUnknownType        = errs.New("unknown event type")
	ErrUnsupportedVersion = errs.New("unsupported payload version")
)

func AllTypes() []Type {
	return []Type{TypeApplicationSubmitted, TypeRoundOutcome, TypeOfferCreated, TypeOfferResolved}
}

// Envelope is the outbox payload. It carries everything needed to rebuild
// notifications later, so replay never consults live state.
type Envelope struct {
	Version        int       `json:"v"`
	Type           Type      `json:"type"`
	ApplicationID  uuid.UUID `json:"application_id"`
	OpportunityID  uuid.UUID `json:"opportunity_id"`
	CandidateID    uuid.UUID `json:"candidate_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Display        Display   `json:"display"`
}

// Display holds resolved, human-readable fields only.
type Display struct {
	OpportunityTitle string  `json:"opportunity_title"`
	CandidateName    string  `json:"candidate_name,omitempty"`
	OverallStatus    string  `json:"overall_status"`
	RoundNumber      int     `json:"round_number,omitempty"`
	RoundName        string  `json:"round_name,omitempty"`
	Outcome          string  `json:"outcome,omitempty"`
	Feedback         string  `json:"feedback,omitempty"`
	Compensation     float64 `json:"compensation,omitempty"`
	StartDate        string  `json:"start_date,omitempty"`
	Decision         string  `json:"decision,omitempty"`
}

func Encode(e Envelope) ([]byte, error) {
	if e.Version == 0 {
		e.Version = PayloadVersion
	}
	b, err := json.Marshal(e)
	if err != nil {
		return nil, errs.Wrap(err, "encode event envelope")
	}
	return b, nil
}

// Decode ignores unknown fields so older dispatchers survive newer writers.
func Decode(b []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, errs.Wrap(err, "decode event envelope")
	}
	if e.Version < 1 {
		return Envelope{}, errs.Wrapf(ErrUnsupportedVersion, "version %d", e.Version)
	}
	return e, nil
}

// Description is what a transition hands back to its caller: the payload plus who gets it.
type Description struct {
	Envelope   Envelope
	Recipients []Recipient
}

func Describe(e Envelope) (Description, error) {
	if e.Version == 0 {
		e.Version = PayloadVersion
	}
	recipients, err := Resolve(e)
	if err != nil {
		return Description{}, err
	}
	return Description{Envelope: e, Recipients: recipients}, nil
}

// Message is the live push handed to the broadcaster for one topic.
type Message struct {
	EventID       uuid.UUID `json:"event_id"`
	Type          Type      `json:"type"`
	Version       int       `json:"v"`
	Topic         string    `json:"topic"`
	ApplicationID uuid.UUID `json:"application_id"`
	OpportunityID uuid.UUID `json:"opportunity_id"`
	Title         string    `json:"title"`
	Body          string    `json:"message"`
	Category      string    `json:"category"`
	Data          Display   `json:"data"`
	OccurredAt    time.Time `json:"occurred_at"`
}
