package query

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Opportunity struct {
	ID                    uuid.UUID `db:"id"`
	OrganizationID        uuid.UUID `db:"organization_id"`
	Title                 string    `db:"title"`
	TotalRounds           int32     `db:"total_rounds"`
	AcceptingApplications bool      `db:"accepting_applications"`
	EligibleDepartments   []string  `db:"eligible_departments"`
	MinQualifyingScore    float64   `db:"min_qualifying_score"`
}

type CandidateProfile struct {
	CandidateID     uuid.UUID `db:"candidate_id"`
	DisplayName     string    `db:"display_name"`
	Department      string    `db:"department"`
	QualifyingScore float64   `db:"qualifying_score"`
}

type Application struct {
	ID                 uuid.UUID `db:"id"`
	CandidateID        uuid.UUID `db:"candidate_id"`
	OpportunityID      uuid.UUID `db:"opportunity_id"`
	CurrentRoundNumber int32     `db:"current_round_number"`
	OverallStatus      string    `db:"overall_status"`
	AppliedAt          time.Time `db:"applied_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

type ApplicationRound struct {
	ApplicationID uuid.UUID   `db:"application_id"`
	RoundNumber   int32       `db:"round_number"`
	RoundName     string      `db:"round_name"`
	Status        string      `db:"status"`
	Feedback      pgtype.Text `db:"feedback"`
	UpdatedBy     uuid.UUID   `db:"updated_by"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

type Offer struct {
	ID                uuid.UUID          `db:"id"`
	ApplicationID     uuid.UUID          `db:"application_id"`
	Compensation      float64            `db:"compensation"`
	ProposedStartDate pgtype.Date        `db:"proposed_start_date"`
	Status            string             `db:"status"`
	CreatedAt         time.Time          `db:"created_at"`
	UpdatedAt         time.Time          `db:"updated_at"`
	RespondedAt       pgtype.Timestamptz `db:"responded_at"`
}

type OutboxEntry struct {
	ID           uuid.UUID          `db:"id"`
	Seq          int64              `db:"seq"`
	AggregateID  uuid.UUID          `db:"aggregate_id"`
	EventType    string             `db:"event_type"`
	Payload      []byte             `db:"payload"`
	CommittedAt  time.Time          `db:"committed_at"`
	PublishedAt  pgtype.Timestamptz `db:"published_at"`
	AttemptCount int32              `db:"attempt_count"`
	LastError    pgtype.Text        `db:"last_error"`
}

type Notification struct {
	ID                   uuid.UUID          `db:"id"`
	OutboxID             uuid.UUID          `db:"outbox_id"`
	RecipientID          uuid.UUID          `db:"recipient_id"`
	RecipientRole        string             `db:"recipient_role"`
	Title                string             `db:"title"`
	Message              string             `db:"message"`
	Category             string             `db:"category"`
	RelatedOpportunityID pgtype.UUID        `db:"related_opportunity_id"`
	IsRead               bool               `db:"is_read"`
	CreatedAt            time.Time          `db:"created_at"`
	ReadAt               pgtype.Timestamptz `db:"read_at"`
}
