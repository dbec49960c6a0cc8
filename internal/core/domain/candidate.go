package domain

import "time"

// Stage is the hiring pipeline state a candidate occupies.
type Stage string

const (
	StageSubmitted   Stage = "Submitted"
	StageFirstRound  Stage = "First Round"
	StageSecondRound Stage = "Second Round"
	StageThirdRound  Stage = "Third Round"
	StageSelected    Stage = "Selected"
	StageRejected    Stage = "Rejected"
)

// Stages is the fixed, ordered pipeline. Rejected is reachable from any stage.
var Stages = []Stage{
	StageSubmitted,
	StageFirstRound,
	StageSecondRound,
	StageThirdRound,
	StageSelected,
	StageRejected,
}

// UnknownRecruiter is reported when a candidate's recruiter no longer exists.
const UnknownRecruiter = "Unknown"

// Valid reports whether s is one of the six pipeline stages.
func (s Stage) Valid() bool {
	for _, st := range Stages {
		if s == st {
			return true
		}
	}
	return false
}

// StageNames returns the pipeline as plain strings, in order.
func StageNames() []string {
	out := make([]string, len(Stages))
	for i, s := range Stages {
		out[i] = string(s)
	}
	return out
}

// Candidate is a person submitted by a recruiter against a job.
// Stage is the only field that changes after creation.
type Candidate struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"jobId"`
	RecruiterID int64     `json:"recruiterId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	ResumeURL   string    `json:"resumeUrl"`
	Stage       Stage     `json:"stage"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`

	// RecruiterUsername is resolved at read time; empty on write paths.
	RecruiterUsername string `json:"recruiterUsername,omitempty"`
}

// StageEvent records a single stage change for the audit trail.
type StageEvent struct {
	CandidateID int64     `json:"candidateId" bson:"candidate_id"`
	JobID       int64     `json:"jobId" bson:"job_id"`
	From        Stage     `json:"from" bson:"from"`
	To          Stage     `json:"to" bson:"to"`
	ActorID     int64     `json:"actorId" bson:"actor_id"`
	Actor       string    `json:"actor" bson:"actor"`
	At          time.Time `json:"at" bson:"at"`
}
