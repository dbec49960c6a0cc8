package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/hirepipe/ats/internal/core/domain"
)

// The lookup index and the ListByCandidate filter depend on these field names.
func TestStageEvent_DocumentFields(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	raw, err := bson.Marshal(domain.StageEvent{
		CandidateID: 3, JobID: 1, From: domain.StageSubmitted, To: domain.StageFirstRound,
		ActorID: 2, Actor: "maria", At: at,
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if doc["candidate_id"] != int64(3) {
		t.Fatalf("expected candidate_id=3, got %#v", doc["candidate_id"])
	}
	if doc["to"] != "First Round" || doc["from"] != "Submitted" {
		t.Fatalf("unexpected stages: %#v", doc)
	}
	if _, ok := doc["at"]; !ok {
		t.Fatal("expected at field")
	}
}
