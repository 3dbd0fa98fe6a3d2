package repo

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/akhilrajvs/SquidEventWssService/internal/engine"
	"github.com/akhilrajvs/SquidEventWssService/internal/errs"
	"github.com/akhilrajvs/SquidEventWssService/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ParticipantRepository is the typed read/subscribe/update surface over the
// participants collection. The one-time choice writes are conditional on
// the persisted value still matching what the action observed, which is
// how duplicate submissions lose cleanly instead of corrupting the record.
type ParticipantRepository struct {
	participants *mongo.Collection
}

func NewParticipantRepository(client *mongo.Client, dbName string) *ParticipantRepository {
	return &ParticipantRepository{
		participants: client.Database(dbName).Collection("participants"),
	}
}

// Create inserts a fresh record with all gating fields at their zero
// values. Email and isAdmin are fixed here and never written again.
func (r *ParticipantRepository) Create(ctx context.Context, p *model.Participant) error {
	p.CreatedAt = time.Now().Unix()
	if p.GlassChoices == nil {
		p.GlassChoices = []model.GlassChoice{}
	}

	_, err := r.participants.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil // already provisioned by a concurrent first login
		}
		return errs.Transport("failed to create participant", err)
	}
	return nil
}

func (r *ParticipantRepository) Get(ctx context.Context, userID string) (*model.Participant, error) {
	var p model.Participant
	err := r.participants.FindOne(ctx, bson.M{"_id": userID}).Decode(&p)
	if err != nil {
		return nil, errs.Transport("failed to read participant", err)
	}
	return &p, nil
}

func (r *ParticipantRepository) GetByEmail(ctx context.Context, email string) (*model.Participant, error) {
	var p model.Participant
	err := r.participants.FindOne(ctx, bson.M{"email": email}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Transport("failed to read participant by email", err)
	}
	return &p, nil
}

// All returns every participant record, highest score first.
func (r *ParticipantRepository) All(ctx context.Context) ([]model.Participant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "totalScore", Value: -1}})
	cursor, err := r.participants.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errs.Transport("failed to list participants", err)
	}
	defer cursor.Close(ctx)

	var results []model.Participant
	if err := cursor.All(ctx, &results); err != nil {
		return nil, errs.Transport("failed to decode participants", err)
	}
	return results, nil
}

// SetScore is an admin-only field write.
func (r *ParticipantRepository) SetScore(ctx context.Context, userID string, score float64) error {
	return r.setField(ctx, userID, "totalScore", score)
}

// SetRound2Completed is an admin-only field write; the toggle semantics
// (flip, deliberately not idempotent) live in the admin surface.
func (r *ParticipantRepository) SetRound2Completed(ctx context.Context, userID string, completed bool) error {
	return r.setField(ctx, userID, "round2Completed", completed)
}

func (r *ParticipantRepository) SetLastConnected(ctx context.Context, userID string) error {
	return r.setField(ctx, userID, "lastConnected", time.Now().Unix())
}

func (r *ParticipantRepository) setField(ctx context.Context, userID, field string, value any) error {
	res, err := r.participants.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return errs.Transport("failed to update participant", err)
	}
	if res.MatchedCount == 0 {
		return errs.Validation("participant not found")
	}
	return nil
}

// LockShape commits the one-time shape choice. Both fields go in a single
// write conditional on shapeLocked still being false; once a lock is in,
// no actor can write either field again.
func (r *ParticipantRepository) LockShape(ctx context.Context, userID string, lock *engine.ShapeLock) error {
	filter := bson.M{"_id": userID, "shapeLocked": false}
	update := bson.M{"$set": bson.M{
		"selectedShape": lock.Shape,
		"shapeLocked":   true,
	}}

	res, err := r.participants.UpdateOne(ctx, filter, update)
	if err != nil {
		return errs.Transport("failed to lock shape", err)
	}
	if res.MatchedCount == 0 {
		return errs.GatingViolation("shape is already locked")
	}
	return nil
}

// AdvanceBridge appends one glass choice. The filter pins glassStep to the
// value the action observed, so of two duplicate submissions exactly one
// matches; the loser gets a stale-write conflict and must be surfaced as
// retry-required, never retried here.
func (r *ParticipantRepository) AdvanceBridge(ctx context.Context, userID string, adv *engine.BridgeAdvance) error {
	filter := bson.M{"_id": userID, "glassStep": adv.ExpectedStep}
	update := bson.M{
		"$set":  bson.M{"glassStep": adv.ExpectedStep + 1},
		"$push": bson.M{"glassChoices": adv.Entry},
	}

	res, err := r.participants.UpdateOne(ctx, filter, update)
	if err != nil {
		return errs.Transport("failed to advance bridge", err)
	}
	if res.MatchedCount == 0 {
		return errs.StaleWriteConflict("glass step already advanced past the observed value")
	}
	return nil
}

// Subscribe streams one participant's record: snapshot first, then every
// committed change in commit order. Closes when ctx is cancelled.
func (r *ParticipantRepository) Subscribe(ctx context.Context, userID string) (<-chan *model.Participant, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "documentKey._id", Value: userID}}}},
	}
	return r.watch(ctx, pipeline, userID)
}

// SubscribeAll streams every participant change (no snapshot, no ordering
// across documents). Feeds the admin leaderboard read-model.
func (r *ParticipantRepository) SubscribeAll(ctx context.Context) (<-chan *model.Participant, error) {
	return r.watch(ctx, mongo.Pipeline{}, "")
}

func (r *ParticipantRepository) watch(ctx context.Context, pipeline mongo.Pipeline, snapshotID string) (<-chan *model.Participant, error) {
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := r.participants.Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, errs.Transport("failed to watch participants", err)
	}

	var snapshot *model.Participant
	if snapshotID != "" {
		snapshot, err = r.Get(ctx, snapshotID)
		if err != nil {
			stream.Close(context.Background())
			return nil, err
		}
	}

	out := make(chan *model.Participant, 16)
	go func() {
		defer close(out)
		defer stream.Close(context.Background())

		if snapshot != nil {
			out <- snapshot
		}

		for stream.Next(ctx) {
			var change struct {
				FullDocument *model.Participant `bson:"fullDocument"`
			}
			if err := stream.Decode(&change); err != nil {
				log.Printf("[Repo] participant change decode failed: %v", err)
				continue
			}
			if change.FullDocument == nil {
				continue
			}
			select {
			case out <- change.FullDocument:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
