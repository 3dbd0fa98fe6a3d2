package repo

import (
	"context"
	"log"
	"time"

	"github.com/akhilrajvs/SquidEventWssService/internal/errs"
	"github.com/akhilrajvs/SquidEventWssService/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventStateRepository is the typed read/subscribe/update surface over the
// singleton event state document.
type EventStateRepository struct {
	states *mongo.Collection
}

func NewEventStateRepository(client *mongo.Client, dbName string) *EventStateRepository {
	return &EventStateRepository{
		states: client.Database(dbName).Collection("eventState"),
	}
}

// EnsureCreated creates the singleton with pre-event defaults if it does
// not exist yet. Safe to call on every boot.
func (r *EventStateRepository) EnsureCreated(ctx context.Context) error {
	initial := model.NewEventState()
	filter := bson.M{"_id": model.EventStateID}
	update := bson.M{"$setOnInsert": bson.M{
		"stage":         initial.Stage,
		"activeForm":    initial.ActiveForm,
		"round2Enabled": initial.Round2Enabled,
		"round3Enabled": initial.Round3Enabled,
		"updatedAt":     time.Now().Unix(),
	}}

	_, err := r.states.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return errs.Transport("failed to create event state", err)
	}
	return nil
}

// Get returns the current event state snapshot.
func (r *EventStateRepository) Get(ctx context.Context) (*model.EventState, error) {
	var state model.EventState
	err := r.states.FindOne(ctx, bson.M{"_id": model.EventStateID}).Decode(&state)
	if err != nil {
		return nil, errs.Transport("failed to read event state", err)
	}
	return &state, nil
}

// SetField writes a single field of the singleton. All admin transitions
// are field-level merges; nothing else ever mutates this document.
func (r *EventStateRepository) SetField(ctx context.Context, field string, value any) error {
	update := bson.M{"$set": bson.M{
		field:       value,
		"updatedAt": time.Now().Unix(),
	}}

	res, err := r.states.UpdateOne(ctx, bson.M{"_id": model.EventStateID}, update)
	if err != nil {
		return errs.Transport("failed to update event state", err)
	}
	if res.MatchedCount == 0 {
		return errs.Transport("event state document missing", mongo.ErrNoDocuments)
	}
	return nil
}

// Subscribe opens a live stream over the singleton: the current snapshot
// first, then every committed change in commit order. The channel closes
// when ctx is cancelled.
func (r *EventStateRepository) Subscribe(ctx context.Context) (<-chan *model.EventState, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "documentKey._id", Value: model.EventStateID}}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := r.states.Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, errs.Transport("failed to watch event state", err)
	}

	snapshot, err := r.Get(ctx)
	if err != nil {
		stream.Close(context.Background())
		return nil, err
	}

	out := make(chan *model.EventState, 16)
	go func() {
		defer close(out)
		defer stream.Close(context.Background())

		out <- snapshot

		for stream.Next(ctx) {
			var change struct {
				FullDocument model.EventState `bson:"fullDocument"`
			}
			if err := stream.Decode(&change); err != nil {
				log.Printf("[Repo] event state change decode failed: %v", err)
				continue
			}
			select {
			case out <- &change.FullDocument:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
