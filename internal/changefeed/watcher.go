package changefeed

import (
	"context"

	"github.com/google/uuid"
	"github.com/hilthontt/scenario-tracker/internal/domain"
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/logging"
	"github.com/hilthontt/scenario-tracker/internal/persistence/db"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// streamEvent is the subset of a change stream document the feed needs.
type streamEvent struct {
	ID struct {
		Data string `bson:"_data"`
	} `bson:"_id"`
	OperationType            string           `bson:"operationType"`
	FullDocument             *domain.Scenario `bson:"fullDocument"`
	FullDocumentBeforeChange *domain.Scenario `bson:"fullDocumentBeforeChange"`
}

type Watcher struct {
	database  *mongo.Database
	publisher *Publisher
	logger    logging.Logger
}

func NewWatcher(database *mongo.Database, publisher *Publisher, logger logging.Logger) *Watcher {
	return &Watcher{
		database:  database,
		publisher: publisher,
		logger:    logger,
	}
}

// Watch tails the scenarios change stream until ctx is cancelled, relaying
// every event to the broker. A publish failure is logged and skipped; the
// stream keeps moving.
func (w *Watcher) Watch(ctx context.Context) error {
	opts := options.ChangeStream().
		SetFullDocument(options.UpdateLookup).
		SetFullDocumentBeforeChange(options.WhenAvailable)

	stream, err := w.database.Collection(db.ScenariosCollection).Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		return err
	}
	defer stream.Close(context.Background())

	w.logger.Info(logging.ChangeFeed, logging.Watch, "watching scenario change stream", nil)

	for stream.Next(ctx) {
		var raw streamEvent
		if err := stream.Decode(&raw); err != nil {
			w.logger.Error(logging.ChangeFeed, logging.Watch, "failed to decode change event", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
			continue
		}

		event := toChangeEvent(raw)

		if err := w.publisher.Publish(ctx, event); err != nil {
			w.logger.Error(logging.ChangeFeed, logging.Publish, "failed to publish change event", map[logging.ExtraKey]any{
				logging.EventID:      event.ID,
				logging.ErrorMessage: err.Error(),
			})
		}
	}

	return stream.Err()
}

func toChangeEvent(raw streamEvent) ChangeEvent {
	id := raw.ID.Data
	if id == "" {
		id = uuid.NewString()
	}

	return ChangeEvent{
		ID:   id,
		Kind: kindFromOperation(raw.OperationType),
		New:  raw.FullDocument,
		Old:  raw.FullDocumentBeforeChange,
	}
}

func kindFromOperation(op string) Kind {
	switch op {
	case "insert":
		return KindInsert
	case "update", "replace":
		return KindModify
	case "delete":
		return KindRemove
	default:
		return KindUnknown
	}
}
