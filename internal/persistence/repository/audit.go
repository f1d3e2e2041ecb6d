package repository

import (
	"context"

	"github.com/hilthontt/scenario-tracker/internal/domain"
	"github.com/hilthontt/scenario-tracker/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type auditRepository struct {
	db *mongo.Database
}

func NewAuditRepository(database *mongo.Database) domain.AuditRepository {
	return &auditRepository{
		db: database,
	}
}

func (r *auditRepository) collection() *mongo.Collection {
	return r.db.Collection(db.AuditEntriesCollection)
}

func (r *auditRepository) Log(ctx context.Context, entry *domain.AuditEntry) error {
	_, err := r.collection().InsertOne(ctx, entry)
	return err
}

func (r *auditRepository) GetByScenarioID(ctx context.Context, scenarioID string) ([]domain.AuditEntry, error) {
	filter := bson.M{"scenarioId": scenarioID}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cur, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []domain.AuditEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *auditRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "scenarioId", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
	}

	_, err := r.collection().Indexes().CreateMany(ctx, indexes)
	return err
}
