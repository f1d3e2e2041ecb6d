package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hilthontt/scenario-tracker/internal/domain"
	"github.com/hilthontt/scenario-tracker/internal/persistence/cursor"
	"github.com/hilthontt/scenario-tracker/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// partitionMarker is the fixed partition value of the primary key. Every
// scenario shares it; createdAt is the sort component.
const partitionMarker = "SCENARIO"

// scenarioDocument is the stored shape: the domain entity plus the
// partition marker.
type scenarioDocument struct {
	PK              string `bson:"pk"`
	domain.Scenario `bson:",inline"`
}

// primaryKey addresses exactly one stored scenario. Mutations must resolve
// the client-facing id to this key first; the key never changes after
// creation. The id component breaks ties between scenarios created in the
// same millisecond, since BSON datetimes carry no finer precision.
type primaryKey struct {
	PK        string    `bson:"pk"`
	CreatedAt time.Time `bson:"createdAt"`
	ID        string    `bson:"id"`
}

func (k primaryKey) filter() bson.M {
	return bson.M{"pk": k.PK, "createdAt": k.CreatedAt, "id": k.ID}
}

type scenarioRepository struct {
	db           *mongo.Database
	defaultLimit int
	maxLimit     int
}

func NewScenarioRepository(database *mongo.Database, defaultLimit, maxLimit int) domain.ScenarioRepository {
	return &scenarioRepository{
		db:           database,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

func (r *scenarioRepository) collection() *mongo.Collection {
	return r.db.Collection(db.ScenariosCollection)
}

func (r *scenarioRepository) List(ctx context.Context, opts domain.ListOptions) (*domain.ScenarioPage, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = r.defaultLimit
	}
	if limit > r.maxLimit {
		limit = r.maxLimit
	}

	filter := bson.M{"pk": partitionMarker}
	if opts.CreatedBy != "" {
		// Author path rides the (createdBy, createdAt) index instead of
		// the main partition.
		filter = bson.M{"createdBy": opts.CreatedBy}
	}

	if opts.NextKey != "" {
		key, err := cursor.Decode(opts.NextKey)
		if err != nil {
			return nil, err
		}
		// The id breaks ties between rows sharing a createdAt, so a page
		// boundary inside such a run neither skips nor repeats rows.
		filter["$or"] = bson.A{
			bson.M{"createdAt": bson.M{"$lt": key.CreatedAt}},
			bson.M{"createdAt": key.CreatedAt, "id": bson.M{"$lt": key.ID}},
		}
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "id", Value: -1}}).
		SetLimit(int64(limit) + 1) // look-ahead row decides the cursor

	cur, err := r.collection().Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []scenarioDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	page := &domain.ScenarioPage{}
	if len(docs) > limit {
		docs = docs[:limit]
		last := docs[len(docs)-1]
		page.NextKey = cursor.Encode(cursor.Key{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	page.Items = make([]domain.Scenario, 0, len(docs))
	for _, doc := range docs {
		page.Items = append(page.Items, doc.Scenario)
	}

	return page, nil
}

func (r *scenarioRepository) FindByID(ctx context.Context, id string) (*domain.Scenario, error) {
	var doc scenarioDocument

	err := r.collection().FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrScenarioNotFound
		}
		return nil, err
	}

	return &doc.Scenario, nil
}

func (r *scenarioRepository) Create(ctx context.Context, scenario *domain.Scenario) error {
	doc := scenarioDocument{
		PK:       partitionMarker,
		Scenario: *scenario,
	}

	_, err := r.collection().InsertOne(ctx, doc)
	return err
}

// resolvePrimaryKey maps the client-facing id to the primary storage key
// through the id index. Mutations pay this extra lookup so the natural
// sort key stays hidden from clients.
func (r *scenarioRepository) resolvePrimaryKey(ctx context.Context, id string) (primaryKey, error) {
	var doc scenarioDocument

	opts := options.FindOne().SetProjection(bson.M{"pk": 1, "createdAt": 1, "id": 1})
	err := r.collection().FindOne(ctx, bson.M{"id": id}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return primaryKey{}, domain.ErrScenarioNotFound
		}
		return primaryKey{}, err
	}

	return primaryKey{PK: doc.PK, CreatedAt: doc.CreatedAt, ID: doc.ID}, nil
}

func (r *scenarioRepository) UpdatePartial(ctx context.Context, id string, fields domain.ScenarioFields, updatedBy string) (*domain.Scenario, error) {
	if fields.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}

	key, err := r.resolvePrimaryKey(ctx, id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": buildPartialUpdate(fields, updatedBy, time.Now().UTC())}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc scenarioDocument
	err = r.collection().FindOneAndUpdate(ctx, key.filter(), update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrScenarioNotFound
		}
		return nil, err
	}

	return &doc.Scenario, nil
}

func (r *scenarioRepository) Delete(ctx context.Context, id string) error {
	key, err := r.resolvePrimaryKey(ctx, id)
	if err != nil {
		return err
	}

	result, err := r.collection().DeleteOne(ctx, key.filter())
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return domain.ErrScenarioNotFound
	}

	return nil
}

func (r *scenarioRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection().Indexes().CreateMany(ctx, scenarioIndexModels())
	return err
}

func scenarioIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			// The id component keeps two creates landing in the same
			// millisecond from colliding on the unique constraint.
			Keys: bson.D{
				{Key: "pk", Value: 1},
				{Key: "createdAt", Value: -1},
				{Key: "id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "id", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "createdBy", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
	}
}

// buildPartialUpdate turns the supplied fields into a $set document.
// Omitted fields never appear, so stored values stay untouched.
func buildPartialUpdate(fields domain.ScenarioFields, updatedBy string, now time.Time) bson.M {
	set := bson.M{
		"updatedBy": updatedBy,
		"updatedAt": now,
	}

	if fields.Ticket != nil {
		set["ticket"] = *fields.Ticket
	}
	if fields.Title != nil {
		set["title"] = *fields.Title
	}
	if fields.Description != nil {
		set["description"] = *fields.Description
	}
	if fields.Steps != nil {
		set["steps"] = fields.Steps
	}
	if fields.ExpectedResult != nil {
		set["expectedResult"] = *fields.ExpectedResult
	}
	if fields.Components != nil {
		set["components"] = fields.Components
	}

	return set
}
