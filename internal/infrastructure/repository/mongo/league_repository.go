package mongo

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ydelmas/fc26admin/internal/domain/league"
)

type leagueDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Code      string             `bson:"code"`
	Name      string             `bson:"name"`
	Country   string             `bson:"country,omitempty"`
	Level     int                `bson:"level"`
	CreatedAt time.Time          `bson:"createdAt,omitempty"`
}

func (d leagueDoc) toDomain() league.League {
	return league.League{
		ID:        d.ID.Hex(),
		Code:      d.Code,
		Name:      d.Name,
		Country:   d.Country,
		Level:     d.Level,
		CreatedAt: d.CreatedAt,
	}
}

var leagueSortFields = map[league.Sort]bson.D{
	league.SortCodeAsc:  {{Key: "code", Value: 1}},
	league.SortNameAsc:  {{Key: "name", Value: 1}},
	league.SortLevelAsc: {{Key: "level", Value: 1}, {Key: "code", Value: 1}},
}

type LeagueRepository struct {
	coll *mongo.Collection
}

func NewLeagueRepository(store *Store) *LeagueRepository {
	return &LeagueRepository{coll: store.Database().Collection(CollLeagues)}
}

func (r *LeagueRepository) List(ctx context.Context, f league.Filter) ([]league.League, error) {
	filter := bson.M{}
	if f.Query != "" {
		re := containsRegex(f.Query)
		filter["$or"] = bson.A{
			bson.M{"code": re},
			bson.M{"name": re},
			bson.M{"country": re},
		}
	}

	sortSpec, ok := leagueSortFields[f.Sort]
	if !ok {
		sortSpec = leagueSortFields[league.SortCodeAsc]
	}

	cur, err := r.coll.Find(ctx, filter, findSort(sortSpec))
	if err != nil {
		return nil, errors.Wrap(err, "find leagues")
	}

	var docs []leagueDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode leagues")
	}

	out := make([]league.League, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, id string) (league.League, bool, error) {
	oid, ok := oidFromHex(id)
	if !ok {
		return league.League{}, false, nil
	}

	var d leagueDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return league.League{}, false, nil
	}
	if err != nil {
		return league.League{}, false, errors.Wrap(err, "get league")
	}

	return d.toDomain(), true, nil
}

func (r *LeagueRepository) GetByCode(ctx context.Context, code string) (league.League, bool, error) {
	var d leagueDoc
	err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return league.League{}, false, nil
	}
	if err != nil {
		return league.League{}, false, errors.Wrap(err, "get league by code")
	}

	return d.toDomain(), true, nil
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League) (league.League, error) {
	doc := leagueDoc{
		Code:      l.Code,
		Name:      l.Name,
		Country:   l.Country,
		Level:     l.Level,
		CreatedAt: l.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return league.League{}, errors.Wrap(err, "insert league")
	}

	l.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return l, nil
}

func (r *LeagueRepository) Update(ctx context.Context, l league.League) error {
	oid, ok := oidFromHex(l.ID)
	if !ok {
		return errors.Newf("invalid league id %q", l.ID)
	}

	update := bson.M{"$set": bson.M{
		"code":    l.Code,
		"name":    l.Name,
		"country": l.Country,
		"level":   l.Level,
	}}
	if _, err := r.coll.UpdateByID(ctx, oid, update); err != nil {
		return errors.Wrap(err, "update league")
	}
	return nil
}

func (r *LeagueRepository) Delete(ctx context.Context, id string) error {
	oid, ok := oidFromHex(id)
	if !ok {
		return nil
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return errors.Wrap(err, "delete league")
	}
	return nil
}

// SeedUpsert inserts l keyed by code; an existing league is left untouched so
// manual edits survive re-seeding.
func (r *LeagueRepository) SeedUpsert(ctx context.Context, l league.League) (bool, error) {
	update := bson.M{"$setOnInsert": bson.M{
		"code":      l.Code,
		"name":      l.Name,
		"country":   l.Country,
		"level":     l.Level,
		"createdAt": l.CreatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"code": l.Code}, update, upsertOpt())
	if err != nil {
		return false, errors.Wrapf(err, "seed league %s", l.Code)
	}
	return res.UpsertedCount > 0, nil
}

func (r *LeagueRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, errors.Wrap(err, "count leagues")
	}
	return n, nil
}

func (r *LeagueRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, uniqueIndex(bson.D{{Key: "code", Value: 1}}))
	if err != nil {
		return errors.Wrap(err, "ensure league indexes")
	}
	return nil
}
