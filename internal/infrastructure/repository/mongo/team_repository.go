package mongo

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ydelmas/fc26admin/internal/domain/team"
)

type teamDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	LeagueID primitive.ObjectID `bson:"leagueId"`
	Name     string             `bson:"name"`
	Slug     string             `bson:"slug"`

	Rating   int     `bson:"rating"`
	Att      int     `bson:"att"`
	Mid      int     `bson:"mid"`
	Def      int     `bson:"def"`
	Budget   int64   `bson:"budget"`
	AvgAge   float64 `bson:"avgAge"`
	YouthDev int     `bson:"youthDev"`

	CreatedAt time.Time `bson:"createdAt,omitempty"`
}

func (d teamDoc) toDomain() team.Team {
	return team.Team{
		ID:        d.ID.Hex(),
		LeagueID:  d.LeagueID.Hex(),
		Name:      d.Name,
		Slug:      d.Slug,
		Rating:    d.Rating,
		Att:       d.Att,
		Mid:       d.Mid,
		Def:       d.Def,
		Budget:    d.Budget,
		AvgAge:    d.AvgAge,
		YouthDev:  d.YouthDev,
		CreatedAt: d.CreatedAt,
	}
}

var teamSortFields = map[team.Sort]bson.D{
	team.SortNameAsc:    {{Key: "name", Value: 1}},
	team.SortRatingDesc: {{Key: "rating", Value: -1}, {Key: "name", Value: 1}},
	team.SortBudgetDesc: {{Key: "budget", Value: -1}, {Key: "name", Value: 1}},
}

type TeamRepository struct {
	coll *mongo.Collection
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{coll: store.Database().Collection(CollTeams)}
}

func (r *TeamRepository) List(ctx context.Context, f team.Filter) ([]team.Team, error) {
	filter := bson.M{}
	if f.NameQuery != "" {
		filter["name"] = containsRegex(f.NameQuery)
	}
	if f.LeagueID != "" {
		oid, ok := oidFromHex(f.LeagueID)
		if !ok {
			return []team.Team{}, nil
		}
		filter["leagueId"] = oid
	}

	sortSpec, ok := teamSortFields[f.Sort]
	if !ok {
		sortSpec = teamSortFields[team.SortNameAsc]
	}

	return r.find(ctx, filter, sortSpec)
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	oid, ok := oidFromHex(leagueID)
	if !ok {
		return []team.Team{}, nil
	}
	return r.find(ctx, bson.M{"leagueId": oid}, teamSortFields[team.SortNameAsc])
}

func (r *TeamRepository) find(ctx context.Context, filter bson.M, sortSpec bson.D) ([]team.Team, error) {
	cur, err := r.coll.Find(ctx, filter, findSort(sortSpec))
	if err != nil {
		return nil, errors.Wrap(err, "find teams")
	}

	var docs []teamDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode teams")
	}

	out := make([]team.Team, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (team.Team, bool, error) {
	oid, ok := oidFromHex(id)
	if !ok {
		return team.Team{}, false, nil
	}

	var d teamDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return team.Team{}, false, nil
	}
	if err != nil {
		return team.Team{}, false, errors.Wrap(err, "get team")
	}

	return d.toDomain(), true, nil
}

func (r *TeamRepository) FindByNameOrSlug(ctx context.Context, leagueID, name, slug string) (team.Team, bool, error) {
	oid, ok := oidFromHex(leagueID)
	if !ok {
		return team.Team{}, false, nil
	}

	filter := bson.M{
		"leagueId": oid,
		"$or":      bson.A{bson.M{"name": name}, bson.M{"slug": slug}},
	}

	var d teamDoc
	err := r.coll.FindOne(ctx, filter).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return team.Team{}, false, nil
	}
	if err != nil {
		return team.Team{}, false, errors.Wrap(err, "find team by name or slug")
	}

	return d.toDomain(), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) (team.Team, error) {
	leagueOID, ok := oidFromHex(t.LeagueID)
	if !ok {
		return team.Team{}, errors.Newf("invalid league id %q", t.LeagueID)
	}

	doc := teamDoc{
		LeagueID:  leagueOID,
		Name:      t.Name,
		Slug:      t.Slug,
		Rating:    t.Rating,
		Att:       t.Att,
		Mid:       t.Mid,
		Def:       t.Def,
		Budget:    t.Budget,
		AvgAge:    t.AvgAge,
		YouthDev:  t.YouthDev,
		CreatedAt: t.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return team.Team{}, errors.Wrap(err, "insert team")
	}

	t.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return t, nil
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) error {
	oid, ok := oidFromHex(t.ID)
	if !ok {
		return errors.Newf("invalid team id %q", t.ID)
	}

	update := bson.M{"$set": bson.M{
		"name":     t.Name,
		"slug":     t.Slug,
		"rating":   t.Rating,
		"att":      t.Att,
		"mid":      t.Mid,
		"def":      t.Def,
		"budget":   t.Budget,
		"avgAge":   t.AvgAge,
		"youthDev": t.YouthDev,
	}}
	if _, err := r.coll.UpdateByID(ctx, oid, update); err != nil {
		return errors.Wrap(err, "update team")
	}
	return nil
}

// Upsert writes t keyed by (leagueId, slug) in one atomic operation. Every
// stat field is overwritten on each run; createdAt only lands on first insert.
func (r *TeamRepository) Upsert(ctx context.Context, t team.Team) error {
	leagueOID, ok := oidFromHex(t.LeagueID)
	if !ok {
		return errors.Newf("invalid league id %q", t.LeagueID)
	}

	filter := bson.M{"leagueId": leagueOID, "slug": t.Slug}
	update := bson.M{
		"$set": bson.M{
			"name":     t.Name,
			"rating":   t.Rating,
			"att":      t.Att,
			"mid":      t.Mid,
			"def":      t.Def,
			"budget":   t.Budget,
			"avgAge":   t.AvgAge,
			"youthDev": t.YouthDev,
		},
		"$setOnInsert": bson.M{"createdAt": t.CreatedAt},
	}

	if _, err := r.coll.UpdateOne(ctx, filter, update, upsertOpt()); err != nil {
		return errors.Wrapf(err, "upsert team %s", t.Slug)
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	oid, ok := oidFromHex(id)
	if !ok {
		return nil
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return errors.Wrap(err, "delete team")
	}
	return nil
}

func (r *TeamRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, errors.Wrap(err, "count teams")
	}
	return n, nil
}

func (r *TeamRepository) CountByLeague(ctx context.Context, leagueID string) (int64, error) {
	oid, ok := oidFromHex(leagueID)
	if !ok {
		return 0, nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"leagueId": oid})
	if err != nil {
		return 0, errors.Wrap(err, "count teams by league")
	}
	return n, nil
}

func (r *TeamRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx,
		uniqueIndex(bson.D{{Key: "leagueId", Value: 1}, {Key: "slug", Value: 1}}))
	if err != nil {
		return errors.Wrap(err, "ensure team indexes")
	}
	return nil
}
