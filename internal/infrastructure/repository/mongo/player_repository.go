package mongo

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ydelmas/fc26admin/internal/domain/player"
)

type playerDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	LeagueID primitive.ObjectID `bson:"leagueId,omitempty"`
	TeamID   primitive.ObjectID `bson:"teamId"`
	Team     string             `bson:"team,omitempty"`

	PlayerName string `bson:"playerName,omitempty"`
	Slug       string `bson:"slug"`
	Positions  string `bson:"positions,omitempty"`

	Overall  int `bson:"overall"`
	Age      int `bson:"age"`
	Pac      int `bson:"pac"`
	Sho      int `bson:"sho"`
	Pas      int `bson:"pas"`
	Dri      int `bson:"dri"`
	Def      int `bson:"def"`
	Phy      int `bson:"phy"`
	HeightCm int `bson:"heightCm"`

	PreferredFoot string `bson:"preferredFoot,omitempty"`
	ContractStart *int64 `bson:"contractStart"`
	ContractEnd   *int64 `bson:"contractEnd"`
	MarketValue   int64  `bson:"marketValue"`

	CreatedAt time.Time `bson:"createdAt,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty"`

	// Older imports wrote snake_case spellings for a few fields. They are
	// resolved here, once, at the decode boundary; nothing above this layer
	// ever sees them.
	LegacyPlayerName string `bson:"player_name,omitempty"`
	LegacyName       string `bson:"name,omitempty"`
	LegacyTeamName   string `bson:"team_name,omitempty"`
	LegacyValue      int64  `bson:"market_value,omitempty"`
}

func (d playerDoc) toDomain() player.Player {
	value := d.MarketValue
	if value == 0 {
		value = d.LegacyValue
	}

	return player.Player{
		ID:            d.ID.Hex(),
		LeagueID:      hexOrEmpty(d.LeagueID),
		TeamID:        d.TeamID.Hex(),
		Team:          firstNonEmpty(d.Team, d.LegacyTeamName),
		PlayerName:    firstNonEmpty(d.PlayerName, d.LegacyPlayerName, d.LegacyName),
		Slug:          d.Slug,
		Positions:     d.Positions,
		Overall:       d.Overall,
		Age:           d.Age,
		Pac:           d.Pac,
		Sho:           d.Sho,
		Pas:           d.Pas,
		Dri:           d.Dri,
		Def:           d.Def,
		Phy:           d.Phy,
		HeightCm:      d.HeightCm,
		PreferredFoot: d.PreferredFoot,
		ContractStart: d.ContractStart,
		ContractEnd:   d.ContractEnd,
		MarketValue:   value,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func hexOrEmpty(oid primitive.ObjectID) string {
	if oid.IsZero() {
		return ""
	}
	return oid.Hex()
}

var playerSortFields = map[player.Sort]bson.D{
	player.SortOverallDesc: {{Key: "overall", Value: -1}, {Key: "playerName", Value: 1}},
	player.SortValueDesc:   {{Key: "marketValue", Value: -1}, {Key: "playerName", Value: 1}},
	player.SortAgeAsc:      {{Key: "age", Value: 1}, {Key: "playerName", Value: 1}},
	player.SortNameAsc:     {{Key: "playerName", Value: 1}},
}

type PlayerRepository struct {
	coll *mongo.Collection
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{coll: store.Database().Collection(CollPlayers)}
}

// filterQuery translates a listing filter into a document query. An
// unparsable league or team id matches nothing.
func playerFilterQuery(f player.Filter) (bson.M, bool) {
	filter := bson.M{}
	if f.NameQuery != "" {
		filter["playerName"] = containsRegex(f.NameQuery)
	}
	if f.LeagueID != "" {
		oid, ok := oidFromHex(f.LeagueID)
		if !ok {
			return nil, false
		}
		filter["leagueId"] = oid
	}
	if f.TeamID != "" {
		oid, ok := oidFromHex(f.TeamID)
		if !ok {
			return nil, false
		}
		filter["teamId"] = oid
	}
	if f.OverallMin != nil || f.OverallMax != nil {
		bounds := bson.M{}
		if f.OverallMin != nil {
			bounds["$gte"] = *f.OverallMin
		}
		if f.OverallMax != nil {
			bounds["$lte"] = *f.OverallMax
		}
		filter["overall"] = bounds
	}
	return filter, true
}

func (r *PlayerRepository) List(ctx context.Context, f player.Filter) ([]player.Player, error) {
	filter, ok := playerFilterQuery(f)
	if !ok {
		return []player.Player{}, nil
	}

	sortSpec, found := playerSortFields[f.Sort]
	if !found {
		sortSpec = playerSortFields[player.SortOverallDesc]
	}

	opts := options.Find().SetSort(sortSpec)
	if f.Offset > 0 {
		opts.SetSkip(f.Offset)
	}
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	return r.find(ctx, filter, opts)
}

func (r *PlayerRepository) Count(ctx context.Context, f player.Filter) (int64, error) {
	filter, ok := playerFilterQuery(f)
	if !ok {
		return 0, nil
	}

	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, errors.Wrap(err, "count players")
	}
	return n, nil
}

func (r *PlayerRepository) ListLatest(ctx context.Context, limit int64) ([]player.Player, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)
	return r.find(ctx, bson.M{}, opts)
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string, limit int64) ([]player.Player, error) {
	oid, ok := oidFromHex(teamID)
	if !ok {
		return []player.Player{}, nil
	}

	opts := options.Find().
		SetSort(playerSortFields[player.SortOverallDesc]).
		SetLimit(limit)
	return r.find(ctx, bson.M{"teamId": oid}, opts)
}

func (r *PlayerRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]player.Player, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find players")
	}

	var docs []playerDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode players")
	}

	out := make([]player.Player, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (player.Player, bool, error) {
	oid, ok := oidFromHex(id)
	if !ok {
		return player.Player{}, false, nil
	}

	var d playerDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return player.Player{}, false, nil
	}
	if err != nil {
		return player.Player{}, false, errors.Wrap(err, "get player")
	}

	return d.toDomain(), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) (player.Player, error) {
	doc, err := fromDomainPlayer(p)
	if err != nil {
		return player.Player{}, err
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return player.Player{}, errors.Wrap(err, "insert player")
	}

	p.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return p, nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	oid, ok := oidFromHex(p.ID)
	if !ok {
		return errors.Newf("invalid player id %q", p.ID)
	}

	update := bson.M{"$set": playerFields(p)}
	update["$set"].(bson.M)["updatedAt"] = p.UpdatedAt
	if _, err := r.coll.UpdateByID(ctx, oid, update); err != nil {
		return errors.Wrap(err, "update player")
	}
	return nil
}

// Upsert writes p keyed by (teamId, slug) in one atomic operation. Every
// attribute is overwritten on each run; createdAt only lands on first insert.
func (r *PlayerRepository) Upsert(ctx context.Context, p player.Player) error {
	teamOID, ok := oidFromHex(p.TeamID)
	if !ok {
		return errors.Newf("invalid team id %q", p.TeamID)
	}

	fields := playerFields(p)
	fields["updatedAt"] = p.UpdatedAt

	filter := bson.M{"teamId": teamOID, "slug": p.Slug}
	update := bson.M{
		"$set":         fields,
		"$setOnInsert": bson.M{"createdAt": p.CreatedAt},
	}

	if _, err := r.coll.UpdateOne(ctx, filter, update, upsertOpt()); err != nil {
		return errors.Wrapf(err, "upsert player %s", p.Slug)
	}
	return nil
}

// playerFields lists every mutable attribute, shared by Update and Upsert.
// The natural key parts (teamId, slug) and createdAt are handled by callers.
func playerFields(p player.Player) bson.M {
	fields := bson.M{
		"team":          p.Team,
		"playerName":    p.PlayerName,
		"positions":     p.Positions,
		"overall":       p.Overall,
		"age":           p.Age,
		"pac":           p.Pac,
		"sho":           p.Sho,
		"pas":           p.Pas,
		"dri":           p.Dri,
		"def":           p.Def,
		"phy":           p.Phy,
		"heightCm":      p.HeightCm,
		"preferredFoot": p.PreferredFoot,
		"contractStart": p.ContractStart,
		"contractEnd":   p.ContractEnd,
		"marketValue":   p.MarketValue,
	}
	if oid, ok := oidFromHex(p.LeagueID); ok {
		fields["leagueId"] = oid
	}
	return fields
}

func fromDomainPlayer(p player.Player) (playerDoc, error) {
	teamOID, ok := oidFromHex(p.TeamID)
	if !ok {
		return playerDoc{}, errors.Newf("invalid team id %q", p.TeamID)
	}
	leagueOID, _ := oidFromHex(p.LeagueID)

	return playerDoc{
		LeagueID:      leagueOID,
		TeamID:        teamOID,
		Team:          p.Team,
		PlayerName:    p.PlayerName,
		Slug:          p.Slug,
		Positions:     p.Positions,
		Overall:       p.Overall,
		Age:           p.Age,
		Pac:           p.Pac,
		Sho:           p.Sho,
		Pas:           p.Pas,
		Dri:           p.Dri,
		Def:           p.Def,
		Phy:           p.Phy,
		HeightCm:      p.HeightCm,
		PreferredFoot: p.PreferredFoot,
		ContractStart: p.ContractStart,
		ContractEnd:   p.ContractEnd,
		MarketValue:   p.MarketValue,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id string) error {
	oid, ok := oidFromHex(id)
	if !ok {
		return nil
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return errors.Wrap(err, "delete player")
	}
	return nil
}

func (r *PlayerRepository) CountByTeam(ctx context.Context, teamID string) (int64, error) {
	oid, ok := oidFromHex(teamID)
	if !ok {
		return 0, nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"teamId": oid})
	if err != nil {
		return 0, errors.Wrap(err, "count players by team")
	}
	return n, nil
}

func (r *PlayerRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx,
		uniqueIndex(bson.D{{Key: "teamId", Value: 1}, {Key: "slug", Value: 1}}))
	if err != nil {
		return errors.Wrap(err, "ensure player indexes")
	}
	return nil
}
