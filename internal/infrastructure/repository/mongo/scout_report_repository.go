package mongo

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ydelmas/fc26admin/internal/domain/scoutreport"
)

type scoutReportDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	PlayerID   primitive.ObjectID `bson:"playerId"`
	Rating     int                `bson:"rating"`
	Strengths  []string           `bson:"strengths,omitempty"`
	Weaknesses []string           `bson:"weaknesses,omitempty"`
	Notes      string             `bson:"notes,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func (d scoutReportDoc) toDomain() scoutreport.Report {
	return scoutreport.Report{
		ID:         d.ID.Hex(),
		PlayerID:   d.PlayerID.Hex(),
		Rating:     d.Rating,
		Strengths:  d.Strengths,
		Weaknesses: d.Weaknesses,
		Notes:      d.Notes,
		CreatedAt:  d.CreatedAt,
	}
}

type ScoutReportRepository struct {
	coll *mongo.Collection
}

func NewScoutReportRepository(store *Store) *ScoutReportRepository {
	return &ScoutReportRepository{coll: store.Database().Collection(CollScoutReports)}
}

var reportSortNewest = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

func (r *ScoutReportRepository) ListByPlayer(ctx context.Context, playerID string) ([]scoutreport.Report, error) {
	oid, ok := oidFromHex(playerID)
	if !ok {
		return []scoutreport.Report{}, nil
	}

	cur, err := r.coll.Find(ctx, bson.M{"playerId": oid}, findSort(reportSortNewest))
	if err != nil {
		return nil, errors.Wrap(err, "find reports")
	}

	var docs []scoutReportDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode reports")
	}

	out := make([]scoutreport.Report, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// LatestByPlayers fetches all reports of the given players newest first and
// keeps the first one seen per player.
func (r *ScoutReportRepository) LatestByPlayers(ctx context.Context, playerIDs []string) (map[string]scoutreport.Report, error) {
	oids := make([]primitive.ObjectID, 0, len(playerIDs))
	for _, id := range playerIDs {
		if oid, ok := oidFromHex(id); ok {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return map[string]scoutreport.Report{}, nil
	}

	filter := bson.M{"playerId": bson.M{"$in": oids}}
	cur, err := r.coll.Find(ctx, filter, findSort(reportSortNewest))
	if err != nil {
		return nil, errors.Wrap(err, "find latest reports")
	}

	var docs []scoutReportDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode latest reports")
	}

	out := make(map[string]scoutreport.Report, len(oids))
	for _, d := range docs {
		key := d.PlayerID.Hex()
		if _, seen := out[key]; seen {
			continue
		}
		out[key] = d.toDomain()
	}
	return out, nil
}

func (r *ScoutReportRepository) GetByID(ctx context.Context, id string) (scoutreport.Report, bool, error) {
	oid, ok := oidFromHex(id)
	if !ok {
		return scoutreport.Report{}, false, nil
	}

	var d scoutReportDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return scoutreport.Report{}, false, nil
	}
	if err != nil {
		return scoutreport.Report{}, false, errors.Wrap(err, "get report")
	}

	return d.toDomain(), true, nil
}

func (r *ScoutReportRepository) Create(ctx context.Context, rep scoutreport.Report) (scoutreport.Report, error) {
	playerOID, ok := oidFromHex(rep.PlayerID)
	if !ok {
		return scoutreport.Report{}, errors.Newf("invalid player id %q", rep.PlayerID)
	}

	doc := scoutReportDoc{
		PlayerID:   playerOID,
		Rating:     rep.Rating,
		Strengths:  rep.Strengths,
		Weaknesses: rep.Weaknesses,
		Notes:      rep.Notes,
		CreatedAt:  rep.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return scoutreport.Report{}, errors.Wrap(err, "insert report")
	}

	rep.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return rep, nil
}

func (r *ScoutReportRepository) Update(ctx context.Context, rep scoutreport.Report) error {
	oid, ok := oidFromHex(rep.ID)
	if !ok {
		return errors.Newf("invalid report id %q", rep.ID)
	}

	update := bson.M{"$set": bson.M{
		"rating":     rep.Rating,
		"strengths":  rep.Strengths,
		"weaknesses": rep.Weaknesses,
		"notes":      rep.Notes,
	}}
	if _, err := r.coll.UpdateByID(ctx, oid, update); err != nil {
		return errors.Wrap(err, "update report")
	}
	return nil
}

func (r *ScoutReportRepository) Delete(ctx context.Context, id string) error {
	oid, ok := oidFromHex(id)
	if !ok {
		return nil
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return errors.Wrap(err, "delete report")
	}
	return nil
}

func (r *ScoutReportRepository) DeleteByPlayer(ctx context.Context, playerID string) (int64, error) {
	oid, ok := oidFromHex(playerID)
	if !ok {
		return 0, nil
	}

	res, err := r.coll.DeleteMany(ctx, bson.M{"playerId": oid})
	if err != nil {
		return 0, errors.Wrap(err, "delete reports by player")
	}
	return res.DeletedCount, nil
}

func (r *ScoutReportRepository) CountReportedPlayers(ctx context.Context) (int64, error) {
	ids, err := r.coll.Distinct(ctx, "playerId", bson.M{})
	if err != nil {
		return 0, errors.Wrap(err, "count reported players")
	}
	return int64(len(ids)), nil
}
