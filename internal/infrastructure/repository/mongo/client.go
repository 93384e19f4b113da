// Package mongo implements the domain repositories over the backing
// document store.
package mongo

import (
	"context"
	"regexp"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names of the admin dataset.
const (
	CollLeagues      = "leagues"
	CollTeams        = "teams"
	CollPlayers      = "players"
	CollScoutReports = "scout_reports"
	// CollTransfers only exists in legacy datasets; reset still drops it.
	CollTransfers = "transfers"
)

// Store is the explicitly constructed database handle passed into the
// repositories and the app at startup. No hidden global connection state.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials the store and verifies it is reachable before anything else
// runs.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect document store")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "ping document store")
	}

	return &Store{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

func (s *Store) Database() *mongo.Database { return s.db }

// DropCollection drops one collection; used by the reset job.
func (s *Store) DropCollection(ctx context.Context, name string) error {
	if err := s.db.Collection(name).Drop(ctx); err != nil {
		return errors.Wrapf(err, "drop collection %s", name)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return errors.Wrap(err, "disconnect document store")
	}
	return nil
}

// oidFromHex parses an external id. A malformed id behaves like a missing
// document rather than an error.
func oidFromHex(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// containsRegex builds a case-insensitive substring filter over one field.
func containsRegex(q string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func findSort(sort bson.D) *options.FindOptions {
	return options.Find().SetSort(sort)
}

func upsertOpt() *options.UpdateOptions {
	return options.Update().SetUpsert(true)
}

func uniqueIndex(keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetUnique(true),
	}
}
