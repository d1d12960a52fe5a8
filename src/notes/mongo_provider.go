package notes

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProvider serves documents from a MongoDB collection with fields
// {file, title, content}. Search relies on a text index over title+content.
type MongoProvider struct {
	client     *mongo.Client
	collection *mongo.Collection
}

type mongoDoc struct {
	File    string  `bson:"file"`
	Title   string  `bson:"title"`
	Content string  `bson:"content"`
	Score   float64 `bson:"score,omitempty"`
}

// NewMongoProvider connects and pings the deployment.
func NewMongoProvider(ctx context.Context, uri, database, collection string) (*MongoProvider, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is required")
	}
	if database == "" || collection == "" {
		return nil, errors.New("mongo database and collection names are required")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &MongoProvider{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

// EnsureIndexes creates the text index Search depends on.
func (p *MongoProvider) EnsureIndexes(ctx context.Context) error {
	_, err := p.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "title", Value: "text"}, {Key: "content", Value: "text"}},
	})
	return err
}

func (p *MongoProvider) ExactMatch(ctx context.Context, query string, limit int) ([]Doc, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	pattern := regexp.QuoteMeta(query)
	filter := bson.M{"$or": bson.A{
		bson.M{"title": bson.M{"$regex": pattern, "$options": "i"}},
		bson.M{"content": bson.M{"$regex": pattern, "$options": "i"}},
	}}

	cur, err := p.collection.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	return p.decodeDocs(ctx, cur, 1.0)
}

func (p *MongoProvider) Search(ctx context.Context, query string, limit int) ([]Doc, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	filter := bson.M{"$text": bson.M{"$search": query}}
	opts := options.Find().
		SetLimit(int64(limit)).
		SetProjection(bson.M{
			"file": 1, "title": 1, "content": 1,
			"score": bson.M{"$meta": "textScore"},
		}).
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}})

	cur, err := p.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	return p.decodeDocs(ctx, cur, 0)
}

func (p *MongoProvider) List(ctx context.Context, limit int) ([]Doc, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	cur, err := p.collection.Find(ctx, bson.M{}, options.Find().
		SetLimit(int64(limit)).
		SetProjection(bson.M{"file": 1, "title": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Doc
	for cur.Next(ctx) {
		var d mongoDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, Doc{File: d.File, Title: d.Title})
	}
	return out, cur.Err()
}

func (p *MongoProvider) Read(ctx context.Context, file string) (string, error) {
	var d mongoDoc
	if err := p.collection.FindOne(ctx, bson.M{"file": file}).Decode(&d); err != nil {
		return "", err
	}
	return d.Content, nil
}

// decodeDocs converts cursor rows into Docs, truncating content into a
// snippet. fixedScore overrides the stored score when non-zero.
func (p *MongoProvider) decodeDocs(ctx context.Context, cur *mongo.Cursor, fixedScore float64) ([]Doc, error) {
	const snippetLen = 160
	var out []Doc
	for cur.Next(ctx) {
		var d mongoDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		snippet := d.Content
		if len(snippet) > snippetLen {
			snippet = snippet[:snippetLen]
		}
		score := d.Score
		if fixedScore != 0 {
			score = fixedScore
		}
		out = append(out, Doc{File: d.File, Title: d.Title, Snippet: snippet, Score: scoreOf(score)})
	}
	return out, cur.Err()
}

// Close disconnects the client.
func (p *MongoProvider) Close(ctx context.Context) error {
	return p.client.Disconnect(ctx)
}

var _ Provider = (*MongoProvider)(nil)
