package syncer

import (
	"context"
	"fmt"

	"github.com/gymly/backend/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
)

// RedisDocumentStore keeps each collection in one
// redis hash, document id -> JSON.
type RedisDocumentStore struct {
	rdb       *redis.Client
	keyPrefix string
}

func NewRedisDocumentStore(rdb *redis.Client) *RedisDocumentStore {
	return &RedisDocumentStore{
		rdb:       rdb,
		keyPrefix: "gymly::sync",
	}
}

func (s *RedisDocumentStore) collectionKey(collection string) string {
	return fmt.Sprintf("%s::%s", s.keyPrefix, collection)
}

func (s *RedisDocumentStore) Put(ctx context.Context, collection, id string, doc []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "syncer.redisstore.put")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("sync.collection", collection))
	span.SetAttributes(attribute.String("sync.doc.id", id))

	if err := s.rdb.HSet(ctx, s.collectionKey(collection), id, doc).Err(); err != nil {
		return fmt.Errorf("hset %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *RedisDocumentStore) List(ctx context.Context, collection string) (_ map[string][]byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "syncer.redisstore.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("sync.collection", collection))

	raw, err := s.rdb.HGetAll(ctx, s.collectionKey(collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", collection, err)
	}

	docs := make(map[string][]byte, len(raw))
	for id, doc := range raw {
		docs[id] = []byte(doc)
	}
	return docs, nil
}
