// Package syncer reconciles local data with a remote document store.
// Sync is additive: both sides end up with the union of their
// documents, nothing is ever deleted remotely on behalf of a client.
package syncer

import "context"

const (
	CollectionSplits   = "splits"
	CollectionWorkouts = "workouts"
	CollectionWeights  = "weights"
)

// DocumentStore is the remote side of the sync. Documents are opaque
// JSON blobs keyed by collection and id.
type DocumentStore interface {
	Put(ctx context.Context, collection, id string, doc []byte) error
	List(ctx context.Context, collection string) (map[string][]byte, error)
}
