package docstore

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type firestoreDocument struct {
	snap *firestore.DocumentSnapshot
}

func (d *firestoreDocument) ID() string { return d.snap.Ref.ID }

func (d *firestoreDocument) DataTo(v any) error {
	return d.snap.DataTo(v)
}

// FirestoreClient adapts a Firestore client. Documents are encoded with their
// `firestore` struct tags.
type FirestoreClient struct {
	client *firestore.Client
}

func NewFirestoreClient(client *firestore.Client) *FirestoreClient {
	return &FirestoreClient{client: client}
}

func (c *FirestoreClient) Get(ctx context.Context, collection, id string) (Document, error) {
	snap, err := c.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, grpcError(err)
	}
	return &firestoreDocument{snap: snap}, nil
}

func (c *FirestoreClient) Create(ctx context.Context, collection, id string, data any) error {
	_, err := c.client.Collection(collection).Doc(id).Create(ctx, data)
	return grpcError(err)
}

func (c *FirestoreClient) Set(ctx context.Context, collection, id string, data any) error {
	_, err := c.client.Collection(collection).Doc(id).Set(ctx, data)
	return grpcError(err)
}

func (c *FirestoreClient) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	updates := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		updates = append(updates, firestore.Update{Path: k, Value: fields[k]})
	}
	_, err := c.client.Collection(collection).Doc(id).Update(ctx, updates)
	return grpcError(err)
}

func (c *FirestoreClient) Increment(ctx context.Context, collection, id, field string, delta float64) error {
	_, err := c.client.Collection(collection).Doc(id).Update(ctx, []firestore.Update{
		{Path: field, Value: firestore.Increment(delta)},
	})
	return grpcError(err)
}

func (c *FirestoreClient) Delete(ctx context.Context, collection, id string) error {
	_, err := c.client.Collection(collection).Doc(id).Delete(ctx)
	if status.Code(err) == codes.NotFound {
		return nil
	}
	return err
}

func (c *FirestoreClient) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	query := c.client.Collection(collection).Query
	for _, f := range q.Filters {
		query = query.Where(f.Field, "==", f.Value)
	}
	query = query.OrderBy(firestore.DocumentID, firestore.Asc)
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var out []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, &firestoreDocument{snap: snap})
	}
	return out, nil
}

func (c *FirestoreClient) Close() error {
	return c.client.Close()
}

func grpcError(err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrAlreadyExists
	}
	return err
}
