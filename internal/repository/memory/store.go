package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
)

type txKey struct{}

// db keeps every record by value. Slices inside stored records are never
// mutated in place, so a shallow copy of the maps is a consistent snapshot.
type db struct {
	// txMu serializes units of work and standalone writes.
	txMu sync.Mutex
	mu   sync.RWMutex

	users         map[uuid.UUID]model.User
	posts         map[uuid.UUID]model.Post
	comments      map[uuid.UUID]model.Comment
	notifications map[uuid.UUID]model.Notification
}

type snapshot struct {
	users         map[uuid.UUID]model.User
	posts         map[uuid.UUID]model.Post
	comments      map[uuid.UUID]model.Comment
	notifications map[uuid.UUID]model.Notification
}

func New() *repository.Store {
	d := &db{
		users:         make(map[uuid.UUID]model.User),
		posts:         make(map[uuid.UUID]model.Post),
		comments:      make(map[uuid.UUID]model.Comment),
		notifications: make(map[uuid.UUID]model.Notification),
	}

	return &repository.Store{
		User:         &userRepo{d: d},
		Post:         &postRepo{d: d},
		Comment:      &commentRepo{d: d},
		Notification: &notificationRepo{d: d},
		Transactor:   d,
	}
}

func (d *db) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	d.txMu.Lock()
	defer d.txMu.Unlock()

	snap := d.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		d.restore(snap)
		return err
	}

	return nil
}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(bool)
	return ok
}

// lock takes the write lock, waiting for running units of work unless ctx belongs to one.
func (d *db) lock(ctx context.Context) func() {
	if inTx(ctx) {
		d.mu.Lock()
		return d.mu.Unlock
	}

	d.txMu.Lock()
	d.mu.Lock()
	return func() {
		d.mu.Unlock()
		d.txMu.Unlock()
	}
}

func (d *db) snapshot() snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return snapshot{
		users:         copyMap(d.users),
		posts:         copyMap(d.posts),
		comments:      copyMap(d.comments),
		notifications: copyMap(d.notifications),
	}
}

func (d *db) restore(s snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.users = s.users
	d.posts = s.posts
	d.comments = s.comments
	d.notifications = s.notifications
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func window[T any](items []T, skip int, limit int) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return items[skip:end]
}

func appendID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := slices.Clone(ids)
	return append(out, id)
}

func idSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
