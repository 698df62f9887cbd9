// Package memstore is an in-memory store.Store. It enforces the same unique
// indexes, foreign keys and cascades as the PostgreSQL schema, and rolls back
// a transaction's writes when its function fails.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Santiago26009/blog-challenge/models"
	"github.com/Santiago26009/blog-challenge/store"
)

type txKey struct{}

type tables struct {
	users    map[uint]models.User
	profiles map[uint]models.Profile
	posts    map[uint]models.Post
	comments map[uint]models.Comment
	likes    map[uint]models.Like
	tokens   map[uint]models.RefreshToken
	activity map[uint]models.ActivityLog
	seq      map[string]uint
}

func newTables() tables {
	return tables{
		users:    map[uint]models.User{},
		profiles: map[uint]models.Profile{},
		posts:    map[uint]models.Post{},
		comments: map[uint]models.Comment{},
		likes:    map[uint]models.Like{},
		tokens:   map[uint]models.RefreshToken{},
		activity: map[uint]models.ActivityLog{},
		seq:      map[string]uint{},
	}
}

func (t tables) clone() tables {
	c := newTables()
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.profiles {
		c.profiles[k] = v
	}
	for k, v := range t.posts {
		v.Tags = append([]string(nil), v.Tags...)
		c.posts[k] = v
	}
	for k, v := range t.comments {
		c.comments[k] = v
	}
	for k, v := range t.likes {
		c.likes[k] = v
	}
	for k, v := range t.tokens {
		c.tokens[k] = v
	}
	for k, v := range t.activity {
		c.activity[k] = v
	}
	for k, v := range t.seq {
		c.seq[k] = v
	}
	return c
}

func (t tables) next(table string) uint {
	t.seq[table]++
	return t.seq[table]
}

type db struct {
	mu   sync.Mutex
	txMu sync.Mutex
	now  func() time.Time
	t    tables
}

// New returns an empty in-memory store.
func New() *store.Store {
	return NewWithClock(time.Now)
}

// NewWithClock stamps rows with times from now.
func NewWithClock(now func() time.Time) *store.Store {
	d := &db{now: now, t: newTables()}
	return &store.Store{
		Users:    &userRepo{d},
		Profiles: &profileRepo{d},
		Posts:    &postRepo{d},
		Comments: &commentRepo{d},
		Likes:    &likeRepo{d},
		Tokens:   &tokenRepo{d},
		Activity: &activityRepo{d},
		Tx:       &txManager{d},
	}
}

type txManager struct{ d *db }

// ExecTx serializes transactions and restores the pre-transaction snapshot on error.
func (m *txManager) ExecTx(ctx context.Context, fn store.TxFn) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	m.d.txMu.Lock()
	defer m.d.txMu.Unlock()

	m.d.mu.Lock()
	snapshot := m.d.t.clone()
	m.d.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.d.mu.Lock()
		m.d.t = snapshot
		m.d.mu.Unlock()
		return err
	}
	return nil
}

func (d *db) lock() func() {
	d.mu.Lock()
	return d.mu.Unlock
}

// write locks for a mutation. Outside a transaction it also waits for running
// transactions, so a rollback cannot undo it.
func (d *db) write(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		return d.lock()
	}
	d.txMu.Lock()
	d.mu.Lock()
	return func() {
		d.mu.Unlock()
		d.txMu.Unlock()
	}
}

// Cascades, called with mu held.

func (d *db) dropComment(id uint) {
	delete(d.t.comments, id)
	for lid, l := range d.t.likes {
		if l.CommentID != nil && *l.CommentID == id {
			delete(d.t.likes, lid)
		}
	}
}

func (d *db) dropPost(id uint) {
	delete(d.t.posts, id)
	for cid, c := range d.t.comments {
		if c.PostID == id {
			d.dropComment(cid)
		}
	}
	for lid, l := range d.t.likes {
		if l.PostID != nil && *l.PostID == id {
			delete(d.t.likes, lid)
		}
	}
}

func (d *db) dropUser(id uint) {
	delete(d.t.users, id)
	for pid, p := range d.t.profiles {
		if p.UserID == id {
			delete(d.t.profiles, pid)
		}
	}
	for pid, p := range d.t.posts {
		if p.AuthorID == id {
			d.dropPost(pid)
		}
	}
	for cid, c := range d.t.comments {
		if c.UserID == id {
			d.dropComment(cid)
		}
	}
	for lid, l := range d.t.likes {
		if l.UserID == id {
			delete(d.t.likes, lid)
		}
	}
	for tid, tok := range d.t.tokens {
		if tok.UserID == id {
			delete(d.t.tokens, tid)
		}
	}
	for aid, a := range d.t.activity {
		if a.UserID == id {
			delete(d.t.activity, aid)
		}
	}
}

func (d *db) userExists(id uint) error {
	if _, ok := d.t.users[id]; !ok {
		return fmt.Errorf("user %d: %w", id, store.ErrInvalidReference)
	}
	return nil
}

// sortNewestFirst orders by created, then modified, then id, all descending.
func sortNewestFirst[T any](rows []T, key func(T) (time.Time, time.Time, uint)) {
	sort.Slice(rows, func(i, j int) bool {
		ci, mi, ii := key(rows[i])
		cj, mj, ij := key(rows[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		if !mi.Equal(mj) {
			return mi.After(mj)
		}
		return ii > ij
	})
}
