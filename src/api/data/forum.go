package data

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/greenlink-tr/greenlink/src/api/types"
	"gorm.io/gorm"
)

// ForumStore persists discussion-board posts. The hosted deployment uses the
// MySQL implementation; the in-memory one serves tests and DB-less setups.
type ForumStore interface {
	List(ctx context.Context) ([]types.ForumPost, error)
	Create(ctx context.Context, post *types.ForumPost) error
}

type forumDB struct{ db *gorm.DB }

func NewForumDB(db *gorm.DB) ForumStore { return forumDB{db: db} }

func (f forumDB) List(ctx context.Context) ([]types.ForumPost, error) {
	var posts []types.ForumPost
	err := f.db.WithContext(ctx).Order("created_at desc").Find(&posts).Error
	return posts, err
}

func (f forumDB) Create(ctx context.Context, post *types.ForumPost) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	return f.db.WithContext(ctx).Create(post).Error
}

type forumMemory struct {
	mu     sync.Mutex
	nextID uint64
	posts  []types.ForumPost
}

func NewForumMemory() ForumStore { return &forumMemory{} }

func (f *forumMemory) List(ctx context.Context) ([]types.ForumPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]types.ForumPost, len(f.posts))
	copy(out, f.posts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *forumMemory) Create(ctx context.Context, post *types.ForumPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	post.ID = f.nextID
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	f.posts = append(f.posts, *post)
	return nil
}
