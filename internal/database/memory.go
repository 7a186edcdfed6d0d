// internal/database/memory.go
package database

import (
	"context"
	"sort"
	"sync"

	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/google/uuid"
)

// MemoryStore is a volatile Store backend used for development and tests.
// A single mutex gives it the same per-blog delta semantics MongoDB
// provides through document-level update atomicity.
type MemoryStore struct {
	mu sync.RWMutex

	users    map[uuid.UUID]*models.User
	blogs    map[uuid.UUID]*models.Blog
	comments map[uuid.UUID]*models.Comment

	notifications map[uuid.UUID]*models.Notification

	// Monotonic insertion sequence per comment, the tie-breaker for
	// newest-first pagination when timestamps collide.
	commentSeq map[uuid.UUID]uint64
	nextSeq    uint64
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[uuid.UUID]*models.User),
		blogs:         make(map[uuid.UUID]*models.Blog),
		comments:      make(map[uuid.UUID]*models.Comment),
		notifications: make(map[uuid.UUID]*models.Notification),
		commentSeq:    make(map[uuid.UUID]uint64),
	}
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

func copyUser(u *models.User) *models.User {
	cp := *u
	cp.BlogIDs = append([]uuid.UUID(nil), u.BlogIDs...)
	return &cp
}

func copyBlog(b *models.Blog) *models.Blog {
	cp := *b
	cp.Tags = append([]string(nil), b.Tags...)
	cp.CommentIDs = append([]uuid.UUID(nil), b.CommentIDs...)
	return &cp
}

func copyComment(c *models.Comment) *models.Comment {
	cp := *c
	cp.Children = append([]uuid.UUID(nil), c.Children...)
	if c.ParentID != nil {
		parent := *c.ParentID
		cp.ParentID = &parent
	}
	return &cp
}

func (s *MemoryStore) SaveUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = copyUser(user)
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, utils.NewUserNotFoundError(id.String())
	}
	return copyUser(user), nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, utils.NewUserNotFoundError(email)
}

func (s *MemoryStore) RecordAuthoredBlog(ctx context.Context, authorID, blogID uuid.UUID, published bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[authorID]
	if !ok {
		return utils.NewUserNotFoundError(authorID.String())
	}
	for _, id := range user.BlogIDs {
		if id == blogID {
			return nil
		}
	}
	user.BlogIDs = append(user.BlogIDs, blogID)
	if published {
		user.AccountInfo.TotalPosts++
	}
	return nil
}

func (s *MemoryStore) IncrementUserReads(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return utils.NewUserNotFoundError(userID.String())
	}
	user.AccountInfo.TotalReads++
	return nil
}

func (s *MemoryStore) SaveBlog(ctx context.Context, blog *models.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blogs[blog.ID] = copyBlog(blog)
	return nil
}

func (s *MemoryStore) GetBlog(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blog, ok := s.blogs[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "Blog not found", nil)
	}
	return copyBlog(blog), nil
}

func (s *MemoryStore) GetBlogBySlug(ctx context.Context, slug string, includeDraft bool) (*models.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, blog := range s.blogs {
		if blog.Slug == slug && (includeDraft || !blog.Draft) {
			return copyBlog(blog), nil
		}
	}
	return nil, utils.NewAppError(utils.ErrNotFound, "Blog not found", nil)
}

func clampAdd(counter *int, delta int) {
	*counter += delta
	if *counter < 0 {
		*counter = 0
	}
}

func (s *MemoryStore) AdjustActivity(ctx context.Context, blogID uuid.UUID, delta models.ActivityDelta) error {
	if delta.IsZero() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	blog, ok := s.blogs[blogID]
	if !ok {
		return utils.NewAppError(utils.ErrNotFound, "Blog not found", nil)
	}

	clampAdd(&blog.Activity.TotalLikes, delta.Likes)
	clampAdd(&blog.Activity.TotalComments, delta.Comments)
	clampAdd(&blog.Activity.TotalReads, delta.Reads)
	clampAdd(&blog.Activity.TotalParentComments, delta.ParentComments)
	return nil
}

func (s *MemoryStore) SaveComment(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.commentSeq[comment.ID]; !ok {
		s.nextSeq++
		s.commentSeq[comment.ID] = s.nextSeq
	}
	s.comments[comment.ID] = copyComment(comment)
	return nil
}

func (s *MemoryStore) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comment, ok := s.comments[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "Comment not found", nil)
	}
	return copyComment(comment), nil
}

func (s *MemoryStore) GetTopLevelComments(ctx context.Context, blogID uuid.UUID, skip, limit int) ([]*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var topLevel []*models.Comment
	for _, comment := range s.comments {
		if comment.BlogID == blogID && comment.ParentID == nil {
			topLevel = append(topLevel, comment)
		}
	}

	sort.Slice(topLevel, func(i, j int) bool {
		ci, cj := topLevel[i], topLevel[j]
		if !ci.CommentedAt.Equal(cj.CommentedAt) {
			return ci.CommentedAt.After(cj.CommentedAt)
		}
		return s.commentSeq[ci.ID] > s.commentSeq[cj.ID]
	})

	if skip >= len(topLevel) {
		return []*models.Comment{}, nil
	}
	topLevel = topLevel[skip:]
	if limit > 0 && limit < len(topLevel) {
		topLevel = topLevel[:limit]
	}

	page := make([]*models.Comment, len(topLevel))
	for i, comment := range topLevel {
		page[i] = copyComment(comment)
	}
	return page, nil
}

func (s *MemoryStore) AddChildComment(ctx context.Context, parentID, childID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	parent, ok := s.comments[parentID]
	if !ok {
		return utils.NewAppError(utils.ErrNotFound, "Parent comment not found", nil)
	}
	for _, id := range parent.Children {
		if id == childID {
			return nil
		}
	}
	parent.Children = append(parent.Children, childID)
	return nil
}

func (s *MemoryStore) RemoveChildComment(ctx context.Context, parentID, childID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	parent, ok := s.comments[parentID]
	if !ok {
		// Parent already deleted; the reply stays orphaned.
		return nil
	}
	children := parent.Children[:0]
	for _, id := range parent.Children {
		if id != childID {
			children = append(children, id)
		}
	}
	parent.Children = children
	return nil
}

func (s *MemoryStore) DeleteComment(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return utils.NewAppError(utils.ErrNotFound, "Comment not found", nil)
	}
	delete(s.comments, id)
	delete(s.commentSeq, id)
	return nil
}

func (s *MemoryStore) SaveNotification(ctx context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.Type == models.NotificationLike {
		for _, existing := range s.notifications {
			if existing.Type == models.NotificationLike &&
				existing.BlogID == n.BlogID && existing.UserID == n.UserID {
				return utils.NewAppError(utils.ErrDuplicate, "Blog already liked", nil)
			}
		}
	}
	cp := *n
	s.notifications[n.ID] = &cp
	return nil
}

func (s *MemoryStore) LikeExists(ctx context.Context, blogID, userID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.notifications {
		if n.Type == models.NotificationLike && n.BlogID == blogID && n.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) RemoveLike(ctx context.Context, blogID, userID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, n := range s.notifications {
		if n.Type == models.NotificationLike && n.BlogID == blogID && n.UserID == userID {
			delete(s.notifications, id)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) DeleteCommentNotifications(ctx context.Context, commentID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, n := range s.notifications {
		if (n.CommentID != nil && *n.CommentID == commentID) ||
			(n.ReplyID != nil && *n.ReplyID == commentID) {
			delete(s.notifications, id)
		}
	}
	return nil
}

// NotificationCount reports how many notifications reference the comment id.
// Used by tests to assert the delete cascade.
func (s *MemoryStore) NotificationCount(commentID uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.notifications {
		if (n.CommentID != nil && *n.CommentID == commentID) ||
			(n.ReplyID != nil && *n.ReplyID == commentID) {
			count++
		}
	}
	return count
}

// CommentTotals derives the ground-truth counter values for a blog from the
// stored comments. Used by tests to check counter consistency.
func (s *MemoryStore) CommentTotals(blogID uuid.UUID) (total int, parents int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, comment := range s.comments {
		if comment.BlogID != blogID {
			continue
		}
		total++
		if comment.ParentID == nil {
			parents++
		}
	}
	return total, parents
}
