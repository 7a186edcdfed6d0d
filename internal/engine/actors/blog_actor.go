package actors

import (
	stdctx "context"
	"log"
	"regexp"
	"strings"
	"time"

	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
)

const maxBlogTags = 10

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Message types for BlogActor
type (
	CreateBlogMsg struct {
		AuthorID    uuid.UUID          `json:"authorId"`
		Title       string             `json:"title"`
		Description string             `json:"description"`
		Banner      string             `json:"banner"`
		Content     models.BlogContent `json:"content"`
		Tags        []string           `json:"tags"`
		Draft       bool               `json:"draft"`
	}

	GetBlogMsg struct {
		Slug         string `json:"slug"`
		IncludeDraft bool   `json:"includeDraft"`
		TrackRead    bool   `json:"trackRead"`
	}
)

// BlogActor owns blog publishing and retrieval: draft/publish validation,
// slug generation, and read tracking through the activity counters.
type BlogActor struct {
	store   database.Store
	metrics *utils.MetricsCollector
}

func NewBlogActor(store database.Store, metrics *utils.MetricsCollector) actor.Actor {
	return &BlogActor{
		store:   store,
		metrics: metrics,
	}
}

func (a *BlogActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("BlogActor started with PID: %v", context.Self())

	case *CreateBlogMsg:
		a.handleCreateBlog(context, msg)

	case *GetBlogMsg:
		a.handleGetBlog(context, msg)

	default:
		log.Printf("BlogActor: Unknown message type %T", msg)
	}
}

// slugify turns a title into a URL-safe slug with a short unique suffix,
// so identical titles never collide.
func slugify(title string) string {
	base := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(title), "-"), "-")
	suffix := strings.ToLower(shortuuid.New()[:6])
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

func validateBlog(msg *CreateBlogMsg) *utils.AppError {
	if strings.TrimSpace(msg.Title) == "" {
		return utils.NewValidationError("title", "title is required")
	}

	// Drafts may be saved half-finished; everything else is only checked
	// on publish.
	if msg.Draft {
		return nil
	}

	description := strings.TrimSpace(msg.Description)
	if description == "" || len(description) > 200 {
		return utils.NewValidationError("description", "description is required and must be at most 200 characters")
	}

	if strings.TrimSpace(msg.Banner) == "" {
		return utils.NewValidationError("banner", "banner image is required")
	}

	if len(msg.Content.Blocks) == 0 {
		return utils.NewValidationError("content", "content is required")
	}

	if len(msg.Tags) > maxBlogTags {
		return utils.NewValidationError("tags", "at most 10 tags are allowed")
	}

	return nil
}

func (a *BlogActor) handleCreateBlog(context actor.Context, msg *CreateBlogMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	if err := validateBlog(msg); err != nil {
		context.Respond(err)
		return
	}

	if _, err := a.store.GetUser(ctx, msg.AuthorID); err != nil {
		if utils.IsErrorCode(err, utils.ErrUserNotFound) {
			context.Respond(err)
		} else {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch author", err))
		}
		return
	}

	tags := make([]string, 0, len(msg.Tags))
	for _, tag := range msg.Tags {
		tags = append(tags, strings.ToLower(strings.TrimSpace(tag)))
	}

	now := time.Now()
	blog := &models.Blog{
		ID:          uuid.New(),
		Slug:        slugify(msg.Title),
		Title:       strings.TrimSpace(msg.Title),
		Description: strings.TrimSpace(msg.Description),
		Banner:      strings.TrimSpace(msg.Banner),
		Content:     msg.Content,
		Tags:        tags,
		AuthorID:    msg.AuthorID,
		CommentIDs:  make([]uuid.UUID, 0),
		Draft:       msg.Draft,
		PublishedAt: now,
		UpdatedAt:   now,
	}

	if err := a.store.SaveBlog(ctx, blog); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save blog", err))
		return
	}

	if err := a.store.RecordAuthoredBlog(ctx, msg.AuthorID, blog.ID, !blog.Draft); err != nil {
		log.Printf("Failed to record authored blog %s for user %s: %v", blog.ID, msg.AuthorID, err)
	}

	a.metrics.AddOperationLatency("create_blog", time.Since(startTime))
	context.Respond(blog)
}

func (a *BlogActor) handleGetBlog(context actor.Context, msg *GetBlogMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	blog, err := a.store.GetBlogBySlug(ctx, msg.Slug, msg.IncludeDraft)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			context.Respond(err)
		} else {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch blog", err))
		}
		return
	}

	// Edit-mode fetches skip read tracking.
	if msg.TrackRead {
		if err := a.store.AdjustActivity(ctx, blog.ID, models.ActivityDelta{Reads: 1}); err != nil {
			log.Printf("Failed to track read for blog %s: %v", blog.ID, err)
		} else {
			blog.Activity.TotalReads++
		}
		if err := a.store.IncrementUserReads(ctx, blog.AuthorID); err != nil {
			log.Printf("Failed to track author read for blog %s: %v", blog.ID, err)
		}
	}

	a.metrics.AddOperationLatency("get_blog", time.Since(startTime))
	context.Respond(blog)
}
