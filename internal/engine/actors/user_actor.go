package actors

import (
	stdctx "context"
	"log"
	"strings"
	"time"

	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// Message types for UserActor
type (
	RegisterUserMsg struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	LoginMsg struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	GetUserProfileMsg struct {
		UserID uuid.UUID `json:"userId"`
	}
)

// AuthResponse is returned by register and login.
type AuthResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Token    string    `json:"token"`
}

// UserActor handles account registration, login and profile reads.
type UserActor struct {
	store     database.Store
	jwtSecret string
	metrics   *utils.MetricsCollector
}

func NewUserActor(store database.Store, jwtSecret string, metrics *utils.MetricsCollector) actor.Actor {
	return &UserActor{
		store:     store,
		jwtSecret: jwtSecret,
		metrics:   metrics,
	}
}

func (a *UserActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("UserActor started with PID: %v", context.Self())

	case *RegisterUserMsg:
		a.handleRegister(context, msg)

	case *LoginMsg:
		a.handleLogin(context, msg)

	case *GetUserProfileMsg:
		a.handleGetProfile(context, msg)

	default:
		log.Printf("UserActor: Unknown message type %T", msg)
	}
}

func (a *UserActor) handleRegister(context actor.Context, msg *RegisterUserMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	username := strings.TrimSpace(msg.Username)
	email := strings.ToLower(strings.TrimSpace(msg.Email))

	if username == "" {
		context.Respond(utils.NewValidationError("username", "username is required"))
		return
	}
	if email == "" || !strings.Contains(email, "@") {
		context.Respond(utils.NewValidationError("email", "a valid email address is required"))
		return
	}
	if len(msg.Password) < minPasswordLength {
		context.Respond(utils.NewValidationError("password", "password must be at least 6 characters"))
		return
	}

	if existing, _ := a.store.GetUserByEmail(ctx, email); existing != nil {
		context.Respond(utils.NewAppError(utils.ErrUserAlreadyExists, "Email already registered", nil))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(msg.Password), bcrypt.DefaultCost)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to hash password", err))
		return
	}

	user := &models.User{
		ID:             uuid.New(),
		Username:       username,
		Email:          email,
		HashedPassword: string(hashed),
		BlogIDs:        make([]uuid.UUID, 0),
		JoinedAt:       time.Now(),
	}

	if err := a.store.SaveUser(ctx, user); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save user", err))
		return
	}

	token, err := middleware.GenerateToken(user.ID, a.jwtSecret)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to issue token", err))
		return
	}

	a.metrics.AddOperationLatency("register_user", time.Since(startTime))
	context.Respond(&AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	})
}

func (a *UserActor) handleLogin(context actor.Context, msg *LoginMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	email := strings.ToLower(strings.TrimSpace(msg.Email))

	user, err := a.store.GetUserByEmail(ctx, email)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrInvalidCredentials, "Invalid email or password", nil))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(msg.Password)); err != nil {
		context.Respond(utils.NewAppError(utils.ErrInvalidCredentials, "Invalid email or password", nil))
		return
	}

	token, err := middleware.GenerateToken(user.ID, a.jwtSecret)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to issue token", err))
		return
	}

	a.metrics.AddOperationLatency("login_user", time.Since(startTime))
	context.Respond(&AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	})
}

func (a *UserActor) handleGetProfile(context actor.Context, msg *GetUserProfileMsg) {
	ctx := stdctx.Background()

	user, err := a.store.GetUser(ctx, msg.UserID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrUserNotFound) {
			context.Respond(err)
		} else {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch user", err))
		}
		return
	}

	context.Respond(user)
}
