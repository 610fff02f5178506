package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"ai-tutor-be/internal/dto"
	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/repository/memory"
	"ai-tutor-be/internal/repository/specification"
	"ai-tutor-be/internal/repository/unitofwork"
	"ai-tutor-be/pkg/admin/dashboard"
	"ai-tutor-be/pkg/auth/access"
	"ai-tutor-be/pkg/auth/password"
	"ai-tutor-be/pkg/auth/session"
	"ai-tutor-be/pkg/llm/mock"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// clock hands out strictly increasing instants unless frozen.
type clock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func newClock() *clock {
	return &clock{t: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), step: time.Second}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(c.step)
	return c.t
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *recordingMailer) SendWelcome(toEmail, fullName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, toEmail)
	return nil
}

func (m *recordingMailer) Sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

type fixture struct {
	store    *memory.Store
	factory  unitofwork.RepositoryFactory
	sessions *session.Manager
	gate     *access.Gate
	bus      *gochannel.GoChannel
	mailer   *recordingMailer
	clock    *clock

	auth  *authService
	users *userService
	chats *chatService
	tutor *tutorService
	admin *adminService
}

func newFixture(t *testing.T, admins ...string) *fixture {
	t.Helper()
	log := logger.NewNop()

	store := memory.NewStore()
	factory := memory.NewRepositoryFactory(store)
	sessions := session.NewManager(memory.NewSessionRepository(time.Minute), time.Hour, log)
	roles := access.NewAllowList(admins)
	gate := access.NewGate(sessions, factory, roles)
	hasher := password.NewBcryptHasher(bcrypt.MinCost)

	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = bus.Close() })
	publisher := NewEventPublisher(bus, nil, log)

	mailer := &recordingMailer{}
	c := newClock()

	auth := NewAuthService(factory, sessions, hasher, roles, mailer, publisher, log).(*authService)
	auth.now = c.Now
	users := NewUserService(factory, hasher, roles, log).(*userService)
	users.now = c.Now
	chats := NewChatService(factory, gate, publisher, log).(*chatService)
	chats.now = c.Now
	tutor := NewTutorService(chats, mock.NewProvider(), time.Second, t.TempDir(), log).(*tutorService)
	admin := NewAdminService(factory, dashboard.NewAggregator(log)).(*adminService)

	return &fixture{
		store:    store,
		factory:  factory,
		sessions: sessions,
		gate:     gate,
		bus:      bus,
		mailer:   mailer,
		clock:    c,
		auth:     auth,
		users:    users,
		chats:    chats,
		tutor:    tutor,
		admin:    admin,
	}
}

// signup registers a user and returns the stored entity and session token.
func (f *fixture) signup(t *testing.T, name, email string) (*entity.User, string) {
	t.Helper()
	ctx := context.Background()
	res, err := f.auth.Signup(ctx, &dto.SignupRequest{
		FullName:        name,
		Email:           email,
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)

	user, err := f.factory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx, specification.ByID{ID: res.User.Id})
	require.NoError(t, err)
	require.NotNil(t, user)
	return user, res.Token
}
