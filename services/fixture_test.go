package services_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"group-chat/domain"
	"group-chat/domain/event"
	"group-chat/observability"
	"group-chat/repositories"
	"group-chat/services"
	"group-chat/validation"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.DomainEvent
}

func (p *recordingPublisher) Publish(e event.DomainEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) Kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	kinds := make([]string, 0, len(p.events))
	for _, e := range p.events {
		kinds = append(kinds, e.Kind())
	}
	return kinds
}

func (p *recordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

type fixture struct {
	clock     *fakeClock
	published *recordingPublisher
	metrics   *observability.Metrics

	users    *repositories.UserRepository
	members  *repositories.MembershipRepository
	messages *repositories.MessageRepository
	index    *repositories.MessageIndex

	gate       *services.AuthorizationGate
	groupSvc   *services.GroupService
	memberSvc  *services.MembershipService
	messageSvc *services.MessageService
}

type censorNothing struct{}

func (censorNothing) Censor(content string) (string, []string) { return content, nil }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = writer.Close() })

	f := &fixture{
		clock:     &fakeClock{now: epoch},
		published: &recordingPublisher{},
		metrics:   observability.NewMetrics(),
		users:     repositories.NewUserRepository(db, log, time.Minute),
		members:   repositories.NewMembershipRepository(db, log),
		messages:  repositories.NewMessageRepository(db, log),
		index:     repositories.NewMessageIndex(writer, log),
	}
	groups := repositories.NewGroupRepository(db, log)
	f.gate = services.NewAuthorizationGate(groups, f.members, f.clock.Now)
	f.groupSvc = services.NewGroupService(groups, f.members, f.published, f.metrics, f.clock.Now, log)
	f.memberSvc = services.NewMembershipService(f.gate, f.members, f.users, f.published, f.metrics, f.clock.Now, log)
	f.messageSvc = services.NewMessageService(f.gate, f.messages, f.index, censorNothing{}, f.published, f.metrics, f.clock.Now, log)
	return f
}

func (f *fixture) user(t *testing.T, id string) {
	t.Helper()
	_, err := f.users.Touch(context.Background(), id, id, f.clock.Now())
	require.NoError(t, err)
}

// group creates a group owned by creator and adds the given members with the member role.
func (f *fixture) group(t *testing.T, creator string, adminOnly bool, members ...string) domain.Group {
	t.Helper()
	ctx := context.Background()
	f.user(t, creator)
	group, err := f.groupSvc.CreateGroup(ctx, creator, validation.CreateGroupRequest{Name: "Platform team", IsAdminOnly: adminOnly})
	require.NoError(t, err)
	for _, m := range members {
		f.user(t, m)
		_, err = f.memberSvc.AddMember(ctx, group.ID, creator, m, domain.RoleMember)
		require.NoError(t, err)
	}
	f.published.Reset()
	return group
}

func (f *fixture) send(t *testing.T, groupID, sender, content string) domain.Message {
	t.Helper()
	message, err := f.messageSvc.Send(context.Background(), groupID, sender, validation.SendMessageRequest{Content: content})
	require.NoError(t, err)
	return message
}
