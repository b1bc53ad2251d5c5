package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"chat-memory-be/internal/apperror"
	"chat-memory-be/internal/dto"
	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/repository/memory"
	"chat-memory-be/pkg/embedding"
	"chat-memory-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = entity.NewTenant("a1", "u1")
	bob   = entity.NewTenant("a1", "u2")
)

const testDimensions = 3

// keywordProvider maps topic words to fixed axes so distances are exact.
type keywordProvider struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (p *keywordProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	vec := []float32{0, 0, 0}
	for _, word := range strings.Fields(strings.ToLower(text)) {
		switch word {
		case "cat", "feline", "pet":
			vec[0]++
		case "stock", "market":
			vec[1]++
		default:
			vec[2] += 0.1
		}
	}
	return vec, nil
}

func (p *keywordProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() {}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

type fixture struct {
	sessions     ISessionService
	messages     IMessageService
	metamessages IMetamessageService
	collections  ICollectionService
	documents    IDocumentService
	provider     *keywordProvider
	publisher    *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	factory := memory.NewRepositoryFactory(memory.NewStore())
	provider := &keywordProvider{}
	publisher := &recordingPublisher{}
	return &fixture{
		sessions:     NewSessionService(factory, publisher, nil),
		messages:     NewMessageService(factory, nil),
		metamessages: NewMetamessageService(factory, nil),
		collections:  NewCollectionService(factory, publisher, nil),
		documents: NewDocumentService(factory, provider, publisher, nil, DocumentOptions{
			Dimensions: testDimensions,
		}),
		provider:  provider,
		publisher: publisher,
	}
}

func ptr[T any](v T) *T { return &v }

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	s, err := f.sessions.Create(ctx, alice, &dto.CreateSessionRequest{LocationId: ptr("web")})
	require.NoError(t, err)
	assert.True(t, s.IsActive)
	assert.NotNil(t, s.Metadata)

	other, err := f.sessions.Create(ctx, alice, nil)
	require.NoError(t, err)

	got, err := f.sessions.Get(ctx, "a1", nil, s.Id)
	require.NoError(t, err)
	assert.Equal(t, s.Id, got.Id)

	_, err = f.sessions.Get(ctx, "a1", ptr("u2"), s.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.sessions.Get(ctx, "other-app", nil, s.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	seq, err := f.sessions.List(ctx, alice, ptr("web"))
	require.NoError(t, err)
	rows, err := seq.All(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, s.Id, rows[0].Id)

	updated, err := f.sessions.Update(ctx, alice, s.Id, &dto.UpdateSessionRequest{
		Metadata: dto.Some(map[string]interface{}{"topic": "billing"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "billing", updated.Metadata["topic"])

	_, err = f.sessions.Update(ctx, alice, s.Id, &dto.UpdateSessionRequest{})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = f.sessions.Update(ctx, bob, s.Id, &dto.UpdateSessionRequest{Metadata: dto.Some[map[string]interface{}](nil)})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	cleared, err := f.sessions.Update(ctx, alice, s.Id, &dto.UpdateSessionRequest{Metadata: dto.Some[map[string]interface{}](nil)})
	require.NoError(t, err)
	assert.Empty(t, cleared.Metadata)

	deleted, err := f.sessions.Delete(ctx, alice, s.Id)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Repeated deletes match inactive sessions too.
	deleted, err = f.sessions.Delete(ctx, alice, s.Id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = f.sessions.Delete(ctx, alice, uuid.New())
	require.NoError(t, err)
	assert.False(t, deleted)

	seq, err = f.sessions.List(ctx, alice, nil)
	require.NoError(t, err)
	rows, err = seq.All(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, other.Id, rows[0].Id)

	inactive, err := f.sessions.Get(ctx, "a1", ptr("u1"), s.Id)
	require.NoError(t, err)
	assert.False(t, inactive.IsActive)

	assert.Equal(t, []string{
		events.SessionCreated, events.SessionCreated, events.SessionDeactivated, events.SessionDeactivated,
	}, f.publisher.types())
}

func TestSoftDeleteKeepsMessages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	s, err := f.sessions.Create(ctx, alice, nil)
	require.NoError(t, err)
	m, err := f.messages.Create(ctx, alice, s.Id, &dto.CreateMessageRequest{IsUser: true, Content: "hi"})
	require.NoError(t, err)

	_, err = f.sessions.Delete(ctx, alice, s.Id)
	require.NoError(t, err)

	got, err := f.messages.Get(ctx, alice, s.Id, m.Id)
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Content)

	seq, err := f.messages.List(ctx, alice, s.Id)
	require.NoError(t, err)
	count, err := seq.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Inactive sessions still accept messages.
	_, err = f.messages.Create(ctx, alice, s.Id, &dto.CreateMessageRequest{Content: "still here"})
	assert.NoError(t, err)
}

func TestMessageScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	s, err := f.sessions.Create(ctx, alice, nil)
	require.NoError(t, err)
	m1, err := f.messages.Create(ctx, alice, s.Id, &dto.CreateMessageRequest{IsUser: true, Content: "hello"})
	require.NoError(t, err)

	seq, err := f.messages.List(ctx, alice, s.Id)
	require.NoError(t, err)
	rows, err := seq.All(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, m1.Id, rows[0].Id)
	assert.True(t, rows[0].IsUser)

	mm, err := f.metamessages.Create(ctx, alice, s.Id, &dto.CreateMetamessageRequest{
		MessageId:       m1.Id,
		MetamessageType: "note",
		Content:         "flag",
	})
	require.NoError(t, err)

	got, err := f.metamessages.Get(ctx, alice, s.Id, m1.Id, mm.Id)
	require.NoError(t, err)
	assert.Equal(t, "flag", got.Content)

	otherSession, err := f.sessions.Create(ctx, alice, nil)
	require.NoError(t, err)
	_, err = f.metamessages.Get(ctx, alice, otherSession.Id, m1.Id, mm.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.metamessages.Create(ctx, alice, otherSession.Id, &dto.CreateMetamessageRequest{
		MessageId:       m1.Id,
		MetamessageType: "note",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestMetamessageFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	s, err := f.sessions.Create(ctx, alice, nil)
	require.NoError(t, err)
	m1, err := f.messages.Create(ctx, alice, s.Id, &dto.CreateMessageRequest{Content: "one"})
	require.NoError(t, err)
	m2, err := f.messages.Create(ctx, alice, s.Id, &dto.CreateMessageRequest{Content: "two"})
	require.NoError(t, err)

	for _, c := range []struct {
		msg uuid.UUID
		typ string
	}{{m1.Id, "note"}, {m1.Id, "summary"}, {m2.Id, "note"}} {
		_, err := f.metamessages.Create(ctx, alice, s.Id, &dto.CreateMetamessageRequest{MessageId: c.msg, MetamessageType: c.typ})
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		filter dto.MetamessageFilter
		want   int
	}{
		{"no filter", dto.MetamessageFilter{}, 3},
		{"by message", dto.MetamessageFilter{MessageId: &m1.Id}, 2},
		{"by type", dto.MetamessageFilter{MetamessageType: ptr("note")}, 2},
		{"both", dto.MetamessageFilter{MessageId: &m2.Id, MetamessageType: ptr("note")}, 1},
		{"no match", dto.MetamessageFilter{MessageId: &m2.Id, MetamessageType: ptr("summary")}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := f.metamessages.List(ctx, alice, s.Id, tt.filter)
			require.NoError(t, err)
			rows, err := seq.All(ctx)
			require.NoError(t, err)
			assert.Len(t, rows, tt.want)
		})
	}

	seq, err := f.metamessages.List(ctx, bob, s.Id, dto.MetamessageFilter{})
	require.NoError(t, err)
	count, err := seq.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCrossTenantMessageCreateWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	s, err := f.sessions.Create(ctx, alice, nil)
	require.NoError(t, err)

	_, err = f.messages.Create(ctx, bob, s.Id, &dto.CreateMessageRequest{Content: "intrusion"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.messages.Create(ctx, alice, uuid.New(), &dto.CreateMessageRequest{Content: "orphan"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	seq, err := f.messages.List(ctx, alice, s.Id)
	require.NoError(t, err)
	count, err := seq.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTenantIsolation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	s, err := f.sessions.Create(ctx, alice, nil)
	require.NoError(t, err)
	m, err := f.messages.Create(ctx, alice, s.Id, &dto.CreateMessageRequest{Content: "secret"})
	require.NoError(t, err)
	c, err := f.collections.Create(ctx, alice, &dto.CreateCollectionRequest{Name: "docs"})
	require.NoError(t, err)
	d, err := f.documents.Create(ctx, alice, c.Id, &dto.CreateDocumentRequest{Content: "the cat sat"})
	require.NoError(t, err)

	_, err = f.sessions.Get(ctx, bob.AppId, &bob.UserId, s.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = f.messages.Get(ctx, bob, s.Id, m.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = f.collections.GetById(ctx, bob, c.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = f.collections.GetByName(ctx, bob, "docs")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = f.documents.Get(ctx, bob, c.Id, d.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = f.documents.Query(ctx, bob, c.Id, &dto.QueryDocumentsRequest{Query: "cat"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	for name, count := range map[string]func() (int64, error){
		"sessions": func() (int64, error) {
			seq, err := f.sessions.List(ctx, bob, nil)
			require.NoError(t, err)
			return seq.Count(ctx)
		},
		"messages": func() (int64, error) {
			seq, err := f.messages.List(ctx, bob, s.Id)
			require.NoError(t, err)
			return seq.Count(ctx)
		},
		"collections": func() (int64, error) {
			seq, err := f.collections.List(ctx, bob)
			require.NoError(t, err)
			return seq.Count(ctx)
		},
		"documents": func() (int64, error) {
			seq, err := f.documents.List(ctx, bob, c.Id)
			require.NoError(t, err)
			return seq.Count(ctx)
		},
	} {
		t.Run(name, func(t *testing.T) {
			n, err := count()
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}

	// Bob cannot mutate Alice's rows either.
	_, err = f.documents.Update(ctx, bob, c.Id, d.Id, &dto.UpdateDocumentRequest{Metadata: dto.Some(map[string]interface{}{})})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	deleted, err := f.documents.Delete(ctx, bob, c.Id, d.Id)
	require.NoError(t, err)
	assert.False(t, deleted)
	deleted, err = f.collections.Delete(ctx, bob, c.Id)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCollectionDuplicateName(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	foo, err := f.collections.Create(ctx, alice, &dto.CreateCollectionRequest{Name: "foo"})
	require.NoError(t, err)

	_, err = f.collections.Create(ctx, alice, &dto.CreateCollectionRequest{Name: "foo"})
	assert.ErrorIs(t, err, apperror.ErrAlreadyExists)

	seq, err := f.collections.List(ctx, alice)
	require.NoError(t, err)
	rows, err := seq.All(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, foo.Id, rows[0].Id)

	// Same name is free for another tenant.
	_, err = f.collections.Create(ctx, bob, &dto.CreateCollectionRequest{Name: "foo"})
	assert.NoError(t, err)

	bar, err := f.collections.Create(ctx, alice, &dto.CreateCollectionRequest{Name: "bar"})
	require.NoError(t, err)
	_, err = f.collections.Update(ctx, alice, bar.Id, &dto.UpdateCollectionRequest{Name: "foo"})
	assert.ErrorIs(t, err, apperror.ErrAlreadyExists)

	got, err := f.collections.GetById(ctx, alice, bar.Id)
	require.NoError(t, err)
	assert.Equal(t, "bar", got.Name)

	renamed, err := f.collections.Update(ctx, alice, bar.Id, &dto.UpdateCollectionRequest{Name: "baz"})
	require.NoError(t, err)
	assert.Equal(t, "baz", renamed.Name)

	byName, err := f.collections.GetByName(ctx, alice, "baz")
	require.NoError(t, err)
	assert.Equal(t, bar.Id, byName.Id)

	_, err = f.collections.Update(ctx, alice, uuid.New(), &dto.UpdateCollectionRequest{Name: "qux"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCollectionDeleteCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c, err := f.collections.Create(ctx, alice, &dto.CreateCollectionRequest{Name: "docs"})
	require.NoError(t, err)
	for _, content := range []string{"one", "two", "three"} {
		_, err := f.documents.Create(ctx, alice, c.Id, &dto.CreateDocumentRequest{Content: content})
		require.NoError(t, err)
	}

	deleted, err := f.collections.Delete(ctx, alice, c.Id)
	require.NoError(t, err)
	assert.True(t, deleted)

	seq, err := f.documents.List(ctx, alice, c.Id)
	require.NoError(t, err)
	rows, err := seq.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = f.collections.GetById(ctx, alice, c.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	deleted, err = f.collections.Delete(ctx, alice, c.Id)
	require.NoError(t, err)
	assert.False(t, deleted)

	f.publisher.mu.Lock()
	last := f.publisher.events[len(f.publisher.events)-1]
	f.publisher.mu.Unlock()
	assert.Equal(t, events.CollectionDeleted, last.EventType())
	assert.EqualValues(t, 3, last.Payload()["documents_removed"])
}

func TestDocumentQueryScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c, err := f.collections.Create(ctx, alice, &dto.CreateCollectionRequest{Name: "docs"})
	require.NoError(t, err)
	cat, err := f.documents.Create(ctx, alice, c.Id, &dto.CreateDocumentRequest{Content: "the cat sat"})
	require.NoError(t, err)
	_, err = f.documents.Create(ctx, alice, c.Id, &dto.CreateDocumentRequest{Content: "stock market rose"})
	require.NoError(t, err)

	res, err := f.documents.Query(ctx, alice, c.Id, &dto.QueryDocumentsRequest{Query: "feline pet", TopK: 1})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, cat.Id, res[0].Document.Id)

	// Fewer documents than top_k returns them all, nearest first.
	res, err = f.documents.Query(ctx, alice, c.Id, &dto.QueryDocumentsRequest{Query: "feline pet", TopK: 3})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.LessOrEqual(t, res[0].Distance, res[1].Distance)

	_, err = f.documents.Query(ctx, alice, uuid.New(), &dto.QueryDocumentsRequest{Query: "cat"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.documents.Query(ctx, alice, c.Id, &dto.QueryDocumentsRequest{Query: ""})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}

func TestDocumentQueryTopK(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c, err := f.collections.Create(ctx, alice, &dto.CreateCollectionRequest{Name: "many"})
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		_, err := f.documents.Create(ctx, alice, c.Id, &dto.CreateDocumentRequest{Content: strings.Repeat("cat word ", i+1)})
		require.NoError(t, err)
	}

	res, err := f.documents.Query(ctx, alice, c.Id, &dto.QueryDocumentsRequest{Query: "cat", TopK: 3})
	require.NoError(t, err)
	require.Len(t, res, 3)
	for i := 1; i < len(res); i++ {
		assert.LessOrEqual(t, res[i-1].Distance, res[i].Distance)
	}

	res, err = f.documents.Query(ctx, alice, c.Id, &dto.QueryDocumentsRequest{Query: "cat"})
	require.NoError(t, err)
	assert.Len(t, res, DefaultTopK)

	again, err := f.documents.Query(ctx, alice, c.Id, &dto.QueryDocumentsRequest{Query: "cat"})
	require.NoError(t, err)
	for i := range res {
		assert.Equal(t, res[i].Document.Id, again[i].Document.Id, "ordering must be deterministic")
	}
}

func TestClampTopK(t *testing.T) {
	tests := []struct {
		name              string
		topK, def, maxTop int
		want              int
	}{
		{"default", 0, 5, 50, 5},
		{"explicit", 3, 5, 50, 3},
		{"clamped", 500, 5, 50, 50},
		{"negative", -2, 5, 50, 5},
		{"floor", 0, 0, 50, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampTopK(tt.topK, tt.def, tt.maxTop))
		})
	}
}

func TestDocumentUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c, err := f.collections.Create(ctx, alice, &dto.CreateCollectionRequest{Name: "docs"})
	require.NoError(t, err)
	d, err := f.documents.Create(ctx, alice, c.Id, &dto.CreateDocumentRequest{
		Content:  "the cat sat",
		Metadata: map[string]interface{}{"source": "a"},
	})
	require.NoError(t, err)
	calls := f.provider.callCount()

	updated, err := f.documents.Update(ctx, alice, c.Id, d.Id, &dto.UpdateDocumentRequest{
		Content: dto.Some("stock market rose"),
	})
	require.NoError(t, err)
	assert.Equal(t, calls+1, f.provider.callCount())
	assert.Equal(t, "stock market rose", updated.Content)
	assert.NotEqual(t, d.Embedding, updated.Embedding)
	assert.True(t, updated.CreatedAt.After(d.CreatedAt))
	assert.Equal(t, "a", updated.Metadata["source"])

	stored, err := f.documents.Get(ctx, alice, c.Id, d.Id)
	require.NoError(t, err)
	assert.Equal(t, updated.Embedding, stored.Embedding)
	assert.True(t, stored.CreatedAt.Equal(updated.CreatedAt))

	metaOnly, err := f.documents.Update(ctx, alice, c.Id, d.Id, &dto.UpdateDocumentRequest{
		Metadata: dto.Some(map[string]interface{}{"source": "b"}),
	})
	require.NoError(t, err)
	assert.Equal(t, calls+1, f.provider.callCount(), "metadata-only update must not re-embed")
	assert.True(t, metaOnly.CreatedAt.Equal(updated.CreatedAt))
	assert.Equal(t, "b", metaOnly.Metadata["source"])

	_, err = f.documents.Update(ctx, alice, c.Id, d.Id, &dto.UpdateDocumentRequest{})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = f.documents.Update(ctx, alice, c.Id, uuid.New(), &dto.UpdateDocumentRequest{Content: dto.Some("x")})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	deleted, err := f.documents.Delete(ctx, alice, c.Id, d.Id)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = f.documents.Delete(ctx, alice, c.Id, d.Id)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestEmbeddingFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c, err := f.collections.Create(ctx, alice, &dto.CreateCollectionRequest{Name: "docs"})
	require.NoError(t, err)

	f.provider.err = errors.New("provider down")
	_, err = f.documents.Create(ctx, alice, c.Id, &dto.CreateDocumentRequest{Content: "the cat sat"})
	assert.ErrorIs(t, err, apperror.ErrDependencyFailure)
	_, err = f.documents.Query(ctx, alice, c.Id, &dto.QueryDocumentsRequest{Query: "cat"})
	assert.ErrorIs(t, err, apperror.ErrDependencyFailure)

	seq, err := f.documents.List(ctx, alice, c.Id)
	require.NoError(t, err)
	count, err := seq.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestEmbeddingDimensionChecked(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewRepositoryFactory(memory.NewStore())
	short := embedding.ProviderFunc(func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1}, nil
	})
	collections := NewCollectionService(factory, nil, nil)
	documents := NewDocumentService(factory, short, nil, nil, DocumentOptions{Dimensions: testDimensions})

	c, err := collections.Create(ctx, alice, &dto.CreateCollectionRequest{Name: "docs"})
	require.NoError(t, err)
	_, err = documents.Create(ctx, alice, c.Id, &dto.CreateDocumentRequest{Content: "x"})
	assert.ErrorIs(t, err, apperror.ErrDependencyFailure)
	assert.ErrorIs(t, err, embedding.ErrDimensionMismatch)
}

func TestInputValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.sessions.Create(ctx, entity.NewTenant("", "u1"), nil)
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = f.sessions.Get(ctx, "", nil, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = f.collections.Create(ctx, alice, &dto.CreateCollectionRequest{Name: ""})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = f.collections.Create(ctx, alice, &dto.CreateCollectionRequest{Name: strings.Repeat("x", 256)})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = f.metamessages.Create(ctx, alice, uuid.New(), &dto.CreateMetamessageRequest{MessageId: uuid.New()})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = f.documents.Create(ctx, alice, uuid.New(), &dto.CreateDocumentRequest{})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	assert.Zero(t, f.provider.callCount())
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.publisher.err = errors.New("bus down")

	c, err := f.collections.Create(ctx, alice, &dto.CreateCollectionRequest{Name: "docs"})
	require.NoError(t, err)

	got, err := f.collections.GetByName(ctx, alice, "docs")
	require.NoError(t, err)
	assert.Equal(t, c.Id, got.Id)
}

func TestNothingPublishedOnFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.collections.Create(ctx, alice, &dto.CreateCollectionRequest{Name: "foo"})
	require.NoError(t, err)
	_, err = f.collections.Create(ctx, alice, &dto.CreateCollectionRequest{Name: "foo"})
	require.Error(t, err)

	assert.Equal(t, []string{events.CollectionCreated}, f.publisher.types())
}

func TestCreateReturnsStoredMetadata(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	s, err := f.sessions.Create(ctx, alice, &dto.CreateSessionRequest{})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{}, s.Metadata)

	msg, err := f.messages.Create(ctx, alice, s.Id, &dto.CreateMessageRequest{IsUser: true, Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{}, msg.Metadata)

	mm, err := f.metamessages.Create(ctx, alice, s.Id, &dto.CreateMetamessageRequest{
		MessageId: msg.Id, MetamessageType: "note", Content: "flag",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{}, mm.Metadata)

	col, err := f.collections.Create(ctx, alice, &dto.CreateCollectionRequest{Name: "plain"})
	require.NoError(t, err)
	doc, err := f.documents.Create(ctx, alice, col.Id, &dto.CreateDocumentRequest{Content: "the cat sat"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{}, doc.Metadata)

	stored, err := f.documents.Get(ctx, alice, col.Id, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, stored.Metadata, doc.Metadata)
}
