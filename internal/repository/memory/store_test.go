package memory

import (
	"context"
	"testing"
	"time"

	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tenantA = entity.Tenant{AppId: "app", UserId: "alice"}
var tenantB = entity.Tenant{AppId: "app", UserId: "bob"}

func newSession(t entity.Tenant, at time.Time) *entity.Session {
	return &entity.Session{Id: uuid.New(), AppId: t.AppId, UserId: t.UserId, IsActive: true, CreatedAt: at}
}

func TestSequenceOrderAndPaging(t *testing.T) {
	ctx := context.Background()
	uow := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx)
	repo := uow.SessionRepository()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		s := newSession(tenantA, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(ctx, s))
		ids = append(ids, s.Id)
	}
	require.NoError(t, repo.Create(ctx, newSession(tenantB, base)))

	seq := repo.FindAll(ctx, contract.SessionQuery{Tenant: tenantA})
	count, err := seq.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	page, err := seq.Page(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[1], page[0].Id)
	assert.Equal(t, ids[2], page[1].Id)

	empty, err := seq.Page(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)

	// Restartable: a later write is visible on the next call.
	require.NoError(t, repo.Create(ctx, newSession(tenantA, base.Add(time.Hour))))
	count, err = seq.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)
}

func TestStoredCopiesAreIsolated(t *testing.T) {
	ctx := context.Background()
	uow := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx)
	repo := uow.SessionRepository()

	s := newSession(tenantA, time.Now())
	s.Metadata = map[string]interface{}{"k": "v"}
	require.NoError(t, repo.Create(ctx, s))
	s.Metadata["k"] = "changed"

	got, err := repo.FindOne(ctx, contract.SessionLookup{AppId: "app", Id: s.Id})
	require.NoError(t, err)
	assert.Equal(t, "v", got.Metadata["k"])
}

func TestRollbackRestoresSnapshot(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory(NewStore())

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	s := newSession(tenantA, time.Now())
	require.NoError(t, uow.SessionRepository().Create(ctx, s))
	require.NoError(t, uow.Rollback())

	got, err := factory.NewUnitOfWork(ctx).SessionRepository().FindOne(ctx, contract.SessionLookup{AppId: "app", Id: s.Id})
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.Error(t, uow.Commit())
}

func TestForeignKeysAndUniqueness(t *testing.T) {
	ctx := context.Background()
	uow := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx)

	err := uow.MessageRepository().Create(ctx, &entity.Message{Id: uuid.New(), SessionId: uuid.New()})
	assert.ErrorIs(t, err, contract.ErrForeignKey)

	c := &entity.Collection{Id: uuid.New(), AppId: "app", UserId: "alice", Name: "notes", CreatedAt: time.Now()}
	require.NoError(t, uow.CollectionRepository().Create(ctx, c))
	dup := &entity.Collection{Id: uuid.New(), AppId: "app", UserId: "alice", Name: "notes", CreatedAt: time.Now()}
	assert.ErrorIs(t, uow.CollectionRepository().Create(ctx, dup), contract.ErrDuplicateKey)

	other := &entity.Collection{Id: uuid.New(), AppId: "app", UserId: "bob", Name: "notes", CreatedAt: time.Now()}
	assert.NoError(t, uow.CollectionRepository().Create(ctx, other))

	doc := &entity.Document{Id: uuid.New(), CollectionId: c.Id, Embedding: []float32{1, 0}, CreatedAt: time.Now()}
	require.NoError(t, uow.DocumentRepository().Create(ctx, doc))
	assert.ErrorIs(t, uow.CollectionRepository().Delete(ctx, c.Id), contract.ErrForeignKey)

	n, err := uow.DocumentRepository().DeleteByCollectionId(ctx, c.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.NoError(t, uow.CollectionRepository().Delete(ctx, c.Id))
}

func TestSearchSimilarOrdering(t *testing.T) {
	ctx := context.Background()
	uow := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx)

	c := &entity.Collection{Id: uuid.New(), AppId: "app", UserId: "alice", Name: "c", CreatedAt: time.Now()}
	require.NoError(t, uow.CollectionRepository().Create(ctx, c))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	far := &entity.Document{Id: uuid.New(), CollectionId: c.Id, Embedding: []float32{0, 1}, CreatedAt: base}
	nearLate := &entity.Document{Id: uuid.New(), CollectionId: c.Id, Embedding: []float32{2, 0}, CreatedAt: base.Add(time.Second)}
	nearEarly := &entity.Document{Id: uuid.New(), CollectionId: c.Id, Embedding: []float32{1, 0}, CreatedAt: base}
	for _, d := range []*entity.Document{far, nearLate, nearEarly} {
		require.NoError(t, uow.DocumentRepository().Create(ctx, d))
	}

	query := contract.DocumentQuery{Tenant: tenantA, CollectionId: c.Id}
	res, err := uow.DocumentRepository().SearchSimilar(ctx, query, []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, nearEarly.Id, res[0].Document.Id)
	assert.Equal(t, nearLate.Id, res[1].Document.Id)
	assert.InDelta(t, 0, res[0].Distance, 1e-9)

	foreign, err := uow.DocumentRepository().SearchSimilar(ctx, contract.DocumentQuery{Tenant: tenantB, CollectionId: c.Id}, []float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Empty(t, foreign)
}

func TestCosineDistance(t *testing.T) {
	assert.InDelta(t, 0, CosineDistance([]float32{1, 1}, []float32{2, 2}), 1e-9)
	assert.InDelta(t, 1, CosineDistance([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, 2, CosineDistance([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Equal(t, 1.0, CosineDistance([]float32{0, 0}, []float32{1, 0}))
	assert.Equal(t, 1.0, CosineDistance([]float32{1}, []float32{1, 0}))
}

func TestPingHonoursContext(t *testing.T) {
	factory := NewRepositoryFactory(NewStore())
	assert.NoError(t, factory.Ping(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, factory.Ping(ctx), context.Canceled)
}

func TestCreateWritesBackNormalisedRow(t *testing.T) {
	ctx := context.Background()
	uow := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx)

	s := &entity.Session{Id: uuid.New(), AppId: "app", UserId: "alice", IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, uow.SessionRepository().Create(ctx, s))
	require.NotNil(t, s.Metadata)
	assert.Empty(t, s.Metadata)

	// The caller's copy is detached from the stored row.
	s.Metadata["k"] = "v"
	got, err := uow.SessionRepository().FindOne(ctx, contract.SessionLookup{AppId: "app", Id: s.Id})
	require.NoError(t, err)
	assert.Empty(t, got.Metadata)
}

func TestSearchSimilarNonPositiveLimit(t *testing.T) {
	ctx := context.Background()
	uow := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx)

	c := &entity.Collection{Id: uuid.New(), AppId: "app", UserId: "alice", Name: "c", CreatedAt: time.Now()}
	require.NoError(t, uow.CollectionRepository().Create(ctx, c))
	require.NoError(t, uow.DocumentRepository().Create(ctx, &entity.Document{
		Id: uuid.New(), CollectionId: c.Id, Embedding: []float32{1, 0}, CreatedAt: time.Now(),
	}))

	query := contract.DocumentQuery{Tenant: entity.NewTenant("app", "alice"), CollectionId: c.Id}
	res, err := uow.DocumentRepository().SearchSimilar(ctx, query, []float32{1, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, res)
}
