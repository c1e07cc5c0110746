package traversal

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/pathgraph/internal/domain"
)

var _ graphRepo = &graphRepoMock{}

type graphRepoMock struct {
	GetNodeFunc              func(ctx context.Context, projectID uuid.UUID, nodeID int64) (*domain.Node, error)
	GetEdgeFunc              func(ctx context.Context, projectID uuid.UUID, edgeID int64) (*domain.Edge, error)
	ListEdgesFromFunc        func(ctx context.Context, projectID uuid.UUID, nodeID int64) ([]domain.Edge, error)
	GetBadgeBySlugFunc       func(ctx context.Context, projectID uuid.UUID, slug string) (*domain.Badge, error)
	ListBadgesUpToCreditFunc func(ctx context.Context, projectID uuid.UUID, credit int64) ([]domain.Badge, error)

	calls struct {
		GetNode []struct {
			Ctx       context.Context
			ProjectID uuid.UUID
			NodeID    int64
		}
		GetEdge []struct {
			Ctx       context.Context
			ProjectID uuid.UUID
			EdgeID    int64
		}
		ListEdgesFrom []struct {
			Ctx       context.Context
			ProjectID uuid.UUID
			NodeID    int64
		}
		GetBadgeBySlug []struct {
			Ctx       context.Context
			ProjectID uuid.UUID
			Slug      string
		}
		ListBadgesUpToCredit []struct {
			Ctx       context.Context
			ProjectID uuid.UUID
			Credit    int64
		}
	}
	lockGetNode              sync.RWMutex
	lockGetEdge              sync.RWMutex
	lockListEdgesFrom        sync.RWMutex
	lockGetBadgeBySlug       sync.RWMutex
	lockListBadgesUpToCredit sync.RWMutex
}

func (mock *graphRepoMock) GetNode(ctx context.Context, projectID uuid.UUID, nodeID int64) (*domain.Node, error) {
	if mock.GetNodeFunc == nil {
		panic("graphRepoMock.GetNodeFunc: method is nil but graphRepo.GetNode was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ProjectID uuid.UUID
		NodeID    int64
	}{
		Ctx:       ctx,
		ProjectID: projectID,
		NodeID:    nodeID,
	}
	mock.lockGetNode.Lock()
	mock.calls.GetNode = append(mock.calls.GetNode, callInfo)
	mock.lockGetNode.Unlock()
	return mock.GetNodeFunc(ctx, projectID, nodeID)
}

func (mock *graphRepoMock) GetNodeCalls() []struct {
	Ctx       context.Context
	ProjectID uuid.UUID
	NodeID    int64
} {
	mock.lockGetNode.RLock()
	calls := mock.calls.GetNode
	mock.lockGetNode.RUnlock()
	return calls
}

func (mock *graphRepoMock) GetEdge(ctx context.Context, projectID uuid.UUID, edgeID int64) (*domain.Edge, error) {
	if mock.GetEdgeFunc == nil {
		panic("graphRepoMock.GetEdgeFunc: method is nil but graphRepo.GetEdge was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ProjectID uuid.UUID
		EdgeID    int64
	}{
		Ctx:       ctx,
		ProjectID: projectID,
		EdgeID:    edgeID,
	}
	mock.lockGetEdge.Lock()
	mock.calls.GetEdge = append(mock.calls.GetEdge, callInfo)
	mock.lockGetEdge.Unlock()
	return mock.GetEdgeFunc(ctx, projectID, edgeID)
}

func (mock *graphRepoMock) GetEdgeCalls() []struct {
	Ctx       context.Context
	ProjectID uuid.UUID
	EdgeID    int64
} {
	mock.lockGetEdge.RLock()
	calls := mock.calls.GetEdge
	mock.lockGetEdge.RUnlock()
	return calls
}

func (mock *graphRepoMock) ListEdgesFrom(ctx context.Context, projectID uuid.UUID, nodeID int64) ([]domain.Edge, error) {
	if mock.ListEdgesFromFunc == nil {
		panic("graphRepoMock.ListEdgesFromFunc: method is nil but graphRepo.ListEdgesFrom was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ProjectID uuid.UUID
		NodeID    int64
	}{
		Ctx:       ctx,
		ProjectID: projectID,
		NodeID:    nodeID,
	}
	mock.lockListEdgesFrom.Lock()
	mock.calls.ListEdgesFrom = append(mock.calls.ListEdgesFrom, callInfo)
	mock.lockListEdgesFrom.Unlock()
	return mock.ListEdgesFromFunc(ctx, projectID, nodeID)
}

func (mock *graphRepoMock) ListEdgesFromCalls() []struct {
	Ctx       context.Context
	ProjectID uuid.UUID
	NodeID    int64
} {
	mock.lockListEdgesFrom.RLock()
	calls := mock.calls.ListEdgesFrom
	mock.lockListEdgesFrom.RUnlock()
	return calls
}

func (mock *graphRepoMock) GetBadgeBySlug(ctx context.Context, projectID uuid.UUID, slug string) (*domain.Badge, error) {
	if mock.GetBadgeBySlugFunc == nil {
		panic("graphRepoMock.GetBadgeBySlugFunc: method is nil but graphRepo.GetBadgeBySlug was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ProjectID uuid.UUID
		Slug      string
	}{
		Ctx:       ctx,
		ProjectID: projectID,
		Slug:      slug,
	}
	mock.lockGetBadgeBySlug.Lock()
	mock.calls.GetBadgeBySlug = append(mock.calls.GetBadgeBySlug, callInfo)
	mock.lockGetBadgeBySlug.Unlock()
	return mock.GetBadgeBySlugFunc(ctx, projectID, slug)
}

func (mock *graphRepoMock) GetBadgeBySlugCalls() []struct {
	Ctx       context.Context
	ProjectID uuid.UUID
	Slug      string
} {
	mock.lockGetBadgeBySlug.RLock()
	calls := mock.calls.GetBadgeBySlug
	mock.lockGetBadgeBySlug.RUnlock()
	return calls
}

func (mock *graphRepoMock) ListBadgesUpToCredit(ctx context.Context, projectID uuid.UUID, credit int64) ([]domain.Badge, error) {
	if mock.ListBadgesUpToCreditFunc == nil {
		panic("graphRepoMock.ListBadgesUpToCreditFunc: method is nil but graphRepo.ListBadgesUpToCredit was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ProjectID uuid.UUID
		Credit    int64
	}{
		Ctx:       ctx,
		ProjectID: projectID,
		Credit:    credit,
	}
	mock.lockListBadgesUpToCredit.Lock()
	mock.calls.ListBadgesUpToCredit = append(mock.calls.ListBadgesUpToCredit, callInfo)
	mock.lockListBadgesUpToCredit.Unlock()
	return mock.ListBadgesUpToCreditFunc(ctx, projectID, credit)
}

func (mock *graphRepoMock) ListBadgesUpToCreditCalls() []struct {
	Ctx       context.Context
	ProjectID uuid.UUID
	Credit    int64
} {
	mock.lockListBadgesUpToCredit.RLock()
	calls := mock.calls.ListBadgesUpToCredit
	mock.lockListBadgesUpToCredit.RUnlock()
	return calls
}
