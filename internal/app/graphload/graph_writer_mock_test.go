package graphload

import (
	"context"
	"sync"

	"github.com/heartmarshall/pathgraph/internal/domain"
)

var _ graphWriter = &graphWriterMock{}

type graphWriterMock struct {
	UpsertNodesFunc  func(ctx context.Context, nodes []domain.Node) error
	UpsertEdgesFunc  func(ctx context.Context, edges []domain.Edge) error
	UpsertBadgesFunc func(ctx context.Context, badges []domain.Badge) error

	calls struct {
		UpsertNodes []struct {
			Ctx   context.Context
			Nodes []domain.Node
		}
		UpsertEdges []struct {
			Ctx   context.Context
			Edges []domain.Edge
		}
		UpsertBadges []struct {
			Ctx    context.Context
			Badges []domain.Badge
		}
	}
	lockUpsertNodes  sync.RWMutex
	lockUpsertEdges  sync.RWMutex
	lockUpsertBadges sync.RWMutex
}

func (mock *graphWriterMock) UpsertNodes(ctx context.Context, nodes []domain.Node) error {
	if mock.UpsertNodesFunc == nil {
		panic("graphWriterMock.UpsertNodesFunc: method is nil but graphWriter.UpsertNodes was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Nodes []domain.Node
	}{
		Ctx:   ctx,
		Nodes: nodes,
	}
	mock.lockUpsertNodes.Lock()
	mock.calls.UpsertNodes = append(mock.calls.UpsertNodes, callInfo)
	mock.lockUpsertNodes.Unlock()
	return mock.UpsertNodesFunc(ctx, nodes)
}

func (mock *graphWriterMock) UpsertNodesCalls() []struct {
	Ctx   context.Context
	Nodes []domain.Node
} {
	mock.lockUpsertNodes.RLock()
	calls := mock.calls.UpsertNodes
	mock.lockUpsertNodes.RUnlock()
	return calls
}

func (mock *graphWriterMock) UpsertEdges(ctx context.Context, edges []domain.Edge) error {
	if mock.UpsertEdgesFunc == nil {
		panic("graphWriterMock.UpsertEdgesFunc: method is nil but graphWriter.UpsertEdges was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Edges []domain.Edge
	}{
		Ctx:   ctx,
		Edges: edges,
	}
	mock.lockUpsertEdges.Lock()
	mock.calls.UpsertEdges = append(mock.calls.UpsertEdges, callInfo)
	mock.lockUpsertEdges.Unlock()
	return mock.UpsertEdgesFunc(ctx, edges)
}

func (mock *graphWriterMock) UpsertEdgesCalls() []struct {
	Ctx   context.Context
	Edges []domain.Edge
} {
	mock.lockUpsertEdges.RLock()
	calls := mock.calls.UpsertEdges
	mock.lockUpsertEdges.RUnlock()
	return calls
}

func (mock *graphWriterMock) UpsertBadges(ctx context.Context, badges []domain.Badge) error {
	if mock.UpsertBadgesFunc == nil {
		panic("graphWriterMock.UpsertBadgesFunc: method is nil but graphWriter.UpsertBadges was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Badges []domain.Badge
	}{
		Ctx:    ctx,
		Badges: badges,
	}
	mock.lockUpsertBadges.Lock()
	mock.calls.UpsertBadges = append(mock.calls.UpsertBadges, callInfo)
	mock.lockUpsertBadges.Unlock()
	return mock.UpsertBadgesFunc(ctx, badges)
}

func (mock *graphWriterMock) UpsertBadgesCalls() []struct {
	Ctx    context.Context
	Badges []domain.Badge
} {
	mock.lockUpsertBadges.RLock()
	calls := mock.calls.UpsertBadges
	mock.lockUpsertBadges.RUnlock()
	return calls
}
