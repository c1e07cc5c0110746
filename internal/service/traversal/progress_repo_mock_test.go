package traversal

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/pathgraph/internal/domain"
)

var _ progressRepo = &progressRepoMock{}

type progressRepoMock struct {
	GetFunc            func(ctx context.Context, key domain.ProgressKey) (*domain.Progress, error)
	GetForUpdateFunc   func(ctx context.Context, key domain.ProgressKey) (*domain.Progress, error)
	CreateIfAbsentFunc func(ctx context.Context, p domain.Progress) (*domain.Progress, bool, error)
	UpdatePositionFunc func(ctx context.Context, key domain.ProgressKey, upd domain.PositionUpdate) (*domain.Progress, error)
	LeaderboardFunc    func(ctx context.Context, communityID int64, projectID uuid.UUID, limit int) ([]domain.LeaderboardEntry, error)

	calls struct {
		Get []struct {
			Ctx context.Context
			Key domain.ProgressKey
		}
		GetForUpdate []struct {
			Ctx context.Context
			Key domain.ProgressKey
		}
		CreateIfAbsent []struct {
			Ctx context.Context
			P   domain.Progress
		}
		UpdatePosition []struct {
			Ctx context.Context
			Key domain.ProgressKey
			Upd domain.PositionUpdate
		}
		Leaderboard []struct {
			Ctx         context.Context
			CommunityID int64
			ProjectID   uuid.UUID
			Limit       int
		}
	}
	lockGet            sync.RWMutex
	lockGetForUpdate   sync.RWMutex
	lockCreateIfAbsent sync.RWMutex
	lockUpdatePosition sync.RWMutex
	lockLeaderboard    sync.RWMutex
}

func (mock *progressRepoMock) Get(ctx context.Context, key domain.ProgressKey) (*domain.Progress, error) {
	if mock.GetFunc == nil {
		panic("progressRepoMock.GetFunc: method is nil but progressRepo.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key domain.ProgressKey
	}{
		Ctx: ctx,
		Key: key,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, key)
}

func (mock *progressRepoMock) GetCalls() []struct {
	Ctx context.Context
	Key domain.ProgressKey
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *progressRepoMock) GetForUpdate(ctx context.Context, key domain.ProgressKey) (*domain.Progress, error) {
	if mock.GetForUpdateFunc == nil {
		panic("progressRepoMock.GetForUpdateFunc: method is nil but progressRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key domain.ProgressKey
	}{
		Ctx: ctx,
		Key: key,
	}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, key)
}

func (mock *progressRepoMock) GetForUpdateCalls() []struct {
	Ctx context.Context
	Key domain.ProgressKey
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *progressRepoMock) CreateIfAbsent(ctx context.Context, p domain.Progress) (*domain.Progress, bool, error) {
	if mock.CreateIfAbsentFunc == nil {
		panic("progressRepoMock.CreateIfAbsentFunc: method is nil but progressRepo.CreateIfAbsent was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.Progress
	}{
		Ctx: ctx,
		P:   p,
	}
	mock.lockCreateIfAbsent.Lock()
	mock.calls.CreateIfAbsent = append(mock.calls.CreateIfAbsent, callInfo)
	mock.lockCreateIfAbsent.Unlock()
	return mock.CreateIfAbsentFunc(ctx, p)
}

func (mock *progressRepoMock) CreateIfAbsentCalls() []struct {
	Ctx context.Context
	P   domain.Progress
} {
	mock.lockCreateIfAbsent.RLock()
	calls := mock.calls.CreateIfAbsent
	mock.lockCreateIfAbsent.RUnlock()
	return calls
}

func (mock *progressRepoMock) UpdatePosition(ctx context.Context, key domain.ProgressKey, upd domain.PositionUpdate) (*domain.Progress, error) {
	if mock.UpdatePositionFunc == nil {
		panic("progressRepoMock.UpdatePositionFunc: method is nil but progressRepo.UpdatePosition was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key domain.ProgressKey
		Upd domain.PositionUpdate
	}{
		Ctx: ctx,
		Key: key,
		Upd: upd,
	}
	mock.lockUpdatePosition.Lock()
	mock.calls.UpdatePosition = append(mock.calls.UpdatePosition, callInfo)
	mock.lockUpdatePosition.Unlock()
	return mock.UpdatePositionFunc(ctx, key, upd)
}

func (mock *progressRepoMock) UpdatePositionCalls() []struct {
	Ctx context.Context
	Key domain.ProgressKey
	Upd domain.PositionUpdate
} {
	mock.lockUpdatePosition.RLock()
	calls := mock.calls.UpdatePosition
	mock.lockUpdatePosition.RUnlock()
	return calls
}

func (mock *progressRepoMock) Leaderboard(ctx context.Context, communityID int64, projectID uuid.UUID, limit int) ([]domain.LeaderboardEntry, error) {
	if mock.LeaderboardFunc == nil {
		panic("progressRepoMock.LeaderboardFunc: method is nil but progressRepo.Leaderboard was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		CommunityID int64
		ProjectID   uuid.UUID
		Limit       int
	}{
		Ctx:         ctx,
		CommunityID: communityID,
		ProjectID:   projectID,
		Limit:       limit,
	}
	mock.lockLeaderboard.Lock()
	mock.calls.Leaderboard = append(mock.calls.Leaderboard, callInfo)
	mock.lockLeaderboard.Unlock()
	return mock.LeaderboardFunc(ctx, communityID, projectID, limit)
}

func (mock *progressRepoMock) LeaderboardCalls() []struct {
	Ctx         context.Context
	CommunityID int64
	ProjectID   uuid.UUID
	Limit       int
} {
	mock.lockLeaderboard.RLock()
	calls := mock.calls.Leaderboard
	mock.lockLeaderboard.RUnlock()
	return calls
}
