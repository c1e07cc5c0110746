package traversal

import (
	"context"
	"sync"

	"github.com/heartmarshall/pathgraph/internal/domain"
)

var _ grantRepo = &grantRepoMock{}

type grantRepoMock struct {
	CreateFunc          func(ctx context.Context, g domain.BadgeGrant) (bool, error)
	ExistsFunc          func(ctx context.Context, key domain.ProgressKey, badgeID int64) (bool, error)
	GrantedBadgeIDsFunc func(ctx context.Context, key domain.ProgressKey) (map[int64]struct{}, error)
	ListByKeyFunc       func(ctx context.Context, key domain.ProgressKey) ([]domain.GrantedBadge, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			G   domain.BadgeGrant
		}
		Exists []struct {
			Ctx     context.Context
			Key     domain.ProgressKey
			BadgeID int64
		}
		GrantedBadgeIDs []struct {
			Ctx context.Context
			Key domain.ProgressKey
		}
		ListByKey []struct {
			Ctx context.Context
			Key domain.ProgressKey
		}
	}
	lockCreate          sync.RWMutex
	lockExists          sync.RWMutex
	lockGrantedBadgeIDs sync.RWMutex
	lockListByKey       sync.RWMutex
}

func (mock *grantRepoMock) Create(ctx context.Context, g domain.BadgeGrant) (bool, error) {
	if mock.CreateFunc == nil {
		panic("grantRepoMock.CreateFunc: method is nil but grantRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		G   domain.BadgeGrant
	}{
		Ctx: ctx,
		G:   g,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, g)
}

func (mock *grantRepoMock) CreateCalls() []struct {
	Ctx context.Context
	G   domain.BadgeGrant
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *grantRepoMock) Exists(ctx context.Context, key domain.ProgressKey, badgeID int64) (bool, error) {
	if mock.ExistsFunc == nil {
		panic("grantRepoMock.ExistsFunc: method is nil but grantRepo.Exists was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Key     domain.ProgressKey
		BadgeID int64
	}{
		Ctx:     ctx,
		Key:     key,
		BadgeID: badgeID,
	}
	mock.lockExists.Lock()
	mock.calls.Exists = append(mock.calls.Exists, callInfo)
	mock.lockExists.Unlock()
	return mock.ExistsFunc(ctx, key, badgeID)
}

func (mock *grantRepoMock) ExistsCalls() []struct {
	Ctx     context.Context
	Key     domain.ProgressKey
	BadgeID int64
} {
	mock.lockExists.RLock()
	calls := mock.calls.Exists
	mock.lockExists.RUnlock()
	return calls
}

func (mock *grantRepoMock) GrantedBadgeIDs(ctx context.Context, key domain.ProgressKey) (map[int64]struct{}, error) {
	if mock.GrantedBadgeIDsFunc == nil {
		panic("grantRepoMock.GrantedBadgeIDsFunc: method is nil but grantRepo.GrantedBadgeIDs was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key domain.ProgressKey
	}{
		Ctx: ctx,
		Key: key,
	}
	mock.lockGrantedBadgeIDs.Lock()
	mock.calls.GrantedBadgeIDs = append(mock.calls.GrantedBadgeIDs, callInfo)
	mock.lockGrantedBadgeIDs.Unlock()
	return mock.GrantedBadgeIDsFunc(ctx, key)
}

func (mock *grantRepoMock) GrantedBadgeIDsCalls() []struct {
	Ctx context.Context
	Key domain.ProgressKey
} {
	mock.lockGrantedBadgeIDs.RLock()
	calls := mock.calls.GrantedBadgeIDs
	mock.lockGrantedBadgeIDs.RUnlock()
	return calls
}

func (mock *grantRepoMock) ListByKey(ctx context.Context, key domain.ProgressKey) ([]domain.GrantedBadge, error) {
	if mock.ListByKeyFunc == nil {
		panic("grantRepoMock.ListByKeyFunc: method is nil but grantRepo.ListByKey was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key domain.ProgressKey
	}{
		Ctx: ctx,
		Key: key,
	}
	mock.lockListByKey.Lock()
	mock.calls.ListByKey = append(mock.calls.ListByKey, callInfo)
	mock.lockListByKey.Unlock()
	return mock.ListByKeyFunc(ctx, key)
}

func (mock *grantRepoMock) ListByKeyCalls() []struct {
	Ctx context.Context
	Key domain.ProgressKey
} {
	mock.lockListByKey.RLock()
	calls := mock.calls.ListByKey
	mock.lockListByKey.RUnlock()
	return calls
}
