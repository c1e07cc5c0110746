package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/pathgraph/internal/domain"
	"github.com/heartmarshall/pathgraph/internal/service/traversal"
)

var _ traversalService = &traversalServiceMock{}

type traversalServiceMock struct {
	GetStateFunc      func(ctx context.Context, in traversal.Learner) (*domain.Progress, error)
	OptionsFunc       func(ctx context.Context, in traversal.Learner) (*traversal.OptionsResult, error)
	ProfileFunc       func(ctx context.Context, in traversal.Learner) (*traversal.ProfileResult, error)
	TraverseFunc      func(ctx context.Context, in traversal.TraverseInput) (*traversal.TraverseResult, error)
	SetPreferenceFunc func(ctx context.Context, in traversal.SetPreferenceInput) error
	LeaderboardFunc   func(ctx context.Context, in traversal.LeaderboardInput) ([]domain.LeaderboardEntry, error)

	calls struct {
		GetState []struct {
			Ctx context.Context
			In  traversal.Learner
		}
		Options []struct {
			Ctx context.Context
			In  traversal.Learner
		}
		Profile []struct {
			Ctx context.Context
			In  traversal.Learner
		}
		Traverse []struct {
			Ctx context.Context
			In  traversal.TraverseInput
		}
		SetPreference []struct {
			Ctx context.Context
			In  traversal.SetPreferenceInput
		}
		Leaderboard []struct {
			Ctx context.Context
			In  traversal.LeaderboardInput
		}
	}
	lockGetState      sync.RWMutex
	lockOptions       sync.RWMutex
	lockProfile       sync.RWMutex
	lockTraverse      sync.RWMutex
	lockSetPreference sync.RWMutex
	lockLeaderboard   sync.RWMutex
}

func (mock *traversalServiceMock) GetState(ctx context.Context, in traversal.Learner) (*domain.Progress, error) {
	if mock.GetStateFunc == nil {
		panic("traversalServiceMock.GetStateFunc: method is nil but traversalService.GetState was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  traversal.Learner
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockGetState.Lock()
	mock.calls.GetState = append(mock.calls.GetState, callInfo)
	mock.lockGetState.Unlock()
	return mock.GetStateFunc(ctx, in)
}

func (mock *traversalServiceMock) GetStateCalls() []struct {
	Ctx context.Context
	In  traversal.Learner
} {
	mock.lockGetState.RLock()
	calls := mock.calls.GetState
	mock.lockGetState.RUnlock()
	return calls
}

func (mock *traversalServiceMock) Options(ctx context.Context, in traversal.Learner) (*traversal.OptionsResult, error) {
	if mock.OptionsFunc == nil {
		panic("traversalServiceMock.OptionsFunc: method is nil but traversalService.Options was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  traversal.Learner
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockOptions.Lock()
	mock.calls.Options = append(mock.calls.Options, callInfo)
	mock.lockOptions.Unlock()
	return mock.OptionsFunc(ctx, in)
}

func (mock *traversalServiceMock) OptionsCalls() []struct {
	Ctx context.Context
	In  traversal.Learner
} {
	mock.lockOptions.RLock()
	calls := mock.calls.Options
	mock.lockOptions.RUnlock()
	return calls
}

func (mock *traversalServiceMock) Profile(ctx context.Context, in traversal.Learner) (*traversal.ProfileResult, error) {
	if mock.ProfileFunc == nil {
		panic("traversalServiceMock.ProfileFunc: method is nil but traversalService.Profile was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  traversal.Learner
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockProfile.Lock()
	mock.calls.Profile = append(mock.calls.Profile, callInfo)
	mock.lockProfile.Unlock()
	return mock.ProfileFunc(ctx, in)
}

func (mock *traversalServiceMock) ProfileCalls() []struct {
	Ctx context.Context
	In  traversal.Learner
} {
	mock.lockProfile.RLock()
	calls := mock.calls.Profile
	mock.lockProfile.RUnlock()
	return calls
}

func (mock *traversalServiceMock) Traverse(ctx context.Context, in traversal.TraverseInput) (*traversal.TraverseResult, error) {
	if mock.TraverseFunc == nil {
		panic("traversalServiceMock.TraverseFunc: method is nil but traversalService.Traverse was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  traversal.TraverseInput
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockTraverse.Lock()
	mock.calls.Traverse = append(mock.calls.Traverse, callInfo)
	mock.lockTraverse.Unlock()
	return mock.TraverseFunc(ctx, in)
}

func (mock *traversalServiceMock) TraverseCalls() []struct {
	Ctx context.Context
	In  traversal.TraverseInput
} {
	mock.lockTraverse.RLock()
	calls := mock.calls.Traverse
	mock.lockTraverse.RUnlock()
	return calls
}

func (mock *traversalServiceMock) SetPreference(ctx context.Context, in traversal.SetPreferenceInput) error {
	if mock.SetPreferenceFunc == nil {
		panic("traversalServiceMock.SetPreferenceFunc: method is nil but traversalService.SetPreference was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  traversal.SetPreferenceInput
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockSetPreference.Lock()
	mock.calls.SetPreference = append(mock.calls.SetPreference, callInfo)
	mock.lockSetPreference.Unlock()
	return mock.SetPreferenceFunc(ctx, in)
}

func (mock *traversalServiceMock) SetPreferenceCalls() []struct {
	Ctx context.Context
	In  traversal.SetPreferenceInput
} {
	mock.lockSetPreference.RLock()
	calls := mock.calls.SetPreference
	mock.lockSetPreference.RUnlock()
	return calls
}

func (mock *traversalServiceMock) Leaderboard(ctx context.Context, in traversal.LeaderboardInput) ([]domain.LeaderboardEntry, error) {
	if mock.LeaderboardFunc == nil {
		panic("traversalServiceMock.LeaderboardFunc: method is nil but traversalService.Leaderboard was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  traversal.LeaderboardInput
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockLeaderboard.Lock()
	mock.calls.Leaderboard = append(mock.calls.Leaderboard, callInfo)
	mock.lockLeaderboard.Unlock()
	return mock.LeaderboardFunc(ctx, in)
}

func (mock *traversalServiceMock) LeaderboardCalls() []struct {
	Ctx context.Context
	In  traversal.LeaderboardInput
} {
	mock.lockLeaderboard.RLock()
	calls := mock.calls.Leaderboard
	mock.lockLeaderboard.RUnlock()
	return calls
}
