package traversal

import (
	"context"
	"sync"
	"time"
)

var _ kvCache = &kvCacheMock{}

type kvCacheMock struct {
	GetFunc    func(ctx context.Context, key string) ([]byte, bool, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
	ExistsFunc func(ctx context.Context, key string) (bool, error)
	SetNXFunc  func(ctx context.Context, key string, ttl time.Duration) (bool, error)

	calls struct {
		Get []struct {
			Ctx context.Context
			Key string
		}
		Set []struct {
			Ctx   context.Context
			Key   string
			Value []byte
			Ttl   time.Duration
		}
		Delete []struct {
			Ctx context.Context
			Key string
		}
		Exists []struct {
			Ctx context.Context
			Key string
		}
		SetNX []struct {
			Ctx context.Context
			Key string
			Ttl time.Duration
		}
	}
	lockGet    sync.RWMutex
	lockSet    sync.RWMutex
	lockDelete sync.RWMutex
	lockExists sync.RWMutex
	lockSetNX  sync.RWMutex
}

func (mock *kvCacheMock) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if mock.GetFunc == nil {
		panic("kvCacheMock.GetFunc: method is nil but kvCache.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{
		Ctx: ctx,
		Key: key,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, key)
}

func (mock *kvCacheMock) GetCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *kvCacheMock) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if mock.SetFunc == nil {
		panic("kvCacheMock.SetFunc: method is nil but kvCache.Set was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Key   string
		Value []byte
		Ttl   time.Duration
	}{
		Ctx:   ctx,
		Key:   key,
		Value: value,
		Ttl:   ttl,
	}
	mock.lockSet.Lock()
	mock.calls.Set = append(mock.calls.Set, callInfo)
	mock.lockSet.Unlock()
	return mock.SetFunc(ctx, key, value, ttl)
}

func (mock *kvCacheMock) SetCalls() []struct {
	Ctx   context.Context
	Key   string
	Value []byte
	Ttl   time.Duration
} {
	mock.lockSet.RLock()
	calls := mock.calls.Set
	mock.lockSet.RUnlock()
	return calls
}

func (mock *kvCacheMock) Delete(ctx context.Context, key string) error {
	if mock.DeleteFunc == nil {
		panic("kvCacheMock.DeleteFunc: method is nil but kvCache.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{
		Ctx: ctx,
		Key: key,
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, key)
}

func (mock *kvCacheMock) DeleteCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *kvCacheMock) Exists(ctx context.Context, key string) (bool, error) {
	if mock.ExistsFunc == nil {
		panic("kvCacheMock.ExistsFunc: method is nil but kvCache.Exists was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{
		Ctx: ctx,
		Key: key,
	}
	mock.lockExists.Lock()
	mock.calls.Exists = append(mock.calls.Exists, callInfo)
	mock.lockExists.Unlock()
	return mock.ExistsFunc(ctx, key)
}

func (mock *kvCacheMock) ExistsCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockExists.RLock()
	calls := mock.calls.Exists
	mock.lockExists.RUnlock()
	return calls
}

func (mock *kvCacheMock) SetNX(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if mock.SetNXFunc == nil {
		panic("kvCacheMock.SetNXFunc: method is nil but kvCache.SetNX was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
		Ttl time.Duration
	}{
		Ctx: ctx,
		Key: key,
		Ttl: ttl,
	}
	mock.lockSetNX.Lock()
	mock.calls.SetNX = append(mock.calls.SetNX, callInfo)
	mock.lockSetNX.Unlock()
	return mock.SetNXFunc(ctx, key, ttl)
}

func (mock *kvCacheMock) SetNXCalls() []struct {
	Ctx context.Context
	Key string
	Ttl time.Duration
} {
	mock.lockSetNX.RLock()
	calls := mock.calls.SetNX
	mock.lockSetNX.RUnlock()
	return calls
}
