package traversal

import (
	"sync"

	"github.com/heartmarshall/pathgraph/internal/domain"
)

var _ projectResolver = &projectResolverMock{}

type projectResolverMock struct {
	ProjectBySlugFunc func(slug string) (domain.Project, bool)

	calls struct {
		ProjectBySlug []struct {
			Slug string
		}
	}
	lockProjectBySlug sync.RWMutex
}

func (mock *projectResolverMock) ProjectBySlug(slug string) (domain.Project, bool) {
	if mock.ProjectBySlugFunc == nil {
		panic("projectResolverMock.ProjectBySlugFunc: method is nil but projectResolver.ProjectBySlug was just called")
	}
	callInfo := struct {
		Slug string
	}{
		Slug: slug,
	}
	mock.lockProjectBySlug.Lock()
	mock.calls.ProjectBySlug = append(mock.calls.ProjectBySlug, callInfo)
	mock.lockProjectBySlug.Unlock()
	return mock.ProjectBySlugFunc(slug)
}

func (mock *projectResolverMock) ProjectBySlugCalls() []struct {
	Slug string
} {
	mock.lockProjectBySlug.RLock()
	calls := mock.calls.ProjectBySlug
	mock.lockProjectBySlug.RUnlock()
	return calls
}
