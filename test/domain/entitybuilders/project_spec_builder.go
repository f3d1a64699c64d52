//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/pushfleet/pushfleet/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// ProjectSpecBuilder helps create test project specs with a fluent interface.
type ProjectSpecBuilder struct {
	*testkit.BaseBuilder
	path             string
	postDelaySeconds int
}

// NewProjectSpecBuilder creates a new project spec builder with sensible defaults.
func NewProjectSpecBuilder() *ProjectSpecBuilder {
	return &ProjectSpecBuilder{
		BaseBuilder:      testkit.NewBaseBuilder(),
		path:             "/tmp/test-project",
		postDelaySeconds: 0,
	}
}

// WithPath sets the project path.
func (b *ProjectSpecBuilder) WithPath(path string) *ProjectSpecBuilder {
	b.path = path
	return b
}

// WithPostDelaySeconds sets the post-project delay.
func (b *ProjectSpecBuilder) WithPostDelaySeconds(seconds int) *ProjectSpecBuilder {
	b.postDelaySeconds = seconds
	return b
}

// Build creates the project spec (satisfies testkit.Builder interface).
func (b *ProjectSpecBuilder) Build() interface{} {
	return b.BuildProjectSpec()
}

// BuildProjectSpec creates the project spec with a concrete return type.
func (b *ProjectSpecBuilder) BuildProjectSpec() entities.ProjectSpec {
	return entities.ProjectSpec{
		Path:             b.path,
		PostDelaySeconds: b.postDelaySeconds,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ProjectSpecBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.path = "/tmp/test-project"
	b.postDelaySeconds = 0
	return b
}

// Clone creates a deep copy of the ProjectSpecBuilder.
func (b *ProjectSpecBuilder) Clone() testkit.Builder {
	return &ProjectSpecBuilder{
		BaseBuilder:      b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		path:             b.path,
		postDelaySeconds: b.postDelaySeconds,
	}
}
