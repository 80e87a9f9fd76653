package repository

import (
	"context"

	"github.com/pitchdesk/pitchdesk/internal/application/port"
	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
)

// ProjectFinalizer implements port.ProjectFinalizer on top of the project
// repository. It participates in the caller's transaction via the context.
type ProjectFinalizer struct {
	projects port.ProjectRepository
}

// NewProjectFinalizer creates a new project finalizer
func NewProjectFinalizer(projects port.ProjectRepository) *ProjectFinalizer {
	return &ProjectFinalizer{projects: projects}
}

// CompleteProject marks the project completed. Idempotent.
func (f *ProjectFinalizer) CompleteProject(ctx context.Context, project *entity.Project) error {
	return f.projects.MarkCompleted(ctx, project.ID)
}

// Verify interface compliance
var _ port.ProjectFinalizer = (*ProjectFinalizer)(nil)
