package themes

import (
	"context"

	"groupme/internal/core"
)

// PopulateRunner adds the built-in themes and exits.
type PopulateRunner struct {
	Themes core.ThemeRepository
}

func (r *PopulateRunner) Run(ctx context.Context) error {
	return r.Themes.Populate(ctx)
}
