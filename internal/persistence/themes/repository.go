package themes

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"groupme/internal/core"
	"groupme/internal/persistence"
)

type Repository struct {
	Logger *slog.Logger
	DB     core.DB
}

func (r *Repository) Init(_ context.Context) error {
	r.Logger = r.Logger.With("component", "themes.Repository")
	return nil
}

// Default returns the default theme, creating it on first use.
func (r *Repository) Default(ctx context.Context) (*core.Theme, error) {
	theme, err := r.byName(ctx, core.DefaultThemeName)
	if err == nil {
		return theme, nil
	}
	if !errors.Is(err, core.ErrThemeNotFound) {
		return nil, err
	}

	created := core.DefaultTheme()
	err = persistence.Classify(r.DB.Model(&core.Theme{}).WithContext(ctx).Create(&created).Error)
	if errors.Is(err, persistence.ErrDuplicate) {
		// Created concurrently.
		return r.byName(ctx, core.DefaultThemeName)
	}
	if err != nil {
		return nil, err
	}

	r.Logger.Info("Default theme created", "id", created.ID)
	return &created, nil
}

// ForViewer returns the theme selected in the viewer's settings. Anonymous viewers and users without
// settings get the default theme.
func (r *Repository) ForViewer(ctx context.Context, viewer core.Viewer) (*core.Theme, error) {
	if !viewer.IsAuthenticated() {
		return r.Default(ctx)
	}

	var settings core.Settings
	err := r.DB.Model(&core.Settings{}).
		WithContext(ctx).
		Preload("Theme").
		Where("user_id = ?", viewer.UserID).
		First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.Default(ctx)
		}
		return nil, err
	}
	if settings.Theme == nil {
		return r.Default(ctx)
	}

	return settings.Theme, nil
}

// Populate adds the default and builtin themes that are missing. Existing rows are left untouched.
func (r *Repository) Populate(ctx context.Context) error {
	if _, err := r.Default(ctx); err != nil {
		return err
	}

	themes := core.BuiltinThemes()
	result := r.DB.Model(&core.Theme{}).
		WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&themes)
	if result.Error != nil {
		return result.Error
	}

	r.Logger.Info("Themes populated", "created", result.RowsAffected)
	return nil
}

func (r *Repository) List(ctx context.Context) ([]core.Theme, error) {
	themes := []core.Theme{}
	err := r.DB.Model(&core.Theme{}).WithContext(ctx).Order("id").Find(&themes).Error
	return themes, err
}

func (r *Repository) byName(ctx context.Context, name string) (*core.Theme, error) {
	var theme core.Theme
	err := r.DB.Model(&core.Theme{}).WithContext(ctx).Where("name = ?", name).First(&theme).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.ErrThemeNotFound
		}
		return nil, err
	}
	return &theme, nil
}
