package users

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"groupme/internal/auth"
	"groupme/internal/core"
	"groupme/internal/persistence"
)

type Repository struct {
	Logger *slog.Logger
	DB     core.DB
}

func (r *Repository) Init(_ context.Context) error {
	r.Logger = r.Logger.With("component", "users.Repository")
	return nil
}

// Create registers a user with a hashed password and default settings pointing at the first theme.
func (r *Repository) Create(ctx context.Context, email, password, name string) (*core.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &core.User{
		Email:    email,
		Name:     name,
		Password: &core.Password{Hash: hash},
	}

	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var theme core.Theme
		err := tx.Model(&core.Theme{}).Order("id").First(&theme).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			theme = core.DefaultTheme()
			err = tx.Model(&core.Theme{}).Create(&theme).Error
		}
		if err != nil {
			return err
		}

		user.Settings = &core.Settings{
			ThemeID:       theme.ID,
			Notifications: true,
			Privacy:       "none",
			Accessibility: "none",
		}

		return tx.Model(&core.User{}).Create(user).Error
	})

	err = persistence.Classify(err)
	if errors.Is(err, persistence.ErrDuplicate) {
		return nil, core.ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	user.Password = nil
	return user, nil
}

func (r *Repository) Get(ctx context.Context, id uint) (*core.User, error) {
	return first(r.DB.Model(&core.User{}).WithContext(ctx).Where("id = ?", id))
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*core.User, error) {
	return first(r.DB.Model(&core.User{}).WithContext(ctx).Where("email = ?", email))
}

// Profile returns the user with their posts and comments, newest first.
func (r *Repository) Profile(ctx context.Context, id uint) (*core.User, error) {
	newestFirst := func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").Order("id DESC")
	}

	user, err := first(r.DB.Model(&core.User{}).
		WithContext(ctx).
		Preload("Posts", newestFirst).
		Preload("Comments", newestFirst).
		Where("id = ?", id))
	if err != nil {
		return nil, err
	}

	user.Email = ""
	return user, nil
}

func (r *Repository) DeleteByEmail(ctx context.Context, email string) error {
	result := r.DB.Model(&core.User{}).WithContext(ctx).Where("email = ?", email).Delete(&core.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return core.ErrUserNotFound
	}
	return nil
}

// VerifyLogin returns the user when the password matches. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (r *Repository) VerifyLogin(ctx context.Context, email, password string) (*core.User, error) {
	user, err := r.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return nil, core.ErrInvalidCredentials
		}
		return nil, err
	}

	var stored core.Password
	err = r.DB.Model(&core.Password{}).WithContext(ctx).Where("user_id = ?", user.ID).First(&stored).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.ComparePassword(stored.Hash, password) {
		return nil, core.ErrInvalidCredentials
	}
	return user, nil
}

// Settings returns the user with settings and theme, plus every theme the user can pick.
func (r *Repository) Settings(ctx context.Context, id uint) (*core.User, []core.Theme, error) {
	user, err := first(r.DB.Model(&core.User{}).
		WithContext(ctx).
		Preload("Settings.Theme").
		Where("id = ?", id))
	if err != nil {
		return nil, nil, err
	}

	themes := []core.Theme{}
	err = r.DB.Model(&core.Theme{}).WithContext(ctx).Select("id", "name").Order("id").Find(&themes).Error
	if err != nil {
		return nil, nil, err
	}

	return user, themes, nil
}

func (r *Repository) Update(ctx context.Context, id uint, update core.UserUpdate) (*core.User, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var themes int64
		if err := tx.Model(&core.Theme{}).Where("id = ?", update.ThemeID).Count(&themes).Error; err != nil {
			return err
		}
		if themes == 0 {
			return core.ErrThemeNotFound
		}

		result := tx.Model(&core.User{}).Where("id = ?", id).Update("email", update.Email)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return core.ErrUserNotFound
		}

		return tx.Model(&core.Settings{}).
			Where("user_id = ?", id).
			Updates(map[string]any{
				"theme_id":      update.ThemeID,
				"notifications": update.Notifications,
				"privacy":       update.Privacy,
				"accessibility": update.Accessibility,
			}).Error
	})

	err = persistence.Classify(err)
	if errors.Is(err, persistence.ErrDuplicate) {
		return nil, core.ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	user, _, err := r.Settings(ctx, id)
	return user, err
}

func first(query *gorm.DB) (*core.User, error) {
	var user core.User
	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
