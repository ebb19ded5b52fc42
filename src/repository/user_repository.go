package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/zjurelinac/East/src/apierror"
	"github.com/zjurelinac/East/src/apimodel"
	"github.com/zjurelinac/East/src/database"
	"github.com/zjurelinac/East/src/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository() *UserRepository {
	logger.WithField("component", "UserRepository").
		Info("Creating new UserRepository with MainDB")

	return &UserRepository{
		db: database.MainDB,
	}
}

// Create inserts the user, translating constraint failures (duplicate
// username or email, mainly) into API errors.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	logger.WithFields(map[string]interface{}{
		"component": "UserRepository",
		"username":  user.Username,
	}).Info("Creating user")

	return apimodel.Create(ctx, r.db, user)
}

// FindByID returns the user or a NotFoundError.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Preload("Articles").
		First(&u, "id = ?", id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NewNotFoundError("user")
	}
	if err != nil {
		return nil, apimodel.Translate(model.User{}, err)
	}

	return &u, nil
}

// FindByUsername returns the user, or (nil, nil) when no such user exists.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apimodel.Translate(model.User{}, err)
	}

	return &u, nil
}

// FindByAPIToken returns the user owning the token, or (nil, nil) when the
// token matches nobody.
func (r *UserRepository) FindByAPIToken(ctx context.Context, token string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("api_token = ?", token).
		First(&u).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apimodel.Translate(model.User{}, err)
	}

	return &u, nil
}

// UpdatePassword stores a new password hash for the user.
func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	logger.WithFields(map[string]interface{}{
		"component": "UserRepository",
		"user_id":   id,
	}).Info("Updating user password")

	return apimodel.WrapErrors(model.User{}, func() error {
		return r.db.WithContext(ctx).
			Model(&model.User{}).
			Where("id = ?", id).
			Update("password", passwordHash).Error
	})
}

// Count returns the total number of users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Count(&count).Error
	if err != nil {
		return 0, apimodel.Translate(model.User{}, err)
	}
	return count, nil
}
