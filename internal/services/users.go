package services

import (
	"context"
	"fmt"

	"staffkeeper/internal/api"
	"staffkeeper/internal/imagex"
	"staffkeeper/internal/logging"
	"staffkeeper/internal/models"
	"staffkeeper/internal/validate"
)

// UserService defines the user-management operations of the console.
//
// Contract:
//   - List: fetch a page of users with the given filters.
//   - Get: fetch one user by id.
//   - Create: register a new user; the password is checked and the
//     attachments are prepared locally before anything is uploaded.
//   - Update: change the given fields of a user; absent fields are
//     left untouched.
//   - Delete: soft-delete a user (recoverable).
//   - Restore: undo a soft delete.
//   - Purge: remove a soft-deleted user permanently.
//
// All methods honor context cancellation.
type UserService interface {
	List(ctx context.Context, query models.ListUsersQuery) (*models.UserPage, error)
	Get(ctx context.Context, id string) (*models.UserProfile, error)
	Create(ctx context.Context, params models.CreateUserParams) (*models.UserProfile, error)
	Update(ctx context.Context, id string, params models.UpdateUserParams) (*models.UserProfile, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (*models.UserProfile, error)
	Purge(ctx context.Context, id string) error
}

type userService struct {
	client api.Client
	log    logging.Logger
}

// NewUserService binds the service to the API client.
func NewUserService(client api.Client, log logging.Logger) UserService {
	return &userService{client: client, log: log}
}

// List fetches a page of users. A non-positive page means the first
// one.
func (u *userService) List(ctx context.Context, query models.ListUsersQuery) (*models.UserPage, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	page, err := u.client.ListUsers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("user list error: %w", err)
	}
	return page, nil
}

// Get fetches a single user by id.
func (u *userService) Get(ctx context.Context, id string) (*models.UserProfile, error) {
	user, err := u.client.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user fetch error: %w", err)
	}
	return user, nil
}

// Create registers a new user. The password policy and the attachments
// are checked locally first so an oversized photo or a weak password
// never costs a round trip.
func (u *userService) Create(ctx context.Context, params models.CreateUserParams) (*models.UserProfile, error) {
	if err := validate.Password(params.Password); err != nil {
		return nil, err
	}
	photo, err := prepareAttachments(params.Photo, params.Document)
	if err != nil {
		return nil, err
	}
	params.Photo = photo

	user, err := u.client.CreateUser(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("user create error: %w", err)
	}

	u.log.Info(ctx, "user created", "id", user.ID, "username", user.Username)
	return user, nil
}

// Update changes the provided fields of a user. A new password, when
// present, goes through the same policy as on create.
func (u *userService) Update(ctx context.Context, id string, params models.UpdateUserParams) (*models.UserProfile, error) {
	if params.Password != nil {
		if err := validate.Password(*params.Password); err != nil {
			return nil, err
		}
	}
	photo, err := prepareAttachments(params.Photo, params.Document)
	if err != nil {
		return nil, err
	}
	params.Photo = photo

	user, err := u.client.UpdateUser(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("user update error: %w", err)
	}

	u.log.Info(ctx, "user updated", "id", id)
	return user, nil
}

// Delete soft-deletes a user.
func (u *userService) Delete(ctx context.Context, id string) error {
	if err := u.client.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("user delete error: %w", err)
	}
	u.log.Info(ctx, "user deleted", "id", id)
	return nil
}

// Restore undoes a soft delete.
func (u *userService) Restore(ctx context.Context, id string) (*models.UserProfile, error) {
	user, err := u.client.RestoreUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user restore error: %w", err)
	}
	u.log.Info(ctx, "user restored", "id", id)
	return user, nil
}

// Purge removes a soft-deleted user permanently.
func (u *userService) Purge(ctx context.Context, id string) error {
	if err := u.client.PurgeUser(ctx, id); err != nil {
		return fmt.Errorf("user purge error: %w", err)
	}
	u.log.Info(ctx, "user purged", "id", id)
	return nil
}

// prepareAttachments returns an upload-ready photo and checks the
// document. Both attachments are optional and may be nil.
func prepareAttachments(photo, document *models.FileAttachment) (*models.FileAttachment, error) {
	prepared, err := imagex.PreparePhoto(photo)
	if err != nil {
		return nil, fmt.Errorf("photo: %w", err)
	}
	if err := imagex.CheckDocument(document); err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	return prepared, nil
}
