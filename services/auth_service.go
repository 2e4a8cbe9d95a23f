package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cloudnest/models"
	"cloudnest/storage"
	"cloudnest/utils"
)

// AuthService handles account creation and login. Signup provisions the
// user's root folder exactly once, remote side first.
type AuthService struct {
	store  AssetStore
	remote storage.RemoteStorage
}

func NewAuthService(store AssetStore, remote storage.RemoteStorage) *AuthService {
	return &AuthService{store: store, remote: remote}
}

// Signup creates the account and its root folder. The root folder row is
// named after the user id with an empty location, which makes the id the
// path root of everything the user will ever own.
func (as *AuthService) Signup(ctx context.Context, username, password string) (*models.User, string, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Password:  hash,
		CreatedAt: time.Now().UTC(),
	}
	if err := as.store.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	rootPath := user.RootPath()
	if err := as.remote.CreateFolder(ctx, rootPath); err != nil {
		logrus.WithError(err).WithField("user_id", rootPath).Error("root folder provisioning failed on remote")
		return nil, "", remoteErr("provision root folder", err)
	}

	root := &models.Folder{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		Name:      rootPath,
		Location:  "",
		CreatedAt: user.CreatedAt,
	}
	if err := as.store.CreateFolder(ctx, root); err != nil {
		logrus.WithField("user_id", rootPath).Error("root folder row failed after remote create")
		return nil, "", err
	}

	token, err := utils.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies the credentials and issues an access token. A missing
// user and a wrong password are indistinguishable to the caller.
func (as *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := as.store.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrUnauthorized
		}
		return nil, "", err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, "", ErrUnauthorized
	}

	token, err := utils.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// UserByID loads the account behind a validated token.
func (as *AuthService) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return as.store.UserByID(ctx, id)
}
