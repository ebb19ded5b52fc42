package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/zjurelinac/East/src/apierror"
	"github.com/zjurelinac/East/src/apimodel"
	"github.com/zjurelinac/East/src/auth"
	"github.com/zjurelinac/East/src/model"
	"github.com/zjurelinac/East/src/repository"
)

type userStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

// RegisterHandler creates a new account and returns its profile view.
func RegisterHandler(store userStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload model.RegisterPayload
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&payload); err != nil {
			logger.WithError(err).Warn("invalid register payload")
			apierror.Write(w, apierror.NewBadRequestError("invalid payload"))
			return
		}

		payload.Username = strings.TrimSpace(payload.Username)
		payload.Email = strings.TrimSpace(payload.Email)
		if payload.Username == "" || payload.Email == "" || payload.Password == "" {
			apierror.Write(w, apierror.NewBadRequestError("username, email and password are required"))
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.WithError(err).Error("failed to hash password")
			apierror.Write(w, err)
			return
		}

		user := model.User{
			Username: payload.Username,
			Email:    payload.Email,
			Password: string(hashedPassword),
			Bio:      strings.TrimSpace(payload.Bio),
			Active:   true,
			APIToken: uuid.NewString(),
		}

		if err := store.Create(r.Context(), &user); err != nil {
			logger.WithError(err).Warn("failed to create user")
			apierror.Write(w, err)
			return
		}

		writeDict(w, http.StatusCreated, &user, "profile")
	}
}

// LoginHandler checks credentials and returns the account's API token.
func LoginHandler(store userStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload model.LoginPayload
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&payload); err != nil {
			logger.WithError(err).Warn("invalid login payload")
			apierror.Write(w, apierror.NewBadRequestError("invalid payload"))
			return
		}

		user, err := store.FindByUsername(r.Context(), payload.Username)
		if err != nil {
			logger.WithError(err).Error("failed to look up user for login")
			apierror.Write(w, err)
			return
		}
		if user == nil || !user.Active {
			apierror.Write(w, apierror.NewUnauthorizedError("invalid credentials"))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
			logger.WithField("user_id", user.ID).Warn("password mismatch during login")
			apierror.Write(w, apierror.NewUnauthorizedError("invalid credentials"))
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"api_token": user.APIToken})
	}
}

// GetUserHandler returns one user serialized through the requested view
// (profile by default).
func GetUserHandler(store userStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			apierror.Write(w, apierror.NewBadRequestError("invalid user id"))
			return
		}

		user, err := store.FindByID(r.Context(), uint(id))
		if err != nil {
			apierror.Write(w, err)
			return
		}

		view := r.URL.Query().Get("view")
		if view == "" {
			view = "profile"
		}

		writeDict(w, http.StatusOK, user, view)
	}
}

// ChangePasswordHandler replaces the authenticated user's password.
func ChangePasswordHandler(store userStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			logger.Warn("user not found in context during password change")
			apierror.Write(w, apierror.NewUnauthorizedError("not logged in"))
			return
		}

		var payload model.ChangePasswordPayload
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&payload); err != nil {
			logger.WithError(err).Warn("invalid change password payload")
			apierror.Write(w, apierror.NewBadRequestError("invalid payload"))
			return
		}

		if payload.CurrentPassword == "" || payload.NewPassword == "" {
			apierror.Write(w, apierror.NewBadRequestError("current and new passwords are required"))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.CurrentPassword)); err != nil {
			logger.WithField("user_id", user.ID).Warn("current password mismatch")
			apierror.Write(w, apierror.NewUnauthorizedError("invalid current password"))
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			logger.WithError(err).Error("failed to hash new password")
			apierror.Write(w, err)
			return
		}

		if err := store.UpdatePassword(r.Context(), user.ID, string(hashedPassword)); err != nil {
			logger.WithError(err).Error("failed to update user password")
			apierror.Write(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
	}
}

// DefaultRegisterHandler wires the handler to the production repository implementation.
func DefaultRegisterHandler() http.HandlerFunc {
	return RegisterHandler(repository.NewUserRepository())
}

// DefaultLoginHandler wires the handler to the production repository implementation.
func DefaultLoginHandler() http.HandlerFunc {
	return LoginHandler(repository.NewUserRepository())
}

// DefaultGetUserHandler wires the handler to the production repository implementation.
func DefaultGetUserHandler() http.HandlerFunc {
	return GetUserHandler(repository.NewUserRepository())
}

// DefaultChangePasswordHandler wires the handler to the production repository implementation.
func DefaultChangePasswordHandler() http.HandlerFunc {
	return ChangePasswordHandler(repository.NewUserRepository())
}

// writeDict serializes instance through apimodel.ToJSONDict and writes it
// as the response body. Serialization failures (an undeclared view, for
// one) surface as bad requests.
func writeDict(w http.ResponseWriter, status int, instance any, view string) {
	dict, err := apimodel.ToJSONDict(instance, view)
	if err != nil {
		logger.WithError(err).Warn("failed to serialize response")
		apierror.Write(w, apierror.NewBadRequestError(err.Error()))
		return
	}
	writeJSON(w, status, dict)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}
