package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/macleann/favameal/configs"
	"github.com/macleann/favameal/pkg/model"
	"github.com/macleann/favameal/pkg/repository"
)

type UserKey struct{}

type userStore interface {
	GetUserByUUID(ctx context.Context, uuid uuid.UUID) (*model.User, error)
}

type Manager struct {
	conf   *configs.Config
	users  userStore
	logger *zap.Logger
}

func NewAuthManager(conf *configs.Config, users userStore, logger *zap.Logger) *Manager {
	return &Manager{conf: conf, users: users, logger: logger}
}

// Middleware authenticates the request's bearer token and resolves the viewer
// user into the request context. Handlers read the viewer once and pass its
// id explicitly into every store and annotation call.
func (a *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		keyFunc := func(token *jwt.Token) (interface{}, error) {
			_, ok := token.Method.(*jwt.SigningMethodHMAC)
			if !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}

			return []byte(a.conf.Auth.SecretKey), nil
		}

		accessToken, err := a.extractTokenFromHeader(request.Header)
		if err != nil {
			unauthorized(writer, err.Error())

			return
		}

		token, err := jwt.ParseWithClaims(*accessToken, jwt.MapClaims{}, keyFunc)
		if err != nil {
			a.logger.Error("error parsing token", zap.Error(err))
			unauthorized(writer, "error parsing token")

			return
		}

		claims, found := token.Claims.(jwt.MapClaims)
		if !found || !token.Valid {
			a.logger.Error("invalid token", zap.Any("claims", claims))
			unauthorized(writer, "invalid token")

			return
		}

		subject, found := claims["sub"].(string)
		if !found {
			a.logger.Error("unable to get user id from token", zap.Any("claims", claims))
			unauthorized(writer, "unable to get user id from token")

			return
		}

		userUUID, err := uuid.Parse(subject)
		if err != nil {
			unauthorized(writer, "user id in token is not a uuid")

			return
		}

		user, err := a.users.GetUserByUUID(request.Context(), userUUID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				unauthorized(writer, "user not found")

				return
			}

			a.logger.Error("error authenticating user", zap.Error(err))
			writer.Header().Set("Content-Type", "application/json")
			writer.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(writer).Encode(map[string]string{"reason": "error authenticating user"})

			return
		}

		ctx := context.WithValue(request.Context(), UserKey{}, user)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// ViewerFromContext returns the authenticated user placed in the context by
// Middleware.
func ViewerFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(UserKey{}).(*model.User)

	return user, ok
}

func (a *Manager) extractTokenFromHeader(header http.Header) (*string, error) {
	authorization := header.Get("Authorization")
	if len(authorization) == 0 {
		a.logger.Error("No authorization header found")

		return nil, fmt.Errorf("authorization header not found")
	}

	prefix := "Bearer "
	if !strings.HasPrefix(authorization, prefix) {
		prefix = "bearer "
	}

	token, found := strings.CutPrefix(authorization, prefix)
	if !found {
		return nil, fmt.Errorf("authorization format must be Bearer {token}")
	}

	return &token, nil
}

func unauthorized(writer http.ResponseWriter, reason string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(writer).Encode(map[string]string{"reason": reason})
}
