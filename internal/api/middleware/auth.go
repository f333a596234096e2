package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	// HeaderUserID ID пользователя, проставляется шлюзом после аутентификации
	HeaderUserID = "X-User-ID"
	// HeaderUserRole роль пользователя; admin дает права администратора
	HeaderUserRole = "X-User-Role"

	roleAdmin = "admin"

	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidUserID = "некорректный ID пользователя"
)

type ctxKey int

const actorKey ctxKey = iota

// Auth читает пользователя из заголовков и кладет domain.Actor в контекст
// Запросы без X-User-ID отклоняются с 401
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		actor := domain.Actor{
			UserID:  userID,
			IsAdmin: strings.EqualFold(r.Header.Get(HeaderUserRole), roleAdmin),
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// WithActor возвращает контекст с пользователем
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor достает пользователя, положенного Auth
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
