package userservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

func TestOwnsCar(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	carID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/users/" + owner.String() + "/cars/" + carID.String():
			_ = json.NewEncoder(w).Encode(Car{ID: carID, UserID: owner, Brand: "Lada"})
		case "/internal/users/" + stranger.String() + "/cars/" + carID.String():
			// UserService отдает машину, но владелец другой
			_ = json.NewEncoder(w).Encode(Car{ID: carID, UserID: owner})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, logger.NewNop())
	ctx := context.Background()

	ok, err := c.OwnsCar(ctx, owner, carID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.OwnsCar(ctx, stranger, carID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = c.OwnsCar(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, ErrCarNotFound)
}
