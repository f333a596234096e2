package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/integrations/userservice"
)

// Users is an in-memory user service that only knows car ownership.
type Users struct {
	mu   sync.Mutex
	cars map[uuid.UUID]uuid.UUID // car -> owner

	Err error
}

func NewUsers() *Users {
	return &Users{cars: make(map[uuid.UUID]uuid.UUID)}
}

// AddCar registers a car of userID and returns its ID.
func (u *Users) AddCar(userID uuid.UUID) uuid.UUID {
	u.mu.Lock()
	defer u.mu.Unlock()
	id := uuid.New()
	u.cars[id] = userID
	return id
}

func (u *Users) OwnsCar(_ context.Context, userID, carID uuid.UUID) (bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return false, u.Err
	}
	owner, ok := u.cars[carID]
	if !ok {
		return false, userservice.ErrCarNotFound
	}
	return owner == userID, nil
}
