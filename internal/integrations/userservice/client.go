package userservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetUserCar получает автомобиль пользователя
func (c *Client) GetUserCar(ctx context.Context, userID, carID uuid.UUID) (*Car, error) {
	url := fmt.Sprintf("%s/internal/users/%s/cars/%s", c.baseURL, userID, carID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrCarNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var car Car
	if err := json.NewDecoder(resp.Body).Decode(&car); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return &car, nil
}

// OwnsCar проверяет, что автомобиль принадлежит пользователю
// ErrCarNotFound возвращается, если автомобиля нет вовсе
func (c *Client) OwnsCar(ctx context.Context, userID, carID uuid.UUID) (bool, error) {
	car, err := c.GetUserCar(ctx, userID, carID)
	if err != nil {
		return false, err
	}

	if car.UserID != userID {
		c.log.Warn("Car id=%s belongs to user=%s, not to user=%s", carID, car.UserID, userID)
		return false, nil
	}
	return true, nil
}
