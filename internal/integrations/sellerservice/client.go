package sellerservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с SellerService (каталог услуг, провайдеры, мастера)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента SellerService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetService получает услугу по ID
func (c *Client) GetService(ctx context.Context, serviceID uuid.UUID) (*domain.Service, error) {
	var service Service
	path := fmt.Sprintf("/internal/services/%s", serviceID)
	if err := c.get(ctx, path, ErrServiceNotFound, &service); err != nil {
		return nil, err
	}
	return service.ToDomain(), nil
}

// GetProvider получает провайдера по ID
func (c *Client) GetProvider(ctx context.Context, providerID uuid.UUID) (*domain.Provider, error) {
	var provider Provider
	path := fmt.Sprintf("/internal/providers/%s", providerID)
	if err := c.get(ctx, path, ErrProviderNotFound, &provider); err != nil {
		return nil, err
	}
	return provider.ToDomain(), nil
}

// ListEligibleStaff получает мастеров провайдера, которые могут выполнять услуги категории
// Порядок мастеров сохраняется таким, каким его вернул SellerService
func (c *Client) ListEligibleStaff(ctx context.Context, providerID uuid.UUID, category string) ([]*domain.Staff, error) {
	var resp staffListResponse
	path := fmt.Sprintf("/internal/providers/%s/staff?category=%s", providerID, url.QueryEscape(category))
	if err := c.get(ctx, path, ErrProviderNotFound, &resp); err != nil {
		return nil, err
	}

	staff := make([]*domain.Staff, 0, len(resp.Staff))
	for i := range resp.Staff {
		s := resp.Staff[i].ToDomain()
		// SellerService может вернуть лишних, фильтруем по тем же правилам
		if !s.IsEligibleFor(category) {
			continue
		}
		staff = append(staff, s)
	}
	return staff, nil
}

// GetStaff получает мастера по ID
func (c *Client) GetStaff(ctx context.Context, staffID uuid.UUID) (*domain.Staff, error) {
	var staff Staff
	path := fmt.Sprintf("/internal/staff/%s", staffID)
	if err := c.get(ctx, path, ErrStaffNotFound, &staff); err != nil {
		return nil, err
	}
	return staff.ToDomain(), nil
}

// IsProviderOwner проверяет, что пользователь является владельцем провайдера
func (c *Client) IsProviderOwner(ctx context.Context, userID, providerID uuid.UUID) (bool, error) {
	provider, err := c.GetProvider(ctx, providerID)
	if err != nil {
		return false, err
	}
	return provider.IsOwner(userID), nil
}

func (c *Client) get(ctx context.Context, path string, notFound error, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("SellerService request failed: path=%s, error=%v", path, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
