package identityservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/WatReservationService/internal/domain"
)

// Client клиент для работы с сервисом идентификации (храмы и пользователи)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса идентификации
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetTemple получает храм по ID
func (c *Client) GetTemple(ctx context.Context, templeID string) (*domain.Temple, error) {
	endpoint := fmt.Sprintf("%s/internal/wats/%s", c.baseURL, url.PathEscape(templeID))

	var temple Temple
	if err := c.get(ctx, endpoint, ErrTempleNotFound, &temple); err != nil {
		return nil, err
	}

	if temple.MaxWorkload <= 0 {
		return nil, fmt.Errorf("%w: wat %s has non-positive max_workload %d", ErrInvalidResponse, templeID, temple.MaxWorkload)
	}
	if temple.ID == "" {
		temple.ID = templeID
	}

	return temple.ToDomain(), nil
}

// GetUser получает пользователя по ID
func (c *Client) GetUser(ctx context.Context, userID string) (*domain.Person, error) {
	endpoint := fmt.Sprintf("%s/internal/users/%s", c.baseURL, url.PathEscape(userID))

	var user User
	if err := c.get(ctx, endpoint, ErrUserNotFound, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		user.ID = userID
	}

	return user.ToDomain(), nil
}

func (c *Client) get(ctx context.Context, endpoint string, notFound error, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Identity service request failed: url=%s, error=%v", endpoint, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		return notFound
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
