package profileservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с ProfileService (пользователи и профили юристов)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ProfileService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetUser получает пользователя по каноническому идентификатору
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	var user User
	if err := c.getJSON(ctx, fmt.Sprintf("%s/internal/users/%s", c.baseURL, userID), ErrUserNotFound, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetLawyerProfile получает профиль юриста по идентификатору профиля
func (c *Client) GetLawyerProfile(ctx context.Context, profileID string) (*LawyerProfile, error) {
	var profile LawyerProfile
	if err := c.getJSON(ctx, fmt.Sprintf("%s/internal/lawyers/%s", c.baseURL, profileID), ErrLawyerNotFound, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetLawyerProfileByUserID получает профиль юриста по каноническому user id
func (c *Client) GetLawyerProfileByUserID(ctx context.Context, userID string) (*LawyerProfile, error) {
	var profile LawyerProfile
	if err := c.getJSON(ctx, fmt.Sprintf("%s/internal/lawyers/by-user/%s", c.baseURL, userID), ErrLawyerNotFound, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ResolveLawyerUserID приводит идентификатор юриста к каноническому user id.
// Принимает либо сам user id, либо id профиля юриста (слабая обратная ссылка).
// Если ни то, ни другое не находится - возвращает ErrLawyerNotFound, без
// тихого фоллбека на исходное значение.
func (c *Client) ResolveLawyerUserID(ctx context.Context, idOrProfileID string) (string, error) {
	user, err := c.GetUser(ctx, idOrProfileID)
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return "", err
	}

	profile, err := c.GetLawyerProfile(ctx, idOrProfileID)
	if err == nil {
		return profile.UserID, nil
	}
	if !errors.Is(err, ErrLawyerNotFound) {
		return "", err
	}

	return "", ErrLawyerNotFound
}

// GetConsultationFeeWithGracefulDegradation получает тариф юриста с graceful degradation.
// При недоступности ProfileService возвращает ErrServiceDegraded, что позволяет
// сервису использовать дефолтный тариф из конфигурации.
func (c *Client) GetConsultationFeeWithGracefulDegradation(ctx context.Context, lawyerUserID string) (*int64, error) {
	profile, err := c.GetLawyerProfileByUserID(ctx, lawyerUserID)
	if err != nil {
		// Отсутствие профиля - бизнес-ошибка, пробрасываем дальше
		if errors.Is(err, ErrLawyerNotFound) {
			c.log.Info("No lawyer profile found for user_id=%s", lawyerUserID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга)
		// применяем graceful degradation - вызывающий подставит дефолтный тариф
		c.log.Error("ProfileService unavailable, applying graceful degradation for user_id=%s: %v", lawyerUserID, err)
		return nil, fmt.Errorf("%w: user_id=%s, error=%v", ErrServiceDegraded, lawyerUserID, err)
	}

	return profile.FeePerConsultation, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
func (c *Client) getJSON(ctx context.Context, url string, notFoundErr error, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
