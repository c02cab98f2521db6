// Package client реализует контроллер страницы кружков: загрузку и отрисовку справочника,
// запись через форму, выписку участника и временные статусные сообщения.
//
// Пример:
//
//	api := client.NewAPIClient("http://localhost:8080", http.DefaultClient)
//	c, err := client.New(api)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//	_ = c.LoadActivities(ctx)
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"activity-signup/internal/model"
)

// APIError описывает ответ сервера с не-2xx статусом.
// Detail пуст, если тело не содержит строкового поля detail.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server responded %d", e.Status)
	}
	return fmt.Sprintf("server responded %d: %s", e.Status, e.Detail)
}

// APIClient ходит в три эндпоинта сервиса кружков. Таймаутов сам не ставит:
// отмена и дедлайны задаются через ctx или переданный http.Client.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient создаёт клиента для сервера baseURL (со схемой, без завершающего слэша).
func NewAPIClient(baseURL string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Activities читает справочник кружков: GET /activities.
func (c *APIClient) Activities(ctx context.Context) (model.Directory, error) {
	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/activities")
	if err != nil {
		return model.Directory{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.Directory{}, decodeAPIError(resp)
	}

	var dir model.Directory
	if err := json.NewDecoder(resp.Body).Decode(&dir); err != nil {
		return model.Directory{}, fmt.Errorf("decode activities: %w", err)
	}
	return dir, nil
}

// Signup записывает email на кружок: POST /activities/{name}/signup?email={email}.
// Возвращает сообщение сервера.
func (c *APIClient) Signup(ctx context.Context, activity, email string) (string, error) {
	target := fmt.Sprintf("%s/activities/%s/signup?email=%s",
		c.baseURL, url.PathEscape(activity), url.QueryEscape(email))
	return c.mutate(ctx, http.MethodPost, target)
}

// Unregister выписывает email из кружка: DELETE /activities/{name}/participants/{email}.
// Возвращает сообщение сервера.
func (c *APIClient) Unregister(ctx context.Context, activity, email string) (string, error) {
	target := fmt.Sprintf("%s/activities/%s/participants/%s",
		c.baseURL, url.PathEscape(activity), url.PathEscape(email))
	return c.mutate(ctx, http.MethodDelete, target)
}

func (c *APIClient) mutate(ctx context.Context, method, target string) (string, error) {
	resp, err := c.do(ctx, method, target)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", decodeAPIError(resp)
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return body.Message, nil
}

func (c *APIClient) do(ctx context.Context, method, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}
	return resp, nil
}

// decodeAPIError достаёт detail из тела ошибки. Нечитаемое тело или detail
// не-строкой (например, список ошибок валидации) дают пустой Detail.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}

	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return apiErr
	}

	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err == nil {
		apiErr.Detail = detail
	}
	return apiErr
}

// detailOf возвращает detail, если err — APIError с непустым detail.
func detailOf(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail, true
	}
	return "", false
}

// isAPIError отличает ответ сервера от сбоя транспорта или разбора тела.
func isAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
