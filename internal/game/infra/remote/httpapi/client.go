// Package httpapi 是 realm 访问存档后端的 http 客户端，实现 port.RemoteStore 和 port.Economy。
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ParallelRealms/internal/game/entity"
	"ParallelRealms/internal/shared/backendapi"
	"ParallelRealms/modules/kit/errx"
)

const maxBody = 8 << 20

type Client struct {
	base  string
	token string
	hc    *http.Client
}

// New token 为登录后拿到的 JWT，所有请求都带上。
func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		token: token,
		hc:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) SaveGame(ctx context.Context, s entity.GameState) error {
	var out backendapi.Envelope[backendapi.SaveResult]
	_, err := c.do(ctx, http.MethodPost, backendapi.PathSave, s, &out)
	return err
}

// LoadGame 后端 404 时返回 (nil, nil)。
func (c *Client) LoadGame(ctx context.Context, userID string) (*entity.GameState, error) {
	var out backendapi.Envelope[*entity.GameState]
	status, err := c.do(ctx, http.MethodGet, backendapi.PathLoad+url.PathEscape(userID), nil, &out)
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) DeleteGame(ctx context.Context, userID string) error {
	var out backendapi.Envelope[any]
	status, err := c.do(ctx, http.MethodDelete, backendapi.PathDelete+url.PathEscape(userID), nil, &out)
	if status == http.StatusNotFound {
		return nil
	}
	return err
}

func (c *Client) ListSaves(ctx context.Context, userID string) ([]backendapi.SaveMeta, error) {
	var out backendapi.Envelope[[]backendapi.SaveMeta]
	if _, err := c.do(ctx, http.MethodGet, backendapi.PathList+url.PathEscape(userID), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) RecordSpend(ctx context.Context, amount int) (int, error) {
	var out backendapi.Envelope[backendapi.SpendResult]
	if _, err := c.do(ctx, http.MethodPost, backendapi.PathSpend, backendapi.SpendRequest{Amount: float64(amount)}, &out); err != nil {
		return 0, err
	}
	return out.Data.OwnerBankGold, nil
}

// Bank 需要管理员且为金库所有者，否则后端返回 403。
func (c *Client) Bank(ctx context.Context) (int, error) {
	var out backendapi.Envelope[backendapi.BankResult]
	if _, err := c.do(ctx, http.MethodGet, backendapi.PathBank, nil, &out); err != nil {
		return 0, err
	}
	return out.Data.OwnerBankGold, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return 0, errx.ErrInternal.WithData("path", path).WithCause(err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return 0, errx.ErrInternal.WithData("path", path).WithCause(err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, errx.ErrUnavailable.WithData("path", path).WithCause(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return resp.StatusCode, errx.ErrUnavailable.WithData("path", path).WithCause(err)
	}
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, statusError(resp.StatusCode, path, raw)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, errx.ErrCorrupt.WithData("path", path).WithCause(err)
	}
	return resp.StatusCode, nil
}

func statusError(status int, path string, raw []byte) error {
	var env backendapi.Envelope[json.RawMessage]
	_ = json.Unmarshal(raw, &env)
	base := errx.ErrUnavailable
	switch status {
	case http.StatusUnauthorized:
		base = errx.ErrUnauthorized
	case http.StatusForbidden:
		base = errx.ErrForbidden
	case http.StatusNotFound:
		base = errx.ErrNotFound
	case http.StatusBadRequest:
		base = errx.ErrReqParamERR
	}
	return base.WithDataMap(map[string]any{"path": path, "status": status, "msg": env.Msg}).
		WithCause(fmt.Errorf("backend %s: status %d", path, status))
}
