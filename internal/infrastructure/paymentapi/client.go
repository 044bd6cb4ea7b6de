package paymentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Florddev/match-room-sub001/internal/config"
	"github.com/Florddev/match-room-sub001/internal/domain/payment"
	"github.com/Florddev/match-room-sub001/internal/domain/stay"
)

// Client は外部決済プロバイダのREST APIアダプタ
// セッションの作成と支払い状態の照会のみを行う
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient は新しい決済プロバイダクライアントを作成する
func NewClient(cfg *config.PaymentConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type createSessionRequest struct {
	BookingID string `json:"booking_id"`
	RoomID    string `json:"room_id"`
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Amount    int    `json:"amount"`
}

type sessionResponse struct {
	ID          string `json:"id"`
	RedirectURL string `json:"redirect_url"`
	Status      string `json:"status"`
}

// CreateSession は予約に紐付く決済セッションを作成する
func (c *Client) CreateSession(ctx context.Context, input payment.CreateSessionInput) (*payment.Session, error) {
	body, err := json.Marshal(createSessionRequest{
		BookingID: input.BookingID,
		RoomID:    input.RoomID,
		UserID:    input.UserID,
		StartDate: input.Stay.Start.Format(stay.DateLayout),
		EndDate:   input.Stay.End.Format(stay.DateLayout),
		Amount:    input.Amount,
	})
	if err != nil {
		return nil, fmt.Errorf("セッション作成リクエストの変換に失敗: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("セッション作成リクエストの構築に失敗: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: ステータスコード %d", payment.ErrProviderUnavailable, resp.StatusCode)
	}

	var sr sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("セッション作成レスポンスの解析に失敗: %w", err)
	}
	return &payment.Session{ID: sr.ID, RedirectURL: sr.RedirectURL}, nil
}

// GetSessionStatus はセッションの支払い状態を照会する
func (c *Client) GetSessionStatus(ctx context.Context, sessionID string) (payment.SessionStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/sessions/"+sessionID, nil)
	if err != nil {
		return "", fmt.Errorf("セッション照会リクエストの構築に失敗: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", payment.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return payment.SessionStatusNotFound, nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: ステータスコード %d", payment.ErrProviderUnavailable, resp.StatusCode)
	}

	var sr sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("セッション照会レスポンスの解析に失敗: %w", err)
	}

	switch sr.Status {
	case "paid":
		return payment.SessionStatusPaid, nil
	case "unpaid", "open":
		return payment.SessionStatusUnpaid, nil
	default:
		return "", fmt.Errorf("%w: 未知の支払い状態 %q", payment.ErrProviderUnavailable, sr.Status)
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

var _ payment.Provider = (*Client)(nil)
