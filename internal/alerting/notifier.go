package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Notification carries the context of a forecast-quality alert: a watch-mode
// self-audit whose precision dropped below the configured floor.
type Notification struct {
	RunAt           time.Time
	HistoryMonths   int
	HorizonMonths   int
	Tier            string
	MAPE            decimal.Decimal
	PrecisionPct    decimal.Decimal
	MinPrecisionPct decimal.Decimal
	AdditionalMsg   string
}

// Notifier delivers forecast-quality alerts.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}

// TelegramNotifier pushes messages through the Telegram Bot API.
type TelegramNotifier struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
	logger   zerolog.Logger
}

// NewTelegramNotifier constructs a Telegram notifier.
func NewTelegramNotifier(botToken, chatID, baseURL string, timeout time.Duration, logger zerolog.Logger) *TelegramNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}

	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		logger:   logger.With().Str("component", "alert_telegram").Logger(),
	}
}

// Notify posts the rendered message via the sendMessage API.
func (n *TelegramNotifier) Notify(ctx context.Context, note Notification) error {
	payload := map[string]string{
		"chat_id": n.chatID,
		"text":    renderMessage(note),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram responded with status %d", resp.StatusCode)
	}

	var result struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err == nil {
		if !result.OK {
			return fmt.Errorf("telegram returned ok=false")
		}
	}

	n.logger.Info().Time("run_at", note.RunAt).
		Str("precision_pct", note.PrecisionPct.StringFixed(2)).
		Msg("forecast quality alert sent")
	return nil
}

func renderMessage(note Notification) string {
	builder := strings.Builder{}
	builder.WriteString("[Proyeccion Ventas - calidad de pronóstico]\n")
	builder.WriteString(fmt.Sprintf("Corrida: %s UTC\n", note.RunAt.UTC().Format(time.RFC3339)))
	builder.WriteString(fmt.Sprintf("Historia: %d meses, horizonte %d\n", note.HistoryMonths, note.HorizonMonths))
	builder.WriteString(fmt.Sprintf("Modelo: %s\n", note.Tier))
	builder.WriteString(fmt.Sprintf("MAPE: %s%%\n", note.MAPE.StringFixed(2)))
	builder.WriteString(fmt.Sprintf("Precisión: %s%% (mínimo %s%%)\n", note.PrecisionPct.StringFixed(2), note.MinPrecisionPct.StringFixed(2)))
	if note.AdditionalMsg != "" {
		builder.WriteString(note.AdditionalMsg)
	}
	return builder.String()
}

var _ Notifier = (*TelegramNotifier)(nil)
