package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yacine178/sales/internal/infra"

	"github.com/rs/zerolog/log"
)

// LowStockWorker processes jobs from QueueLowStock and mails the configured
// recipient when a part drops to or below its minimum stock.
type LowStockWorker struct {
	mailer    *infra.Mailer
	recipient string
}

func NewLowStockWorker(mailer *infra.Mailer, recipient string) *LowStockWorker {
	return &LowStockWorker{mailer: mailer, recipient: recipient}
}

func (w *LowStockWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload LowStockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("lowstock_worker: invalid payload")
		return err
	}
	if w.recipient == "" {
		log.Warn().Str("part", payload.Name).Msg("lowstock_worker: no alert recipient configured — skipping")
		return nil
	}

	subject := fmt.Sprintf("Low stock: %s (%s)", payload.Name, payload.ReferenceCode)
	body := fmt.Sprintf(
		"Part %s (%s) is down to %d units, at or below its minimum of %d.\nRestock is recommended.",
		payload.Name, payload.ReferenceCode, payload.Quantity, payload.MinimumStock,
	)
	if err := w.mailer.SendAlert(w.recipient, subject, body); err != nil {
		log.Error().Err(err).Str("part", payload.Name).Msg("lowstock_worker: failed to send alert")
		return err
	}
	log.Info().Str("part", payload.Name).Int("quantity", payload.Quantity).Msg("lowstock_worker: alert sent")
	return nil
}
