package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/opentracing/opentracing-go"

	"signal_scanner/internal/models"
	"signal_scanner/internal/modules/config"
)

// Forwarder pushes admitted proposals to the downstream broadcaster with a
// single authenticated POST. No retry, failures are the caller's to log.
type Forwarder struct {
	baseURL string
	key     string
	client  *http.Client
}

func NewForwarder(cfg *config.Config) *Forwarder {
	return &Forwarder{
		baseURL: cfg.ForwardURL,
		key:     cfg.ServiceKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type proposalPayload struct {
	Pair            string             `json:"pair"`
	SignalType      string             `json:"signal_type"`
	Level           int                `json:"level"`
	PatternSequence []int              `json:"pattern_sequence"`
	BoxDetails      []models.BoxDetail `json:"box_details"`
	Entry           float64            `json:"entry"`
	StopLosses      []float64          `json:"stop_losses"`
	Targets         []float64          `json:"targets"`
	RiskReward      []int              `json:"risk_reward"`
}

func (f *Forwarder) Forward(ctx context.Context, sig *models.Signal) (err error) {
	if f.baseURL == "" {
		log.Printf("[FWD] no forward url, %s %s L%d stays local", sig.Pair, sig.SignalType, sig.Level)
		return nil
	}

	span, ctx := opentracing.StartSpanFromContext(ctx, "Forwarder.Forward")
	defer span.Finish()
	defer func() {
		if err != nil {
			err = fmt.Errorf("Forwarder.Forward: %w", err)
		}
	}()

	body, err := sonic.Marshal(proposalPayload{
		Pair:            sig.Pair,
		SignalType:      string(sig.SignalType),
		Level:           sig.Level,
		PatternSequence: sig.PatternSequence,
		BoxDetails:      sig.BoxDetails,
		Entry:           sig.Entry,
		StopLosses:      sig.StopLosses,
		Targets:         sig.Targets,
		RiskReward:      sig.RiskReward,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/signals", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.key)

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("broadcaster replied %s", resp.Status)
	}
	return nil
}
