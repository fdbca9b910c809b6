package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"signal_scanner/internal/engine"
	"signal_scanner/internal/models"
	"signal_scanner/internal/modules/config"
	health "signal_scanner/internal/modules/health/service"
)

// Client consumes the producer's box stream: auth handshake, then a steady
// flow of boxUpdate and heartbeat frames. Frames are binary websocket
// messages carrying JSON.
type Client struct {
	url            string
	key            string
	reconnectDelay time.Duration

	wsDialer *websocket.Dialer
	manager  *engine.Manager
	state    *health.State
	notify   engine.ServiceNotifier
}

func NewClient(cfg *config.Config, m *engine.Manager, st *health.State, n engine.ServiceNotifier) *Client {
	return &Client{
		url:            cfg.BoxesWSURL,
		key:            cfg.ServiceKey,
		reconnectDelay: cfg.ReconnectDelay,
		wsDialer:       websocket.DefaultDialer,
		manager:        m,
		state:          st,
		notify:         n,
	}
}

type frame struct {
	Type string     `json:"type"`
	Pair string     `json:"pair"`
	Data *frameData `json:"data"`
}

type frameData struct {
	Boxes     []models.Box `json:"boxes"`
	Price     float64      `json:"price"`
	Timestamp string       `json:"timestamp"`
}

// Start runs the reconnect supervisor until the context ends. In-memory
// engine state survives reconnects, only the connection is rebuilt.
func (c *Client) Start(ctx context.Context) {
	for {
		log.Printf("[WS] connect %s", c.url)
		if err := c.runOnce(ctx); err != nil && ctx.Err() == nil {
			log.Printf("[WS] stream error: %v", err)
			c.notify.SendService(ctx, "boxes producer disconnected: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.reconnectDelay):
		}
	}
}

func (c *Client) runOnce(ctx context.Context) error {
	conn, _, err := c.wsDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() {
		_ = conn.Close()
	}()

	if err := c.handshake(conn); err != nil {
		return fmt.Errorf("handshake: %w", err)
	}

	c.state.SetWSConnected(true)
	c.state.SetReady(true)
	defer c.state.SetWSConnected(false)
	c.notify.SendService(ctx, "boxes stream connected: %s", c.url)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// unblocks the read loop on cancel
		<-gctx.Done()
		_ = conn.Close()
		return nil
	})
	g.Go(func() error {
		defer func() {
			_ = conn.Close()
		}()
		return c.readLoop(gctx, conn)
	})
	return g.Wait()
}

func (c *Client) handshake(conn *websocket.Conn) error {
	var f frame
	if err := readFrame(conn, &f); err != nil {
		return err
	}
	if f.Type != "authRequired" {
		return fmt.Errorf("unexpected first frame %q", f.Type)
	}
	if err := writeFrame(conn, map[string]string{"type": "auth", "token": c.key}); err != nil {
		return err
	}
	if err := readFrame(conn, &f); err != nil {
		return err
	}
	if f.Type != "welcome" {
		return fmt.Errorf("auth rejected, got %q", f.Type)
	}
	return nil
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read: %w", err)
		}

		var f frame
		if err := sonic.Unmarshal(msg, &f); err != nil {
			continue
		}

		switch f.Type {
		case "boxUpdate":
			if f.Pair == "" || f.Data == nil {
				continue
			}
			upd := models.BoxUpdate{
				Pair:      f.Pair,
				Boxes:     f.Data.Boxes,
				Price:     f.Data.Price,
				Timestamp: parseTimestamp(f.Data.Timestamp),
			}
			c.state.TouchUpdate(upd.Timestamp)
			c.manager.Dispatch(upd)
		case "heartbeat":
			_ = writeFrame(conn, map[string]string{"type": "heartbeatAck"})
		default:
			// unknown frames keep the connection alive
		}
	}
}

func parseTimestamp(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t
	}
	return time.Now().UTC()
}

func readFrame(conn *websocket.Conn, f *frame) error {
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return err
	}
	return sonic.Unmarshal(msg, f)
}

func writeFrame(conn *websocket.Conn, v any) error {
	b, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.BinaryMessage, b)
}
