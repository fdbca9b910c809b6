package health

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/fx"

	"signal_scanner/internal/engine"
	"signal_scanner/internal/modules/config"
	"signal_scanner/internal/modules/health/service"
	scanner "signal_scanner/internal/modules/scanner/service"
)

func NewMux(cfg *config.Config, state *service.State, sc *scanner.Scanner, m *engine.Manager) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		// liveness: процесс жив
		resp := map[string]any{
			"status":    "ok",
			"service":   cfg.Service.Name,
			"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		}
		writeJSON(w, resp)
	})

	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		total, byPair := m.ActiveSignals()
		resp := map[string]any{
			"scanner": map[string]any{
				"totalPaths":    sc.PathCount(),
				"isInitialized": state.Ready(),
			},
			"signalsSent": m.SignalsSent(),
			"activeSignals": map[string]any{
				"total":  total,
				"byPair": byPair,
			},
		}
		writeJSON(w, resp)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	b, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}

func RunHTTP(lc fx.Lifecycle, cfg *config.Config, mux *http.ServeMux) {
	addr := fmt.Sprintf(":%d", cfg.Service.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			go func() { _ = srv.Serve(ln) }()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

func Module() fx.Option {
	return fx.Module("health",
		fx.Provide(
			service.NewState,
			NewMux,
		),
		fx.Invoke(RunHTTP),
	)
}
