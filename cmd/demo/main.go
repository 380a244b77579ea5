package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	env "github.com/caarlos0/env/v11"

	"github.com/okenna/flowstate"
	"github.com/okenna/flowstate/emitter"
	"github.com/okenna/flowstate/internal/logging"
	"github.com/okenna/flowstate/order"
)

type config struct {
	LogLevel  string        `env:"LOG_LEVEL" envDefault:"info"`
	Tick      time.Duration `env:"TICK_INTERVAL" envDefault:"500ms"`
	TablePath string        `env:"TABLE_PATH"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New("flowstate-demo", cfg.LogLevel)

	if cfg.TablePath != "" {
		// Show the YAML declarative form of the same table.
		t, err := flowstate.LoadTable(cfg.TablePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.TablePath).Msg("load table")
		}
		for _, tag := range t.States() {
			log.Info().Str("state", tag).Strs("targets", t.Targets(tag)).Msg("loaded table state")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	lc, err := order.NewLifecycle(order.New(), order.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("lifecycle")
	}

	events := lc.Events()
	events.Confirmed.On(func(e order.Confirmed) {
		log.Info().Str("order_id", e.OrderID).Msg("notification: confirmed")
	})
	events.Delivered.On(func(e order.Delivered) {
		log.Info().Str("order_id", e.OrderID).Str("tracking", e.TrackingNumber).Msg("notification: delivered")
	})
	events.Cancelled.On(func(e order.Cancelled) {
		log.Info().Str("order_id", e.OrderID).Str("reason", e.Reason).Msg("notification: cancelled")
	})

	// Shipped notifications go through a channel sink instead of a
	// direct handler, to show the bridge.
	shipped := make(chan order.Shipped, 4)
	sink := emitter.NewChannelSink(shipped)
	events.Shipped.On(sink.Handler(ctx))

	script := []order.Event{
		order.Confirm{},
		order.Ship{TrackingNumber: "TRK-001"},
		order.Confirm{}, // deliberately invalid: shipped -> confirmed
		order.Deliver{},
	}

	ticker := time.NewTicker(cfg.Tick)
	defer ticker.Stop()

	for _, ev := range script {
		select {
		case <-ctx.Done():
			log.Info().Msg("interrupted")
			return
		case <-ticker.C:
		}

		next, err := lc.Dispatch(ctx, ev)
		if err != nil {
			log.Warn().Err(err).Msg("event rejected, state unchanged")
			continue
		}
		log.Info().Str("state", next.StateTag()).Msg(order.Describe(next))
	}

	close(shipped)
	for e := range shipped {
		log.Info().Str("order_id", e.OrderID).Str("tracking", e.TrackingNumber).Msg("channel sink received shipped")
	}

	log.Info().Msg("demo complete")
}
