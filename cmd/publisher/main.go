// Command publisher announces a menu publish so running servers drop their menu caches.
//
//	publisher                      # publish "now"
//	publisher -at 2025-03-01T10:00:00Z
package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/TemirB/pos-core/internal/kafka"
)

func main() {
	_ = godotenv.Load("env/.env")

	var (
		brokers = flag.String("brokers", os.Getenv("KAFKA_BROKERS"), "comma separated kafka brokers")
		topic   = flag.String("topic", envDefault("KAFKA_TOPIC", "menu.published"), "topic to publish to")
		at      = flag.String("at", "", "publish time, RFC3339 (default now)")
		ensure  = flag.Bool("ensure-topic", true, "create the topic if missing")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	list := splitCSV(*brokers)
	if len(list) == 0 {
		logger.Fatal("No kafka brokers, set KAFKA_BROKERS or -brokers")
	}

	publishedAt := time.Now().UTC()
	if *at != "" {
		if publishedAt, err = time.Parse(time.RFC3339, *at); err != nil {
			logger.Fatal("Bad -at", zap.String("at", *at), zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *ensure {
		if err := kafka.EnsureTopic(ctx, list, *topic, 1, 1, logger); err != nil {
			logger.Fatal("Can't ensure topic", zap.Error(err))
		}
	}

	w := kafka.NewWriter(list, *topic)
	defer w.Close()

	if err := kafka.NewPublisher(w).PublishMenu(ctx, publishedAt); err != nil {
		logger.Fatal("Publish failed", zap.Error(err))
	}
	logger.Info("Menu publish announced",
		zap.String("topic", *topic),
		zap.Time("published_at", publishedAt),
	)
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
