package bot

import (
	"context"
	"strings"
	"testing"

	"alpha-sparrow/internal/config"
)

func TestStartSkipsWithoutToken(t *testing.T) {
	cfg := config.Defaults()
	publisher := Start(cfg, nil, nil, nil)
	if _, ok := publisher.(LogPublisher); !ok {
		t.Fatalf("expected LogPublisher without a token, got %T", publisher)
	}
}

func TestMenuListsEveryCommand(t *testing.T) {
	commands := []string{
		"/price", "/signal", "/trends", "/movers", "/news", "/summary",
		"/portfolio", "/basics", "/strategies", "/scams", "/about",
	}
	for _, cmd := range commands {
		if !strings.Contains(menuText, cmd) {
			t.Errorf("menu missing %s", cmd)
		}
	}
}

func TestLogPublisherNeverFails(t *testing.T) {
	if err := (LogPublisher{}).Publish(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
