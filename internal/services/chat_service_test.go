package services_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"edupath/internal/services"
	mem "edupath/pkg/memcache"
	"edupath/pkg/utils"
)

type fakeChatModel struct {
	answer  string
	err     error
	delay   time.Duration
	calls   atomic.Int32
	mu      sync.Mutex
	prompts []string
}

func (f *fakeChatModel) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.answer, f.err
}

func (f *fakeChatModel) Close() error { return nil }

func TestAskRequiresMessage(t *testing.T) {
	svc := services.NewChatService(&fakeChatModel{answer: "hi"}, mem.NewMemoryStore(), time.Second, time.Minute, zap.NewNop())
	for _, msg := range []string{"", "   "} {
		if _, err := svc.Ask(context.Background(), msg, "en"); !errors.Is(err, utils.ErrMessageRequired) {
			t.Fatalf("expected ErrMessageRequired for %q, got %v", msg, err)
		}
	}
}

func TestAskTrimsAndCachesAnswers(t *testing.T) {
	model := &fakeChatModel{answer: "  Take the science stream.  \n"}
	svc := services.NewChatService(model, mem.NewMemoryStore(), time.Second, time.Minute, zap.NewNop())

	for i := 0; i < 3; i++ {
		got, err := svc.Ask(context.Background(), "What after 10th?", "")
		if err != nil {
			t.Fatalf("ask: %v", err)
		}
		if got != "Take the science stream." {
			t.Fatalf("unexpected answer %q", got)
		}
	}
	if model.calls.Load() != 1 {
		t.Fatalf("expected one model call, got %d", model.calls.Load())
	}
}

func TestAskFallsBackOnModelFailure(t *testing.T) {
	model := &fakeChatModel{err: errors.New("quota exceeded")}
	svc := services.NewChatService(model, mem.NewMemoryStore(), time.Second, time.Minute, zap.NewNop())

	got, err := svc.Ask(context.Background(), "hello", "en")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got != services.FallbackAnswer {
		t.Fatalf("expected fallback answer, got %q", got)
	}

	// failures are not cached
	_, _ = svc.Ask(context.Background(), "hello", "en")
	if model.calls.Load() != 2 {
		t.Fatalf("expected a retry on the next question, got %d calls", model.calls.Load())
	}
}

func TestAskTimesOut(t *testing.T) {
	model := &fakeChatModel{answer: "late", delay: time.Second}
	svc := services.NewChatService(model, mem.NewMemoryStore(), 20*time.Millisecond, time.Minute, zap.NewNop())

	got, _ := svc.Ask(context.Background(), "hello", "en")
	if got != services.FallbackAnswer {
		t.Fatalf("expected fallback after timeout, got %q", got)
	}
}

func TestAskEmptyModelAnswer(t *testing.T) {
	svc := services.NewChatService(&fakeChatModel{answer: "   "}, mem.NewMemoryStore(), time.Second, time.Minute, zap.NewNop())
	got, _ := svc.Ask(context.Background(), "hello", "en")
	if got != services.EmptyAnswer {
		t.Fatalf("expected empty-answer apology, got %q", got)
	}
}

func TestAskWithoutModel(t *testing.T) {
	svc := services.NewChatService(nil, mem.NewMemoryStore(), time.Second, time.Minute, zap.NewNop())
	got, err := svc.Ask(context.Background(), "hello", "en")
	if err != nil || got != services.FallbackAnswer {
		t.Fatalf("expected fallback without a model, got %q %v", got, err)
	}
}

func TestConcurrentIdenticalQuestionsShareOneCall(t *testing.T) {
	model := &fakeChatModel{answer: "ok", delay: 50 * time.Millisecond}
	svc := services.NewChatService(model, mem.NewMemoryStore(), time.Second, time.Minute, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Ask(context.Background(), "same question", "hi")
		}()
	}
	wg.Wait()

	if n := model.calls.Load(); n != 1 {
		t.Fatalf("expected a single model call, got %d", n)
	}
}

func TestBuildPrompt(t *testing.T) {
	en := services.BuildPrompt("Which stream?", "en")
	if strings.Contains(en, "Please answer only in") {
		t.Fatal("english prompt must not carry a language instruction")
	}
	if !strings.HasSuffix(en, "\nUser: Which stream?\nCareerBot:") {
		t.Fatalf("unexpected prompt tail %q", en[len(en)-40:])
	}

	hi := services.BuildPrompt("Which stream?", "hi")
	if !strings.Contains(hi, "Please answer only in Hindi.") {
		t.Fatal("expected hindi instruction")
	}

	xx := services.BuildPrompt("Which stream?", "Klingon")
	if !strings.Contains(xx, "Please answer only in Klingon.") {
		t.Fatal("unknown language codes are used verbatim")
	}
}
