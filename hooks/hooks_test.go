package hooks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/youssefsiam38/adminui/auth"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
}

func TestNilRegistry(t *testing.T) {
	var r *Registry
	if err := r.TriggerBeforePage(context.Background(), "/", auth.Anonymous()); err != nil {
		t.Errorf("TriggerBeforePage on nil registry returned error: %v", err)
	}
	if err := r.TriggerAction(context.Background(), "id", "fn", nil); err != nil {
		t.Errorf("TriggerAction on nil registry returned error: %v", err)
	}
	if err := r.TriggerLogin(context.Background(), "password", "ada", true); err != nil {
		t.Errorf("TriggerLogin on nil registry returned error: %v", err)
	}
}

func TestOnBeforePage(t *testing.T) {
	r := NewRegistry()
	var capturedPath string

	r.OnBeforePage(func(ctx context.Context, pagePath string, id *auth.Identity) error {
		capturedPath = pagePath
		return nil
	})

	err := r.TriggerBeforePage(context.Background(), "/users", auth.Anonymous())
	if err != nil {
		t.Errorf("TriggerBeforePage returned error: %v", err)
	}
	if capturedPath != "/users" {
		t.Errorf("expected path '/users', got '%s'", capturedPath)
	}
}

func TestBeforePageStopsOnError(t *testing.T) {
	r := NewRegistry()
	secondCalled := false

	r.OnBeforePage(func(ctx context.Context, pagePath string, id *auth.Identity) error {
		return fmt.Errorf("%w: maintenance", ErrDenied)
	})
	r.OnBeforePage(func(ctx context.Context, pagePath string, id *auth.Identity) error {
		secondCalled = true
		return nil
	})

	err := r.TriggerBeforePage(context.Background(), "/", auth.Anonymous())
	if !errors.Is(err, ErrDenied) {
		t.Errorf("expected ErrDenied, got %v", err)
	}
	if secondCalled {
		t.Error("second hook should not be called after an error")
	}
}

func TestOnAction(t *testing.T) {
	r := NewRegistry()
	var capturedName string
	var capturedErr error

	r.OnAction(func(ctx context.Context, callbackID, name string, err error) error {
		capturedName = name
		capturedErr = err
		return nil
	})

	boom := errors.New("boom")
	if err := r.TriggerAction(context.Background(), "cb-1", "main.save", boom); err != nil {
		t.Errorf("TriggerAction returned error: %v", err)
	}
	if capturedName != "main.save" {
		t.Errorf("expected name 'main.save', got '%s'", capturedName)
	}
	if capturedErr != boom {
		t.Errorf("expected callback error to be passed through, got %v", capturedErr)
	}
}

func TestOnLogin(t *testing.T) {
	r := NewRegistry()
	var attempts []string

	r.OnLogin(func(ctx context.Context, method, username string, succeeded bool) error {
		attempts = append(attempts, fmt.Sprintf("%s:%s:%t", method, username, succeeded))
		return nil
	})

	_ = r.TriggerLogin(context.Background(), "password", "ada", true)
	_ = r.TriggerLogin(context.Background(), "password", "bob", false)

	want := "password:ada:true,password:bob:false"
	if got := strings.Join(attempts, ","); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConcurrentRegistration(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.OnLogin(func(ctx context.Context, method, username string, succeeded bool) error { return nil })
		}()
		go func() {
			defer wg.Done()
			_ = r.TriggerLogin(context.Background(), "password", "ada", true)
		}()
	}
	wg.Wait()

	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.login) != 10 {
		t.Errorf("expected 10 login hooks, got %d", len(r.login))
	}
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Info(msg string, args ...any) { l.record("INFO", msg) }
func (l *recordingLogger) Warn(msg string, args ...any) { l.record("WARN", msg) }

func (l *recordingLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+msg)
}

func TestLoggingHooks(t *testing.T) {
	logger := &recordingLogger{}
	r := NewRegistry()
	NewLoggingHooks(logger).Register(r)

	ctx := context.Background()
	_ = r.TriggerBeforePage(ctx, "/users", &auth.Identity{DisplayName: "Ada"})
	_ = r.TriggerAction(ctx, "cb-1", "main.save", nil)
	_ = r.TriggerAction(ctx, "cb-1", "main.save", errors.New("boom"))
	_ = r.TriggerLogin(ctx, "password", "bob", false)

	want := []string{
		"INFO page viewed",
		"INFO page action",
		"WARN page action failed",
		"WARN login rejected",
	}
	if strings.Join(logger.lines, "|") != strings.Join(want, "|") {
		t.Errorf("unexpected log lines: %v", logger.lines)
	}
}
