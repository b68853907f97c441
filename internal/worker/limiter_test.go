package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.burst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.burst)
	}

	l2 := NewLimiter(10, -1)
	if l2.burst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.burst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com/contract.pdf"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	if err := limiter.Wait(ctx, "http://other.example.org/terms.html"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_PerHost(t *testing.T) {
	limiter := NewLimiter(0.01, 1)

	if err := limiter.Wait(context.Background(), "http://example.com/a.pdf"); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Burst 1 is spent for this host only; host case does not matter
	if err := limiter.Wait(ctx, "http://EXAMPLE.com/b.pdf"); err == nil {
		t.Error("expected the same host to be limited")
	}
	if err := limiter.Wait(ctx, "http://other.com/a.pdf"); err != nil {
		t.Errorf("expected other host to pass: %v", err)
	}
}

func TestLimiter_LocalFilesUnlimited(t *testing.T) {
	limiter := NewLimiter(0.01, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	for i := 0; i < 5; i++ {
		if err := limiter.Wait(ctx, "contracts/msa.pdf"); err != nil {
			t.Fatalf("wait %d on a local file failed: %v", i, err)
		}
	}
	if len(limiter.hosts) != 0 {
		t.Errorf("expected no host limiters for local files, got %d", len(limiter.hosts))
	}
}

func TestLimiter_DisabledRate(t *testing.T) {
	limiter := NewLimiter(0, 0)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 20; i++ {
		if err := limiter.Wait(ctx, "http://example.com/doc.pdf"); err != nil {
			t.Fatalf("wait %d failed with rate disabled: %v", i, err)
		}
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(0.01, 1)
	url := "http://slow.example.com/doc.pdf"

	if err := limiter.Wait(context.Background(), url); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := limiter.Wait(ctx, url); err == nil {
		t.Error("expected error when the context ends before a token is available")
	}
}

func TestHostKey(t *testing.T) {
	host, err := hostKey("http://Example.COM:8080/foo")
	if err != nil {
		t.Fatalf("hostKey failed: %v", err)
	}
	if host != "example.com:8080" {
		t.Errorf("expected example.com:8080, got %s", host)
	}

	if _, err := hostKey("::invalid"); err == nil {
		t.Errorf("expected error for invalid URL")
	}
	if _, err := hostKey("https:///no-host"); err == nil {
		t.Errorf("expected error for URL without host")
	}
}
