// Package browser provides a controllable Chrome session via chromedp,
// configured to minimize automation fingerprinting.
package browser

import (
	"context"
	"log"
	"sync"

	"github.com/chromedp/chromedp"
)

// Options configures session acquisition.
type Options struct {
	// Headless runs Chrome without a visible window.
	Headless bool
	// BinaryPath overrides Chrome executable discovery. Empty means
	// auto-detect, then fall back to chromedp's default lookup.
	BinaryPath string
}

// Session owns a live Chrome process and its chromedp contexts.
// Release must be called exactly once per acquired session; it is safe to
// call more than once.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	releaseOnce sync.Once
}

// Context returns the chromedp context all page interactions run against.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Release terminates the browser process and frees both chromedp contexts.
func (s *Session) Release() {
	s.releaseOnce.Do(func() {
		s.cancel()
		s.allocCancel()
		log.Printf("[BROWSER] Session released")
	})
}

// Acquire starts a Chrome session with anti-fingerprinting flags and a
// deterministic window size. On failure it retries once through a simpler
// fallback initialization path before giving up with an *InitError.
func Acquire(ctx context.Context, opts Options) (*Session, error) {
	s, err := acquire(ctx, primaryAllocatorOptions(opts))
	if err == nil {
		return s, nil
	}
	log.Printf("[BROWSER] Primary initialization failed, trying fallback: %v", err)

	s, fallbackErr := acquire(ctx, fallbackAllocatorOptions(opts))
	if fallbackErr != nil {
		return nil, &InitError{Message: "primary and fallback initialization failed", Cause: err}
	}
	log.Printf("[BROWSER] Fallback initialization succeeded")
	return s, nil
}

// primaryAllocatorOptions builds the full stealth flag set: GPU, sandbox,
// automation markers, and extension loading disabled, fixed window size.
func primaryAllocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-notifications", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1920, 1080),
	)

	binary := opts.BinaryPath
	if binary == "" {
		binary = LocateChrome()
		if binary != "" {
			log.Printf("[BROWSER] Auto-detected Chrome binary at: %s", binary)
		}
	}
	if binary != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(binary))
	} else {
		log.Printf("[BROWSER] No Chrome binary path set - using default discovery")
	}

	return allocOpts
}

// fallbackAllocatorOptions is the minimal secondary path: no binary override,
// no stealth extras, just enough flags to start headless Chrome anywhere.
func fallbackAllocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
}

func acquire(ctx context.Context, allocOpts []chromedp.ExecAllocatorOption) (*Session, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	// Force the browser process to actually start so init failures surface
	// here instead of on the first navigation.
	if err := chromedp.Run(browserCtx, chromedp.Navigate("about:blank")); err != nil {
		cancel()
		allocCancel()
		return nil, &InitError{Message: "could not start Chrome", Cause: err}
	}

	log.Printf("[BROWSER] Session initialized")
	return &Session{ctx: browserCtx, cancel: cancel, allocCancel: allocCancel}, nil
}
