package server

import (
	"context"
	"log"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
)

// prerenderer loads pages in headless Chrome and hands back the baked
// outerHTML, so style elements injected by script are present before
// harvesting. One exec allocator is shared across fetches; each fetch
// gets its own browser context.
type prerenderer struct {
	allocator context.Context
	cancel    context.CancelFunc
	logger    *log.Logger
}

func newPrerenderer(logger *log.Logger) *prerenderer {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-extensions", true),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &prerenderer{
		allocator: allocCtx,
		cancel:    cancel,
		logger:    logger,
	}
}

func (p *prerenderer) Close() {
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *prerenderer) Fetch(ctx context.Context, target string) (string, error) {
	taskCtx, cancelBrowser := chromedp.NewContext(p.allocator)
	defer cancelBrowser()

	if ctx != nil {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithCancel(taskCtx)
		go func() {
			select {
			case <-ctx.Done():
				cancel()
			case <-taskCtx.Done():
			}
		}()
		defer cancel()
	}
	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, 25*time.Second)
	defer cancelTimeout()

	var out string
	err := chromedp.Run(taskCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetDeviceMetricsOverride(412, 732, 2.0, true).Do(ctx)
		}),
		chromedp.Navigate(target),
		chromedp.Sleep(500*time.Millisecond),
		chromedp.OuterHTML("html", &out, chromedp.ByQuery),
	)
	if err != nil {
		p.logger.Printf("PRERENDER %s failed: %v", target, err)
		return "", err
	}
	return out, nil
}
