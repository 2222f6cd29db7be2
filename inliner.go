package md2evernote

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2evernote/internal/assets"
	"github.com/alnah/go-md2evernote/internal/pipeline"
	"github.com/alnah/go-md2evernote/internal/process"
)

// defaultInlineTimeout bounds page loading when the context has no deadline.
const defaultInlineTimeout = 30 * time.Second

// inlineScript copies every stylesheet rule onto the elements it matches,
// in document order so later rules win, keeps declarations already set in
// style attributes, removes the <style> elements and returns the markup.
// Fragments come back without the wrapper document.
const inlineScript = `(fragment) => {
	const inline = new Map();
	for (const sheet of Array.from(document.styleSheets)) {
		let rules;
		try { rules = Array.from(sheet.cssRules); } catch (e) { continue; }
		for (const rule of rules) {
			if (!(rule instanceof CSSStyleRule)) continue;
			let nodes;
			try { nodes = document.querySelectorAll(rule.selectorText); } catch (e) { continue; }
			for (const el of nodes) {
				if (!inline.has(el)) inline.set(el, []);
				for (let i = 0; i < rule.style.length; i++) {
					const prop = rule.style[i];
					inline.get(el).push([prop, rule.style.getPropertyValue(prop), rule.style.getPropertyPriority(prop)]);
				}
			}
		}
	}
	for (const [el, decls] of inline) {
		const own = el.getAttribute('style') || '';
		for (const [prop, value, priority] of decls) el.style.setProperty(prop, value, priority);
		if (own) el.setAttribute('style', el.getAttribute('style') + ';' + own);
	}
	for (const style of Array.from(document.querySelectorAll('style'))) style.remove();
	return fragment ? document.body.innerHTML : '<!DOCTYPE html>\n' + document.documentElement.outerHTML;
}`

// BrowserInliner inlines a stylesheet into HTML using headless Chrome.
// The browser starts on first use; Rod downloads Chromium if none is
// installed. Call Close to stop it.
type BrowserInliner struct {
	css      string
	timeout  time.Duration
	injector pipeline.CSSInjector

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// Compile-time interface check.
var _ HTMLInliner = (*BrowserInliner)(nil)

// NewBrowserInliner creates an inliner for the named embedded style or
// the CSS file at a path. An empty style uses the default style.
func NewBrowserInliner(style string, timeout time.Duration) (*BrowserInliner, error) {
	css, err := assets.ResolveStyle(style)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultInlineTimeout
	}
	return &BrowserInliner{
		css:      css,
		timeout:  timeout,
		injector: &pipeline.CSSInjection{},
	}, nil
}

// ensureBrowser lazily launches and connects to the browser.
func (b *BrowserInliner) ensureBrowser() error {
	if b.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b.launcher = l
	b.browser = browser
	return nil
}

// Inline returns html with the inliner's stylesheet applied as style
// attributes. Fragments stay fragments.
func (b *BrowserInliner) Inline(ctx context.Context, html string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureBrowser(); err != nil {
		return "", err
	}

	timeout := b.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return "", context.DeadlineExceeded
		}
	}

	page, err := b.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	defer page.Close()
	page = page.Timeout(timeout)

	fragment := !pipeline.IsDocument(html)
	doc := b.injector.InjectCSS(ctx, pipeline.WrapDocument(html, ""), b.css)

	if err := page.SetDocumentContent(doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	res, err := page.Eval(inlineScript, fragment)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInline, err)
	}
	return res.Value.Str(), nil
}

// Close stops the browser and any helper processes it started.
func (b *BrowserInliner) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser == nil {
		return nil
	}
	err := b.browser.Close()
	if pid := b.launcher.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	b.launcher.Kill()
	b.browser = nil
	b.launcher = nil
	return err
}
