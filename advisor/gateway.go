package advisor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"edu-messenger/llm"
	"edu-messenger/utils"
)

const (
	// EmptyAnswerText is shown when the model returned no text
	EmptyAnswerText = "Не удалось получить ответ от ИИ."
	// FailureText is shown for every other failure
	FailureText = "Произошла ошибка при обращении к ИИ-помощнику."

	DefaultTimeout = 30 * time.Second
)

// Result is the advisory display buffer
type Result struct {
	Seq     uint64
	Topic   string
	Text    string
	Pending bool
	Failed  bool // Text is one of the fallback strings
	Stale   bool // a newer request was issued before this one resolved
}

// Gateway bridges the chat to a text-generation provider. Each Ask gets a
// sequence number; only the latest one may overwrite the display buffer.
type Gateway struct {
	provider llm.Provider
	timeout  time.Duration
	logger   *utils.Logger

	mu       sync.Mutex
	seq      uint64
	current  Result
	onChange func(Result)
}

// NewGateway creates a gateway. provider may be nil, in which case every
// request resolves to FailureText.
func NewGateway(provider llm.Provider, timeout time.Duration, logger *utils.Logger) *Gateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Gateway{provider: provider, timeout: timeout, logger: logger}
}

// OnChange registers a callback invoked after every buffer change. It is
// called without the gateway lock held.
func (g *Gateway) OnChange(fn func(Result)) {
	g.mu.Lock()
	g.onChange = fn
	g.mu.Unlock()
}

// Ask requests advice on topic and blocks until the provider answers or the
// timeout expires. It never returns an error: failures become fallback text.
func (g *Gateway) Ask(ctx context.Context, topic string) Result {
	g.mu.Lock()
	g.seq++
	seq := g.seq
	g.current = Result{Seq: seq, Topic: topic, Pending: true}
	pending := g.current
	g.mu.Unlock()
	g.notify(pending)

	text, failed := g.generate(ctx, seq, topic)
	result := Result{Seq: seq, Topic: topic, Text: text, Failed: failed}

	g.mu.Lock()
	if seq != g.seq {
		g.mu.Unlock()
		result.Stale = true
		g.logger.Debug("advisor: discarding stale answer #%d for %q", seq, topic)
		return result
	}
	g.current = result
	g.mu.Unlock()
	g.notify(result)
	return result
}

// Current returns the display buffer
func (g *Gateway) Current() Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// Reset clears the buffer; requests still in flight become stale
func (g *Gateway) Reset() {
	g.mu.Lock()
	g.seq++
	g.current = Result{}
	g.mu.Unlock()
	g.notify(Result{})
}

// ProviderName returns the name of the configured provider
func (g *Gateway) ProviderName() string {
	if g.provider == nil {
		return ""
	}
	return g.provider.Name()
}

type answer struct {
	text string
	err  error
}

func (g *Gateway) generate(ctx context.Context, seq uint64, topic string) (text string, failed bool) {
	var err error
	defer func() {
		if err == nil {
			return
		}
		g.logger.Warn("advisor: request #%d for %q failed: %v", seq, topic, err)
		failed = true
		if errors.Is(err, llm.ErrEmptyResponse) {
			text = EmptyAnswerText
		} else {
			text = FailureText
		}
	}()

	if g.provider == nil {
		err = errors.New("no provider configured")
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	// The provider runs on its own goroutine so a client that ignores the
	// context still cannot hold the request past the timeout.
	done := make(chan answer, 1)
	go func() {
		var a answer
		defer func() { done <- a }()
		defer utils.RecoverFromPanic(g.logger, "advisor provider", &a.err)
		a.text, a.err = g.provider.Generate(ctx, BuildPrompt(topic))
	}()

	select {
	case a := <-done:
		text, err = a.text, a.err
	case <-ctx.Done():
		err = fmt.Errorf("advisor request timed out: %w", ctx.Err())
	}
	if err == nil && text == "" {
		err = llm.ErrEmptyResponse
	}
	return text, false
}

func (g *Gateway) notify(result Result) {
	g.mu.Lock()
	fn := g.onChange
	g.mu.Unlock()
	if fn != nil {
		fn(result)
	}
}
