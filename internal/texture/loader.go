package texture

import (
	"sync"

	"github.com/google/uuid"

	"keychain-designer/internal/logger"
	"keychain-designer/internal/resource"
)

// Result is one finished decode. Err is set when decoding failed; Texture is then nil.
type Result struct {
	ResourceID uuid.UUID
	Texture    *Texture
	Err        error
}

// Loader decodes image resources off the caller's thread. Request returns immediately; finished
// decodes are queued on Results and must be drained by the owner, which decides whether a result
// is still current. The loader does not drop stale results itself.
type Loader struct {
	log     *logger.Logger
	maxSize int
	decode  func(*resource.Image, int) (*Texture, error)

	results chan Result
	wg      sync.WaitGroup

	mu   sync.Mutex
	held []Result // drained by Wait, handed out by Poll
}

// NewLoader returns a loader whose results channel holds up to buffer pending completions.
func NewLoader(log *logger.Logger, maxSize, buffer int) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	if buffer < 1 {
		buffer = 8
	}
	return &Loader{
		log:     log,
		maxSize: maxSize,
		decode:  Decode,
		results: make(chan Result, buffer),
	}
}

// Request starts decoding img in the background. A nil image is ignored.
func (l *Loader) Request(img *resource.Image) {
	if img == nil {
		return
	}
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		tex, err := l.decode(img, l.maxSize)
		if err != nil {
			l.log.Warn("texture decode failed", "image", img.Name(), "id", img.ID().String(), "error", err)
		} else {
			l.log.Debug("texture decoded", "image", img.Name(), "width", tex.Width, "height", tex.Height)
		}
		l.results <- Result{ResourceID: img.ID(), Texture: tex, Err: err}
	}()
}

// Results delivers finished decodes in completion order. Results already moved aside by Wait are
// only returned by Poll.
func (l *Loader) Results() <-chan Result {
	return l.results
}

// Poll returns the finished decodes available right now without blocking.
func (l *Loader) Poll() []Result {
	l.mu.Lock()
	out := l.held
	l.held = nil
	l.mu.Unlock()
	for {
		select {
		case r := <-l.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

// Wait blocks until every requested decode has finished. It drains the results channel while
// waiting, so any number of outstanding requests completes; the next Poll returns them all.
func (l *Loader) Wait() {
	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()
	for {
		select {
		case r := <-l.results:
			l.mu.Lock()
			l.held = append(l.held, r)
			l.mu.Unlock()
		case <-done:
			return
		}
	}
}
