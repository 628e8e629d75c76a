package fonts

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"keychain-designer/internal/logger"
)

// Fetcher downloads a font family into dir and returns the saved file path.
type Fetcher interface {
	FetchFamily(ctx context.Context, family, dir string) (string, error)
}

// Resolver maps overlay font families to parsed TrueType fonts. Families are looked up in the
// configured directories, then in zip packs there, then optionally downloaded, and otherwise
// fall back to Go Regular, so Resolve always returns a usable font.
type Resolver struct {
	dirs    []string
	fetch   Fetcher
	saveDir string
	log     *logger.Logger

	mu    sync.Mutex
	cache map[string]*truetype.Font
}

// NewResolver returns a resolver over dirs (DefaultDirs when empty). fetch may be nil to stay
// offline; downloaded files are saved into the first dir.
func NewResolver(log *logger.Logger, dirs []string, fetch Fetcher) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	if len(dirs) == 0 {
		dirs = DefaultDirs()
	}
	return &Resolver{
		dirs:    dirs,
		fetch:   fetch,
		saveDir: dirs[0],
		log:     log,
		cache:   make(map[string]*truetype.Font),
	}
}

var (
	fallbackOnce sync.Once
	fallbackFont *truetype.Font
)

// Fallback returns the embedded Go Regular font.
func Fallback() *truetype.Font {
	fallbackOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			panic(fmt.Sprintf("fonts: embedded fallback: %v", err))
		}
		fallbackFont = f
	})
	return fallbackFont
}

// Resolve returns the font for family. Failures are logged and resolved to Fallback.
// Results (including fallbacks) are cached per family.
func (r *Resolver) Resolve(ctx context.Context, family string) *truetype.Font {
	key := normalizeForMatch(family)
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.cache[key]; ok {
		return f
	}
	f := r.load(ctx, family)
	r.cache[key] = f
	return f
}

func (r *Resolver) load(ctx context.Context, family string) *truetype.Font {
	if strings.TrimSpace(family) == "" {
		return Fallback()
	}
	path, err := FindFont(r.dirs, family)
	if err != nil {
		path, err = UnpackFamily(r.dirs, family)
	}
	if err != nil && r.fetch != nil {
		path, err = r.fetch.FetchFamily(ctx, family, r.saveDir)
		if err != nil {
			r.log.Warn("font download failed", "family", family, "error", err)
		} else {
			r.log.Info("font downloaded", "family", family, "path", path)
		}
	}
	if err != nil {
		r.log.Debug("font not found, using fallback", "family", family)
		return Fallback()
	}
	f, err := ParseFile(path)
	if err != nil {
		r.log.Warn("font parse failed", "family", family, "path", path, "error", err)
		return Fallback()
	}
	return f
}

// ParseFile reads and parses a TrueType font file.
func ParseFile(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fonts: %w", err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fonts: parse %s: %w", path, err)
	}
	return f, nil
}
