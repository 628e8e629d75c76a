// Package designer wires the parameter store, the texture loader and the snapshot assembler into
// one session. All methods must be called from the same goroutine (the UI or command loop); the
// only concurrent part is texture decoding, whose results enter the session through Pump.
package designer

import (
	"keychain-designer/internal/catalog"
	"keychain-designer/internal/compositor"
	"keychain-designer/internal/coords"
	"keychain-designer/internal/logger"
	"keychain-designer/internal/params"
	"keychain-designer/internal/resource"
	"keychain-designer/internal/snapshot"
	"keychain-designer/internal/texture"
)

// Decoder is the asynchronous texture source. texture.Loader implements it.
type Decoder interface {
	Request(img *resource.Image)
	Poll() []texture.Result
}

// Session holds the current design and republishes the model after every change.
type Session struct {
	log       *logger.Logger
	cat       *catalog.Catalog
	store     *params.Store
	decoder   Decoder
	assembler *snapshot.Assembler

	tex         *texture.Texture
	model       *snapshot.Model
	subscribers []func(*snapshot.Model)
	positioner  *coords.Positioner
}

// Options configures a session. Nil fields get defaults: the embedded catalog, a no-op logger and
// a texture.Loader of DefaultMaxSize.
type Options struct {
	Catalog *catalog.Catalog
	Logger  *logger.Logger
	Decoder Decoder
	Layout  compositor.Layout
}

// New starts a session from the catalog defaults and assembles the first model.
func New(opts Options) *Session {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Decoder == nil {
		opts.Decoder = texture.NewLoader(opts.Logger, texture.DefaultMaxSize, 8)
	}
	s := &Session{
		log:       opts.Logger.With("component", "designer"),
		cat:       opts.Catalog,
		store:     params.NewStore(opts.Catalog),
		decoder:   opts.Decoder,
		assembler: snapshot.NewAssembler(opts.Layout),
	}
	s.positioner = coords.NewPositioner(s.store.Dims, s.store.SetHole)
	s.store.Subscribe(s.onChange)
	s.rebuild()
	return s
}

// Catalog is the catalog the session validates selections against.
func (s *Session) Catalog() *catalog.Catalog {
	return s.cat
}

// Store exposes the parameter store. Mutations through it republish the model.
func (s *Session) Store() *params.Store {
	return s.store
}

// Positioner is the hole-positioning gesture handler bound to the store.
func (s *Session) Positioner() *coords.Positioner {
	return s.positioner
}

// Current returns the latest model. It is never nil.
func (s *Session) Current() *snapshot.Model {
	return s.model
}

// Subscribe registers fn to receive every new model.
func (s *Session) Subscribe(fn func(*snapshot.Model)) {
	s.subscribers = append(s.subscribers, fn)
}

// Pump applies finished texture decodes and returns how many were accepted. Results for an image
// that is no longer current are discarded, so a slow decode of a replaced image never wins.
func (s *Session) Pump() int {
	accepted := 0
	for _, r := range s.decoder.Poll() {
		current := s.store.Image()
		if current == nil || r.ResourceID != current.ID() {
			s.log.Debug("discarding stale texture", "id", r.ResourceID.String())
			continue
		}
		if r.Err != nil {
			// solid fallback stays until another image is set
			s.log.Warn("image could not be decoded", "image", current.Name(), "error", r.Err)
			continue
		}
		s.tex = r.Texture
		accepted++
	}
	if accepted > 0 {
		s.rebuild()
	}
	return accepted
}

// TextureReady reports whether the current image has a decoded texture.
func (s *Session) TextureReady() bool {
	img := s.store.Image()
	return img != nil && s.tex != nil && s.tex.ResourceID == img.ID()
}

func (s *Session) onChange(c params.Change) {
	if c.Has(params.ChangedImage) {
		img := s.store.Image()
		if s.tex != nil && (img == nil || s.tex.ResourceID != img.ID()) {
			s.tex = nil
		}
		if img != nil {
			s.log.Info("image set, decoding", "image", img.Name(), "bytes", img.Size())
			s.decoder.Request(img)
		} else {
			s.log.Info("image cleared")
		}
	}
	s.rebuild()
}

func (s *Session) rebuild() {
	m := s.assembler.Assemble(s.store.Params(), s.tex)
	s.model = m
	for _, fn := range s.subscribers {
		fn(m)
	}
}
