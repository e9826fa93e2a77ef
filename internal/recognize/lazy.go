package recognize

import (
	"context"
	"sync"

	"github.com/rishiparsad75/pixland-face-service/internal/imaging"
)

// Lazy defers recognizer construction to the first detection call.
// Construction happens at most once per process; concurrent first callers
// block on the same initialization and observe the same instance or the
// same construction error. The handle is immutable after initialization.
type Lazy struct {
	factory func() (Recognizer, error)

	once sync.Once
	r    Recognizer
	err  error
}

// NewLazy wraps a recognizer factory in a once-only initialization gate.
func NewLazy(factory func() (Recognizer, error)) *Lazy {
	return &Lazy{factory: factory}
}

// DetectAndEmbed initializes the underlying recognizer on first use and
// delegates to it. A failed initialization is permanent for the process.
func (l *Lazy) DetectAndEmbed(ctx context.Context, raster *imaging.Raster) ([]Detection, error) {
	l.once.Do(func() {
		l.r, l.err = l.factory()
	})
	if l.err != nil {
		return nil, l.err
	}
	return l.r.DetectAndEmbed(ctx, raster)
}
