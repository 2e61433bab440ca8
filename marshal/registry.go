package marshal

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/joshuapare/bytekit"
)

// ArgsWriter writes the argument payload of a call at the write cursor.
type ArgsWriter func(b *bytekit.Bytes) error

// Handler consumes the argument payload of a dispatched call. The cursor
// it receives is a window over exactly the framed arguments.
type Handler func(b *bytekit.Bytes) error

// Registry maps method names to wire message ids and message ids to
// handlers. On the wire each call is a stop-bit message id followed by a
// length16 frame of arguments, so a reader can always resynchronize past
// calls it does not understand.
//
// Both sides of a protocol are deliberately lenient: writing a method
// the registry does not know logs a warning and drops the call, and
// dispatching an unknown id skips its frame. A registry is safe for
// concurrent use after registration is complete; registration itself is
// not synchronized against in-flight calls.
type Registry struct {
	mu       sync.RWMutex
	ids      map[string]int64
	handlers map[int64]Handler
	log      *slog.Logger
}

// NewRegistry returns an empty Registry logging through logger, or
// slog.Default when logger is nil.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		ids:      make(map[string]int64),
		handlers: make(map[int64]Handler),
		log:      logger,
	}
}

// RegisterMethod binds a method name to its wire message id.
func (r *Registry) RegisterMethod(name string, id int64) {
	r.mu.Lock()
	r.ids[name] = id
	r.mu.Unlock()
}

// RegisterHandler binds a message id to the handler invoked on dispatch.
func (r *Registry) RegisterHandler(id int64, h Handler) {
	r.mu.Lock()
	r.handlers[id] = h
	r.mu.Unlock()
}

// WriteCall writes a call to the named method with the arguments
// produced by args. Unregistered method names are logged and dropped
// without touching the cursor; this is not an error.
func (r *Registry) WriteCall(b *bytekit.Bytes, name string, args ArgsWriter) error {
	r.mu.RLock()
	id, ok := r.ids[name]
	r.mu.RUnlock()
	if !ok {
		r.log.Warn("dropping call to unregistered method", "method", name)
		return nil
	}
	if err := b.WriteStopBit(id); err != nil {
		return err
	}
	frameStart := b.WritePosition()
	if err := b.WriteU16(0); err != nil {
		return err
	}
	if err := args(b); err != nil {
		return err
	}
	n := b.WritePosition() - frameStart - 2
	if n > math.MaxUint16 {
		return fmt.Errorf("%w: %d argument bytes for %s", ErrTooLarge, n, name)
	}
	return b.Store().WriteU16(frameStart, uint16(n))
}

// Dispatch reads one call at the read cursor and invokes its handler.
// Unknown message ids are logged at debug and their argument frame is
// skipped. Returns the message id that was read.
func (r *Registry) Dispatch(b *bytekit.Bytes) (int64, error) {
	id, err := b.ReadStopBit()
	if err != nil {
		return 0, err
	}
	r.mu.RLock()
	h, ok := r.handlers[id]
	r.mu.RUnlock()
	if !ok {
		r.log.Debug("skipping call with unknown message id", "id", id)
		return id, SkipLength16(b)
	}

	n, err := b.ReadU16()
	if err != nil {
		return id, err
	}
	if int64(n) > b.ReadRemaining() {
		return id, bytekit.ErrBufferUnderflow
	}
	w, err := b.Window(b.ReadPosition(), int64(n))
	if err != nil {
		return id, err
	}
	defer w.Release()
	if err := h(w); err != nil {
		return id, err
	}
	return id, b.Skip(int64(n))
}

// DispatchAll dispatches calls until the readable region is exhausted.
func (r *Registry) DispatchAll(b *bytekit.Bytes) error {
	for b.ReadRemaining() > 0 {
		if _, err := r.Dispatch(b); err != nil {
			return err
		}
	}
	return nil
}
