// Package replay records combat events as a stream of msgpack frames and
// reads them back.
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/Questionxble/2dgameproject-sub002/component"
)

// Clock stamps recorded frames. ecs.World satisfies it.
type Clock interface {
	Now() float64
}

// Frame is one recorded combat event.
type Frame struct {
	Seq   int                   `msgpack:"seq"`
	Time  float64               `msgpack:"time"`
	Event component.CombatEvent `msgpack:"event"`
}

// Recorder appends frames to a writer. It is not safe for concurrent use;
// the combat emitter calls it from the update loop.
type Recorder struct {
	clock Clock
	dst   io.Writer
	buf   *bufio.Writer
	enc   *msgpack.Encoder
	seq   int
	err   error
}

func NewRecorder(w io.Writer, clock Clock) *Recorder {
	buf := bufio.NewWriter(w)
	return &Recorder{
		clock: clock,
		dst:   w,
		buf:   buf,
		enc:   msgpack.NewEncoder(buf),
	}
}

// Attach subscribes the recorder to emitter.
func (r *Recorder) Attach(emitter *component.CombatEventEmitter) {
	if r == nil || emitter == nil {
		return
	}
	emitter.Subscribe(func(evt component.CombatEvent) {
		_ = r.Record(evt)
	})
}

// Record writes one frame. After the first write error every later call
// returns that error without writing.
func (r *Recorder) Record(evt component.CombatEvent) error {
	if r == nil {
		return nil
	}
	if r.err != nil {
		return r.err
	}
	f := Frame{Seq: r.seq, Time: evt.Time, Event: evt}
	if r.clock != nil {
		f.Time = r.clock.Now()
	}
	if err := r.enc.Encode(&f); err != nil {
		r.err = fmt.Errorf("replay: encode frame %d: %w", r.seq, err)
		slog.Warn("replay: recording stopped", "err", r.err)
		return r.err
	}
	r.seq++
	return nil
}

// Count returns how many frames have been written.
func (r *Recorder) Count() int {
	if r == nil {
		return 0
	}
	return r.seq
}

// Err returns the first write error.
func (r *Recorder) Err() error {
	if r == nil {
		return nil
	}
	return r.err
}

// Flush writes buffered frames to the underlying writer.
func (r *Recorder) Flush() error {
	if r == nil {
		return nil
	}
	if err := r.buf.Flush(); err != nil {
		return fmt.Errorf("replay: flush: %w", err)
	}
	return r.err
}

// Close flushes and closes the underlying writer when it is an io.Closer.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	err := r.Flush()
	if c, ok := r.dst.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}

// Reader decodes frames written by a Recorder.
type Reader struct {
	dec *msgpack.Decoder
}

func NewReader(r io.Reader) *Reader {
	return &Reader{dec: msgpack.NewDecoder(bufio.NewReader(r))}
}

// Next returns the next frame, or io.EOF after the last one.
func (r *Reader) Next() (Frame, error) {
	var f Frame
	if err := r.dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		return Frame{}, fmt.Errorf("replay: decode frame: %w", err)
	}
	return f, nil
}

// ReadAll decodes every frame in r.
func ReadAll(r io.Reader) ([]Frame, error) {
	rd := NewReader(r)
	var out []Frame
	for {
		f, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, f)
	}
}
