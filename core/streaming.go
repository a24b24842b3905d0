package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"sync"
)

const (
	// dataPrefix marks the only significant lines of a server-sent event stream.
	dataPrefix = "data: "
	// doneSentinel ends a stream explicitly.
	doneSentinel = "[DONE]"
	// readChunkSize is the size of each read from the underlying body.
	readChunkSize = 4096
)

// Stream is a lazily decoded sequence of server-sent event frames.
//
// Rules:
//   - Frames are yielded in the order their data lines appeared on the wire
//   - A "data: [DONE]" line ends the stream without reading further
//   - Frames that do not decode into T are skipped
//   - The underlying body is closed exactly once, whether the stream ends on
//     the sentinel, at EOF, on a read error, or because the caller stops early
//
// A Stream must be consumed by one goroutine at a time.
type Stream[T any] struct {
	body io.ReadCloser
	dec  lineDecoder
	buf  []byte

	cur T
	err error

	closeOnce sync.Once
	closeErr  error
}

// DecodeStream wraps an open, successful response in a Stream.
// It fails with ErrNoBody before producing anything if resp has no body.
func DecodeStream[T any](resp *http.Response) (*Stream[T], error) {
	if resp == nil || resp.Body == nil || resp.Body == http.NoBody {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return nil, ErrNoBody
	}
	return NewStream[T](resp.Body), nil
}

// NewStream creates a Stream reading frames from body.
// The stream takes ownership of body and closes it when iteration ends.
func NewStream[T any](body io.ReadCloser) *Stream[T] {
	return &Stream[T]{body: body}
}

// Next advances to the next frame. It returns false when the stream has
// ended; Err then reports whether it ended because of a read failure.
func (s *Stream[T]) Next() bool {
	if s.dec.done {
		return false
	}

	for {
		line, ok := s.dec.nextLine()
		if !ok {
			if s.dec.eof {
				s.finish(nil)
				return false
			}
			if err := s.fill(); err != nil {
				s.finish(err)
				return false
			}
			continue
		}

		payload, ok := framePayload(line)
		if !ok {
			continue
		}
		if string(payload) == doneSentinel {
			s.finish(nil)
			return false
		}

		var v T
		if err := json.Unmarshal(payload, &v); err != nil {
			continue
		}
		s.cur = v
		return true
	}
}

// Current returns the frame produced by the last successful call to Next.
func (s *Stream[T]) Current() T {
	return s.cur
}

// Err returns the read error that ended the stream, if any.
// Natural end of stream and the [DONE] sentinel are not errors.
func (s *Stream[T]) Err() error {
	return s.err
}

// Close stops the stream and releases the underlying body.
// It is safe to call more than once.
func (s *Stream[T]) Close() error {
	s.dec.done = true
	s.closeOnce.Do(func() {
		s.closeErr = s.body.Close()
		s.dec.reset()
	})
	return s.closeErr
}

// All returns an iterator over the remaining frames. A read failure is
// yielded once as the final element. Breaking out of the loop closes the
// stream.
//
//	for chunk, err := range stream.All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Print(chunk.Choices[0].Delta.Content)
//	}
func (s *Stream[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer s.Close()
		for s.Next() {
			if !yield(s.cur, nil) {
				return
			}
		}
		if s.err != nil {
			var zero T
			yield(zero, s.err)
		}
	}
}

// Collect drains the stream and returns every frame in order.
func Collect[T any](s *Stream[T]) ([]T, error) {
	if s == nil {
		return nil, ErrNoBody
	}
	var frames []T
	for v, err := range s.All() {
		if err != nil {
			return frames, err
		}
		frames = append(frames, v)
	}
	return frames, nil
}

// fill performs one read of the body into the decoder buffer.
func (s *Stream[T]) fill() error {
	if s.buf == nil {
		s.buf = make([]byte, readChunkSize)
	}
	n, err := s.body.Read(s.buf)
	if n > 0 {
		s.dec.write(s.buf[:n])
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.dec.eof = true
			return nil
		}
		return fmt.Errorf("%w: stream read: %w", ErrNetwork, err)
	}
	return nil
}

func (s *Stream[T]) finish(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
	s.Close()
}

// framePayload returns the trimmed payload of a data line.
func framePayload(line []byte) ([]byte, bool) {
	if !bytes.HasPrefix(line, []byte(dataPrefix)) {
		return nil, false
	}
	return bytes.TrimSpace(line[len(dataPrefix):]), true
}

// lineDecoder holds the undecoded tail of the stream between reads.
// Bytes are kept raw and only split on '\n', so a multi-byte character cut
// by a read boundary is reassembled before it is interpreted.
type lineDecoder struct {
	buf  []byte
	eof  bool
	done bool
}

func (d *lineDecoder) write(p []byte) {
	d.buf = append(d.buf, p...)
}

// nextLine pops one complete line, without its terminator. An incomplete
// trailing segment stays buffered and is dropped if the stream ends.
func (d *lineDecoder) nextLine() ([]byte, bool) {
	i := bytes.IndexByte(d.buf, '\n')
	if i < 0 {
		return nil, false
	}
	line := d.buf[:i]
	d.buf = d.buf[i+1:]
	return line, true
}

func (d *lineDecoder) reset() {
	d.buf = nil
}
