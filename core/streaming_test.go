package core

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"testing/iotest"
)

type frame struct {
	ID      string `json:"id"`
	Content string `json:"content,omitempty"`
}

// chunkedBody returns the given chunks one per Read call and counts Close calls.
type chunkedBody struct {
	chunks []string
	reads  int
	closes int
	err    error
}

func (b *chunkedBody) Read(p []byte) (int, error) {
	if b.reads >= len(b.chunks) {
		if b.err != nil {
			return 0, b.err
		}
		return 0, io.EOF
	}
	chunk := b.chunks[b.reads]
	if len(chunk) > len(p) {
		panic("test chunk larger than read buffer")
	}
	b.reads++
	return copy(p, chunk), nil
}

func (b *chunkedBody) Close() error {
	b.closes++
	return nil
}

func collectIDs(t *testing.T, s *Stream[frame]) []string {
	t.Helper()
	frames, err := Collect(s)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	ids := make([]string, len(frames))
	for i, f := range frames {
		ids[i] = f.ID
	}
	return ids
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStreamDecodesFramesInOrder(t *testing.T) {
	body := &chunkedBody{chunks: []string{
		"data: {\"id\":\"c1\"}\n\ndata: {\"id\":\"c2\"}\n\n",
		"data: {\"id\":\"c3\"}\n\ndata: [DONE]\n\n",
	}}

	got := collectIDs(t, NewStream[frame](body))

	if want := []string{"c1", "c2", "c3"}; !equalStrings(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
	if body.closes != 1 {
		t.Errorf("Close() called %d times, want 1", body.closes)
	}
}

func TestStreamStopsAtSentinel(t *testing.T) {
	body := &chunkedBody{chunks: []string{
		"data: {\"id\":\"c1\"}\n\ndata: [DONE]\n\nextra stuff",
		"data: {\"id\":\"after\"}\n\n",
	}}

	got := collectIDs(t, NewStream[frame](body))

	if want := []string{"c1"}; !equalStrings(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
	if body.reads != 1 {
		t.Errorf("reads = %d, want 1 (no reads after [DONE])", body.reads)
	}
	if body.closes != 1 {
		t.Errorf("Close() called %d times, want 1", body.closes)
	}
}

func TestStreamSentinelInLaterRead(t *testing.T) {
	body := &chunkedBody{chunks: []string{
		"data: {\"id\":\"c1\"}\n\n",
		"data: [DONE]\n\ndata: {\"id\":\"c2\"}\n\n",
		"data: {\"id\":\"c3\"}\n\n",
	}}

	got := collectIDs(t, NewStream[frame](body))

	if want := []string{"c1"}; !equalStrings(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
	if body.reads != 2 {
		t.Errorf("reads = %d, want 2", body.reads)
	}
}

func TestStreamFrameSplitAcrossReads(t *testing.T) {
	whole := "data: {\"id\":\"c1\",\"content\":\"héllo wörld\"}\n\n"

	for offset := 1; offset < len(whole); offset++ {
		body := &chunkedBody{chunks: []string{whole[:offset], whole[offset:]}}
		frames, err := Collect(NewStream[frame](body))
		if err != nil {
			t.Fatalf("offset %d: Collect() error = %v", offset, err)
		}
		if len(frames) != 1 {
			t.Fatalf("offset %d: got %d frames, want 1", offset, len(frames))
		}
		if frames[0].ID != "c1" || frames[0].Content != "héllo wörld" {
			t.Errorf("offset %d: frame = %+v", offset, frames[0])
		}
	}
}

func TestStreamOneByteReads(t *testing.T) {
	raw := "data: {\"id\":\"c1\"}\n\n: keep-alive\n\ndata: {\"id\":\"ç2\"}\n\ndata: [DONE]\n\n"
	s := NewStream[frame](io.NopCloser(iotest.OneByteReader(strings.NewReader(raw))))

	got := collectIDs(t, s)
	if want := []string{"c1", "ç2"}; !equalStrings(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}

func TestStreamDecodingIsDeterministic(t *testing.T) {
	raw := "data: {\"id\":\"a\"}\n\nevent: ping\ndata: {\"id\":\"b\"}\n\ndata: nope\n\ndata: {\"id\":\"c\"}\n\n"

	first := collectIDs(t, NewStream[frame](io.NopCloser(strings.NewReader(raw))))
	second := collectIDs(t, NewStream[frame](io.NopCloser(iotest.HalfReader(strings.NewReader(raw)))))

	if !equalStrings(first, second) {
		t.Errorf("decoding differs: %v vs %v", first, second)
	}
	if want := []string{"a", "b", "c"}; !equalStrings(first, want) {
		t.Errorf("ids = %v, want %v", first, want)
	}
}

func TestStreamSkipsMalformedAndNonDataLines(t *testing.T) {
	body := &chunkedBody{chunks: []string{
		": comment\n",
		"event: message\n",
		"data: {not json}\n\n",
		"data:{\"id\":\"no-space\"}\n\n",
		"data:   {\"id\":\"padded\"}   \r\n\r\n",
		"id: 7\n",
		"data: {\"id\":\"ok\"}\n\n",
	}}

	got := collectIDs(t, NewStream[frame](body))

	if want := []string{"padded", "ok"}; !equalStrings(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}

func TestStreamEndsAtEOFWithoutSentinel(t *testing.T) {
	body := &chunkedBody{chunks: []string{
		"data: {\"id\":\"c1\"}\n\n",
		"data: {\"id\":\"partial\"}",
	}}

	s := NewStream[frame](body)
	got := collectIDs(t, s)

	if want := []string{"c1"}; !equalStrings(got, want) {
		t.Errorf("ids = %v, want %v (dangling line must be dropped)", got, want)
	}
	if s.Err() != nil {
		t.Errorf("Err() = %v, want nil at natural end", s.Err())
	}
	if body.closes != 1 {
		t.Errorf("Close() called %d times, want 1", body.closes)
	}
}

func TestStreamReadErrorIsReported(t *testing.T) {
	readErr := errors.New("connection reset")
	body := &chunkedBody{
		chunks: []string{"data: {\"id\":\"c1\"}\n\n"},
		err:    readErr,
	}

	s := NewStream[frame](body)
	frames, err := Collect(s)

	if len(frames) != 1 {
		t.Errorf("got %d frames before error, want 1", len(frames))
	}
	if !errors.Is(err, ErrNetwork) || !errors.Is(err, readErr) {
		t.Errorf("Collect() error = %v, want ErrNetwork wrapping read error", err)
	}
	if body.closes != 1 {
		t.Errorf("Close() called %d times, want 1", body.closes)
	}
}

func TestStreamEarlyBreakReleasesBody(t *testing.T) {
	body := &chunkedBody{chunks: []string{
		"data: {\"id\":\"c1\"}\n\ndata: {\"id\":\"c2\"}\n\n",
		"data: {\"id\":\"c3\"}\n\n",
	}}
	s := NewStream[frame](body)

	for f, err := range s.All() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.ID == "c1" {
			break
		}
	}

	if body.closes != 1 {
		t.Errorf("Close() called %d times after break, want 1", body.closes)
	}
	if s.Next() {
		t.Error("Next() = true after stream was closed")
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if body.closes != 1 {
		t.Errorf("Close() called %d times after double close, want 1", body.closes)
	}
}

func TestStreamPullAPI(t *testing.T) {
	body := &chunkedBody{chunks: []string{"data: {\"id\":\"c1\"}\n\ndata: [DONE]\n\n"}}
	s := NewStream[frame](body)

	if !s.Next() {
		t.Fatalf("Next() = false, want true (err=%v)", s.Err())
	}
	if s.Current().ID != "c1" {
		t.Errorf("Current().ID = %q, want c1", s.Current().ID)
	}
	if s.Next() {
		t.Error("Next() = true after [DONE]")
	}
	if s.Err() != nil {
		t.Errorf("Err() = %v, want nil", s.Err())
	}
	if body.closes != 1 {
		t.Errorf("Close() called %d times, want 1", body.closes)
	}
}

func TestDecodeStreamRequiresBody(t *testing.T) {
	tests := []struct {
		name string
		resp *http.Response
	}{
		{"nil response", nil},
		{"nil body", &http.Response{StatusCode: 200}},
		{"no body", &http.Response{StatusCode: 200, Body: http.NoBody}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := DecodeStream[frame](tt.resp)
			if !errors.Is(err, ErrNoBody) {
				t.Errorf("DecodeStream() error = %v, want ErrNoBody", err)
			}
			if s != nil {
				t.Error("DecodeStream() returned a stream on error")
			}
		})
	}
}

func TestDecodeStreamFromResponse(t *testing.T) {
	resp := &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(strings.NewReader("data: {\"id\":\"c1\"}\n\ndata: [DONE]\n\n")),
	}

	s, err := DecodeStream[frame](resp)
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}
	if got := collectIDs(t, s); !equalStrings(got, []string{"c1"}) {
		t.Errorf("ids = %v, want [c1]", got)
	}
}

func TestCollectNilStream(t *testing.T) {
	if _, err := Collect[frame](nil); !errors.Is(err, ErrNoBody) {
		t.Errorf("Collect(nil) error = %v, want ErrNoBody", err)
	}
}
