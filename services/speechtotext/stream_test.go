package speechtotext

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/goliatone/go-watson/core"
	"github.com/goliatone/go-watson/internal/watsontest"
	"github.com/gorilla/websocket"
)

type fakeRecognizer struct {
	mu     sync.Mutex
	start  map[string]any
	audio  bytes.Buffer
	frames int
	query  string
	auth   string
	reply  func(conn *websocket.Conn)
}

func (f *fakeRecognizer) handle(t *testing.T) http.HandlerFunc {
	upgrader := websocket.Upgrader{}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		f.mu.Lock()
		f.query = r.URL.RawQuery
		f.auth = r.Header.Get("Authorization")
		f.mu.Unlock()

		start := map[string]any{}
		if err := conn.ReadJSON(&start); err != nil {
			t.Errorf("read start: %v", err)
			return
		}
		f.mu.Lock()
		f.start = start
		f.mu.Unlock()
		_ = conn.WriteJSON(map[string]string{"state": stateListening})

		for {
			kind, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if kind == websocket.BinaryMessage {
				f.mu.Lock()
				f.audio.Write(payload)
				f.frames++
				f.mu.Unlock()
				continue
			}
			if strings.Contains(string(payload), `"stop"`) {
				break
			}
		}
		f.reply(conn)
		// Drain until the client closes.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}

func newStreamService(t *testing.T, recognizer *fakeRecognizer) (*Service, *watsontest.Server) {
	t.Helper()
	server := watsontest.NewServer(t)
	server.HandleFunc(http.MethodGet, "/v1/recognize", recognizer.handle(t))
	return newTestService(t, server), server
}

func TestRecognizeStream_CollectsFinalResults(t *testing.T) {
	recognizer := &fakeRecognizer{reply: func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"results":[{"final":false,"alternatives":[{"transcript":"hel"}]}],"result_index":0}`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"results":[{"final":true,"alternatives":[{"transcript":"hello "}]}],"result_index":0}`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"results":[{"final":true,"alternatives":[{"transcript":"world "}]}],"result_index":1}`))
		_ = conn.WriteJSON(map[string]string{"state": stateListening})
	}}
	svc, _ := newStreamService(t, recognizer)

	audio := bytes.Repeat([]byte{0x01, 0x02}, 10)
	results, err := svc.RecognizeStream(context.Background(), bytes.NewReader(audio), RecognizeStreamOptions{
		RecognizeOptions: RecognizeOptions{Model: "en-US_BroadbandModel", Timestamps: core.Ptr(true)},
		ContentType:      "audio/l16;rate=16000",
		InterimResults:   true,
		ChunkSize:        8,
	})
	if err != nil {
		t.Fatalf("recognize stream: %v", err)
	}
	if len(results.Results) != 2 {
		t.Fatalf("expected two results, got %+v", results.Results)
	}
	if got := results.Transcript(); got != "hello world " {
		t.Fatalf("unexpected transcript %q", got)
	}

	recognizer.mu.Lock()
	defer recognizer.mu.Unlock()
	if !bytes.Equal(recognizer.audio.Bytes(), audio) {
		t.Fatalf("audio mismatch: %v", recognizer.audio.Bytes())
	}
	if recognizer.frames != 3 {
		t.Fatalf("expected three binary frames, got %d", recognizer.frames)
	}
	if recognizer.start["action"] != "start" || recognizer.start["content-type"] != "audio/l16;rate=16000" {
		t.Fatalf("unexpected start message %v", recognizer.start)
	}
	if recognizer.start["timestamps"] != true || recognizer.start["interim_results"] != true {
		t.Fatalf("expected recognition flags in start message, got %v", recognizer.start)
	}
	if _, ok := recognizer.start["word_confidence"]; ok {
		t.Fatalf("expected absent flags to be omitted, got %v", recognizer.start)
	}
	if recognizer.query != "model=en-US_BroadbandModel" {
		t.Fatalf("unexpected handshake query %q", recognizer.query)
	}
	if recognizer.auth != "Basic dXNlcjpwYXNz" {
		t.Fatalf("expected credentials on the handshake, got %q", recognizer.auth)
	}
}

func TestRecognizeStream_ServiceErrorIsProtocolFault(t *testing.T) {
	recognizer := &fakeRecognizer{reply: func(conn *websocket.Conn) {
		payload, _ := json.Marshal(map[string]any{"error": "No speech detected for 30s."})
		_ = conn.WriteMessage(websocket.TextMessage, payload)
	}}
	svc, _ := newStreamService(t, recognizer)

	_, err := svc.RecognizeStream(context.Background(), strings.NewReader("pcm"), RecognizeStreamOptions{
		ContentType: "audio/l16;rate=16000",
	})
	if core.FaultKindOf(err) != core.FaultProtocol {
		t.Fatalf("expected protocol fault, got %v", err)
	}
	serviceErr, ok := core.ServiceErrorOf(err)
	if !ok || serviceErr.Error != "No speech detected for 30s." {
		t.Fatalf("expected service error message, got %+v", serviceErr)
	}
}

func TestRecognizeStream_RejectedHandshakeIsProtocolFault(t *testing.T) {
	server := watsontest.NewServer(t)
	server.JSON(http.MethodGet, "/v1/recognize", http.StatusUnauthorized, core.ServiceError{Code: http.StatusUnauthorized, Error: "Not Authorized"})
	svc := newTestService(t, server)

	_, err := svc.RecognizeStream(context.Background(), strings.NewReader("pcm"), RecognizeStreamOptions{
		ContentType: "audio/l16;rate=16000",
	})
	if core.FaultKindOf(err) != core.FaultProtocol {
		t.Fatalf("expected protocol fault, got %v", err)
	}
	if core.StatusCodeOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", core.StatusCodeOf(err))
	}
}

func TestRecognizeStream_RequiresContentType(t *testing.T) {
	server := watsontest.NewServer(t)
	svc := newTestService(t, server)

	_, err := svc.RecognizeStream(context.Background(), strings.NewReader("pcm"), RecognizeStreamOptions{})
	if got := core.MissingArguments(err); len(got) != 1 || got[0] != "content_type" {
		t.Fatalf("expected content_type to be named, got %v (%v)", got, err)
	}
	if server.Count() != 0 {
		t.Fatalf("expected no requests, got %d", server.Count())
	}
}

func TestRecognizeStream_PadsSkippedResultIndex(t *testing.T) {
	recognizer := &fakeRecognizer{reply: func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"results":[{"final":true,"alternatives":[{"transcript":"late "}]}],"result_index":2}`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"results":[{"final":true,"alternatives":[{"transcript":"first "}]}],"result_index":0}`))
		_ = conn.WriteJSON(map[string]string{"state": stateListening})
	}}
	svc, _ := newStreamService(t, recognizer)

	results, err := svc.RecognizeStream(context.Background(), strings.NewReader("pcm"), RecognizeStreamOptions{
		ContentType: "audio/l16;rate=16000",
	})
	if err != nil {
		t.Fatalf("recognize stream: %v", err)
	}
	if len(results.Results) != 3 {
		t.Fatalf("expected three result slots, got %+v", results.Results)
	}
	if got := results.Results[2].Alternatives[0].Transcript; got != "late " {
		t.Fatalf("expected result 2 at its index, got %q", got)
	}
	if got := results.Results[0].Alternatives[0].Transcript; got != "first " {
		t.Fatalf("expected result 0 at its index, got %q", got)
	}
	if len(results.Results[1].Alternatives) != 0 {
		t.Fatalf("expected an empty slot for result 1, got %+v", results.Results[1])
	}
}

func TestRecognizeStream_ReturnsWhenAudioReadBlocks(t *testing.T) {
	recognizer := &fakeRecognizer{reply: func(*websocket.Conn) {}}
	svc, _ := newStreamService(t, recognizer)

	audio, feed := io.Pipe()
	t.Cleanup(func() { _ = feed.Close() })
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := svc.RecognizeStream(ctx, audio, RecognizeStreamOptions{ContentType: "audio/l16;rate=16000"})
		done <- err
	}()

	select {
	case err := <-done:
		if core.FaultKindOf(err) != core.FaultTransport {
			t.Fatalf("expected transport fault, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("recognize stream did not return after the deadline")
	}
	if _, err := feed.Write([]byte("pcm")); !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("expected the audio reader to be closed, got %v", err)
	}
}

type streamMetrics struct {
	mu       sync.Mutex
	counters []map[string]string
}

func (m *streamMetrics) IncCounter(_ context.Context, _ string, _ int64, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = append(m.counters, tags)
}

func (m *streamMetrics) ObserveHistogram(context.Context, string, float64, map[string]string) {}

func TestRecognizeStream_RecordsInvocation(t *testing.T) {
	recognizer := &fakeRecognizer{reply: func(conn *websocket.Conn) {
		_ = conn.WriteJSON(map[string]string{"state": stateListening})
	}}
	server := watsontest.NewServer(t)
	server.HandleFunc(http.MethodGet, "/v1/recognize", recognizer.handle(t))
	metrics := &streamMetrics{}
	svc, err := New(server.Config(), core.WithMetricsRecorder(metrics))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.RecognizeStream(context.Background(), strings.NewReader("pcm"), RecognizeStreamOptions{
		ContentType: "audio/l16;rate=16000",
	}); err != nil {
		t.Fatalf("recognize stream: %v", err)
	}

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	if len(metrics.counters) != 1 {
		t.Fatalf("expected one recorded invocation, got %+v", metrics.counters)
	}
	if tags := metrics.counters[0]; tags["status"] != "success" || tags["method"] != http.MethodGet {
		t.Fatalf("unexpected invocation tags %#v", tags)
	}
}
