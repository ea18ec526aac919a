package speechtotext

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/goliatone/go-watson/core"
	"github.com/gorilla/websocket"
)

const (
	defaultStreamChunkSize = 32 << 10
	stateListening         = "listening"
)

type RecognizeStreamOptions struct {
	RecognizeOptions
	ContentType    string
	InterimResults bool
	// ChunkSize is the size of each binary audio frame.
	ChunkSize int
	Dialer    *websocket.Dialer
}

type startAction struct {
	Action                    string   `json:"action"`
	ContentType               string   `json:"content-type,omitempty"`
	InterimResults            bool     `json:"interim_results,omitempty"`
	InactivityTimeout         *int64   `json:"inactivity_timeout,omitempty"`
	Keywords                  []string `json:"keywords,omitempty"`
	KeywordsThreshold         *float32 `json:"keywords_threshold,omitempty"`
	MaxAlternatives           *int64   `json:"max_alternatives,omitempty"`
	WordAlternativesThreshold *float32 `json:"word_alternatives_threshold,omitempty"`
	WordConfidence            *bool    `json:"word_confidence,omitempty"`
	Timestamps                *bool    `json:"timestamps,omitempty"`
	ProfanityFilter           *bool    `json:"profanity_filter,omitempty"`
	SmartFormatting           *bool    `json:"smart_formatting,omitempty"`
	SpeakerLabels             *bool    `json:"speaker_labels,omitempty"`
}

type streamMessage struct {
	State         string                    `json:"state,omitempty"`
	Error         string                    `json:"error,omitempty"`
	Results       []SpeechRecognitionResult `json:"results,omitempty"`
	ResultIndex   int                       `json:"result_index"`
	SpeakerLabels []SpeakerLabelsResult     `json:"speaker_labels,omitempty"`
	Warnings      []string                  `json:"warnings,omitempty"`
}

// RecognizeStream sends audio over the WebSocket interface and collects the
// results. The service answers the start action with a listening state and
// announces the end of the utterance with a second one.
//
// The call returns once the results are in or ctx is done, without waiting
// for audio still being read. If audio is an io.Closer it is closed in that
// case; any other reader blocked in Read may outlive the call.
func (s *Service) RecognizeStream(ctx context.Context, audio io.Reader, opts RecognizeStreamOptions) (SpeechRecognitionResults, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	startedAt := time.Now()
	results, err := s.recognizeStream(ctx, audio, opts)
	s.invoker.ObserveExchange(ctx, http.MethodGet, "/v1/recognize", startedAt, err)
	return results, err
}

func (s *Service) recognizeStream(ctx context.Context, audio io.Reader, opts RecognizeStreamOptions) (SpeechRecognitionResults, error) {
	if err := core.Require(core.Arg("audio", audio), core.Arg("content_type", opts.ContentType)); err != nil {
		return SpeechRecognitionResults{}, err
	}
	target, err := s.streamURL(opts.RecognizeOptions)
	if err != nil {
		return SpeechRecognitionResults{}, err
	}
	headers := http.Header{}
	if err := s.invoker.AuthorizeHeaders(ctx, headers); err != nil {
		return SpeechRecognitionResults{}, err
	}

	dialer := opts.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	conn, res, err := dialer.DialContext(ctx, target, headers)
	if err != nil {
		metadata := map[string]any{"service": ServiceName, "url": redactURL(target)}
		if res != nil {
			defer res.Body.Close()
			return SpeechRecognitionResults{}, handshakeFault(res, metadata)
		}
		return SpeechRecognitionResults{}, core.TransportFault(err, metadata)
	}
	defer conn.Close()

	streamCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	stop := context.AfterFunc(streamCtx, func() { _ = conn.Close() })
	defer stop()

	sent := make(chan struct{})
	go func() {
		defer close(sent)
		if err := sendAudio(streamCtx, conn, startMessage(opts), audio, opts.ChunkSize); err != nil {
			cancel(err)
		}
	}()

	results, err := collectResults(conn)
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = core.TransportFault(ctxErr, map[string]any{"service": ServiceName})
	} else if err != nil {
		if cause := context.Cause(streamCtx); cause != nil {
			err = cause
		}
	}

	select {
	case <-sent:
		if err == nil {
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		}
	default:
		// The sender may be parked in audio.Read; the deferred cancel closes
		// the connection under it.
		if closer, ok := audio.(io.Closer); ok {
			_ = closer.Close()
		}
	}
	if err != nil {
		return SpeechRecognitionResults{}, err
	}
	return results, nil
}

func (s *Service) streamURL(opts RecognizeOptions) (string, error) {
	parsed, err := url.Parse(s.invoker.Endpoint() + "/v1/recognize")
	if err != nil {
		return "", core.BadInputFault("speechtotext: malformed endpoint", map[string]any{"url": s.invoker.Endpoint()})
	}
	switch parsed.Scheme {
	case "https":
		parsed.Scheme = "wss"
	case "http":
		parsed.Scheme = "ws"
	}
	req := core.NewRequest(http.MethodGet, "/v1/recognize").
		WithQuery("model", opts.Model).
		WithQuery("customization_id", opts.CustomizationID).
		WithQuery("acoustic_customization_id", opts.AcousticCustomizationID).
		WithQuery("customization_weight", opts.CustomizationWeight).
		WithQuery("version", opts.Version)
	pairs := make([]string, 0, len(req.Query))
	for _, param := range req.Query {
		pairs = append(pairs, url.QueryEscape(param.Key)+"="+url.QueryEscape(param.Value))
	}
	parsed.RawQuery = strings.Join(pairs, "&")
	return parsed.String(), nil
}

func startMessage(opts RecognizeStreamOptions) startAction {
	return startAction{
		Action:                    "start",
		ContentType:               opts.ContentType,
		InterimResults:            opts.InterimResults,
		InactivityTimeout:         opts.InactivityTimeout,
		Keywords:                  opts.Keywords,
		KeywordsThreshold:         opts.KeywordsThreshold,
		MaxAlternatives:           opts.MaxAlternatives,
		WordAlternativesThreshold: opts.WordAlternativesThreshold,
		WordConfidence:            opts.WordConfidence,
		Timestamps:                opts.Timestamps,
		ProfanityFilter:           opts.ProfanityFilter,
		SmartFormatting:           opts.SmartFormatting,
		SpeakerLabels:             opts.SpeakerLabels,
	}
}

func sendAudio(ctx context.Context, conn *websocket.Conn, start startAction, audio io.Reader, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = defaultStreamChunkSize
	}
	if err := conn.WriteJSON(start); err != nil {
		return core.TransportFault(err, map[string]any{"service": ServiceName, "stage": "start"})
	}
	buf := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, readErr := audio.Read(buf)
		if n > 0 {
			if err := conn.WriteMessage(websocket.BinaryMessage, buf[:n]); err != nil {
				return core.TransportFault(err, map[string]any{"service": ServiceName, "stage": "audio"})
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return core.BadInputFault("speechtotext: read audio: "+readErr.Error(), map[string]any{"service": ServiceName})
		}
	}
	if err := conn.WriteJSON(map[string]string{"action": "stop"}); err != nil {
		return core.TransportFault(err, map[string]any{"service": ServiceName, "stage": "stop"})
	}
	return nil
}

// collectResults reads until the second listening state. Interim results for
// a result_index are replaced by later messages for the same index, and a
// result_index past the end pads the gap with empty results.
func collectResults(conn *websocket.Conn) (SpeechRecognitionResults, error) {
	out := SpeechRecognitionResults{}
	listening := 0
	for {
		kind, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return out, nil
			}
			return out, core.TransportFault(err, map[string]any{"service": ServiceName, "stage": "read"})
		}
		if kind != websocket.TextMessage {
			continue
		}
		var msg streamMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			return out, core.DeserializationFault(err, map[string]any{"service": ServiceName})
		}
		if msg.Error != "" {
			return out, core.ProtocolFault(http.StatusBadRequest, &core.ServiceError{
				Code:     http.StatusBadRequest,
				Error:    msg.Error,
				Warnings: msg.Warnings,
			}, map[string]any{"service": ServiceName})
		}
		if msg.State == stateListening {
			listening++
			if listening >= 2 {
				return out, nil
			}
			continue
		}
		for offset, result := range msg.Results {
			index := msg.ResultIndex + offset
			if index < 0 {
				continue
			}
			for len(out.Results) <= index {
				out.Results = append(out.Results, SpeechRecognitionResult{})
			}
			out.Results[index] = result
		}
		out.SpeakerLabels = append(out.SpeakerLabels, msg.SpeakerLabels...)
		out.Warnings = append(out.Warnings, msg.Warnings...)
		out.ResultIndex = msg.ResultIndex
	}
}

func handshakeFault(res *http.Response, metadata map[string]any) error {
	payload, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	var serviceErr *core.ServiceError
	decoded := core.ServiceError{}
	if len(payload) > 0 && json.Unmarshal(payload, &decoded) == nil && (decoded.Error != "" || decoded.Description != "") {
		serviceErr = &decoded
	}
	return core.ProtocolFault(res.StatusCode, serviceErr, metadata)
}

func redactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	parsed.RawQuery = ""
	return parsed.String()
}
