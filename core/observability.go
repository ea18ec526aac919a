package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ObserveExchange reports an exchange the invoker did not drive itself, such
// as a WebSocket session, through the same log and metrics hooks as Do.
func (i *Invoker) ObserveExchange(ctx context.Context, method string, path string, startedAt time.Time, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	fields := map[string]any{"method": method, "path": path}
	if err != nil {
		fields["fault_kind"] = string(FaultKindOf(err))
		if code := StatusCodeOf(err); code > 0 {
			fields["status_code"] = code
		}
	}
	i.observeInvocation(ctx, startedAt, err, fields)
}

func (i *Invoker) observeInvocation(ctx context.Context, startedAt time.Time, err error, fields map[string]any) {
	if i == nil {
		return
	}
	service := normalizeMetricSegment(i.config.ServiceName)
	if service == "" {
		service = "unknown"
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	elapsed := time.Since(startedAt)

	contextFields := RedactSensitiveMap(fields)
	contextFields["service"] = i.config.ServiceName
	contextFields["status"] = status
	contextFields["duration_ms"] = elapsed.Milliseconds()
	if err != nil {
		contextFields["error"] = err.Error()
	}

	tags := map[string]string{
		"service": service,
		"status":  status,
	}
	for _, key := range []string{"method", "status_code", "fault_kind"} {
		if value := strings.TrimSpace(fmt.Sprint(contextFields[key])); value != "" && value != "<nil>" {
			tags[key] = value
		}
	}

	i.recordCounter(ctx, "watson."+service+".invoke.total", 1, tags)
	i.recordHistogram(ctx, "watson."+service+".invoke.duration_ms", float64(elapsed.Milliseconds()), tags)

	if err != nil {
		i.logWithLevel(ctx, "error", "watson invoke failed", contextFields)
		return
	}
	i.logWithLevel(ctx, "info", "watson invoke succeeded", contextFields)
}

func (i *Invoker) logWithLevel(ctx context.Context, level string, message string, fields map[string]any) {
	if i.logger == nil {
		return
	}
	logger := i.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		logger = fieldsLogger.WithFields(cloneFields(fields))
	}
	args := flattenFields(fields)
	switch level {
	case "error":
		logger.Error(message, args...)
	default:
		logger.Info(message, args...)
	}
}

func (i *Invoker) recordCounter(ctx context.Context, name string, value int64, tags map[string]string) {
	if i.metricsRecorder == nil {
		return
	}
	i.metricsRecorder.IncCounter(ctx, name, value, cloneTags(tags))
}

func (i *Invoker) recordHistogram(ctx context.Context, name string, value float64, tags map[string]string) {
	if i.metricsRecorder == nil {
		return
	}
	i.metricsRecorder.ObserveHistogram(ctx, name, value, cloneTags(tags))
}

func cloneFields(fields map[string]any) map[string]any {
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}

func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}

func normalizeMetricSegment(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	value = strings.ReplaceAll(value, " ", "_")
	value = strings.ReplaceAll(value, "-", "_")
	return value
}
