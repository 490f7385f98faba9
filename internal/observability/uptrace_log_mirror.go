package observability

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	otelglobal "go.opentelemetry.io/otel/log/global"

	"github.com/Pranay-Prat/football-lineup-maker/internal/platform/logging"
)

const (
	logInstrumentationName = "football-lineup-maker/internal/platform/logging"
	maxNestedLogValue      = 3
	redacted               = "[redacted]"
)

var severities = map[logging.Level]otellog.Severity{
	logging.LevelDebug: otellog.SeverityDebug,
	logging.LevelInfo:  otellog.SeverityInfo,
	logging.LevelWarn:  otellog.SeverityWarn,
	logging.LevelError: otellog.SeverityError,
}

// logBridge copies logger records to the global OTel log provider set up by uptrace.
type logBridge struct {
	logger     otellog.Logger
	healthPaths map[string]bool
	secretKeys map[string]bool
	now        func() time.Time
}

func newLogBridge(serviceVersion string) *logBridge {
	return &logBridge{
		logger:     otelglobal.Logger(logInstrumentationName, otellog.WithInstrumentationVersion(serviceVersion)),
		healthPaths: map[string]bool{"/healthz": true, "/livez": true, "/readyz": true},
		secretKeys: map[string]bool{"authorization": true, "token": true, "admin_key": true},
		now:        time.Now,
	}
}

func newUptraceLogMirror(serviceVersion string) logging.MirrorFunc {
	return newLogBridge(serviceVersion).mirror
}

func (b *logBridge) mirror(ctx context.Context, level logging.Level, msg string, args ...any) {
	if b.isHealthCheck(msg, args) {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	severity := severityOf(level)
	if !b.logger.Enabled(ctx, otellog.EnabledParameters{Severity: severity, EventName: msg}) {
		return
	}
	b.logger.Emit(ctx, b.record(level, msg, args))
}

func (b *logBridge) record(level logging.Level, msg string, args []any) otellog.Record {
	ts := b.now().UTC()
	var rec otellog.Record
	rec.SetTimestamp(ts)
	rec.SetObservedTimestamp(ts)
	rec.SetSeverity(severityOf(level))
	rec.SetSeverityText(strings.ToUpper(level.String()))
	rec.SetEventName(msg)
	rec.SetBody(otellog.StringValue(msg))
	rec.AddAttributes(b.attributes(args)...)
	return rec
}

// isHealthCheck reports request logs for health checks, which would drown the log stream.
func (b *logBridge) isHealthCheck(msg string, args []any) bool {
	if msg != "http request" {
		return false
	}
	for key, value := range pairs(args) {
		if key == "path" {
			path, _ := value.(string)
			return b.healthPaths[path]
		}
	}
	return false
}

func (b *logBridge) attributes(args []any) []otellog.KeyValue {
	var out []otellog.KeyValue
	for key, value := range pairs(args) {
		switch {
		case b.secretKeys[strings.ToLower(key)]:
			out = append(out, otellog.String(key, redacted))
		case value == danglingKey:
			out = append(out, otellog.Empty(key))
		default:
			out = append(out, otellog.KeyValue{Key: key, Value: logValue(value, 0)})
		}
	}
	return out
}

type dangling struct{}

var danglingKey any = dangling{}

// pairs walks alternating key/value args. Non-string keys are named by position and
// a trailing key without a value yields danglingKey.
func pairs(args []any) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for i := 0; i < len(args); i += 2 {
			key, ok := args[i].(string)
			if !ok || strings.TrimSpace(key) == "" {
				key = fmt.Sprintf("arg_%d", i/2)
			}
			value := danglingKey
			if i+1 < len(args) {
				value = args[i+1]
			}
			if !yield(key, value) {
				return
			}
		}
	}
}

func severityOf(level logging.Level) otellog.Severity {
	if s, ok := severities[level]; ok {
		return s
	}
	if level < logging.LevelDebug {
		return otellog.SeverityTrace
	}
	return otellog.SeverityFatal
}

func logValue(value any, depth int) otellog.Value {
	if value == nil {
		return otellog.Value{}
	}
	if depth >= maxNestedLogValue {
		return otellog.StringValue(fmt.Sprint(value))
	}

	switch v := value.(type) {
	case string:
		return otellog.StringValue(v)
	case bool:
		return otellog.BoolValue(v)
	case int:
		return otellog.IntValue(v)
	case int64:
		return otellog.Int64Value(v)
	case int32, int16, int8, uint8, uint16, uint32:
		return otellog.Int64Value(toInt64(v))
	case float64:
		return otellog.Float64Value(v)
	case float32:
		return otellog.Float64Value(float64(v))
	case []byte:
		return otellog.BytesValue(append([]byte(nil), v...))
	case time.Time:
		return otellog.StringValue(v.UTC().Format(time.RFC3339Nano))
	case error:
		return otellog.StringValue(v.Error())
	case fmt.Stringer:
		return otellog.StringValue(v.String())
	case []string:
		items := make([]otellog.Value, len(v))
		for i, s := range v {
			items[i] = otellog.StringValue(s)
		}
		return otellog.SliceValue(items...)
	case []any:
		items := make([]otellog.Value, len(v))
		for i, item := range v {
			items[i] = logValue(item, depth+1)
		}
		return otellog.SliceValue(items...)
	case map[string]any:
		kvs := make([]otellog.KeyValue, 0, len(v))
		for key, item := range v {
			kvs = append(kvs, otellog.KeyValue{Key: key, Value: logValue(item, depth+1)})
		}
		return otellog.MapValue(kvs...)
	}
	return otellog.StringValue(fmt.Sprint(value))
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	}
	return 0
}
