package trace

import (
	"maps"
	"slices"

	"github.com/rs/zerolog"
)

// LogTracer forwards events to a zerolog logger. Driver and pass events
// log at info, finer scopes at debug.
type LogTracer struct {
	log   zerolog.Logger
	level Level
}

func NewLogTracer(log zerolog.Logger, level Level) *LogTracer {
	return &LogTracer{log: log, level: level}
}

func (t *LogTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	ev.Seq = NextSeq()

	var e *zerolog.Event
	if ev.Scope <= ScopePass {
		e = t.log.Info()
	} else {
		e = t.log.Debug()
	}
	e = e.Str("scope", ev.Scope.String()).
		Str("kind", ev.Kind.String()).
		Uint64("span", ev.SpanID)
	if ev.ParentID != 0 {
		e = e.Uint64("parent", ev.ParentID)
	}
	if ev.Detail != "" {
		e = e.Str("detail", ev.Detail)
	}
	for _, k := range slices.Sorted(maps.Keys(ev.Extra)) {
		e = e.Str(k, ev.Extra[k])
	}
	e.Msg(ev.Name)
}

func (t *LogTracer) Flush() error  { return nil }
func (t *LogTracer) Close() error  { return nil }
func (t *LogTracer) Level() Level  { return t.level }
func (t *LogTracer) Enabled() bool { return t.level > LevelOff }
