package bot

import (
	"fmt"
	"log"
	"time"
)

// EventSink receives per-run log events. Implementations must be safe to
// call from the run's goroutine; the engine never calls it concurrently.
type EventSink interface {
	OnEvent(level string, message string, at time.Time)
}

// SinkFunc adapts a function to the EventSink interface.
type SinkFunc func(level, message string, at time.Time)

// OnEvent implements EventSink.
func (f SinkFunc) OnEvent(level, message string, at time.Time) {
	f(level, message, at)
}

// events fans run events out to the ambient logger and an optional sink.
type events struct {
	sink EventSink
}

func (e *events) emit(level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("[%s] %s", level, msg)
	if e.sink != nil {
		e.sink.OnEvent(level, msg, time.Now())
	}
}

func (e *events) Infof(format string, args ...any)  { e.emit("INFO", format, args...) }
func (e *events) Warnf(format string, args ...any)  { e.emit("WARNING", format, args...) }
func (e *events) Errorf(format string, args ...any) { e.emit("ERROR", format, args...) }
