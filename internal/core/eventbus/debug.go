package eventbus

import "github.com/rs/zerolog"

// RegisterDebugLogger subscribes a handler to every event type that logs
// event activity at debug level. Useful when diagnosing subscriber wiring.
func RegisterDebugLogger(bus *Bus, logger zerolog.Logger) {
	for _, eventType := range Types() {
		bus.Subscribe(eventType, "eventbus.debug", func(event Event) {
			logger.Debug().
				Str("event", string(event.Type)).
				Time("at", event.Timestamp).
				Msg("event fired")
		})
	}
}
