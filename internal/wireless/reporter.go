package wireless

// Reporter receives human-facing progress lines. Implementations decide
// presentation; the orchestrator only says what happened.
type Reporter interface {
	Stepf(format string, args ...any)
	Successf(format string, args ...any)
	Failuref(format string, args ...any)
	Hintf(format string, args ...any)
}

// NopReporter discards all progress lines.
type NopReporter struct{}

func (NopReporter) Stepf(string, ...any)    {}
func (NopReporter) Successf(string, ...any) {}
func (NopReporter) Failuref(string, ...any) {}
func (NopReporter) Hintf(string, ...any)    {}
