package clinvar

import "go.uber.org/zap"

// Observer receives progress while a file is extracted.
// Update is called with a monotonically increasing count of data lines.
type Observer interface {
	Start(total int)
	Update(n int)
	Finish()
}

// NopObserver discards all progress.
type NopObserver struct{}

func (NopObserver) Start(int)  {}
func (NopObserver) Update(int) {}
func (NopObserver) Finish()    {}

// LogObserver logs progress every Every data lines.
type LogObserver struct {
	Logger *zap.Logger
	Every  int

	total int
	last  int
}

// NewLogObserver creates an observer that logs every 100000 lines.
func NewLogObserver(l *zap.Logger) *LogObserver {
	return &LogObserver{Logger: l, Every: 100000}
}

// Start records the total line count; zero means unknown.
func (o *LogObserver) Start(total int) {
	o.total = total
	o.last = 0
	if total > 0 {
		o.Logger.Info("input size", zap.Int("lines", total))
	}
}

// Update logs when at least Every lines have passed since the last message.
func (o *LogObserver) Update(n int) {
	if o.Every <= 0 || n-o.last < o.Every {
		return
	}
	o.last = n

	fields := []zap.Field{zap.Int("variants", n)}
	if o.total > 0 {
		fields = append(fields, zap.Float64("percent", 100*float64(n)/float64(o.total)))
	}
	o.Logger.Info("progress", fields...)
}

// Finish logs the final count.
func (o *LogObserver) Finish() {
	o.Logger.Info("completed reading ClinVar VCF")
}
