package column

import (
	"go.uber.org/zap"

	"github.com/ajitpratap0/sparsetable/pkg/defaults"
	"github.com/ajitpratap0/sparsetable/pkg/logger"
	"github.com/ajitpratap0/sparsetable/pkg/metrics"
)

// DefaultMaterializeWarnRows is the dense length above which Internal logs a
// warning.
const DefaultMaterializeWarnRows = 1 << 24

type settings struct {
	policy   defaults.Policy
	log      *zap.Logger
	metrics  *metrics.Collector
	label    string
	warnRows int
}

// Option configures a column at construction.
type Option func(*settings)

// WithPolicy sets the default sentinels. The column keeps its own copy.
func WithPolicy(p defaults.Policy) Option {
	return func(s *settings) { s.policy = p.Clone() }
}

// WithLogger sets the logger for rejected values and large materializations.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithMetrics attaches a collector. Without one the column records nothing.
func WithMetrics(m *metrics.Collector) Option {
	return func(s *settings) { s.metrics = m }
}

// WithLabel names the column.
func WithLabel(label string) Option {
	return func(s *settings) { s.label = label }
}

// WithMaterializeWarnRows overrides DefaultMaterializeWarnRows. Zero or less
// disables the warning.
func WithMaterializeWarnRows(n int) Option {
	return func(s *settings) { s.warnRows = n }
}

func newSettings(opts []Option) settings {
	s := settings{
		policy:   defaults.Standard(),
		warnRows: DefaultMaterializeWarnRows,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.log == nil {
		s.log = logger.Get().Named("column")
	}
	return s
}
