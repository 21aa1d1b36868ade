package stream

import (
	"io"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	sourcePrometheusMetrics sync.Once

	sourceReadBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildbarn",
			Subsystem: "joinedreader",
			Name:      "source_read_bytes_total",
			Help:      "Total number of bytes read from Sources.",
		},
		[]string{"name"})
	sourceReadOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildbarn",
			Subsystem: "joinedreader",
			Name:      "source_read_operations_total",
			Help:      "Total number of read operations performed against Sources.",
		},
		[]string{"name", "operation", "result"})
	sourceCloseOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildbarn",
			Subsystem: "joinedreader",
			Name:      "source_close_operations_total",
			Help:      "Total number of close operations performed against Sources.",
		},
		[]string{"name", "result"})
)

type readOperationMetrics struct {
	data    prometheus.Counter
	eof     prometheus.Counter
	empty   prometheus.Counter
	failure prometheus.Counter
}

func newReadOperationMetrics(name, operation string) readOperationMetrics {
	return readOperationMetrics{
		data:    sourceReadOperations.WithLabelValues(name, operation, "Data"),
		eof:     sourceReadOperations.WithLabelValues(name, operation, "EOF"),
		empty:   sourceReadOperations.WithLabelValues(name, operation, "Empty"),
		failure: sourceReadOperations.WithLabelValues(name, operation, "Error"),
	}
}

func (m *readOperationMetrics) observe(n int, err error) {
	switch {
	case n > 0:
		m.data.Inc()
	case err == io.EOF:
		m.eof.Inc()
	case err != nil:
		m.failure.Inc()
	default:
		m.empty.Inc()
	}
}

type metricsSource struct {
	base Source

	readBytes    prometheus.Counter
	read         readOperationMetrics
	readByte     readOperationMetrics
	closeSuccess prometheus.Counter
	closeFailure prometheus.Counter
}

// NewMetricsSource creates a decorator for Source that exposes the
// number of bytes read and the outcome of read and close operations
// as Prometheus metrics. The name is used as a label, so that metrics
// of multiple kinds of Sources can be distinguished.
func NewMetricsSource(base Source, name string) Source {
	sourcePrometheusMetrics.Do(func() {
		prometheus.MustRegister(sourceReadBytes)
		prometheus.MustRegister(sourceReadOperations)
		prometheus.MustRegister(sourceCloseOperations)
	})

	return &metricsSource{
		base: base,

		readBytes:    sourceReadBytes.WithLabelValues(name),
		read:         newReadOperationMetrics(name, "Read"),
		readByte:     newReadOperationMetrics(name, "ReadByte"),
		closeSuccess: sourceCloseOperations.WithLabelValues(name, "Success"),
		closeFailure: sourceCloseOperations.WithLabelValues(name, "Error"),
	}
}

func (s *metricsSource) Read(p []byte) (int, error) {
	n, err := s.base.Read(p)
	s.readBytes.Add(float64(n))
	s.read.observe(n, err)
	return n, err
}

func (s *metricsSource) ReadByte() (byte, error) {
	b, err := s.base.ReadByte()
	if err == nil {
		s.readBytes.Inc()
		s.readByte.observe(1, nil)
	} else {
		s.readByte.observe(0, err)
	}
	return b, err
}

func (s *metricsSource) Close() error {
	err := s.base.Close()
	if err == nil {
		s.closeSuccess.Inc()
	} else {
		s.closeFailure.Inc()
	}
	return err
}
