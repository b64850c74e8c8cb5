package service

import "github.com/prometheus/client_golang/prometheus"

// WorkflowMetrics counts workflow step transitions by action and outcome.
type WorkflowMetrics struct {
	transitions *prometheus.CounterVec
}

// NewWorkflowMetrics registers the workflow counters on reg.
func NewWorkflowMetrics(reg prometheus.Registerer) (*WorkflowMetrics, error) {
	m := &WorkflowMetrics{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workflow_transitions_total",
				Help: "Workflow step transitions by action and outcome.",
			},
			[]string{"action", "outcome"},
		),
	}
	if err := reg.Register(m.transitions); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *WorkflowMetrics) observe(action string, err error) {
	if m == nil {
		return
	}
	outcome := "applied"
	if err != nil {
		outcome = "refused"
	}
	m.transitions.WithLabelValues(action, outcome).Inc()
}
