package metrics

import (
	"errors"
	"fmt"
	"testing"

	dto "github.com/prometheus/client_model/go"
)

func TestObserveRoutesToCounters(t *testing.T) {
	m := NewMutationMetrics()

	m.Observe("invoice", "create", nil)
	m.Observe("invoice", "create", errors.New("boom"))
	m.Observe("payment", "delete", nil)

	mfs, err := m.registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	if got, err := counterValue(mfs, "mutation_success_total", "invoice", "create"); err != nil || got != 1 {
		t.Fatalf("invoice create success = %v (%v), want 1", got, err)
	}
	if got, err := counterValue(mfs, "mutation_failure_total", "invoice", "create"); err != nil || got != 1 {
		t.Fatalf("invoice create failure = %v (%v), want 1", got, err)
	}
	if got, err := counterValue(mfs, "mutation_success_total", "payment", "delete"); err != nil || got != 1 {
		t.Fatalf("payment delete success = %v (%v), want 1", got, err)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *MutationMetrics
	m.IncSuccess("invoice", "create")
	m.IncFailure("invoice", "create")
	m.Observe("invoice", "create", nil)
	if m.Handler() == nil {
		t.Fatal("nil metrics should still return a handler")
	}
}

func counterValue(mfs []*dto.MetricFamily, name, entity, op string) (float64, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			matched := 0
			for _, label := range metric.GetLabel() {
				if (label.GetName() == "entity" && label.GetValue() == entity) ||
					(label.GetName() == "op" && label.GetValue() == op) {
					matched++
				}
			}
			if matched == 2 {
				return metric.GetCounter().GetValue(), nil
			}
		}
	}
	return 0, fmt.Errorf("metric %s{entity=%s,op=%s} not found", name, entity, op)
}
