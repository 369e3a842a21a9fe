package metrics

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Snapshot gathers the current value of every counter registered under the
// namespace, keyed by full metric name. The process is a one-shot CLI with no
// scrape endpoint, so this is how the counters surface (dumped at debug level
// when a command exits).
func Snapshot() (map[string]float64, error) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	values := map[string]float64{}
	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), Namespace+"_") {
			continue
		}

		for _, metric := range family.GetMetric() {
			if counter := metric.GetCounter(); counter != nil {
				values[family.GetName()] = counter.GetValue()
			}
		}
	}

	return values, nil
}
