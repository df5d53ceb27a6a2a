package extractors

import (
	"math"
	"sort"

	"github.com/prometheus/common/model"

	"github.com/gamewatch/gamewatch/internal/repo"
)

// DefaultLabel is the label dimension game-server series are keyed by.
const DefaultLabel = "type"

// unknownLabel substitutes for samples missing the requested label.
const unknownLabel = "unknown"

// Scalar returns the first data point's value from a query result, or 0.0
// when the result is failed, empty, or malformed.
func Scalar(res repo.Result) float64 {
	if res.Failed() || res.Value == nil {
		return 0
	}

	switch v := res.Value.(type) {
	case *model.Scalar:
		return sanitize(float64(v.Value))
	case model.Vector:
		if len(v) == 0 {
			return 0
		}
		return sanitize(float64(v[0].Value))
	case model.Matrix:
		if len(v) == 0 || len(v[0].Values) == 0 {
			return 0
		}
		last := v[0].Values[len(v[0].Values)-1]
		return sanitize(float64(last.Value))
	default:
		return 0
	}
}

// ByLabel maps the given label dimension of each series to its value.
// Samples missing the label are keyed "unknown"; non-finite samples are
// skipped individually so one bad entry never discards the rest.
func ByLabel(res repo.Result, label string) map[string]float64 {
	values := make(map[string]float64)
	if res.Failed() || res.Value == nil {
		return values
	}

	vector, ok := res.Value.(model.Vector)
	if !ok {
		return values
	}

	for _, sample := range vector {
		if sample == nil || !finite(float64(sample.Value)) {
			continue
		}
		name := string(sample.Metric[model.LabelName(label)])
		if name == "" {
			name = unknownLabel
		}
		values[name] = float64(sample.Value)
	}
	return values
}

// ByType is ByLabel keyed on the message-type dimension.
func ByType(res repo.Result) map[string]float64 {
	return ByLabel(res, DefaultLabel)
}

// LabelValue pairs a label with its extracted value for ordered display.
type LabelValue struct {
	Label string
	Value float64
}

// SortedByValue orders entries by descending value. Tie order follows map
// iteration and is not deterministic.
func SortedByValue(values map[string]float64) []LabelValue {
	pairs := make([]LabelValue, 0, len(values))
	for label, value := range values {
		pairs = append(pairs, LabelValue{Label: label, Value: value})
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Value > pairs[j].Value
	})
	return pairs
}

func sanitize(v float64) float64 {
	if !finite(v) {
		return 0
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
