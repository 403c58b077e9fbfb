package runner

import (
	"math"

	"github.com/montanaflynn/stats"

	"learnbench/internal/compare"
	"learnbench/internal/metrics"
)

// summarize aggregates experiment results into a summary.
func summarize(experiments []ExperimentResult, settings RunSettings) RunSummary {
	summary := RunSummary{
		ExperimentsTotal: len(experiments),
		DFA:              LearnerSummary{Label: settings.DFALabel},
		VPA:              LearnerSummary{Label: settings.VPALabel},
	}
	var dfa, vpa learnerSamples
	for _, experiment := range experiments {
		switch experiment.Status {
		case StatusPass:
			summary.ExperimentsPassed++
		case StatusFail:
			summary.ExperimentsFailed++
		case StatusSkipped:
			summary.ExperimentsSkipped++
		}
		if experiment.Comparison == nil {
			continue
		}
		c := experiment.Comparison
		dfa.add(c.DFASize, c.DFA, c.DFACounts)
		vpa.add(c.VPASize, c.VPA, c.VPACounts)
		if summary.DFA.Label == "" {
			summary.DFA.Label = c.DFALabel
		}
		if summary.VPA.Label == "" {
			summary.VPA.Label = c.VPALabel
		}
	}
	if summary.ExperimentsTotal > 0 {
		summary.PassRate = float64(summary.ExperimentsPassed) / float64(summary.ExperimentsTotal)
	}
	dfa.fill(&summary.DFA)
	vpa.fill(&summary.VPA)
	if summary.DFA.Label == "" {
		summary.DFA.Label = compare.DefaultDFALabel
	}
	if summary.VPA.Label == "" {
		summary.VPA.Label = compare.DefaultVPALabel
	}
	return summary
}

type learnerSamples struct {
	size, precision, recall, f1 stats.Float64Data
	pooled                      metrics.ConfusionCounts
}

func (s *learnerSamples) add(size int, triple metrics.MetricTriple, counts metrics.ConfusionCounts) {
	s.size = append(s.size, float64(size))
	s.precision = append(s.precision, triple.Precision)
	s.recall = append(s.recall, triple.Recall)
	s.f1 = append(s.f1, triple.F1)
	s.pooled = s.pooled.Add(counts)
}

func (s *learnerSamples) fill(summary *LearnerSummary) {
	summary.Size = describe(s.size)
	summary.Precision = describe(s.precision)
	summary.Recall = describe(s.recall)
	summary.F1 = describe(s.f1)
	summary.Pooled = s.pooled
	summary.Micro = metrics.Derive(s.pooled)
}

// describe returns the zero Distribution for an empty sample.
func describe(data stats.Float64Data) Distribution {
	if data.Len() == 0 {
		return Distribution{}
	}
	var d Distribution
	d.Mean = finite(data.Mean())
	d.Median = finite(data.Median())
	d.StdDev = finite(data.StandardDeviationPopulation())
	d.Min = finite(data.Min())
	d.Max = finite(data.Max())
	return d
}

// finite drops the error of a stats call and maps NaN or Inf to 0.
func finite(value float64, err error) float64 {
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
