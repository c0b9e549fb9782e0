// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metrics

import "github.com/prometheus/client_golang/prometheus"

type HistogramVec struct {
	histogram *prometheus.HistogramVec
}

// defaultHistogramBuckets is used when no WithBuckets option is given.
var defaultHistogramBuckets = []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .5, 1, 2.5, 5, 10, 60, 600, 3600}

func NewHistogramVec(metricsName, help string, labels []string, opts ...OptsFunc) *HistogramVec {
	opt := &mOpts{
		name: metricsName,
		help: help,
	}
	for _, optsFunc := range opts {
		optsFunc(opt)
	}
	if opt.buckets == nil {
		opt.buckets = defaultHistogramBuckets
	}
	histogramOpt := opt.GetHistogramOpts()
	hh := prometheus.NewHistogramVec(histogramOpt, labels)
	prometheus.MustRegister(hh)

	return &HistogramVec{
		histogram: hh,
	}
}

func (self *HistogramVec) Observe(v float64, labels ...string) {
	self.histogram.WithLabelValues(labels...).Observe(v)
}

func (self *HistogramVec) Delete(labels ...string) {
	self.histogram.DeleteLabelValues(labels...)
}
