// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metrics

import "github.com/prometheus/client_golang/prometheus"

// mOpts collects the knobs shared by every metric constructor in this
// package before they are translated into the prometheus.*Opts the
// client library expects.
type mOpts struct {
	name          string
	help          string
	namespace     *string
	labels        map[string]string
	buckets       []float64
	quantile      map[float64]float64
	withoutSuffix bool
}

// OptsFunc customizes an mOpts in NewCounterVec/NewGaugeVec/NewHistogramVec/NewTimer.
type OptsFunc func(*mOpts)

// WithNamespace overrides DefaultMetricsNamespace for a single metric.
func WithNamespace(ns string) OptsFunc {
	return func(o *mOpts) {
		o.namespace = &ns
	}
}

// WithLabels attaches constant labels to every series of the metric.
func WithLabels(labels map[string]string) OptsFunc {
	return func(o *mOpts) {
		o.labels = labels
	}
}

// WithBuckets overrides the histogram bucket boundaries.
func WithBuckets(buckets []float64) OptsFunc {
	return func(o *mOpts) {
		o.buckets = buckets
	}
}

// WithQuantile overrides the summary objectives (quantile -> allowed error).
func WithQuantile(quantile map[float64]float64) OptsFunc {
	return func(o *mOpts) {
		o.quantile = quantile
	}
}

// WithoutSuffix disables the kind-specific metric name suffix (_c, _g, _h, _s).
func WithoutSuffix() OptsFunc {
	return func(o *mOpts) {
		o.withoutSuffix = true
	}
}

func (o *mOpts) namespaceOrDefault() string {
	if o.namespace == nil {
		return DefaultMetricsNamespace
	}
	return *o.namespace
}

func (o *mOpts) help_(kind string) string {
	help := o.help
	if help == "" {
		help = o.name
	}
	return help + " (" + kind + ")"
}

func (o *mOpts) name_(suffix string) string {
	if o.withoutSuffix {
		return o.name
	}
	return o.name + suffix
}

func (o *mOpts) GetCounterOpts() prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   o.namespaceOrDefault(),
		Name:        o.name_("_c"),
		Help:        o.help_("counters"),
		ConstLabels: o.labels,
	}
}

func (o *mOpts) GetGaugeOpts() prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   o.namespaceOrDefault(),
		Name:        o.name_("_g"),
		Help:        o.help_("gauge"),
		ConstLabels: o.labels,
	}
}

func (o *mOpts) GetHistogramOpts() prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   o.namespaceOrDefault(),
		Name:        o.name_("_h"),
		Help:        o.help_("histogram"),
		Buckets:     o.buckets,
		ConstLabels: o.labels,
	}
}

func (o *mOpts) GetSummaryOpts() prometheus.SummaryOpts {
	return prometheus.SummaryOpts{
		Namespace:   o.namespaceOrDefault(),
		Name:        o.name_("_s"),
		Help:        o.help_("summary"),
		Objectives:  o.quantile,
		ConstLabels: o.labels,
	}
}
