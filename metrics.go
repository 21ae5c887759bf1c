// metrics.go: Prometheus collector over sink statistics
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package filelog

import "github.com/prometheus/client_golang/prometheus"

// Collector exports Sink.Stats as Prometheus metrics, labelled with the log name.
type Collector struct {
	sink *Sink

	enqueued     *prometheus.Desc
	written      *prometheus.Desc
	dropped      *prometheus.Desc
	rotations    *prometheus.Desc
	bytesWritten *prometheus.Desc
	queueDepth   *prometheus.Desc
	activeSlot   *prometheus.Desc
	failed       *prometheus.Desc
}

// NewCollector returns a collector for sink. Register it with
// prometheus.MustRegister or a custom registry.
func NewCollector(sink *Sink, namespace string) *Collector {
	labels := prometheus.Labels{"log": sink.Name()}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, labels)
	}
	return &Collector{
		sink:         sink,
		enqueued:     desc("records_enqueued_total", "Records accepted by the dispatch queue."),
		written:      desc("records_written_total", "Records written to the log files."),
		dropped:      desc("records_dropped_total", "Records dropped after close or after a write error."),
		rotations:    desc("rotations_total", "Rolls to the next file slot."),
		bytesWritten: desc("bytes_written_total", "Bytes written to the log files."),
		queueDepth:   desc("queue_depth", "Items waiting for the writer."),
		activeSlot:   desc("active_slot", "Index of the slot being written."),
		failed:       desc("writer_failed", "1 when the writer stopped after a write error."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.enqueued
	ch <- c.written
	ch <- c.dropped
	ch <- c.rotations
	ch <- c.bytesWritten
	ch <- c.queueDepth
	ch <- c.activeSlot
	ch <- c.failed
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.sink.Stats()
	failed := 0.0
	if st.Failed {
		failed = 1
	}
	ch <- prometheus.MustNewConstMetric(c.enqueued, prometheus.CounterValue, float64(st.Enqueued))
	ch <- prometheus.MustNewConstMetric(c.written, prometheus.CounterValue, float64(st.Written))
	ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(st.Dropped))
	ch <- prometheus.MustNewConstMetric(c.rotations, prometheus.CounterValue, float64(st.Rotations))
	ch <- prometheus.MustNewConstMetric(c.bytesWritten, prometheus.CounterValue, float64(st.BytesWritten))
	ch <- prometheus.MustNewConstMetric(c.queueDepth, prometheus.GaugeValue, float64(st.QueueDepth))
	ch <- prometheus.MustNewConstMetric(c.activeSlot, prometheus.GaugeValue, float64(st.ActiveIndex))
	ch <- prometheus.MustNewConstMetric(c.failed, prometheus.GaugeValue, failed)
}
