// ABOUTME: Prometheus collector exposing the CRM's derived metrics
// ABOUTME: Reads the workspace under its lock at scrape time
package web

import (
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	contactsDesc = prometheus.NewDesc("crmpro_contacts",
		"Contacts by status.", []string{"status"}, nil)
	dealsDesc = prometheus.NewDesc("crmpro_deals",
		"Deals by pipeline stage.", []string{"stage"}, nil)
	dealValueDesc = prometheus.NewDesc("crmpro_deal_value",
		"Total deal value by stage.", []string{"stage"}, nil)
	dealWeightedDesc = prometheus.NewDesc("crmpro_deal_weighted_value",
		"Probability-weighted deal value by stage.", []string{"stage"}, nil)
	pipelineTotalDesc = prometheus.NewDesc("crmpro_pipeline_total",
		"Sum of all deal values.", nil, nil)
	pipelineWeightedDesc = prometheus.NewDesc("crmpro_pipeline_weighted",
		"Sum of value times probability over all deals.", nil, nil)
	tasksDesc = prometheus.NewDesc("crmpro_tasks",
		"Task aggregates relative to today.", []string{"state"}, nil)
)

// Collector implements prometheus.Collector over a workspace.
type Collector struct {
	ws    *store.Workspace
	today func() models.Date
}

func NewCollector(ws *store.Workspace, today func() models.Date) *Collector {
	return &Collector{ws: ws, today: today}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- contactsDesc
	ch <- dealsDesc
	ch <- dealValueDesc
	ch <- dealWeightedDesc
	ch <- pipelineTotalDesc
	ch <- pipelineWeightedDesc
	ch <- tasksDesc
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	today := c.today()

	c.ws.Lock()
	byStatus := c.ws.Contacts.CountByStatus()
	pipeline := c.ws.Deals.Pipeline()
	tasks := c.ws.Tasks.Stats(today)
	c.ws.Unlock()

	for _, status := range models.AllContactStatuses() {
		ch <- prometheus.MustNewConstMetric(contactsDesc, prometheus.GaugeValue, float64(byStatus[status]), string(status))
	}
	for _, s := range pipeline.Stages {
		stage := string(s.Stage)
		ch <- prometheus.MustNewConstMetric(dealsDesc, prometheus.GaugeValue, float64(s.Count), stage)
		ch <- prometheus.MustNewConstMetric(dealValueDesc, prometheus.GaugeValue, s.Value, stage)
		ch <- prometheus.MustNewConstMetric(dealWeightedDesc, prometheus.GaugeValue, s.Weighted, stage)
	}
	ch <- prometheus.MustNewConstMetric(pipelineTotalDesc, prometheus.GaugeValue, pipeline.Total)
	ch <- prometheus.MustNewConstMetric(pipelineWeightedDesc, prometheus.GaugeValue, pipeline.Weighted)

	states := []struct {
		name  string
		value int
	}{
		{"pending", tasks.Pending},
		{"completed", tasks.Completed},
		{"overdue", tasks.Overdue},
		{"due_soon", tasks.DueSoon},
	}
	for _, s := range states {
		ch <- prometheus.MustNewConstMetric(tasksDesc, prometheus.GaugeValue, float64(s.value), s.name)
	}
}
