// ABOUTME: Derived metrics over deal and task collections
// ABOUTME: Computes pipeline totals, weighted values, and task due date aggregates
package store

import "github.com/harperreed/crmpro/models"

// StageSummary aggregates the deals sitting in one stage.
type StageSummary struct {
	Stage    models.Stage `json:"stage"`
	Count    int          `json:"count"`
	Value    float64      `json:"value"`
	Weighted float64      `json:"weighted"`
}

// Pipeline holds the deal metrics. Total and Weighted include every deal,
// closed stages too.
type Pipeline struct {
	Total    float64        `json:"total"`
	Weighted float64        `json:"weighted"`
	Count    int            `json:"count"`
	Stages   []StageSummary `json:"stages"`
}

// PipelineOf computes the pipeline for deals. Stages are reported in pipeline
// order; deals with an unknown stage count toward the totals only.
func PipelineOf(deals []models.Deal) Pipeline {
	stages := models.AllStages()
	byStage := make(map[models.Stage]*StageSummary, len(stages))
	p := Pipeline{Stages: make([]StageSummary, len(stages))}
	for i, stage := range stages {
		p.Stages[i].Stage = stage
		byStage[stage] = &p.Stages[i]
	}

	for _, d := range deals {
		weighted := d.Weighted()
		p.Total += d.Value
		p.Weighted += weighted
		p.Count++
		if s, ok := byStage[d.Stage]; ok {
			s.Count++
			s.Value += d.Value
			s.Weighted += weighted
		}
	}
	return p
}

// Stage returns the summary for one stage.
func (p Pipeline) Stage(stage models.Stage) StageSummary {
	for _, s := range p.Stages {
		if s.Stage == stage {
			return s
		}
	}
	return StageSummary{Stage: stage}
}

// TaskStats are the task aggregates shown above the task list.
type TaskStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
	DueSoon   int `json:"due_soon"`
}

// TaskStatsOf counts tasks relative to today. Pending means not completed;
// overdue and due-soon follow models.Classify.
func TaskStatsOf(tasks []models.Task, today models.Date) TaskStats {
	stats := TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Status == models.TaskCompleted {
			stats.Completed++
		} else {
			stats.Pending++
		}
		switch models.Classify(t, today) {
		case models.DueOverdue:
			stats.Overdue++
		case models.DueSoon:
			stats.DueSoon++
		}
	}
	return stats
}
