package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/darkf/ecs-pong/ecs"
)

type Report struct {
	Duration   time.Duration
	Entities   int
	Collidable float64
	Churn      int
	Systems    int

	TotalUpdates   int64
	TotalTime      time.Duration
	Collisions     int64
	UpdateTime     Stats
	Storage        ecs.StorageStats
	Scheduler      *ecs.SchedulerStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min, s.Max = s.Samples[0], s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# ECS Stress Test Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Collidable Fraction:** {{printf "%.2f" .Collidable}}
- **Churn per Frame:** {{.Churn}}
- **Systems:** {{.Systems}}

## Results
- **Frames:** {{.TotalUpdates}}
- **Total Time:** {{.TotalTime}}
- **Collision Events:** {{.Collisions}}
- **Frame Time:** avg {{.UpdateTime.Avg}}, min {{.UpdateTime.Min}}, max {{.UpdateTime.Max}}
{{range .Scheduler.Systems}}
  - {{.Name}}: avg {{.AvgDuration}}, max {{.MaxDuration}}
{{- end}}

## Storage
- **Live Entities:** {{.Storage.TotalEntityCount}} ({{.Storage.EmptyEntityCount}} empty)
- **Archetypes:** {{.Storage.ArchetypeCount}}
{{range .Storage.ArchetypeBreakdown}}
  - {{.EntityCount}} x {{join .ComponentTypes}}
{{- end}}

## Memory
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} MiB -> {{mb .MemStatsEnd.HeapAlloc}} MiB
- Total Alloc: {{mb .MemStatsStart.TotalAlloc}} MiB -> {{mb .MemStatsEnd.TotalAlloc}} MiB
- Sys Memory:  {{mb .MemStatsStart.Sys}} MiB -> {{mb .MemStatsEnd.Sys}} MiB
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pauses
- **Total GC Pause:** {{ns .MemStatsEnd.PauseTotalNs}}
{{end}}`

func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"join": func(names []string) string {
			return fmt.Sprint(names)
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
