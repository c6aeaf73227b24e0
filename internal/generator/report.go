package generator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type ReportSignal struct {
	Code     string `json:"code"`
	Stage    string `json:"stage"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	File     string `json:"file,omitempty"`
}

type StageMetric struct {
	Name       string             `json:"name"`
	Status     string             `json:"status"`
	StartedAt  string             `json:"started_at"`
	FinishedAt string             `json:"finished_at"`
	DurationMS int64              `json:"duration_ms"`
	Counters   map[string]float64 `json:"counters,omitempty"`
	Error      string             `json:"error,omitempty"`
}

type FileMetric struct {
	Path        string   `json:"path"`
	Status      string   `json:"status"`
	Generated   []string `json:"generated,omitempty"`
	Passthrough []string `json:"passthrough,omitempty"`
	Headings    int      `json:"headings"`
	Unresolved  []string `json:"unresolved,omitempty"`
	Error       string   `json:"error,omitempty"`
}

type ReportSummary struct {
	StageCount        int            `json:"stage_count"`
	FileCount         int            `json:"file_count"`
	FailedFiles       int            `json:"failed_files"`
	FailedStages      int            `json:"failed_stages"`
	UnresolvedLinks   int            `json:"unresolved_links"`
	SignalsBySeverity map[string]int `json:"signals_by_severity"`
}

// Report records what one generator run did, stage by stage and file by
// file.
type Report struct {
	Version     string         `json:"version"`
	GeneratedAt string         `json:"generated_at"`
	Target      string         `json:"target"`
	Stages      []StageMetric  `json:"stages"`
	Files       []FileMetric   `json:"files,omitempty"`
	Signals     []ReportSignal `json:"signals,omitempty"`
	Summary     ReportSummary  `json:"summary"`
}

type StageHandle struct {
	name    string
	started time.Time
}

func NewReport(target string) *Report {
	return &Report{
		Version:     "v1",
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Target:      target,
		Stages:      []StageMetric{},
	}
}

func (r *Report) BeginStage(name string) StageHandle {
	return StageHandle{name: strings.TrimSpace(name), started: time.Now().UTC()}
}

func (r *Report) EndStage(h StageHandle, counters map[string]float64, err error) {
	if r == nil || h.name == "" {
		return
	}
	finished := time.Now().UTC()
	m := StageMetric{
		Name:       h.name,
		Status:     "ok",
		StartedAt:  h.started.Format(time.RFC3339Nano),
		FinishedAt: finished.Format(time.RFC3339Nano),
		DurationMS: finished.Sub(h.started).Milliseconds(),
		Counters:   cleanCounters(counters),
	}
	if err != nil {
		m.Status = "error"
		m.Error = err.Error()
	}
	r.Stages = append(r.Stages, m)
}

func (r *Report) AddSignal(code, stage, severity, file, message string) {
	if r == nil {
		return
	}
	s := ReportSignal{
		Code:     strings.TrimSpace(code),
		Stage:    strings.TrimSpace(stage),
		Severity: strings.ToLower(strings.TrimSpace(severity)),
		Message:  strings.TrimSpace(message),
		File:     file,
	}
	if s.Code == "" || s.Stage == "" || s.Severity == "" || s.Message == "" {
		return
	}
	r.Signals = append(r.Signals, s)
}

func (r *Report) AddFile(m FileMetric) {
	if r == nil || m.Path == "" {
		return
	}
	r.Files = append(r.Files, m)
}

func (r *Report) Finalize() {
	if r == nil {
		return
	}
	severityCount := map[string]int{
		"critical": 0,
		"warning":  0,
		"info":     0,
	}
	sort.SliceStable(r.Signals, func(i, j int) bool {
		return signalPriority(r.Signals[i].Severity) > signalPriority(r.Signals[j].Severity)
	})
	for _, s := range r.Signals {
		severityCount[s.Severity]++
	}

	failedStages := 0
	for _, st := range r.Stages {
		if st.Status != "ok" {
			failedStages++
		}
	}
	failedFiles, unresolved := 0, 0
	for _, f := range r.Files {
		if f.Status != "ok" {
			failedFiles++
		}
		unresolved += len(f.Unresolved)
	}

	r.Summary = ReportSummary{
		StageCount:        len(r.Stages),
		FileCount:         len(r.Files),
		FailedFiles:       failedFiles,
		FailedStages:      failedStages,
		UnresolvedLinks:   unresolved,
		SignalsBySeverity: severityCount,
	}
}

func (r *Report) Save(path string) error {
	if r == nil {
		return nil
	}
	r.Finalize()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0644)
}

func cleanCounters(raw map[string]float64) map[string]float64 {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		key := strings.TrimSpace(k)
		if key == "" {
			continue
		}
		out[key] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func signalPriority(severity string) int {
	switch severity {
	case "critical":
		return 3
	case "warning":
		return 2
	default:
		return 1
	}
}
