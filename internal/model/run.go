package model

import "time"

// RunStatus represents the current state of an analysis run.
type RunStatus string

const (
	RunStatusQueued    RunStatus = "queued"
	RunStatusResolving RunStatus = "resolving"
	RunStatusFetching  RunStatus = "fetching"
	RunStatusScoring   RunStatus = "scoring"
	RunStatusComplete  RunStatus = "complete"
	RunStatusFailed    RunStatus = "failed"
)

// Request identifies one pipeline invocation: a ticker and the asset layer
// to analyze. Tickers are case-normalized to uppercase at the edge.
type Request struct {
	Ticker string     `json:"ticker"`
	Layer  AssetLayer `json:"layer"`
}

// NoticeCode classifies the degraded-confidence conditions the pipeline
// surfaces to the caller. The orchestrator never observes resolver
// failures directly; it only sees these.
type NoticeCode string

const (
	NoticeOfflineSnapshot NoticeCode = "offline_snapshot" // profile did not come from the live source
	NoticeHQProxy         NoticeCode = "hq_proxy"         // no curated facility; showing regional HQ risk
	NoticeDefaultLocation NoticeCode = "default_location" // geocoding failed; global fallback coordinate
	NoticeWeatherDegraded NoticeCode = "weather_degraded" // weather fetch failed; zero-valued conditions
	NoticeRiskUnavailable NoticeCode = "risk_unavailable" // no revenue baseline; risk not computable
)

// Notice is a user-visible degradation message.
type Notice struct {
	Code    NoticeCode `json:"code"`
	Message string     `json:"message"`
}

// PhaseStatus represents the current state of a pipeline phase.
type PhaseStatus string

const (
	PhaseStatusComplete PhaseStatus = "complete"
	PhaseStatusFailed   PhaseStatus = "failed"
	PhaseStatusSkipped  PhaseStatus = "skipped"
)

// PhaseResult holds the outcome of a pipeline phase.
type PhaseResult struct {
	Name     string         `json:"name"`
	Status   PhaseStatus    `json:"status"`
	Duration int64          `json:"duration_ms"`
	Error    string         `json:"error,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// AnalysisResult is the final output of the pipeline for one request.
type AnalysisResult struct {
	Request    Request                 `json:"request"`
	RunID      string                  `json:"run_id,omitempty"`
	Profile    FinancialProfile        `json:"profile"`
	Tier       Tier                    `json:"tier"`
	Location   ResolvedLocation        `json:"location"`
	Conditions EnvironmentalConditions `json:"conditions"`
	ESG        ESGRating               `json:"esg"`
	Risk       *RiskEstimate           `json:"risk,omitempty"`
	RiskLevel  RiskLevel               `json:"risk_level"`
	Headlines  []Headline              `json:"headlines,omitempty"`
	Notices    []Notice                `json:"notices,omitempty"`
	Phases     []PhaseResult           `json:"phases,omitempty"`
	Report     string                  `json:"report,omitempty"`
}

// Run represents a persisted analysis run.
type Run struct {
	ID        string          `json:"id"`
	Request   Request         `json:"request"`
	Status    RunStatus       `json:"status"`
	Result    *AnalysisResult `json:"result,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
