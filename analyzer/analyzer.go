/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analyzer

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lablens/lablens/compose"
	"github.com/lablens/lablens/lab"
	"github.com/lablens/lablens/logging"
	"github.com/lablens/lablens/metrics"
)

// Source tells whether a result came from the model or the local fallback.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// FallbackReason explains why a fallback result was produced.
type FallbackReason string

const (
	ReasonNone                FallbackReason = ""
	ReasonMissingAPIKey       FallbackReason = "missing_api_key"
	ReasonUnsupportedProvider FallbackReason = "unsupported_provider"
	ReasonProviderError       FallbackReason = "provider_error"
	ReasonParseError          FallbackReason = "parse_error"
	ReasonUnsupportedDocument FallbackReason = "unsupported_document"
	ReasonEmptyResponse       FallbackReason = "empty_response"
)

// Kind is the operation an event describes.
type Kind string

const (
	KindAnalysis       Kind = "analysis"
	KindPatientMessage Kind = "patient_message"
	KindStaffMessage   Kind = "staff_message"
)

// AnalysisOutcome is the result of Analyze. Panel is always usable; on
// fallback it holds the mock panel.
type AnalysisOutcome struct {
	Panel          lab.LabPanel   `json:"panel"`
	Source         Source         `json:"source"`
	FallbackReason FallbackReason `json:"fallbackReason,omitempty"`
	Provider       Provider       `json:"provider"`
	Model          string         `json:"model,omitempty"`
	Raw            string         `json:"-"`
	Duration       time.Duration  `json:"duration"`
	Err            error          `json:"-"`
}

// Degraded reports whether the outcome is a fallback.
func (o AnalysisOutcome) Degraded() bool {
	return o.Source == SourceFallback
}

// MessageOutcome is the rendered HTML of a patient or staff message.
type MessageOutcome struct {
	Kind           Kind           `json:"kind"`
	HTML           string         `json:"html"`
	Source         Source         `json:"source"`
	FallbackReason FallbackReason `json:"fallbackReason,omitempty"`
	Provider       Provider       `json:"provider"`
	Model          string         `json:"model,omitempty"`
	Duration       time.Duration  `json:"duration"`
	Err            error          `json:"-"`
}

// Degraded reports whether the outcome is a fallback.
func (o MessageOutcome) Degraded() bool {
	return o.Source == SourceFallback
}

// Event summarizes one outcome without any lab values.
type Event struct {
	Kind           Kind
	Provider       Provider
	Model          string
	Source         Source
	FallbackReason FallbackReason
	LabType        string
	PeriodCount    int
	TestCount      int
	Duration       time.Duration
}

// Recorder stores outcome events.
type Recorder interface {
	RecordEvent(ctx context.Context, ev Event) error
}

var llmLogger = logging.Logger(logging.SourceLLM)

// Analyzer runs extraction and message generation against the provider
// named in each call's Config.
type Analyzer struct {
	newClient ClientFactory
	recorder  Recorder
	logger    *log.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithRecorder stores an event for every outcome.
func WithRecorder(r Recorder) Option {
	return func(a *Analyzer) {
		a.recorder = r
	}
}

// WithClientFactory replaces the provider client constructor.
func WithClientFactory(f ClientFactory) Option {
	return func(a *Analyzer) {
		a.newClient = f
	}
}

// New returns an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		newClient: NewClient,
		logger:    llmLogger,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// precheck returns the reason a call cannot be attempted, if any.
func precheck(cfg Config) (FallbackReason, error) {
	if !cfg.Provider.Supported() {
		return ReasonUnsupportedProvider, errUnsupportedProvider
	}

	if !cfg.HasCredentials() {
		if cfg.Provider == ProviderOllama {
			return ReasonMissingAPIKey, errOllamaURLRequired
		}

		return ReasonMissingAPIKey, errMissingAPIKey
	}

	return ReasonNone, nil
}

func reasonFor(err error) FallbackReason {
	switch {
	case errors.Is(err, ErrUnsupportedDocument), errors.Is(err, errPDFHasNoText):
		return ReasonUnsupportedDocument
	case errors.Is(err, errEmptyResponse):
		return ReasonEmptyResponse
	case errors.Is(err, lab.ErrNoJSONObject), errors.Is(err, lab.ErrInvalidExtraction):
		return ReasonParseError
	}

	return ReasonProviderError
}

// complete runs one provider call under the configured timeout.
func (a *Analyzer) complete(ctx context.Context, cfg Config, operation string, req Request) (string, error) {
	client, err := a.newClient(cfg)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.EffectiveTimeout())
	defer cancel()

	start := time.Now()
	text, err := client.Complete(ctx, req)
	metrics.ObserveLLMRequest(string(cfg.Provider), operation, time.Since(start))

	return text, err
}

// Analyze extracts a lab panel from doc. It never fails: when the provider
// cannot be used or its reply cannot be parsed the mock panel is returned
// with the reason recorded.
func (a *Analyzer) Analyze(ctx context.Context, cfg Config, doc Document) AnalysisOutcome {
	start := time.Now()
	out := AnalysisOutcome{
		Provider: cfg.Provider,
		Model:    cfg.EffectiveModel(),
	}

	fallback := func(reason FallbackReason, err error) AnalysisOutcome {
		out.Panel = lab.MockPanel()
		out.Source = SourceFallback
		out.FallbackReason = reason
		out.Err = err
		return out
	}

	out = func() AnalysisOutcome {
		if reason, err := precheck(cfg); err != nil {
			return fallback(reason, err)
		}

		if !doc.Supported() {
			return fallback(ReasonUnsupportedDocument, ErrUnsupportedDocument)
		}

		text, err := a.complete(ctx, cfg, string(KindAnalysis), Request{
			Prompt:    analysisPrompt,
			Document:  &doc,
			MaxTokens: cfg.EffectiveMaxTokens(analysisMaxTokens),
			JSON:      true,
		})
		if err != nil {
			return fallback(reasonFor(err), err)
		}
		out.Raw = text

		panel, err := lab.ParseExtraction(text)
		if err != nil {
			return fallback(ReasonParseError, err)
		}

		out.Panel = panel
		out.Source = SourceModel
		return out
	}()
	out.Duration = time.Since(start)

	metrics.RecordAnalysis(string(out.Provider), string(out.Source), string(out.FallbackReason))
	a.logOutcome(KindAnalysis, out.Provider, out.Model, out.Source, out.FallbackReason, out.Err, out.Duration,
		"lab_type", out.Panel.LabType, "periods", len(out.Panel.TimePeriods), "tests", out.Panel.TestCount())
	a.record(ctx, Event{
		Kind:           KindAnalysis,
		Provider:       out.Provider,
		Model:          out.Model,
		Source:         out.Source,
		FallbackReason: out.FallbackReason,
		LabType:        out.Panel.LabType,
		PeriodCount:    len(out.Panel.TimePeriods),
		TestCount:      out.Panel.TestCount(),
		Duration:       out.Duration,
	})

	return out
}

// PatientMessage writes a patient-facing summary of panel.
func (a *Analyzer) PatientMessage(ctx context.Context, cfg Config, panel lab.LabPanel) MessageOutcome {
	return a.message(ctx, cfg, panel, KindPatientMessage)
}

// StaffMessage writes a clinical summary of panel for staff.
func (a *Analyzer) StaffMessage(ctx context.Context, cfg Config, panel lab.LabPanel) MessageOutcome {
	return a.message(ctx, cfg, panel, KindStaffMessage)
}

func (a *Analyzer) message(ctx context.Context, cfg Config, panel lab.LabPanel, kind Kind) MessageOutcome {
	start := time.Now()
	out := MessageOutcome{
		Kind:     kind,
		Provider: cfg.Provider,
		Model:    cfg.EffectiveModel(),
	}

	fallback := func(reason FallbackReason, err error) MessageOutcome {
		if kind == KindPatientMessage {
			out.HTML = compose.PatientMessage(panel)
		} else {
			out.HTML = compose.StaffMessage(panel)
		}
		out.Source = SourceFallback
		out.FallbackReason = reason
		out.Err = err
		return out
	}

	out = func() MessageOutcome {
		if reason, err := precheck(cfg); err != nil {
			return fallback(reason, err)
		}

		build := patientPrompt
		if kind == KindStaffMessage {
			build = staffPrompt
		}

		prompt, err := build(panel)
		if err != nil {
			return fallback(ReasonProviderError, err)
		}

		text, err := a.complete(ctx, cfg, string(kind), Request{
			Prompt:      prompt,
			MaxTokens:   cfg.EffectiveMaxTokens(messageMaxTokens),
			Temperature: messageTemperature,
		})
		if err != nil {
			return fallback(reasonFor(err), err)
		}

		if kind == KindPatientMessage {
			out.HTML = compose.LLMPatientHTML(text)
		} else {
			out.HTML = compose.LLMStaffHTML(text)
		}
		out.Source = SourceModel
		return out
	}()
	out.Duration = time.Since(start)

	metrics.RecordMessage(string(kind), string(out.Provider), string(out.Source), string(out.FallbackReason))
	a.logOutcome(kind, out.Provider, out.Model, out.Source, out.FallbackReason, out.Err, out.Duration)
	a.record(ctx, Event{
		Kind:           kind,
		Provider:       out.Provider,
		Model:          out.Model,
		Source:         out.Source,
		FallbackReason: out.FallbackReason,
		LabType:        panel.LabType,
		PeriodCount:    len(panel.TimePeriods),
		TestCount:      panel.TestCount(),
		Duration:       out.Duration,
	})

	return out
}

func (a *Analyzer) logOutcome(kind Kind, provider Provider, model string, source Source, reason FallbackReason, err error, d time.Duration, extra ...any) {
	fields := append([]any{
		"kind", kind,
		"provider", provider,
		"model", model,
		"source", source,
		"duration", d,
	}, extra...)

	if source == SourceFallback {
		fields = append(fields, "reason", reason, "error", err)
		a.logger.Warn("Using fallback result", fields...)
		return
	}

	a.logger.Info("Model result", fields...)
}

func (a *Analyzer) record(ctx context.Context, ev Event) {
	if a.recorder == nil {
		return
	}

	if err := a.recorder.RecordEvent(context.WithoutCancel(ctx), ev); err != nil {
		a.logger.Error("Failed to record analysis event", "kind", ev.Kind, "error", err)
	}
}
