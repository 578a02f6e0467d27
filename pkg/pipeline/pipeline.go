// Package pipeline orchestrates ingestion of one law at a time: history
// fetch, version selection, version fetch, provision extraction and
// definition mining.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/coolbeans/slovlex/pkg/extract"
	"github.com/coolbeans/slovlex/pkg/fetch"
	"github.com/coolbeans/slovlex/pkg/history"
	"github.com/coolbeans/slovlex/pkg/types"
)

// ErrNoProvisions marks a page that matched the expected markers but
// yielded nothing usable.
var ErrNoProvisions = errors.New("pipeline: no provisions extracted")

// ErrAllLawsFailed is returned by Run when not a single law succeeded.
var ErrAllLawsFailed = errors.New("pipeline: all laws failed")

// Fetcher is the capability contract the pipeline needs from the fetch
// collaborator.
type Fetcher interface {
	Get(ctx context.Context, url string) (*fetch.Result, error)
	HistoryURL(year, number int) string
	ResolveLink(link string) (string, error)
}

// Pipeline ingests laws against a fixed reference date. It holds no
// per-law state; laws are processed independently.
type Pipeline struct {
	fetcher       Fetcher
	referenceDate string
	log           zerolog.Logger
}

// New creates a Pipeline. referenceDate is ISO YYYY-MM-DD.
func New(fetcher Fetcher, referenceDate string, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		fetcher:       fetcher,
		referenceDate: referenceDate,
		log:           log,
	}
}

// IngestLaw runs the full pipeline for one law and returns its
// ParsedAct. Any failure aborts only this law's ingestion.
func (p *Pipeline) IngestLaw(ctx context.Context, law types.TargetLaw) (*types.ParsedAct, error) {
	historyPage, err := p.fetcher.Get(ctx, p.fetcher.HistoryURL(law.Year, law.Number))
	if err != nil {
		return nil, fmt.Errorf("fetching history: %w", err)
	}

	entries, err := history.ParseHistoryEntries(historyPage.Body)
	if err != nil {
		return nil, err
	}

	selection, err := history.SelectHistoryEntry(entries, p.referenceDate)
	if err != nil {
		return nil, err
	}

	versionURL, err := p.fetcher.ResolveLink(selection.Entry.Link)
	if err != nil {
		return nil, err
	}

	versionPage, err := p.fetcher.Get(ctx, versionURL)
	if err != nil {
		return nil, fmt.Errorf("fetching version: %w", err)
	}

	doc, err := extract.ParseVersionPage(versionPage.Body)
	if err != nil {
		return nil, err
	}
	if len(doc.Provisions) == 0 {
		return nil, ErrNoProvisions
	}

	act := &types.ParsedAct{
		LawID:       law.ID,
		Year:        law.Year,
		Number:      law.Number,
		Title:       law.Title,
		ShortTitle:  law.ShortTitle,
		FullTitle:   doc.Title,
		Status:      selection.Status,
		IssuedDate:  doc.IssuedDate,
		InForceDate: selection.FirstInForceDate,
		SourceURL:   versionPage.URL,
		Provisions:  doc.Provisions,
		Definitions: extract.MineDefinitions(doc.Provisions),
	}

	p.log.Info().
		Str("law_id", law.ID).
		Str("status", string(act.Status)).
		Int("provisions", len(act.Provisions)).
		Int("definitions", len(act.Definitions)).
		Msg("law ingested")

	return act, nil
}

// LawResult is one law's outcome within a run.
type LawResult struct {
	LawID string `json:"law_id"`

	// Error is the failure reason, empty on success.
	Error string `json:"error,omitempty"`

	Act *types.ParsedAct `json:"-"`
}

// RunSummary collects per-law outcomes of one ingestion run.
type RunSummary struct {
	ReferenceDate string      `json:"reference_date"`
	Results       []LawResult `json:"results"`
	Succeeded     int         `json:"succeeded"`
	Failed        int         `json:"failed"`
}

// Acts returns the successfully ingested acts in run order.
func (s *RunSummary) Acts() []types.ParsedAct {
	acts := make([]types.ParsedAct, 0, s.Succeeded)
	for _, result := range s.Results {
		if result.Act != nil {
			acts = append(acts, *result.Act)
		}
	}
	return acts
}

// Run ingests every law, containing per-law failures. The run as a
// whole fails only when zero laws succeeded.
func (p *Pipeline) Run(ctx context.Context, laws []types.TargetLaw) (*RunSummary, error) {
	summary := &RunSummary{ReferenceDate: p.referenceDate}

	for _, law := range laws {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result := LawResult{LawID: law.ID}
		act, err := p.IngestLaw(ctx, law)
		if err != nil {
			result.Error = err.Error()
			summary.Failed++
			p.log.Error().Str("law_id", law.ID).Err(err).Msg("law ingestion failed")
		} else {
			result.Act = act
			summary.Succeeded++
		}
		summary.Results = append(summary.Results, result)
	}

	if summary.Succeeded == 0 && len(laws) > 0 {
		return summary, ErrAllLawsFailed
	}
	return summary, nil
}
