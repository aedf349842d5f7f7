package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
)

// Summary tallies a batch run.
type Summary struct {
	Processed int `json:"processed"`
	Qualified int `json:"qualified"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// ProcessURLs runs each candidate through ProcessURL. A failing candidate is
// counted and logged, never aborts the batch.
func (p *Pipeline) ProcessURLs(ctx context.Context, urls []string, opts Options) ([]*model.Lead, Summary) {
	var leads []*model.Lead
	var summary Summary

	for _, rawURL := range urls {
		if ctx.Err() != nil {
			zap.L().Warn("pipeline: batch cancelled",
				zap.Int("remaining", len(urls)-summary.Processed-summary.Skipped-summary.Failed))
			break
		}

		outcome, err := p.processSafely(ctx, rawURL, opts)
		switch {
		case err != nil:
			summary.Failed++
			zap.L().Error("pipeline: candidate failed", zap.String("url", rawURL), zap.Error(err))
		case outcome.Skipped:
			summary.Skipped++
		default:
			summary.Processed++
			if outcome.Lead.Qualification.Qualified {
				summary.Qualified++
			}
			leads = append(leads, outcome.Lead)
		}
	}

	zap.L().Info("pipeline: batch complete",
		zap.Int("processed", summary.Processed),
		zap.Int("qualified", summary.Qualified),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed))
	return leads, summary
}

// ProcessSamples runs the pilot seed list, honoring each sample's segment.
func (p *Pipeline) ProcessSamples(ctx context.Context, samples []config.Sample, opts Options) ([]*model.Lead, Summary) {
	var leads []*model.Lead
	var total Summary

	for _, sample := range samples {
		sampleOpts := opts
		sampleOpts.Segment = model.Segment(sample.Segment)
		if sampleOpts.Source == "" {
			sampleOpts.Source = "sample"
		}

		batch, summary := p.ProcessURLs(ctx, []string{sample.URL}, sampleOpts)
		leads = append(leads, batch...)
		total.Processed += summary.Processed
		total.Qualified += summary.Qualified
		total.Skipped += summary.Skipped
		total.Failed += summary.Failed
	}
	return leads, total
}

// SearchAndProcess discovers candidates for a segment and processes them.
func (p *Pipeline) SearchAndProcess(ctx context.Context, segment model.Segment, max int, opts Options) ([]*model.Lead, Summary, error) {
	if p.deps.Finder == nil {
		return nil, Summary{}, eris.New("pipeline: no store searcher configured")
	}

	urls, err := p.deps.Finder.SearchStores(ctx, segment, max)
	if err != nil {
		return nil, Summary{}, eris.Wrap(err, "pipeline: store search")
	}

	opts.Segment = segment
	if opts.Source == "" {
		opts.Source = "search"
	}
	leads, summary := p.ProcessURLs(ctx, urls, opts)
	return leads, summary, nil
}

// processSafely isolates one candidate, converting panics into errors.
func (p *Pipeline) processSafely(ctx context.Context, rawURL string, opts Options) (outcome *Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.Errorf("pipeline: panic processing %s: %v", rawURL, r)
		}
	}()
	return p.ProcessURL(ctx, rawURL, opts)
}

// SaveJSON writes the batch of leads to a timestamped JSON file in dir and
// returns the path.
func SaveJSON(leads []*model.Lead, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrap(err, "pipeline: create output dir")
	}

	path := filepath.Join(dir, "leads_"+time.Now().UTC().Format("20060102_150405")+".json")
	data, err := json.MarshalIndent(leads, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "pipeline: marshal leads")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", eris.Wrap(err, "pipeline: write leads file")
	}

	zap.L().Info("pipeline: leads saved", zap.String("path", path), zap.Int("count", len(leads)))
	return path, nil
}
