package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"youtube-stats/models"
	"youtube-stats/services"
	"youtube-stats/storage"
	"youtube-stats/utils"
)

// Stage names used when wrapping stage failures.
const (
	StageExtract  = "extract_transform"
	StageValidate = "validate"
	StageLoad     = "load"
)

// Extractor produces the run's dataset. *services.Assembler satisfies it.
type Extractor interface {
	Assemble(ctx context.Context) (*models.Dataset, error)
}

// Options control a Pipeline.
type Options struct {
	// DryRun stops after validation; nothing is loaded.
	DryRun bool
}

// Result describes a completed run.
type Result struct {
	RunID       string
	Rows        int
	Destination string
	StartedAt   time.Time
	Elapsed     time.Duration
	Dataset     *models.Dataset
}

// Pipeline runs extract/transform, validation and load strictly in order.
type Pipeline struct {
	extractor Extractor
	loader    storage.DatasetLoader
	opts      Options
	logger    *utils.Logger
}

// New creates a Pipeline. loader may be nil only for dry runs.
func New(extractor Extractor, loader storage.DatasetLoader, opts Options, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		loader:    loader,
		opts:      opts,
		logger:    logger,
	}
}

// ExtractAndTransform fetches the listing and builds a fresh dataset.
func (p *Pipeline) ExtractAndTransform(ctx context.Context) (*models.Dataset, error) {
	return p.extractor.Assemble(ctx)
}

// Validate checks the dataset against the fixed schema.
func (p *Pipeline) Validate(ds *models.Dataset) error {
	return services.Validate(ds)
}

// Load replaces the warehouse table with the dataset.
func (p *Pipeline) Load(ctx context.Context, ds *models.Dataset) error {
	if p.loader == nil {
		return errors.New("no warehouse loader configured")
	}
	return p.loader.Load(ctx, ds)
}

// Run executes one full run. The first failing stage aborts the run and its error is
// returned wrapped with the stage name.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	res := &Result{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	log := p.logger.With("run", res.RunID)
	log.Info("[pipeline] Run started")

	ds, err := p.ExtractAndTransform(ctx)
	if err != nil {
		log.Error("[pipeline] %s failed: %v", StageExtract, err)
		return nil, errors.Wrap(err, StageExtract)
	}
	res.Rows = ds.Len()
	res.Dataset = ds
	log.Info("[pipeline] Extracted %d rows", res.Rows)

	if err := p.Validate(ds); err != nil {
		log.Error("[pipeline] %s failed: %v", StageValidate, err)
		return nil, errors.Wrap(err, StageValidate)
	}
	log.Info("[pipeline] Dataset passed validation")

	if p.opts.DryRun {
		log.Info("[pipeline] Dry run, skipping load")
	} else {
		if err := p.Load(ctx, ds); err != nil {
			log.Error("[pipeline] %s failed: %v", StageLoad, err)
			return nil, errors.Wrap(err, StageLoad)
		}
		res.Destination = p.loader.Destination()
		log.Info("[pipeline] Loaded %d rows into %s", res.Rows, res.Destination)
	}

	res.Elapsed = time.Since(res.StartedAt)
	log.Info("[pipeline] Run finished in %s", res.Elapsed.Round(time.Millisecond))
	return res, nil
}
