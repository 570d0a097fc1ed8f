package pipeline

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/ShamindaKanchana/RS-codes/dna"
	"github.com/ShamindaKanchana/RS-codes/rs"

	logging "github.com/ipfs/go-log/v2"
	"go.uber.org/multierr"
)

var log = logging.Logger("pipeline")

// ErrorModel mutates an encoded data block before it is decoded, simulating
// the substitution errors a synthesis/sequencing channel introduces. It is
// called concurrently and must derive any randomness from the block index.
type ErrorModel func(index int, block string) string

// Pipeline fans block encode/decode work out across a bounded worker pool
// and reassembles results in chunk-index order, so output is deterministic
// regardless of scheduling.
type Pipeline struct {
	codec   *rs.Codec
	workers int
	model   ErrorModel
}

// Option configures a Pipeline during construction.
type Option func(*Pipeline) error

// WithWorkers sets the worker pool size (default: runtime.NumCPU()).
func WithWorkers(n int) Option {
	return func(p *Pipeline) error {
		if n <= 0 {
			return fmt.Errorf("worker count must be positive, got %d", n)
		}
		p.workers = n
		return nil
	}
}

// WithErrorModel injects errors into each block between encode and decode.
func WithErrorModel(model ErrorModel) Option {
	return func(p *Pipeline) error {
		p.model = model
		return nil
	}
}

// New creates a pipeline around the given codec and applies options.
func New(codec *rs.Codec, opts ...Option) (*Pipeline, error) {
	if codec == nil {
		return nil, fmt.Errorf("codec is required")
	}
	p := &Pipeline{codec: codec, workers: runtime.NumCPU()}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Process splits seq into k-base blocks and runs each through
// encode -> error model -> decode, then recombines the decoded blocks in
// original order with the final block's padding stripped. Individual block
// failures never abort the run: they keep the block's received data in the
// output and are reported through the returned Stats, with the failures
// aggregated in Stats.Err. Process itself only fails on invalid input.
func (p *Pipeline) Process(seq string) (string, *Stats, error) {
	if len(seq) == 0 {
		return "", nil, fmt.Errorf("empty sequence")
	}
	if err := dna.Validate(seq); err != nil {
		return "", nil, err
	}

	start := time.Now()
	blocks := dna.Split(seq, p.codec.K())

	// one result slot per chunk index, each written exactly once by the
	// worker that owns the block, so no locking is needed
	decoded := make([]string, len(blocks))
	reports := make([]BlockReport, len(blocks))

	workers := p.workers
	if workers > len(blocks) {
		workers = len(blocks)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				decoded[i], reports[i] = p.processBlock(i, blocks[i])
			}
		}()
	}
	for i := range blocks {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	stats := &Stats{
		TotalBlocks: len(blocks),
		InputLength: len(seq),
		Workers:     workers,
		Reports:     reports,
	}
	for i := range reports {
		stats.ErrorsCorrected += reports[i].ErrorsCorrected
		if reports[i].Err != nil {
			stats.FailedBlocks++
			stats.Err = multierr.Append(stats.Err, fmt.Errorf("block %d: %w", i, reports[i].Err))
		}
	}
	stats.Duration = time.Since(start)

	out, err := dna.Recombine(decoded, len(seq))
	if err != nil {
		return "", nil, err
	}

	log.Debugw("sequence processed",
		"blocks", stats.TotalBlocks,
		"failed", stats.FailedBlocks,
		"corrected", stats.ErrorsCorrected,
		"duration", stats.Duration,
	)
	return out, stats, nil
}

// processBlock runs one block's encode-corrupt-decode cycle. On decode
// failure the received (uncorrected) data portion stands in for the block.
func (p *Pipeline) processBlock(index int, block string) (string, BlockReport) {
	report := BlockReport{Index: index}

	data, ecc, err := p.codec.Encode(block)
	if err != nil {
		report.Err = err
		return block, report
	}
	if p.model != nil {
		data = p.model(index, data)
	}

	corrected, fixed, err := p.codec.Decode(data, ecc)
	if err != nil {
		log.Debugw("block decode failed", "index", index, "err", err)
		report.Err = err
		return data, report
	}
	report.ErrorsCorrected = fixed
	return corrected, report
}
