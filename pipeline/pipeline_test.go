package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/ShamindaKanchana/RS-codes/dna"
	"github.com/ShamindaKanchana/RS-codes/rs"

	"go.uber.org/multierr"
)

func setupCodec(t *testing.T) *rs.Codec {
	t.Helper()
	codec, err := rs.NewCodec(rs.DefaultN, rs.DefaultK)
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}
	return codec
}

func TestNewValidation(t *testing.T) {
	codec := setupCodec(t)

	if _, err := New(nil); err == nil {
		t.Error("nil codec should fail")
	}
	if _, err := New(codec, WithWorkers(0)); err == nil {
		t.Error("zero workers should fail")
	}
	if _, err := New(codec, WithWorkers(-3)); err == nil {
		t.Error("negative workers should fail")
	}
	if _, err := New(codec, WithWorkers(4), WithErrorModel(nil)); err != nil {
		t.Errorf("valid options failed: %v", err)
	}
}

func TestProcessCleanRoundTrip(t *testing.T) {
	codec := setupCodec(t)
	p, err := New(codec)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	seq := RandomSequence(1234, 7)
	out, stats, err := p.Process(seq)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if out != seq {
		t.Error("output differs from input with no errors injected")
	}

	wantBlocks := (len(seq) + codec.K() - 1) / codec.K()
	if stats.TotalBlocks != wantBlocks {
		t.Errorf("TotalBlocks = %d, want %d", stats.TotalBlocks, wantBlocks)
	}
	if !stats.OK() || stats.FailedBlocks != 0 || stats.Err != nil {
		t.Errorf("clean run reported failures: %+v", stats)
	}
	if stats.ErrorsCorrected != 0 {
		t.Errorf("ErrorsCorrected = %d, want 0", stats.ErrorsCorrected)
	}
	if stats.CorrectionRate() != 1 {
		t.Errorf("CorrectionRate = %f, want 1", stats.CorrectionRate())
	}
	if len(stats.Reports) != wantBlocks {
		t.Errorf("got %d reports, want %d", len(stats.Reports), wantBlocks)
	}
}

func TestWorkerCountIndependence(t *testing.T) {
	codec := setupCodec(t)
	seq := RandomSequence(2002, 3)
	model := Substitutions(2, 42)
	blocks := (len(seq) + codec.K() - 1) / codec.K()

	var outputs []string
	var corrected []int
	for _, workers := range []int{1, 2, 8} {
		p, err := New(codec, WithWorkers(workers), WithErrorModel(model))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		out, stats, err := p.Process(seq)
		if err != nil {
			t.Fatalf("Process with %d workers failed: %v", workers, err)
		}
		if out != seq {
			t.Errorf("%d workers: output differs from input", workers)
		}
		if stats.FailedBlocks != 0 {
			t.Errorf("%d workers: %d failed blocks", workers, stats.FailedBlocks)
		}
		// the model flips exactly two data bases per block
		if stats.ErrorsCorrected != 2*blocks {
			t.Errorf("%d workers: ErrorsCorrected = %d, want %d", workers, stats.ErrorsCorrected, 2*blocks)
		}
		outputs = append(outputs, out)
		corrected = append(corrected, stats.ErrorsCorrected)
	}

	for i := 1; i < len(outputs); i++ {
		if outputs[i] != outputs[0] || corrected[i] != corrected[0] {
			t.Error("results depend on worker count")
		}
	}
}

func TestFailureIsolation(t *testing.T) {
	codec := setupCodec(t)
	seq := RandomSequence(5 * codec.K(), 11)

	// poison exactly one block with a base no decoder can accept
	model := func(index int, block string) string {
		if index == 1 {
			return "N" + block[1:]
		}
		return block
	}
	p, err := New(codec, WithErrorModel(model))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	out, stats, err := p.Process(seq)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if stats.FailedBlocks != 1 || stats.OK() {
		t.Errorf("FailedBlocks = %d, want 1", stats.FailedBlocks)
	}
	if !errors.Is(stats.Err, dna.ErrInvalidAlphabet) {
		t.Errorf("Stats.Err = %v, want ErrInvalidAlphabet", stats.Err)
	}
	if n := len(multierr.Errors(stats.Err)); n != 1 {
		t.Errorf("aggregated %d errors, want 1", n)
	}
	if stats.Reports[1].Err == nil {
		t.Error("report for the poisoned block has no error")
	}

	// siblings decode untouched; the poisoned block keeps its received data
	k := codec.K()
	if len(out) != len(seq) {
		t.Fatalf("output length = %d, want %d", len(out), len(seq))
	}
	if out[:k] != seq[:k] || out[2*k:] != seq[2*k:] {
		t.Error("blocks adjacent to the failure were altered")
	}
	if out[k:2*k] != "N"+seq[k+1:2*k] {
		t.Errorf("failed block = %q, want its received data", out[k:2*k])
	}
}

func TestProcessShortSequence(t *testing.T) {
	codec := setupCodec(t)
	p, err := New(codec)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	out, stats, err := p.Process("ACGT")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if out != "ACGT" {
		t.Errorf("output = %q, want %q (padding stripped)", out, "ACGT")
	}
	if stats.TotalBlocks != 1 {
		t.Errorf("TotalBlocks = %d, want 1", stats.TotalBlocks)
	}
}

func TestProcessValidation(t *testing.T) {
	codec := setupCodec(t)
	p, err := New(codec)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, _, err := p.Process(""); err == nil {
		t.Error("empty sequence should fail")
	}
	if _, _, err := p.Process("ACGTXACGT"); !errors.Is(err, dna.ErrInvalidAlphabet) {
		t.Errorf("invalid sequence error = %v, want ErrInvalidAlphabet", err)
	}
}

func TestStatsString(t *testing.T) {
	stats := &Stats{TotalBlocks: 4, FailedBlocks: 1, ErrorsCorrected: 6, InputLength: 44, Workers: 2}
	s := stats.String()
	for _, want := range []string{"blocks=4", "failed=1", "corrected=6", "75.00%"} {
		if !strings.Contains(s, want) {
			t.Errorf("Stats.String() = %q, missing %q", s, want)
		}
	}
}
