// Command dnars encodes and decodes DNA sequences with Reed-Solomon error
// correction, and benchmarks the block pipeline under injected substitution
// errors.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ShamindaKanchana/RS-codes/dna"
	"github.com/ShamindaKanchana/RS-codes/pipeline"
	"github.com/ShamindaKanchana/RS-codes/rs"

	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "dnars",
		Usage: "Reed-Solomon error correction for DNA storage",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "n", Value: rs.DefaultN, Usage: "codeword length in symbols"},
			&cli.IntFlag{Name: "k", Value: rs.DefaultK, Usage: "data bases per block"},
			&cli.StringFlag{Name: "log-level", Value: "error", Usage: "log level (debug, info, warn, error)"},
		},
		Before: func(c *cli.Context) error {
			level, err := logging.LevelFromString(c.String("log-level"))
			if err != nil {
				return err
			}
			logging.SetAllLoggers(level)
			return nil
		},
		Commands: []*cli.Command{
			encodeCommand(),
			decodeCommand(),
			benchCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "dnars:", err)
		os.Exit(1)
	}
}

func newCodec(c *cli.Context) (*rs.Codec, error) {
	return rs.NewCodec(c.Int("n"), c.Int("k"))
}

func encodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "encode",
		Usage: "encode a sequence file into blocks with hex parity",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Value: "-", Usage: "input sequence file (- for stdin)"},
			&cli.StringFlag{Name: "out", Value: "-", Usage: "output file (- for stdout)"},
		},
		Action: func(c *cli.Context) error {
			codec, err := newCodec(c)
			if err != nil {
				return err
			}
			seq, err := readSequence(c.String("in"))
			if err != nil {
				return err
			}
			out, closeOut, err := openOutput(c.String("out"))
			if err != nil {
				return err
			}
			defer closeOut()

			w := bufio.NewWriter(out)
			fmt.Fprintf(w, "# dnars n=%d k=%d length=%d\n", codec.N(), codec.K(), len(seq))
			for i, block := range dna.Split(seq, codec.K()) {
				data, ecc, err := codec.Encode(block)
				if err != nil {
					return fmt.Errorf("block %d: %w", i, err)
				}
				fmt.Fprintf(w, "%s\t%s\n", data, hex.EncodeToString(ecc))
			}
			return w.Flush()
		},
	}
}

func decodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "decode",
		Usage: "decode an encoded block file back into a sequence",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Value: "-", Usage: "encoded block file (- for stdin)"},
			&cli.StringFlag{Name: "out", Value: "-", Usage: "output file (- for stdout)"},
		},
		Action: func(c *cli.Context) error {
			codec, err := newCodec(c)
			if err != nil {
				return err
			}
			in, closeIn, err := openInput(c.String("in"))
			if err != nil {
				return err
			}
			defer closeIn()

			blocks, length, corrected, failed, err := decodeBlocks(codec, in)
			if err != nil {
				return err
			}
			seq, err := dna.Recombine(blocks, length)
			if err != nil {
				return err
			}
			out, closeOut, err := openOutput(c.String("out"))
			if err != nil {
				return err
			}
			defer closeOut()
			if _, err := io.WriteString(out, seq+"\n"); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "decoded %d blocks, corrected %d errors, %d failed\n",
				len(blocks), corrected, failed)
			return nil
		},
	}
}

// decodeBlocks reads "DATA\tHEXPARITY" lines. Blocks that fail to decode
// keep their received data so the rest of the file still comes through.
func decodeBlocks(codec *rs.Codec, in io.Reader) (blocks []string, length, corrected, failed int, err error) {
	length = -1
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			_, _ = fmt.Sscanf(line, "# dnars n=%d k=%d length=%d", new(int), new(int), &length)
			continue
		}
		data, hexEcc, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, 0, 0, 0, fmt.Errorf("line %d: expected DATA<TAB>PARITY", len(blocks)+1)
		}
		ecc, err := hex.DecodeString(hexEcc)
		if err != nil {
			return nil, 0, 0, 0, fmt.Errorf("block %d: bad parity hex: %w", len(blocks), err)
		}
		decoded, fixed, err := codec.Decode(data, ecc)
		if err != nil {
			failed++
			decoded = strings.ToUpper(data)
		}
		corrected += fixed
		blocks = append(blocks, decoded)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, 0, 0, err
	}
	if length < 0 {
		length = len(blocks) * codec.K()
	}
	return blocks, length, corrected, failed, nil
}

func benchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "round-trip a random sequence under injected substitution errors",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "length", Value: 1_000_000, Usage: "sequence length in bases"},
			&cli.IntFlag{Name: "errors", Value: 2, Usage: "substitution errors injected per block"},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "seed for sequence and error injection"},
			&cli.IntSliceFlag{Name: "workers", Value: cli.NewIntSlice(0), Usage: "worker counts to run (0 = NumCPU)"},
		},
		Action: func(c *cli.Context) error {
			codec, err := newCodec(c)
			if err != nil {
				return err
			}
			seq := pipeline.RandomSequence(c.Int("length"), c.Int64("seed"))
			model := pipeline.Substitutions(c.Int("errors"), c.Int64("seed"))

			for _, workers := range c.IntSlice("workers") {
				opts := []pipeline.Option{pipeline.WithErrorModel(model)}
				if workers > 0 {
					opts = append(opts, pipeline.WithWorkers(workers))
				}
				p, err := pipeline.New(codec, opts...)
				if err != nil {
					return err
				}
				out, stats, err := p.Process(seq)
				if err != nil {
					return err
				}
				match := "match"
				if out != seq {
					match = "MISMATCH"
				}
				fmt.Printf("%s output=%s\n", stats, match)
			}
			return nil
		},
	}
}

func readSequence(path string) (string, error) {
	in, closeIn, err := openInput(path)
	if err != nil {
		return "", err
	}
	defer closeIn()
	raw, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	seq := strings.Join(strings.Fields(string(raw)), "")
	if err := dna.Validate(seq); err != nil {
		return "", err
	}
	return seq, nil
}

func openInput(path string) (io.Reader, func() error, error) {
	if path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
