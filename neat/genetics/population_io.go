package genetics

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// WritePopulation serializes every genome in p, in plain text format, as a
// sequence of WriteGenomeText records separated by blank lines.
func WritePopulation(w io.Writer, p *Population) error {
	for i, g := range p.Genomes {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := WriteGenomeText(w, g); err != nil {
			return errors.Wrapf(err, "failed to write genome %d", g.Id)
		}
	}
	return nil
}

// ReadPopulationGenomes decodes a sequence of WriteGenomeText records
// written by WritePopulation into a plain genome slice, without
// reconstructing a Population (species membership and the innovation
// registry are generation-scoped and are not persisted).
func ReadPopulationGenomes(r io.Reader) ([]*Genome, error) {
	var genomes []*Genome
	scanner := bufio.NewScanner(r)
	var buf []string
	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		g, err := ReadGenomeText(newLineReader(buf))
		if err != nil {
			return err
		}
		genomes = append(genomes, g)
		buf = nil
		return nil
	}
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		buf = append(buf, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return genomes, nil
}

// lineReader replays a slice of lines as an io.Reader, one newline-joined
// chunk, so ReadGenomeText's line scanner can consume it directly.
type lineReader struct {
	lines []string
	pos   int
	rest  []byte
}

func newLineReader(lines []string) *lineReader {
	return &lineReader{lines: lines}
}

func (r *lineReader) Read(p []byte) (int, error) {
	for len(r.rest) == 0 {
		if r.pos >= len(r.lines) {
			return 0, io.EOF
		}
		r.rest = append([]byte(r.lines[r.pos]), '\n')
		r.pos++
	}
	n := copy(p, r.rest)
	r.rest = r.rest[n:]
	return n, nil
}
