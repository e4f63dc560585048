// Package qcio implements the circuit file format: a header of
// opaque lines preserved verbatim, followed by one textual operator
// line per gate. Preprocess opens the input file itself; Write renders
// to any io.Writer, and its caller creates the output file.
package qcio

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/qcpm/qcpmgo/internal/gate"
	"github.com/qcpm/qcpmgo/internal/qcerr"
)

// reservedDeclarations are line prefixes that belong in the header
// even though they appear interleaved with operator lines in some
// dialects (register declarations and the like).
var reservedDeclarations = []string{"OPENQASM", "include", "qreg", "creg", "gate", "//"}

// Preprocess splits a circuit file into its opaque header lines and
// its parsed operator stream. A line belongs to the header if it is
// one of the first two lines, blank, or starts with a reserved
// declaration keyword; every other non-blank line is parsed as an
// operator line of the shape "KIND[(angle)] q[i0],q[i1],...;".
func Preprocess(path string) (header []string, ops []*gate.Op, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, qcerr.Wrap(err, "qcio: open "+path)
	}
	defer f.Close()
	return PreprocessReader(f)
}

// PreprocessReader is Preprocess over an already-open reader, split
// out so callers (tests, the batch driver) never need a real file.
func PreprocessReader(r io.Reader) (header []string, ops []*gate.Op, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		lineNo++
		if line == "" {
			header = append(header, sc.Text())
			continue
		}
		if lineNo <= 2 || isReservedDeclaration(line) {
			header = append(header, sc.Text())
			continue
		}

		op, perr := parseOperatorLine(line)
		if perr != nil {
			return nil, nil, perr
		}
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, qcerr.Wrap(err, "qcio: scan")
	}
	return header, ops, nil
}

func isReservedDeclaration(line string) bool {
	for _, kw := range reservedDeclarations {
		if strings.HasPrefix(line, kw) {
			return true
		}
	}
	return false
}

// parseOperatorLine parses "KIND[(angle)] q[i0],q[i1],...;" into an Op.
// The angle, when present, may itself contain commas (e.g.
// "u2(pi/2,-pi/2)"), so the operand list is only ever split past the
// matching close-paren.
func parseOperatorLine(line string) (*gate.Op, error) {
	line = strings.TrimSuffix(strings.TrimSpace(line), ";")

	rest := line
	kindPart := line
	if idx := strings.IndexByte(line, ' '); idx >= 0 {
		kindPart = line[:idx]
		rest = strings.TrimSpace(line[idx+1:])
	} else {
		rest = ""
	}

	kind, angle, err := gate.ParseToken(kindPart)
	if err != nil {
		return nil, err
	}

	operands, err := parseOperands(rest)
	if err != nil {
		return nil, err
	}

	return gate.New(kind, operands, angle), nil
}

func parseOperands(rest string) ([]int, error) {
	if rest == "" {
		return nil, nil
	}
	parts := strings.Split(rest, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		open := strings.IndexByte(p, '[')
		close := strings.IndexByte(p, ']')
		if open < 0 || close < 0 || close < open {
			return nil, qcerr.NewParseError("malformed operand %q: missing '['", p)
		}
		idx, err := strconv.Atoi(p[open+1 : close])
		if err != nil {
			return nil, qcerr.NewParseError("malformed operand index %q", p)
		}
		out = append(out, idx)
	}
	return out, nil
}

// Write renders the header lines followed by each operator's output
// line, in order, to w.
func Write(w io.Writer, header []string, ops []*gate.Op) error {
	bw := bufio.NewWriter(w)
	for _, line := range header {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}
	for _, op := range ops {
		if _, err := bw.WriteString(op.Output()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
