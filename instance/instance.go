// Package instance loads pickup-and-delivery problem instances from the
// module's text format and reconstructs the human-readable naming the
// original CLI carried for its summary output.
package instance

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vrp-solvers/pdptw/matrix"
	"github.com/vrp-solvers/pdptw/pdp"
)

// Sentinel errors for malformed instance files, surfaced verbatim by
// cmd/pdptw as a non-zero exit with the wrapped message on stderr.
var (
	ErrMalformedHeader = errors.New("instance: malformed header line")
	ErrMalformedMatrix = errors.New("instance: malformed cost matrix")
	ErrMalformedDemand = errors.New("instance: malformed demand line")
)

// Info carries the human-readable identity of a loaded instance: the path
// it was loaded from, that path's directory, and its extension-stripped
// base name.
type Info struct {
	Path     string // the path passed to Load
	Dir      string // filepath.Dir(Path)
	BaseName string // filepath.Base(Path), extension stripped
}

// Load parses the text instance format:
//
//	n capacity
//	c[0][0] ... c[0][2n+1]
//	...                      (2n+2 rows of 2n+2 columns; negative marks forbidden)
//	q[1] ... q[n]            (pickup demands; deliveries carry -q[i])
//
// and returns the constructed *pdp.Graph alongside its Info.
func Load(path string) (*pdp.Graph, Info, error) {
	info := Info{
		Path:     path,
		Dir:      filepath.Dir(path),
		BaseName: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, info, fmt.Errorf("instance: Load(%s): %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	n, capacity, err := readHeader(sc)
	if err != nil {
		return nil, info, err
	}

	side := 2*n + 2
	cost, err := readMatrix(sc, side)
	if err != nil {
		return nil, info, err
	}

	demand, err := readDemand(sc, n)
	if err != nil {
		return nil, info, err
	}

	g, err := pdp.NewGraph(n, capacity, cost, demand)
	if err != nil {
		return nil, info, fmt.Errorf("instance: Load(%s): %w", path, err)
	}

	return g, info, nil
}

func readHeader(sc *bufio.Scanner) (n int, capacity int64, err error) {
	if !sc.Scan() {
		return 0, 0, fmt.Errorf("instance: header: %w", ErrMalformedHeader)
	}
	fields := strings.Fields(sc.Text())
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("instance: header %q: %w", sc.Text(), ErrMalformedHeader)
	}
	nVal, err1 := strconv.Atoi(fields[0])
	capVal, err2 := strconv.ParseInt(fields[1], 10, 64)
	if err1 != nil || err2 != nil || nVal < 1 || capVal <= 0 {
		return 0, 0, fmt.Errorf("instance: header %q: %w", sc.Text(), ErrMalformedHeader)
	}

	return nVal, capVal, nil
}

func readMatrix(sc *bufio.Scanner, side int) (*matrix.Dense, error) {
	m, err := matrix.NewDense(side, side)
	if err != nil {
		return nil, fmt.Errorf("instance: matrix: %w", err)
	}
	for i := 0; i < side; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("instance: matrix row %d: %w", i, ErrMalformedMatrix)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != side {
			return nil, fmt.Errorf("instance: matrix row %d has %d columns, want %d: %w",
				i, len(fields), side, ErrMalformedMatrix)
		}
		for j, tok := range fields {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("instance: matrix[%d][%d]=%q: %w", i, j, tok, ErrMalformedMatrix)
			}
			if err := m.Set(i, j, v); err != nil {
				return nil, fmt.Errorf("instance: matrix[%d][%d]: %w", i, j, err)
			}
		}
	}

	return m, nil
}

func readDemand(sc *bufio.Scanner, n int) ([]int64, error) {
	if !sc.Scan() {
		return nil, fmt.Errorf("instance: demand line: %w", ErrMalformedDemand)
	}
	fields := strings.Fields(sc.Text())
	if len(fields) != n {
		return nil, fmt.Errorf("instance: demand line has %d values, want %d: %w",
			len(fields), n, ErrMalformedDemand)
	}
	demand := make([]int64, n)
	for i, tok := range fields {
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("instance: demand[%d]=%q: %w", i+1, tok, ErrMalformedDemand)
		}
		demand[i] = v
	}

	return demand, nil
}
