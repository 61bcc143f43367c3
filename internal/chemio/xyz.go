package chemio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chemvista/chemvista/internal/mol"
)

// ReadXYZ parses one or more concatenated XYZ frames. A file with a
// single frame is still returned as a one-frame trajectory; the caller
// decides whether to treat it as a plain molecule.
func ReadXYZ(r io.Reader) (*mol.Trajectory, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	traj := &mol.Trajectory{}
	line := 0

	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		line++
		return sc.Text(), true
	}

	for {
		header, ok := next()
		if !ok {
			break
		}
		if strings.TrimSpace(header) == "" {
			// Tolerate blank lines between frames.
			continue
		}

		n, err := strconv.Atoi(strings.TrimSpace(header))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("xyz line %d: expected atom count, got %q", line, header)
		}

		if _, ok := next(); !ok {
			return nil, fmt.Errorf("xyz line %d: missing comment line", line)
		}

		atoms := make([]mol.Atom, 0, n)
		for i := 0; i < n; i++ {
			text, ok := next()
			if !ok {
				return nil, fmt.Errorf("xyz: frame truncated, expected %d atoms, got %d", n, i)
			}
			fields := strings.Fields(text)
			if len(fields) < 4 {
				return nil, fmt.Errorf("xyz line %d: expected symbol and 3 coordinates, got %q", line, text)
			}

			var pos [3]float64
			for c := 0; c < 3; c++ {
				pos[c], err = strconv.ParseFloat(fields[c+1], 64)
				if err != nil {
					return nil, fmt.Errorf("xyz line %d: bad coordinate %q: %w", line, fields[c+1], err)
				}
			}
			atoms = append(atoms, mol.Atom{
				Symbol:   normalizeSymbol(fields[0]),
				Position: r3.Vec{X: pos[0], Y: pos[1], Z: pos[2]},
			})
		}

		if err := traj.Append(mol.NewMolecule(atoms)); err != nil {
			return nil, fmt.Errorf("xyz frame %d: %w", traj.Len(), err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("xyz: %w", err)
	}
	if traj.Len() == 0 {
		return nil, fmt.Errorf("xyz: no frames found")
	}
	return traj, nil
}

// ReadXYZFile reads an XYZ file from disk (gzip aware).
func ReadXYZFile(path string) (*mol.Trajectory, error) {
	r, close, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer close()

	traj, err := ReadXYZ(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return traj, nil
}

// WriteXYZ writes every frame in standard XYZ layout. The comment is
// reused on every frame header.
func WriteXYZ(w io.Writer, traj *mol.Trajectory, comment string) error {
	for _, frame := range traj.Frames() {
		if _, err := fmt.Fprintf(w, "%d\n%s\n", frame.NumAtoms(), comment); err != nil {
			return err
		}
		for _, a := range frame.Atoms {
			if _, err := fmt.Fprintf(w, "%-3s %14.8f %14.8f %14.8f\n",
				a.Symbol, a.Position.X, a.Position.Y, a.Position.Z); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteXYZFile writes an XYZ file to disk (gzip aware).
func WriteXYZFile(path string, traj *mol.Trajectory, comment string) error {
	w, close, err := createWriter(path)
	if err != nil {
		return err
	}
	if err := WriteXYZ(w, traj, comment); err != nil {
		close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return close()
}

// normalizeSymbol fixes the capitalization of element symbols as they
// appear in the wild ("FE", "fe" -> "Fe"). Bare atomic numbers are also
// accepted.
func normalizeSymbol(s string) string {
	if n, err := strconv.Atoi(s); err == nil {
		return mol.SymbolByNumber(n)
	}
	s = strings.ToLower(s)
	return strings.ToUpper(s[:1]) + s[1:]
}
