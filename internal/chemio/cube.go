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

// CubeResult pairs the molecular geometry of a cube file with its
// volumetric data. Callers wanting only the field ignore Molecule.
type CubeResult struct {
	Comment  string
	Molecule *mol.Molecule
	Field    *mol.ScalarField
}

// ReadCube parses a Gaussian cube file. Per the format, a positive
// voxel count on the axis records means lengths are in Bohr and get
// converted to Angstrom; a negative count means they are already in
// Angstrom. Multi-dataset cubes (negative atom count with more than one
// dataset) are rejected.
func ReadCube(r io.Reader) (*CubeResult, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		line++
		return sc.Text(), nil
	}

	comment1, err := next()
	if err != nil {
		return nil, fmt.Errorf("cube: empty input")
	}
	if _, err := next(); err != nil {
		return nil, fmt.Errorf("cube: missing second comment line")
	}

	// Atom count and grid origin.
	natoms, origin, err := parseCountVec(next)
	if err != nil {
		return nil, fmt.Errorf("cube line %d: %w", line, err)
	}
	multiDataset := natoms < 0
	if multiDataset {
		natoms = -natoms
	}

	// Three voxel axis records.
	var shape [3]int
	var axes [3]r3.Vec
	scale := 1.0
	for i := 0; i < 3; i++ {
		n, v, err := parseCountVec(next)
		if err != nil {
			return nil, fmt.Errorf("cube line %d: %w", line, err)
		}
		if n == 0 {
			return nil, fmt.Errorf("cube line %d: zero voxel count", line)
		}
		if n > 0 {
			// Bohr units, the common case.
			if i == 0 {
				scale = mol.BohrToAngstrom
			}
			shape[i] = n
		} else {
			shape[i] = -n
		}
		axes[i] = v
	}
	origin = r3.Scale(scale, origin)
	for i := range axes {
		axes[i] = r3.Scale(scale, axes[i])
	}

	// Atom records: number, charge, x, y, z.
	atoms := make([]mol.Atom, 0, natoms)
	for i := 0; i < natoms; i++ {
		text, err := next()
		if err != nil {
			return nil, fmt.Errorf("cube: truncated atom block, expected %d atoms, got %d", natoms, i)
		}
		fields := strings.Fields(text)
		if len(fields) < 5 {
			return nil, fmt.Errorf("cube line %d: expected 5 atom fields, got %q", line, text)
		}
		num, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("cube line %d: bad atomic number %q", line, fields[0])
		}
		var pos [3]float64
		for c := 0; c < 3; c++ {
			pos[c], err = strconv.ParseFloat(fields[c+2], 64)
			if err != nil {
				return nil, fmt.Errorf("cube line %d: bad coordinate %q: %w", line, fields[c+2], err)
			}
		}
		atoms = append(atoms, mol.Atom{
			Symbol:   mol.SymbolByNumber(num),
			Position: r3.Scale(scale, r3.Vec{X: pos[0], Y: pos[1], Z: pos[2]}),
		})
	}

	if multiDataset {
		// DSET_IDS record: first value is the dataset count.
		text, err := next()
		if err != nil {
			return nil, fmt.Errorf("cube: missing dataset record")
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			return nil, fmt.Errorf("cube line %d: empty dataset record", line)
		}
		if n, err := strconv.Atoi(fields[0]); err != nil || n != 1 {
			return nil, fmt.Errorf("cube line %d: multi-dataset cubes are not supported", line)
		}
	}

	// Volumetric data: whitespace-separated values, z varying fastest.
	want := shape[0] * shape[1] * shape[2]
	data := make([]float64, 0, want)
	for len(data) < want {
		text, err := next()
		if err != nil {
			return nil, fmt.Errorf("cube: truncated data block, expected %d values, got %d", want, len(data))
		}
		for _, fieldText := range strings.Fields(text) {
			v, err := strconv.ParseFloat(fieldText, 64)
			if err != nil {
				return nil, fmt.Errorf("cube line %d: bad data value %q: %w", line, fieldText, err)
			}
			data = append(data, v)
		}
	}
	if len(data) > want {
		return nil, fmt.Errorf("cube: %d extra data values", len(data)-want)
	}

	field, err := mol.NewScalarField(origin, axes, shape, data)
	if err != nil {
		return nil, fmt.Errorf("cube: %w", err)
	}
	return &CubeResult{
		Comment:  strings.TrimSpace(comment1),
		Molecule: mol.NewMolecule(atoms),
		Field:    field,
	}, nil
}

// ReadCubeFile reads a cube file from disk (gzip aware).
func ReadCubeFile(path string) (*CubeResult, error) {
	r, close, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer close()

	res, err := ReadCube(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// WriteCube writes molecule and field in cube layout, always in Bohr.
func WriteCube(w io.Writer, res *CubeResult) error {
	if res.Field == nil {
		return fmt.Errorf("write cube: nil field")
	}
	inv := 1 / mol.BohrToAngstrom

	fmt.Fprintf(w, "%s\n", res.Comment)
	fmt.Fprintf(w, "written by chemvista\n")

	natoms := 0
	if res.Molecule != nil {
		natoms = res.Molecule.NumAtoms()
	}
	f := res.Field
	o := r3.Scale(inv, f.Origin)
	if _, err := fmt.Fprintf(w, "%5d %11.6f %11.6f %11.6f\n", natoms, o.X, o.Y, o.Z); err != nil {
		return err
	}
	for i := 0; i < 3; i++ {
		a := r3.Scale(inv, f.Axes[i])
		if _, err := fmt.Fprintf(w, "%5d %11.6f %11.6f %11.6f\n", f.Shape[i], a.X, a.Y, a.Z); err != nil {
			return err
		}
	}
	if res.Molecule != nil {
		for _, a := range res.Molecule.Atoms {
			el := mol.ElementBySymbol(a.Symbol)
			p := r3.Scale(inv, a.Position)
			if _, err := fmt.Fprintf(w, "%5d %11.6f %11.6f %11.6f %11.6f\n",
				el.Number, float64(el.Number), p.X, p.Y, p.Z); err != nil {
				return err
			}
		}
	}
	for i := 0; i < len(f.Data); i += 6 {
		end := i + 6
		if end > len(f.Data) {
			end = len(f.Data)
		}
		for c, v := range f.Data[i:end] {
			if c > 0 {
				if _, err := io.WriteString(w, " "); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "%12.5E", v); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteCubeFile writes a cube file to disk (gzip aware).
func WriteCubeFile(path string, res *CubeResult) error {
	w, close, err := createWriter(path)
	if err != nil {
		return err
	}
	if err := WriteCube(w, res); err != nil {
		close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return close()
}

// parseCountVec parses "int float float float" records (origin and axis
// lines share this layout).
func parseCountVec(next func() (string, error)) (int, r3.Vec, error) {
	text, err := next()
	if err != nil {
		return 0, r3.Vec{}, fmt.Errorf("unexpected end of header")
	}
	fields := strings.Fields(text)
	if len(fields) < 4 {
		return 0, r3.Vec{}, fmt.Errorf("expected count and vector, got %q", text)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		// Some generators write the count as a float.
		fn, ferr := strconv.ParseFloat(fields[0], 64)
		if ferr != nil {
			return 0, r3.Vec{}, fmt.Errorf("bad count %q", fields[0])
		}
		n = int(fn)
	}
	var v [3]float64
	for i := 0; i < 3; i++ {
		v[i], err = strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return 0, r3.Vec{}, fmt.Errorf("bad vector component %q: %w", fields[i+1], err)
		}
	}
	return n, r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
}
