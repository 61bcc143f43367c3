package chemio

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/chemvista/chemvista/internal/mol"
)

// Minimal H2 cube, 2x2x2 grid, lengths in Bohr (positive voxel counts).
const h2Cube = ` H2 electron density
 test data
    2    0.000000    0.000000    0.000000
    2    1.000000    0.000000    0.000000
    2    0.000000    1.000000    0.000000
    2    0.000000    0.000000    1.000000
    1    1.000000    0.000000    0.000000    0.000000
    1    1.000000    1.400000    0.000000    0.000000
  1.0E-01  2.0E-01  3.0E-01  4.0E-01  5.0E-01  6.0E-01
  7.0E-01  8.0E-01
`

func TestReadCube(t *testing.T) {
	res, err := ReadCube(strings.NewReader(h2Cube))
	if err != nil {
		t.Fatalf("ReadCube failed: %v", err)
	}

	if res.Comment != "H2 electron density" {
		t.Errorf("comment = %q", res.Comment)
	}
	if res.Molecule.NumAtoms() != 2 {
		t.Fatalf("expected 2 atoms, got %d", res.Molecule.NumAtoms())
	}
	if res.Molecule.Atoms[0].Symbol != "H" {
		t.Errorf("atom symbol = %q, expected H", res.Molecule.Atoms[0].Symbol)
	}

	// Positive voxel counts mean Bohr input: 1.4 Bohr -> Angstrom.
	wantX := 1.4 * mol.BohrToAngstrom
	if got := res.Molecule.Atoms[1].Position.X; math.Abs(got-wantX) > 1e-10 {
		t.Errorf("atom position X = %v, expected %v", got, wantX)
	}

	f := res.Field
	if f.Shape != [3]int{2, 2, 2} {
		t.Fatalf("shape = %v", f.Shape)
	}
	if got := f.Axes[0].X; math.Abs(got-mol.BohrToAngstrom) > 1e-10 {
		t.Errorf("axis step = %v, expected %v", got, mol.BohrToAngstrom)
	}

	// z varies fastest in the data block.
	if f.Value(0, 0, 1) != 0.2 {
		t.Errorf("Value(0,0,1) = %v, expected 0.2", f.Value(0, 0, 1))
	}
	if f.Value(1, 0, 0) != 0.5 {
		t.Errorf("Value(1,0,0) = %v, expected 0.5", f.Value(1, 0, 0))
	}
	if f.Value(1, 1, 1) != 0.8 {
		t.Errorf("Value(1,1,1) = %v, expected 0.8", f.Value(1, 1, 1))
	}
}

func TestReadCubeAngstromUnits(t *testing.T) {
	// Negative voxel counts mean the file is already in Angstrom.
	input := ` comment
 comment
    1    0.000000    0.000000    0.000000
   -2    1.000000    0.000000    0.000000
   -2    0.000000    1.000000    0.000000
   -2    0.000000    0.000000    1.000000
    8    8.000000    1.000000    2.000000    3.000000
  1 2 3 4 5 6
  7 8
`
	res, err := ReadCube(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCube failed: %v", err)
	}
	if got := res.Molecule.Atoms[0].Position.X; got != 1.0 {
		t.Errorf("position X = %v, expected 1.0 (no unit conversion)", got)
	}
	if res.Field.Axes[0].X != 1.0 {
		t.Errorf("axis step = %v, expected 1.0", res.Field.Axes[0].X)
	}
}

func TestReadCubeSingleDataset(t *testing.T) {
	// Negative atom count announces a DSET_IDS record; one dataset is
	// accepted, more are not.
	base := ` orbital cube
 comment
   -1    0.000000    0.000000    0.000000
    2    1.000000    0.000000    0.000000
    2    0.000000    1.000000    0.000000
    2    0.000000    0.000000    1.000000
    1    1.000000    0.000000    0.000000    0.000000
`
	ok := base + "    1    1\n  1 2 3 4 5 6\n  7 8\n"
	if _, err := ReadCube(strings.NewReader(ok)); err != nil {
		t.Errorf("single-dataset cube should parse: %v", err)
	}

	multi := base + "    2    1    2\n  1 2 3 4 5 6\n  7 8\n"
	if _, err := ReadCube(strings.NewReader(multi)); err == nil {
		t.Error("multi-dataset cube should be rejected")
	}
}

func TestReadCubeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"header only", " c1\n c2\n"},
		{"bad origin", " c1\n c2\n  x 0 0 0\n"},
		{"zero voxels", " c1\n c2\n 1 0 0 0\n 0 1 0 0\n 2 0 1 0\n 2 0 0 1\n 1 1 0 0 0\n 1 2 3 4\n"},
		{"truncated atoms", " c1\n c2\n 2 0 0 0\n 2 1 0 0\n 2 0 1 0\n 2 0 0 1\n 1 1 0 0 0\n"},
		{"truncated data", " c1\n c2\n 1 0 0 0\n 2 1 0 0\n 2 0 1 0\n 2 0 0 1\n 1 1 0 0 0\n 1 2 3\n"},
		{"bad data value", " c1\n c2\n 1 0 0 0\n 1 1 0 0\n 1 0 1 0\n 1 0 0 1\n 1 1 0 0 0\n x\n"},
	}
	for _, test := range tests {
		if _, err := ReadCube(strings.NewReader(test.input)); err == nil {
			t.Errorf("%s: expected error, got none", test.name)
		}
	}
}

func TestCubeRoundTrip(t *testing.T) {
	res, err := ReadCube(strings.NewReader(h2Cube))
	if err != nil {
		t.Fatalf("ReadCube failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCube(&buf, res); err != nil {
		t.Fatalf("WriteCube failed: %v", err)
	}

	again, err := ReadCube(&buf)
	if err != nil {
		t.Fatalf("re-read failed: %v", err)
	}
	if again.Field.Shape != res.Field.Shape {
		t.Fatalf("shape changed: %v -> %v", res.Field.Shape, again.Field.Shape)
	}
	for i := range res.Field.Data {
		if math.Abs(res.Field.Data[i]-again.Field.Data[i]) > 1e-6 {
			t.Errorf("data[%d] changed: %v -> %v", i, res.Field.Data[i], again.Field.Data[i])
		}
	}
	if d := res.Molecule.Atoms[1].Position.X - again.Molecule.Atoms[1].Position.X; math.Abs(d) > 1e-5 {
		t.Errorf("atom position drifted by %v", d)
	}
}

func TestWriteCubeNilField(t *testing.T) {
	if err := WriteCube(&bytes.Buffer{}, &CubeResult{}); err == nil {
		t.Error("nil field should be rejected")
	}
}
