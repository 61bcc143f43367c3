package mol

import "image/color"

// Element holds per-element display and bonding data.
//
// Covalent radii follow Cordero et al., 2008 (DOI:10.1039/B801115J),
// van der Waals radii Bondi (10.1021/j100785a001). Colors are the usual
// CPK/Jmol palette.
type Element struct {
	Symbol         string
	Number         int
	CovalentRadius float64 // Angstrom
	VdwRadius      float64 // Angstrom
	DisplayRadius  float64 // Angstrom, sphere radius used by the renderer
	Color          color.NRGBA
}

// Unknown is the fallback entry for symbols missing from the table.
var Unknown = Element{
	Symbol:         "X",
	Number:         0,
	CovalentRadius: 0.75,
	VdwRadius:      1.70,
	DisplayRadius:  0.45,
	Color:          color.NRGBA{R: 0xdd, G: 0x77, B: 0xff, A: 0xff},
}

var elements = map[string]Element{
	"H":  {"H", 1, 0.31, 1.10, 0.25, color.NRGBA{0xff, 0xff, 0xff, 0xff}},
	"He": {"He", 2, 0.28, 1.40, 0.30, color.NRGBA{0xd9, 0xff, 0xff, 0xff}},
	"Li": {"Li", 3, 1.28, 1.82, 0.55, color.NRGBA{0xcc, 0x80, 0xff, 0xff}},
	"Be": {"Be", 4, 0.96, 1.53, 0.50, color.NRGBA{0xc2, 0xff, 0x00, 0xff}},
	"B":  {"B", 5, 0.84, 1.92, 0.50, color.NRGBA{0xff, 0xb5, 0xb5, 0xff}},
	"C":  {"C", 6, 0.76, 1.70, 0.40, color.NRGBA{0x56, 0x56, 0x56, 0xff}},
	"N":  {"N", 7, 0.71, 1.55, 0.40, color.NRGBA{0x30, 0x50, 0xf8, 0xff}},
	"O":  {"O", 8, 0.66, 1.52, 0.40, color.NRGBA{0xff, 0x0d, 0x0d, 0xff}},
	"F":  {"F", 9, 0.57, 1.47, 0.38, color.NRGBA{0x90, 0xe0, 0x50, 0xff}},
	"Ne": {"Ne", 10, 0.58, 1.54, 0.38, color.NRGBA{0xb3, 0xe3, 0xf5, 0xff}},
	"Na": {"Na", 11, 1.66, 2.27, 0.60, color.NRGBA{0xab, 0x5c, 0xf2, 0xff}},
	"Mg": {"Mg", 12, 1.41, 1.73, 0.55, color.NRGBA{0x8a, 0xff, 0x00, 0xff}},
	"Al": {"Al", 13, 1.21, 1.84, 0.55, color.NRGBA{0xbf, 0xa6, 0xa6, 0xff}},
	"Si": {"Si", 14, 1.11, 2.10, 0.55, color.NRGBA{0xf0, 0xc8, 0xa0, 0xff}},
	"P":  {"P", 15, 1.07, 1.80, 0.50, color.NRGBA{0xff, 0x80, 0x00, 0xff}},
	"S":  {"S", 16, 1.05, 1.80, 0.50, color.NRGBA{0xff, 0xff, 0x30, 0xff}},
	"Cl": {"Cl", 17, 1.02, 1.75, 0.50, color.NRGBA{0x1f, 0xf0, 0x1f, 0xff}},
	"Ar": {"Ar", 18, 1.06, 1.88, 0.50, color.NRGBA{0x80, 0xd1, 0xe3, 0xff}},
	"K":  {"K", 19, 2.03, 2.75, 0.65, color.NRGBA{0x8f, 0x40, 0xd4, 0xff}},
	"Ca": {"Ca", 20, 1.76, 2.31, 0.60, color.NRGBA{0x3d, 0xff, 0x00, 0xff}},
	"Cr": {"Cr", 24, 1.39, 1.97, 0.55, color.NRGBA{0x8a, 0x99, 0xc7, 0xff}},
	"Mn": {"Mn", 25, 1.61, 1.96, 0.55, color.NRGBA{0x9c, 0x7a, 0xc7, 0xff}},
	"Fe": {"Fe", 26, 1.52, 1.96, 0.55, color.NRGBA{0xe0, 0x66, 0x33, 0xff}},
	"Co": {"Co", 27, 1.50, 1.95, 0.55, color.NRGBA{0xf0, 0x90, 0xa0, 0xff}},
	"Ni": {"Ni", 28, 1.24, 1.63, 0.55, color.NRGBA{0x50, 0xd0, 0x50, 0xff}},
	"Cu": {"Cu", 29, 1.32, 2.00, 0.55, color.NRGBA{0xc8, 0x80, 0x33, 0xff}},
	"Zn": {"Zn", 30, 1.22, 2.02, 0.55, color.NRGBA{0x7d, 0x80, 0xb0, 0xff}},
	"Se": {"Se", 34, 1.20, 1.90, 0.52, color.NRGBA{0xff, 0xa1, 0x00, 0xff}},
	"Br": {"Br", 35, 1.20, 1.83, 0.52, color.NRGBA{0xa6, 0x29, 0x29, 0xff}},
	"I":  {"I", 53, 1.39, 1.98, 0.55, color.NRGBA{0x94, 0x00, 0x94, 0xff}},
}

var numberToSymbol map[int]string

func init() {
	numberToSymbol = make(map[int]string, len(elements))
	for sym, el := range elements {
		numberToSymbol[el.Number] = sym
	}
}

// ElementBySymbol looks up an element; unknown symbols yield Unknown.
func ElementBySymbol(symbol string) Element {
	if el, ok := elements[symbol]; ok {
		return el
	}
	return Unknown
}

// SymbolByNumber maps an atomic number to its symbol, or "X" when the
// number is not in the table. Cube files identify atoms by number only.
func SymbolByNumber(number int) string {
	if sym, ok := numberToSymbol[number]; ok {
		return sym
	}
	return Unknown.Symbol
}

// KnownSymbols returns all symbols in the table. Used by the icon
// generator to emit one sphere icon per element.
func KnownSymbols() []string {
	syms := make([]string, 0, len(elements))
	for sym := range elements {
		syms = append(syms, sym)
	}
	return syms
}
