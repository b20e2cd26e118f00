package genetics

// PunnettSquare is the result of one cross. Grid[row][col] combines the second
// parent's gamete row with the first parent's gamete col.
type PunnettSquare struct {
	P1Gametes [Ploidy]string         `json:"p1_gametes"`
	P2Gametes [Ploidy]string         `json:"p2_gametes"`
	Grid      [Ploidy][Ploidy]string `json:"grid"`
}

// Cross builds the Punnett square of two parents.
func Cross(p1, p2 DiploidGenotype) PunnettSquare {
	square := PunnettSquare{
		P1Gametes: p1.Gametes(),
		P2Gametes: p2.Gametes(),
	}
	for row, a := range p2.alleles {
		for col, b := range p1.alleles {
			square.Grid[row][col] = Combine(a, b)
		}
	}
	return square
}

// CrossStrings validates both genotype strings and crosses them.
func CrossStrings(p1, p2 string) (PunnettSquare, error) {
	g1, err := ParseGenotype(p1)
	if err != nil {
		return PunnettSquare{}, err
	}
	g2, err := ParseGenotype(p2)
	if err != nil {
		return PunnettSquare{}, err
	}
	return Cross(g1, g2), nil
}

// Cells flattens the grid in row-major order.
func (s PunnettSquare) Cells() []string {
	cells := make([]string, 0, Ploidy*Ploidy)
	for _, row := range s.Grid {
		cells = append(cells, row[:]...)
	}
	return cells
}
