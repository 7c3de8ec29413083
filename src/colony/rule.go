package colony

//NextState applies the birth/survival rule:
//a cell with 3 live neighbours is alive, a live cell with 2 live neighbours stays alive, every other cell is dead
func NextState(alive bool, neighbours int) bool {
	if neighbours == 3 {
		return true
	}
	return neighbours == 2 && alive
}

//cellNextState calculates the next state for the cell at row, col of g
func cellNextState(g *Grid, row int, col int) bool {
	return NextState(g.Alive(row, col), g.Neighbours(row, col))
}
