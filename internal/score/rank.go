package score

var rankThresholds = []struct {
	min    int
	letter string
}{
	{50000, "S"},
	{25000, "A"},
	{15000, "B"},
	{8000, "C"},
	{3000, "D"},
}

// Rank converts points into a letter grade from S down to E.
func Rank(points int) string {
	for _, r := range rankThresholds {
		if points >= r.min {
			return r.letter
		}
	}
	return "E"
}
