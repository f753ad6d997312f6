package eventlive

// Stat is the live scoring line for one player element in one gameweek.
type Stat struct {
	EventID        int
	ElementID      int64
	Minutes        int
	GoalsScored    int
	Assists        int
	CleanSheets    int
	Bonus          int
	PenaltiesSaved int
	Saves          int
	TotalPoints    int
}
