package models

// SolutionID identifies a solution. Lower IDs win score ties.
type SolutionID int64

// QuestionID identifies a question. Lower IDs win score ties.
type QuestionID int64

// Solution is something the player may have in mind
type Solution struct {
	ID   SolutionID
	Name string
}

// Question is a yes/no prompt
type Question struct {
	ID   QuestionID
	Text string
}

// FeatureTable maps question -> solution -> signed relevance.
// A missing entry is neutral (0), not unknown.
type FeatureTable map[QuestionID]map[SolutionID]float64

// Value returns the relevance of q to s, 0 when absent.
func (t FeatureTable) Value(q QuestionID, s SolutionID) float64 {
	return t[q][s]
}

// Set stores the relevance of q to s.
func (t FeatureTable) Set(q QuestionID, s SolutionID, v float64) {
	row, ok := t[q]
	if !ok {
		row = make(map[SolutionID]float64)
		t[q] = row
	}
	row[s] = v
}

// Clone returns a deep copy of the table.
func (t FeatureTable) Clone() FeatureTable {
	out := make(FeatureTable, len(t))
	for q, row := range t {
		cp := make(map[SolutionID]float64, len(row))
		for s, v := range row {
			cp[s] = v
		}
		out[q] = cp
	}
	return out
}
