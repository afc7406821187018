package rating

import "proflens/internal/rmp"

// Score combines overall rating and difficulty into a single display rank:
// overall weight rewards high ratings, difficulty weight penalizes hard
// graders. With the default 0.7/0.3 weights a 4.5-rated, 2.0-difficulty
// teacher scores 2.55.
func Score(overallWeight, difficultyWeight float64, t rmp.Teacher) float64 {
	return overallWeight*t.AvgRating - difficultyWeight*t.AvgDifficulty
}
