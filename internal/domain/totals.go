package domain

// Totals summarizes a user's logs.
type Totals struct {
	CaloriesGained int `json:"caloriesGained"`
	CaloriesBurnt  int `json:"caloriesBurnt"`
	CalorieLogs    int `json:"calorieLogs"`
	ExerciseLogs   int `json:"exerciseLogs"`
	NetCalories    int `json:"netCalories"`
}

// ComputeTotals sums the given entries. NetCalories is gained minus burnt.
func ComputeTotals(calories []CalorieLog, exercise []ExerciseLog) Totals {
	t := Totals{
		CalorieLogs:  len(calories),
		ExerciseLogs: len(exercise),
	}
	for _, c := range calories {
		t.CaloriesGained += c.Calories
	}
	for _, e := range exercise {
		t.CaloriesBurnt += e.CaloriesBurnt
	}
	t.NetCalories = t.CaloriesGained - t.CaloriesBurnt
	return t
}

// UserData is a user together with every entry they own.
type UserData struct {
	User     User          `json:"user"`
	Calories []CalorieLog  `json:"calories"`
	Exercise []ExerciseLog `json:"exercise"`
	Totals   Totals        `json:"totals"`
}
