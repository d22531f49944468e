package leaderboard

func fixtureDataset() Dataset {
	return Dataset{
		Results: map[string][]QuestionRow{
			"overall": {
				questionRow("Avg", "gpt", 77.5, "claude", 57.5),
				questionRow("1", "gpt", 75.0, "claude", 75.0),
				questionRow("2", "gpt", 80.0, "claude", 40.0),
				questionRow("Rank", "gpt", 1.0, "claude", 2.0),
			},
			"algebra": {
				questionRow("1", "gpt", 100.0, "claude", 50.0),
				questionRow("2", "gpt", 50.0, "claude", 100.0),
				questionRow("Avg", "gpt", 75.0, "claude", 75.0),
				questionRow("Cost", "gpt", 2.0, "claude", 1.0),
			},
			"geometry": {
				questionRow("1", "gpt", 80.0, "claude", 40.0),
				questionRow("Avg", "gpt", 80.0, "claude", 40.0),
			},
		},
		Info: map[string]CompetitionInfo{
			"overall": {
				NiceName:        "Overall",
				Index:           0,
				NumProblems:     3,
				ProblemNames:    []Label{"Avg", "algebra", "geometry"},
				MedalThresholds: Thresholds{90, 70, 50},
			},
			"algebra": {
				NiceName:        "Algebra",
				Index:           1,
				NumProblems:     2,
				MedalThresholds: Thresholds{90, 75, 50},
				ProblemDifficulty: map[string]Difficulty{
					"1": {Value: 20, Valid: true},
					"2": {Value: 70, Valid: true},
				},
			},
			"geometry": {
				NiceName:        "Geometry",
				Index:           2,
				NumProblems:     1,
				MedalThresholds: Thresholds{80, 60, 40},
				Judge:           true,
			},
		},
		Secondary: map[string][]QuestionRow{
			"algebra": {
				questionRow(FieldAcc, "claude", 75.0, "gpt", 75.0),
				questionRow(FieldInputTokens, "claude", 1000, "gpt", 1000),
				questionRow(FieldInputCost, "claude", 0.001, "gpt", 0.01),
				questionRow(FieldOutputTokens, "claude", 500, "gpt", 500),
				questionRow(FieldOutputCost, "claude", 0, "gpt", 0.02),
			},
		},
		Dates: CompetitionDates{
			"algebra":  {"claude": true, "gpt": false},
			"geometry": {"claude": false},
		},
	}
}

// questionRow builds a row from ordered model/value pairs.
func questionRow(question string, pairs ...any) QuestionRow {
	row := QuestionRow{Question: question, Values: make(map[string]Score)}
	for i := 0; i+1 < len(pairs); i += 2 {
		name, _ := pairs[i].(string)
		var s Score
		switch v := pairs[i+1].(type) {
		case Score:
			s = v
		case float64:
			s = Some(v)
		case int:
			s = Some(float64(v))
		}
		row.Set(name, s)
	}
	return row
}
