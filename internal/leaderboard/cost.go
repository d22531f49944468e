// internal/leaderboard/cost.go
package leaderboard

// TotalCost derives a model's run cost from token counts and unit costs.
// A zero product on either side is treated as missing pricing data, so the
// result is absent rather than a free run.
func TotalCost(row ModelRow) Score {
	inCost, ok1 := row.Value(FieldInputCost).Float()
	inTokens, ok2 := row.Value(FieldInputTokens).Float()
	outCost, ok3 := row.Value(FieldOutputCost).Float()
	outTokens, ok4 := row.Value(FieldOutputTokens).Float()
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Absent()
	}

	input := inCost * inTokens
	output := outCost * outTokens
	if input == 0 || output == 0 {
		return Absent()
	}
	return Some(input + output)
}

// ApplyCost sets the Cost field on every row from TotalCost.
func ApplyCost(rows []ModelRow) {
	for i := range rows {
		if rows[i].Fields == nil {
			rows[i].Fields = make(map[string]Score)
		}
		rows[i].Fields[FieldCost] = TotalCost(rows[i])
	}
}
