// internal/leaderboard/transpose.go
package leaderboard

// Transpose converts per-question rows into per-model rows. Models appear in
// the order they are first seen across all rows. A model missing from a row
// leaves that task unset on its ModelRow.
func Transpose(rows []QuestionRow) []ModelRow {
	index := make(map[string]int)
	var out []ModelRow

	for _, row := range rows {
		for _, model := range row.Models {
			if _, ok := index[model]; ok {
				continue
			}
			index[model] = len(out)
			out = append(out, ModelRow{Model: model, Fields: make(map[string]Score)})
		}
	}

	for _, row := range rows {
		for _, model := range row.Models {
			value, ok := row.Values[model]
			if !ok {
				continue
			}
			out[index[model]].Fields[row.Question] = value
		}
	}
	return out
}

// CleanRows returns a copy of rows with present values rounded for display:
// two decimals for regular competitions, whole numbers for the aggregate view
// (the Rank key is left alone there).
func CleanRows(rows []QuestionRow, aggregate bool) []QuestionRow {
	out := make([]QuestionRow, 0, len(rows))
	for _, row := range rows {
		cleaned := QuestionRow{
			Question: row.Question,
			Models:   append([]string(nil), row.Models...),
			Values:   make(map[string]Score, len(row.Values)),
		}
		for key, value := range row.Values {
			if value.Valid {
				switch {
				case !aggregate:
					value.Value = roundTo(value.Value, 2)
				case key != FieldRank:
					value.Value = roundTo(value.Value, 0)
				}
			}
			cleaned.Values[key] = value
		}
		out = append(out, cleaned)
	}
	return out
}
