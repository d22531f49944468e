// internal/leaderboard/assemble.go
package leaderboard

import (
	"fmt"
	"strconv"
)

// Column describes one logical column handed to a renderer.
type Column struct {
	Key             string     `json:"key"`
	Title           string     `json:"title"`
	Difficulty      Difficulty `json:"difficulty"`
	DifficultyClass string     `json:"difficulty_class,omitempty"`
	// Origin is the competition whose thresholds and dates apply.
	Origin string `json:"origin,omitempty"`
}

// Cell is one (row, column) pair with its display value and classification.
type Cell struct {
	Key     string `json:"key"`
	Value   Score  `json:"value"`
	Display string `json:"display"`
	Tier    Tier   `json:"tier"`
	Medal   Medal  `json:"medal"`
	Flagged bool   `json:"flagged,omitempty"`
}

// Row is one ranked model.
type Row struct {
	Model   string `json:"model"`
	Primary Score  `json:"primary"`
	Cost    Score  `json:"cost"`
	Flagged bool   `json:"flagged,omitempty"`
	Cells   []Cell `json:"cells"`
}

// Table is the renderer-facing structure for one view.
type Table struct {
	Competition string   `json:"competition"`
	Title       string   `json:"title"`
	Aggregate   bool     `json:"aggregate"`
	Secondary   bool     `json:"secondary,omitempty"`
	Judged      bool     `json:"judged"`
	Columns     []Column `json:"columns"`
	Rows        []Row    `json:"rows"`
	Warning     string   `json:"warning,omitempty"`
}

// Layout is the structural input to Assemble.
type Layout struct {
	Competition string
	Info        CompetitionInfo
	Aggregate   bool
	Keys        []string
	// Origins holds, per key, the competition whose metadata classifies it.
	Origins    []string
	OriginInfo map[string]CompetitionInfo
	Dates      CompetitionDates
}

// Assemble combines column keys, ranked rows and per-cell classification.
func Assemble(layout Layout, ranked []ModelRow) Table {
	table := Table{
		Competition: layout.Competition,
		Title:       layout.Info.DisplayName(layout.Competition),
		Aggregate:   layout.Aggregate,
		Judged:      layout.Info.Judge,
		Warning:     layout.Dates.Warning(layout.Competition, layout.Aggregate),
	}

	for i, key := range layout.Keys {
		col := Column{Key: key, Title: ProblemTitle(layout.Info, i), Origin: origin(layout, i)}
		if d, ok := layout.Info.ProblemDifficulty[col.Title]; ok && d.Valid {
			col.Difficulty = d
			col.DifficultyClass = DifficultyClass(d.Value)
		}
		table.Columns = append(table.Columns, col)
	}

	for _, model := range ranked {
		row := Row{
			Model:   model.Model,
			Primary: model.Value(FieldAvg),
			Cost:    model.Value(FieldCost),
		}
		if !layout.Aggregate {
			row.Flagged = layout.Dates.Flagged(layout.Competition, model.Model)
		}
		for i, key := range layout.Keys {
			row.Cells = append(row.Cells, classifyCell(layout, table.Columns[i], i, key, model))
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func origin(layout Layout, i int) string {
	if i < len(layout.Origins) {
		return layout.Origins[i]
	}
	return layout.Competition
}

func classifyCell(layout Layout, col Column, i int, key string, model ModelRow) Cell {
	value := model.Value(key)
	cell := Cell{Key: key, Value: value}

	if !layout.Aggregate {
		cell.Tier = ColorTierFor(value)
		if layout.Info.Judge {
			cell.Display = FormatWholePercent(value)
		}
		return cell
	}

	eligible := true
	if i > 0 && layout.Dates.Flagged(col.Origin, model.Model) {
		cell.Flagged = true
		eligible = false
	}
	if value.Valid {
		thresholds := layout.OriginInfo[col.Origin].MedalThresholds
		cell.Medal = MedalFor(value.Value, thresholds, eligible)
	}
	cell.Display = formatPlainPercent(value)
	return cell
}

// BuildCompetitionTable runs the full pipeline for one competition.
func BuildCompetitionTable(d Dataset, competition string) (Table, error) {
	rows, ok := d.Results[competition]
	if !ok {
		return Table{}, fmt.Errorf("build table %q: %w", competition, ErrUnknownCompetition)
	}
	info := d.Info[competition]
	aggregate := d.IsAggregate(competition)

	models := Transpose(CleanRows(rows, aggregate))
	if err := Rank(models, FieldAvg); err != nil {
		return Table{}, fmt.Errorf("build table %q: %w", competition, err)
	}

	keys := Columns(competition, d.AggregateID(), info.NumProblems)
	origins := make([]string, len(keys))
	for i := range keys {
		if aggregate {
			origins[i] = d.OriginCompetition(i)
		} else {
			origins[i] = competition
		}
	}

	layout := Layout{
		Competition: competition,
		Info:        info,
		Aggregate:   aggregate,
		Keys:        keys,
		Origins:     origins,
		OriginInfo:  d.Info,
		Dates:       d.Dates,
	}
	return Assemble(layout, models), nil
}

// SecondaryKeys are the columns of the token and cost table.
var SecondaryKeys = []string{FieldAcc, FieldInputTokens, FieldInputCost, FieldOutputTokens, FieldOutputCost, FieldCost}

// BuildSecondaryTable builds the token and cost table for a competition,
// ranked by accuracy and then by derived cost.
func BuildSecondaryTable(d Dataset, competition string) (Table, error) {
	rows, ok := d.Secondary[competition]
	if !ok || d.IsAggregate(competition) {
		return Table{}, fmt.Errorf("build secondary table %q: %w", competition, ErrUnknownCompetition)
	}
	info := d.Info[competition]

	models := Transpose(rows)
	ApplyCost(models)
	if err := Rank(models, FieldAcc); err != nil {
		return Table{}, fmt.Errorf("build secondary table %q: %w", competition, err)
	}

	table := Table{
		Competition: competition,
		Title:       info.DisplayName(competition),
		Secondary:   true,
		Judged:      info.Judge,
	}
	for _, key := range SecondaryKeys {
		table.Columns = append(table.Columns, Column{Key: key, Title: key, Origin: competition})
	}
	for _, model := range models {
		row := Row{Model: model.Model, Primary: model.Value(FieldAcc), Cost: model.Value(FieldCost)}
		for _, key := range SecondaryKeys {
			value := model.Value(key)
			row.Cells = append(row.Cells, Cell{Key: key, Value: value, Display: formatSecondary(key, value)})
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func formatSecondary(key string, value Score) string {
	switch key {
	case FieldAcc:
		return FormatPercent(value)
	case FieldInputCost, FieldOutputCost, FieldCost:
		return FormatDollars(value)
	default:
		return FormatCount(value)
	}
}

// Index returns the position of a column key, or -1.
func (t Table) Index(key string) int {
	for i, c := range t.Columns {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// Task returns the 1-based task number behind a column, if it has one.
func (c Column) Task() (int, bool) {
	n, err := strconv.Atoi(c.Key)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
