package sheet

import (
	"context"
	"fmt"

	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/sheetstore"
	apperrors "github.com/beautybox/salon-api/pkg/errors"
)

type fixedExpenseRepository struct {
	BaseRepository
}

// List returns active fixed expenses only; deactivated ones stay in the sheet
// for history but drop out of listings and metrics.
func (r *fixedExpenseRepository) List(ctx context.Context) ([]model.FixedExpense, error) {
	rows, err := r.rows(ctx, gastosFijosTable)
	if err != nil {
		return nil, err
	}
	expenses := make([]model.FixedExpense, 0, len(rows))
	for _, row := range rows {
		exp := fixedExpenseFromRow(row)
		if !exp.Active {
			continue
		}
		expenses = append(expenses, exp)
	}
	return expenses, nil
}

func (r *fixedExpenseRepository) Insert(ctx context.Context, expense *model.FixedExpense) (int64, error) {
	rows, err := r.rows(ctx, gastosFijosTable)
	if err != nil {
		return 0, err
	}
	id := nextID(rows)
	values := []string{
		formatInt(id),
		expense.Concept,
		formatFloat(expense.Amount),
		string(expense.Frequency),
		flagValue(true),
		expense.Notes,
		nowTimestamp(),
	}
	if err := r.store.Append(ctx, gastosFijosTable.name, values); err != nil {
		return 0, fmt.Errorf("failed to insert fixed expense: %w", err)
	}
	r.invalidate()
	expense.ID = id
	expense.Active = true
	return id, nil
}

func (r *fixedExpenseRepository) SoftDelete(ctx context.Context, id int64) error {
	rows, err := r.rows(ctx, gastosFijosTable)
	if err != nil {
		return err
	}
	rowIdx, ok := rowIndexByID(rows, id)
	if !ok {
		return apperrors.NotFound("fixed expense", nil)
	}
	cell := sheetstore.CellRef(5, rowIdx)
	if err := r.store.UpdateRange(ctx, gastosFijosTable.name, cell, [][]string{{flagValue(false)}}); err != nil {
		return fmt.Errorf("failed to deactivate fixed expense %d: %w", id, err)
	}
	r.invalidate()
	return nil
}

func fixedExpenseFromRow(row sheetstore.Row) model.FixedExpense {
	return model.FixedExpense{
		ID:        parseInt(row["id"]),
		Concept:   row["concepto"],
		Amount:    parseFloat(row["monto"]),
		Frequency: model.ExpenseFrequency(row["frecuencia"]),
		Active:    activeFlag(row["activo"]),
		Notes:     row["notas"],
		CreatedAt: row["created_at"],
	}
}

type variableExpenseRepository struct {
	BaseRepository
}

func (r *variableExpenseRepository) List(ctx context.Context, dateRange model.DateRange) ([]model.VariableExpense, error) {
	rows, err := r.rows(ctx, gastosVariablesTable)
	if err != nil {
		return nil, err
	}
	expenses := make([]model.VariableExpense, 0, len(rows))
	for _, row := range rows {
		exp := variableExpenseFromRow(row)
		if !inDateRange(exp.Date, dateRange) {
			continue
		}
		expenses = append(expenses, exp)
	}
	return expenses, nil
}

func (r *variableExpenseRepository) Insert(ctx context.Context, expense *model.VariableExpense) (int64, error) {
	rows, err := r.rows(ctx, gastosVariablesTable)
	if err != nil {
		return 0, err
	}
	id := nextID(rows)
	values := []string{
		formatInt(id),
		expense.Date,
		expense.Concept,
		formatFloat(expense.Amount),
		expense.Category,
		expense.Notes,
		nowTimestamp(),
	}
	if err := r.store.Append(ctx, gastosVariablesTable.name, values); err != nil {
		return 0, fmt.Errorf("failed to insert variable expense: %w", err)
	}
	r.invalidate()
	expense.ID = id
	return id, nil
}

func (r *variableExpenseRepository) Delete(ctx context.Context, id int64) error {
	rows, err := r.rows(ctx, gastosVariablesTable)
	if err != nil {
		return err
	}
	rowIdx, ok := rowIndexByID(rows, id)
	if !ok {
		return apperrors.NotFound("variable expense", nil)
	}
	if err := r.store.DeleteRow(ctx, gastosVariablesTable.name, rowIdx); err != nil {
		return fmt.Errorf("failed to delete variable expense %d: %w", id, err)
	}
	r.invalidate()
	return nil
}

func variableExpenseFromRow(row sheetstore.Row) model.VariableExpense {
	return model.VariableExpense{
		ID:        parseInt(row["id"]),
		Date:      row["fecha"],
		Concept:   row["concepto"],
		Amount:    parseFloat(row["monto"]),
		Category:  row["categoria"],
		Notes:     row["notas"],
		CreatedAt: row["created_at"],
	}
}
