package prefs

import (
	"errors"
	"time"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"
)

// Storage keys. These mirror the identifiers the web client used.
const (
	keyActivityLog  = "activity-log"
	keyStockHistory = "stock-value-history"
	keyColumns      = "columns"

	activityLogCap  = 500
	stockHistoryCap = 60
)

// Column is one table column preference entry.
type Column struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Sortable bool   `json:"sortable"`
	Align    string `json:"align"`
	Visible  bool   `json:"visible"`
}

// State wraps a Store with the typed documents the application keeps.
type State struct {
	Store Store
}

// AppendActivity prepends one log entry, keeping the newest 500.
func (s State) AppendActivity(admin, action, details string) ([]domain.ActivityLogEntry, error) {
	log, err := s.ActivityLog()
	if err != nil {
		return nil, err
	}
	entry := domain.ActivityLogEntry{
		ID:        time.Now().UnixNano(),
		Timestamp: time.Now(),
		Admin:     admin,
		Action:    action,
		Details:   details,
	}
	if entry.Admin == "" {
		entry.Admin = "Sistema"
	}
	log = append([]domain.ActivityLogEntry{entry}, log...)
	if len(log) > activityLogCap {
		log = log[:activityLogCap]
	}
	if err := s.Store.Save(keyActivityLog, log); err != nil {
		return nil, err
	}
	return log, nil
}

// ActivityLog returns the saved log, newest first, empty when absent.
func (s State) ActivityLog() ([]domain.ActivityLogEntry, error) {
	var log []domain.ActivityLogEntry
	if err := s.Store.Load(keyActivityLog, &log); err != nil {
		if errors.Is(err, ErrMissing) {
			return nil, nil
		}
		return nil, err
	}
	return log, nil
}

// RecordStockValue appends a sample only when the total changed since
// the last one, keeping the most recent 60 samples.
func (s State) RecordStockValue(total float64) ([]domain.StockValueSample, error) {
	history, err := s.StockValueHistory()
	if err != nil {
		return nil, err
	}
	if n := len(history); n > 0 && history[n-1].TotalValue == total {
		return history, nil
	}
	history = append(history, domain.StockValueSample{Date: time.Now(), TotalValue: total})
	if len(history) > stockHistoryCap {
		history = history[len(history)-stockHistoryCap:]
	}
	if err := s.Store.Save(keyStockHistory, history); err != nil {
		return nil, err
	}
	return history, nil
}

func (s State) StockValueHistory() ([]domain.StockValueSample, error) {
	var history []domain.StockValueSample
	if err := s.Store.Load(keyStockHistory, &history); err != nil {
		if errors.Is(err, ErrMissing) {
			return nil, nil
		}
		return nil, err
	}
	return history, nil
}

// Columns returns the saved layout for a table, or the given fallback
// when nothing usable was saved.
func (s State) Columns(table string, fallback []Column) ([]Column, error) {
	var cols []Column
	if err := s.Store.Load(keyColumns+"-"+table, &cols); err != nil {
		if errors.Is(err, ErrMissing) {
			return fallback, nil
		}
		return nil, err
	}
	if len(cols) == 0 {
		return fallback, nil
	}
	return cols, nil
}

func (s State) SaveColumns(table string, cols []Column) error {
	return s.Store.Save(keyColumns+"-"+table, cols)
}
