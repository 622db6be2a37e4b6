package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestState(t *testing.T) (State, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return State{Store: store}, dir
}

func TestActivityLog_EmptyWhenNothingSaved(t *testing.T) {
	s, _ := newTestState(t)
	log, err := s.ActivityLog()
	if err != nil {
		t.Fatalf("ActivityLog: %v", err)
	}
	if len(log) != 0 {
		t.Errorf("got %d entries, want 0", len(log))
	}
}

func TestAppendActivity_NewestFirst(t *testing.T) {
	s, _ := newTestState(t)
	if _, err := s.AppendActivity("Ana", "Produto adicionado", "Fone"); err != nil {
		t.Fatalf("AppendActivity: %v", err)
	}
	log, err := s.AppendActivity("Bia", "Produto excluído", "Capinha")
	if err != nil {
		t.Fatalf("AppendActivity: %v", err)
	}
	if len(log) != 2 {
		t.Fatalf("got %d entries, want 2", len(log))
	}
	if log[0].Admin != "Bia" || log[1].Admin != "Ana" {
		t.Errorf("log order = [%s, %s], want newest first", log[0].Admin, log[1].Admin)
	}
}

func TestAppendActivity_DefaultsAdmin(t *testing.T) {
	s, _ := newTestState(t)
	log, err := s.AppendActivity("", "Login", "")
	if err != nil {
		t.Fatalf("AppendActivity: %v", err)
	}
	if log[0].Admin != "Sistema" {
		t.Errorf("Admin = %q, want Sistema", log[0].Admin)
	}
}

func TestAppendActivity_CapsAtFiveHundred(t *testing.T) {
	s, _ := newTestState(t)
	for i := 0; i < 505; i++ {
		if _, err := s.AppendActivity("Ana", "Venda registrada", ""); err != nil {
			t.Fatalf("AppendActivity: %v", err)
		}
	}
	log, err := s.ActivityLog()
	if err != nil {
		t.Fatalf("ActivityLog: %v", err)
	}
	if len(log) != 500 {
		t.Errorf("got %d entries, want cap of 500", len(log))
	}
}

func TestRecordStockValue_AppendsOnlyOnChange(t *testing.T) {
	s, _ := newTestState(t)

	history, err := s.RecordStockValue(1000)
	if err != nil {
		t.Fatalf("RecordStockValue: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("got %d samples, want 1", len(history))
	}

	history, err = s.RecordStockValue(1000)
	if err != nil {
		t.Fatalf("RecordStockValue: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("unchanged total appended a sample, got %d", len(history))
	}

	history, err = s.RecordStockValue(1250.50)
	if err != nil {
		t.Fatalf("RecordStockValue: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("got %d samples, want 2", len(history))
	}
	if history[1].TotalValue != 1250.50 {
		t.Errorf("last sample = %v, want 1250.50", history[1].TotalValue)
	}
}

func TestRecordStockValue_CapsAtSixty(t *testing.T) {
	s, _ := newTestState(t)
	for i := 0; i < 70; i++ {
		if _, err := s.RecordStockValue(float64(i)); err != nil {
			t.Fatalf("RecordStockValue: %v", err)
		}
	}
	history, err := s.StockValueHistory()
	if err != nil {
		t.Fatalf("StockValueHistory: %v", err)
	}
	if len(history) != 60 {
		t.Fatalf("got %d samples, want cap of 60", len(history))
	}
	if history[0].TotalValue != 10 || history[59].TotalValue != 69 {
		t.Errorf("window = [%v..%v], want [10..69]", history[0].TotalValue, history[59].TotalValue)
	}
}

func TestColumns_FallbackWhenMissing(t *testing.T) {
	s, _ := newTestState(t)
	fallback := []Column{{ID: "name", Label: "Nome", Sortable: true, Visible: true}}

	cols, err := s.Columns("products", fallback)
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}
	if len(cols) != 1 || cols[0].ID != "name" {
		t.Errorf("got %v, want fallback", cols)
	}

	saved := []Column{
		{ID: "name", Label: "Nome", Sortable: true, Visible: false},
		{ID: "cost", Label: "Custo", Sortable: true, Visible: true},
	}
	if err := s.SaveColumns("products", saved); err != nil {
		t.Fatalf("SaveColumns: %v", err)
	}
	cols, err = s.Columns("products", fallback)
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}
	if len(cols) != 2 || cols[0].Visible {
		t.Errorf("saved layout not returned, got %v", cols)
	}
}

func TestFileStore_CorruptFileCountsAsMissing(t *testing.T) {
	s, dir := newTestState(t)
	path := filepath.Join(dir, "activity-log.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	log, err := s.ActivityLog()
	if err != nil {
		t.Fatalf("ActivityLog: %v", err)
	}
	if len(log) != 0 {
		t.Errorf("corrupt file should read as empty, got %d entries", len(log))
	}
}
