// Package store persists processed analysis runs to SQLite. It is the
// persistence collaborator of the pipeline: it accepts a fully annotated
// transaction table plus monthly summaries and reports the resolved
// location. The core pipeline has no dependency on this format.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"finsight/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store wraps the SQLite database holding processed runs.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the resolved location of the database file.
func (s *Store) Path() string {
	abs, err := filepath.Abs(s.path)
	if err != nil {
		return s.path
	}
	return abs
}

// SaveRun stores one processed run: the annotated transactions and the
// monthly summaries, keyed by run ID. Re-saving the same run ID replaces
// its rows.
func (s *Store) SaveRun(runID string, txns []model.Transaction, months []model.MonthlySummary) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(`INSERT OR REPLACE INTO runs (run_id, created_at, transactions)
		VALUES (?, ?, ?)`, runID, now, len(txns)); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM transactions WHERE run_id = ?", runID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM monthly_summary WHERE run_id = ?", runID); err != nil {
		return err
	}

	for i, t := range txns {
		_, err := tx.Exec(`INSERT INTO transactions
			(run_id, seq, ts, description, amount, source, missing_amount,
			 tx_type, category, is_subscription, abs_amount, day_of_week,
			 is_weekend, month, hour, merchant,
			 rolling_7d_spend, rolling_30d_spend, rolling_90d_spend,
			 rolling_7d_income, rolling_30d_income, daily_spend_zscore,
			 month_total_expense, month_total_income,
			 anomaly_score, is_anomaly, running_balance)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, i, t.Timestamp.UTC().Format(time.RFC3339), t.Description,
			t.Amount, t.Source, boolToInt(t.MissingAmount),
			string(t.Type), t.Category, boolToInt(t.IsSubscription),
			t.AbsAmount, t.DayOfWeek, boolToInt(t.IsWeekend),
			t.Month.Format("2006-01-02"), t.Hour, t.Merchant,
			t.Rolling7dSpend, t.Rolling30dSpend, t.Rolling90dSpend,
			t.Rolling7dIncome, t.Rolling30dIncome, t.DailySpendZScore,
			t.MonthTotalExpense, t.MonthTotalIncome,
			t.AnomalyScore, boolToInt(t.IsAnomaly), t.RunningBalance,
		)
		if err != nil {
			return err
		}
	}

	for _, m := range months {
		_, err := tx.Exec(`INSERT INTO monthly_summary
			(run_id, month, total_transactions, expense_sum, income_sum,
			 avg_expense, std_expense, avg_income, std_income,
			 avg_abs_amount, std_abs_amount, weekend_ratio,
			 subscription_ratio, refund_ratio, anomaly_ratio,
			 missing_amount_ratio, largest_expense, net_cashflow,
			 expense_per_transaction, income_per_transaction,
			 quality_score, quality_flag)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, m.Month.Format("2006-01-02"), m.TotalTransactions,
			m.ExpenseSum, m.IncomeSum, m.AvgExpense, m.StdExpense,
			m.AvgIncome, m.StdIncome, m.AvgAbsAmount, m.StdAbsAmount,
			m.WeekendRatio, m.SubscriptionRatio, m.RefundRatio,
			m.AnomalyRatio, m.MissingAmountRatio, m.LargestExpense,
			m.NetCashflow, m.ExpensePerTransaction, m.IncomePerTransaction,
			m.QualityScore, boolToInt(m.QualityFlag),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadTransactions reads back the transactions of one run in stored order.
func (s *Store) LoadTransactions(runID string) ([]model.Transaction, error) {
	rows, err := s.db.Query(`SELECT
		ts, description, amount, source, missing_amount, tx_type, category,
		is_subscription, abs_amount, day_of_week, is_weekend, month, hour,
		merchant, rolling_7d_spend, rolling_30d_spend, rolling_90d_spend,
		rolling_7d_income, rolling_30d_income, daily_spend_zscore,
		month_total_expense, month_total_income, anomaly_score, is_anomaly,
		running_balance
		FROM transactions WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var ts, month, txType string
		var missing, subscription, weekend, anomaly int

		err := rows.Scan(
			&ts, &t.Description, &t.Amount, &t.Source, &missing, &txType,
			&t.Category, &subscription, &t.AbsAmount, &t.DayOfWeek,
			&weekend, &month, &t.Hour, &t.Merchant,
			&t.Rolling7dSpend, &t.Rolling30dSpend, &t.Rolling90dSpend,
			&t.Rolling7dIncome, &t.Rolling30dIncome, &t.DailySpendZScore,
			&t.MonthTotalExpense, &t.MonthTotalIncome,
			&t.AnomalyScore, &anomaly, &t.RunningBalance,
		)
		if err != nil {
			return nil, err
		}

		t.Timestamp, _ = time.Parse(time.RFC3339, ts)
		t.Month, _ = time.Parse("2006-01-02", month)
		t.Type = model.TransactionType(txType)
		t.MissingAmount = missing != 0
		t.IsSubscription = subscription != 0
		t.IsWeekend = weekend != 0
		t.IsAnomaly = anomaly != 0
		t.DateOnly = time.Date(t.Timestamp.Year(), t.Timestamp.Month(),
			t.Timestamp.Day(), 0, 0, 0, 0, t.Timestamp.Location())
		t.Year = t.Timestamp.Year()
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// RunCount returns the number of stored runs.
func (s *Store) RunCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	return count, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
