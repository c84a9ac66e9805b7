package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    run_id        TEXT PRIMARY KEY,
    created_at    TEXT NOT NULL,
    transactions  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    run_id              TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    seq                 INTEGER NOT NULL,
    ts                  TEXT NOT NULL,
    description         TEXT NOT NULL,
    amount              REAL NOT NULL,
    source              TEXT,
    missing_amount      INTEGER NOT NULL DEFAULT 0,
    tx_type             TEXT NOT NULL,
    category            TEXT NOT NULL,
    is_subscription     INTEGER NOT NULL,
    abs_amount          REAL NOT NULL,
    day_of_week         INTEGER NOT NULL,
    is_weekend          INTEGER NOT NULL,
    month               TEXT NOT NULL,
    hour                INTEGER NOT NULL,
    merchant            TEXT,
    rolling_7d_spend    REAL,
    rolling_30d_spend   REAL,
    rolling_90d_spend   REAL,
    rolling_7d_income   REAL,
    rolling_30d_income  REAL,
    daily_spend_zscore  REAL,
    month_total_expense REAL,
    month_total_income  REAL,
    anomaly_score       REAL,
    is_anomaly          INTEGER NOT NULL,
    running_balance     REAL NOT NULL,
    PRIMARY KEY (run_id, seq)
);

CREATE TABLE IF NOT EXISTS monthly_summary (
    run_id                  TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    month                   TEXT NOT NULL,
    total_transactions      INTEGER NOT NULL,
    expense_sum             REAL,
    income_sum              REAL,
    avg_expense             REAL,
    std_expense             REAL,
    avg_income              REAL,
    std_income              REAL,
    avg_abs_amount          REAL,
    std_abs_amount          REAL,
    weekend_ratio           REAL,
    subscription_ratio      REAL,
    refund_ratio            REAL,
    anomaly_ratio           REAL,
    missing_amount_ratio    REAL,
    largest_expense         REAL,
    net_cashflow            REAL,
    expense_per_transaction REAL,
    income_per_transaction  REAL,
    quality_score           REAL,
    quality_flag            INTEGER NOT NULL,
    PRIMARY KEY (run_id, month)
);
`
