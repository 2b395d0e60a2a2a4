package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS households (
    household_id   TEXT PRIMARY KEY,
    name           TEXT NOT NULL,
    household_size INTEGER NOT NULL,
    floor_area     REAL,
    created_at     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS devices (
    device_id      TEXT PRIMARY KEY,
    household_id   TEXT NOT NULL REFERENCES households(household_id) ON DELETE CASCADE,
    name           TEXT NOT NULL,
    category       TEXT NOT NULL,
    power_rating   REAL NOT NULL,
    daily_hours    REAL NOT NULL DEFAULT 0,
    active         INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS readings (
    reading_id     INTEGER PRIMARY KEY AUTOINCREMENT,
    household_id   TEXT NOT NULL REFERENCES households(household_id) ON DELETE CASCADE,
    device_id      TEXT REFERENCES devices(device_id) ON DELETE SET NULL,
    value          REAL NOT NULL,
    kind           TEXT NOT NULL,
    reading_date   TEXT NOT NULL,
    cost           REAL
);

CREATE TABLE IF NOT EXISTS benchmarks (
    household_size      INTEGER NOT NULL,
    floor_area_range    TEXT NOT NULL,
    season              TEXT NOT NULL,
    average_consumption REAL NOT NULL,
    PRIMARY KEY (household_size, floor_area_range, season)
);

CREATE TABLE IF NOT EXISTS recommendations (
    recommendation_id     TEXT PRIMARY KEY,
    household_id          TEXT NOT NULL REFERENCES households(household_id) ON DELETE CASCADE,
    title                 TEXT NOT NULL,
    description           TEXT NOT NULL,
    category              TEXT NOT NULL,
    estimated_saving      REAL NOT NULL DEFAULT 0,
    estimated_cost_saving REAL NOT NULL DEFAULT 0,
    difficulty            TEXT NOT NULL,
    origin                TEXT NOT NULL,
    device_id             TEXT,
    period_label          TEXT,
    period_start          TEXT,
    period_end            TEXT,
    implemented           INTEGER NOT NULL DEFAULT 0,
    created_at            TEXT NOT NULL,
    UNIQUE (household_id, title)
);

CREATE INDEX IF NOT EXISTS idx_readings_household_date ON readings(household_id, reading_date);
CREATE INDEX IF NOT EXISTS idx_devices_household ON devices(household_id);
`
