package repository

import "strings"

// schemaTemplate creates the knowledge tables. {{ID}} is replaced with the
// dialect's auto-increment primary key column.
const schemaTemplate = `
CREATE TABLE IF NOT EXISTS crops (
    id {{ID}},
    name TEXT NOT NULL UNIQUE,
    crop_type TEXT,
    cycle_days INTEGER,
    description TEXT,
    soil_types TEXT NOT NULL DEFAULT '[]',
    tips TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS planting_periods (
    id {{ID}},
    crop_id INTEGER NOT NULL REFERENCES crops (id) ON DELETE CASCADE,
    region TEXT NOT NULL,
    month_start INTEGER NOT NULL CHECK (month_start BETWEEN 1 AND 12),
    month_end INTEGER NOT NULL CHECK (month_end BETWEEN 1 AND 12),
    advice TEXT
);

CREATE TABLE IF NOT EXISTS soils (
    id {{ID}},
    name TEXT NOT NULL UNIQUE,
    description TEXT
);

CREATE TABLE IF NOT EXISTS crop_soils (
    crop_id INTEGER NOT NULL REFERENCES crops (id) ON DELETE CASCADE,
    soil_id INTEGER NOT NULL REFERENCES soils (id) ON DELETE CASCADE,
    PRIMARY KEY (crop_id, soil_id)
);

CREATE TABLE IF NOT EXISTS diseases (
    id {{ID}},
    name TEXT NOT NULL UNIQUE,
    symptoms TEXT,
    treatments TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS crop_diseases (
    crop_id INTEGER NOT NULL REFERENCES crops (id) ON DELETE CASCADE,
    disease_id INTEGER NOT NULL REFERENCES diseases (id) ON DELETE CASCADE,
    PRIMARY KEY (crop_id, disease_id)
);

CREATE TABLE IF NOT EXISTS pests (
    id {{ID}},
    name TEXT NOT NULL UNIQUE,
    damage TEXT,
    controls TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS crop_pests (
    crop_id INTEGER NOT NULL REFERENCES crops (id) ON DELETE CASCADE,
    pest_id INTEGER NOT NULL REFERENCES pests (id) ON DELETE CASCADE,
    PRIMARY KEY (crop_id, pest_id)
);

CREATE TABLE IF NOT EXISTS fertilizers (
    id {{ID}},
    name TEXT NOT NULL,
    fertilizer_type TEXT NOT NULL,
    composition TEXT,
    description TEXT,
    application_mode TEXT,
    precautions TEXT,
    UNIQUE (name, fertilizer_type)
);

CREATE TABLE IF NOT EXISTS crop_fertilizers (
    crop_id INTEGER NOT NULL REFERENCES crops (id) ON DELETE CASCADE,
    fertilizer_id INTEGER NOT NULL REFERENCES fertilizers (id) ON DELETE CASCADE,
    stage TEXT,
    dose TEXT,
    frequency TEXT,
    method TEXT,
    PRIMARY KEY (crop_id, fertilizer_id)
);

CREATE INDEX IF NOT EXISTS idx_planting_periods_crop ON planting_periods (crop_id);
`

func schemaFor(driver string) string {
	id := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if driver == DriverPostgres {
		id = "SERIAL PRIMARY KEY"
	}
	return strings.ReplaceAll(schemaTemplate, "{{ID}}", id)
}
