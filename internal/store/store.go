package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/danielpatrickdp/burnout-guardian/internal/decide"
	"github.com/danielpatrickdp/burnout-guardian/internal/detect"
	"github.com/danielpatrickdp/burnout-guardian/internal/forecast"
	"github.com/danielpatrickdp/burnout-guardian/internal/profile"
	"github.com/danielpatrickdp/burnout-guardian/internal/snapshot"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup matches no row. Callers that need
// absence semantics (a skipped cycle is not a low-risk day) test for it.
var ErrNotFound = errors.New("record not found")

// ErrOutcomeFinal is returned when an outcome write targets an intervention
// whose label already left pending. Outcomes are written exactly once.
var ErrOutcomeFinal = errors.New("intervention outcome already recorded")

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	employee_id   TEXT NOT NULL,
	day           INTEGER NOT NULL,
	signals_json  TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	UNIQUE(employee_id, day)
);

CREATE TABLE IF NOT EXISTS assessments (
	employee_id      TEXT NOT NULL,
	day              INTEGER NOT NULL,
	stability        REAL NOT NULL,
	risk             REAL NOT NULL,
	risk_level       TEXT NOT NULL,
	volatility       REAL NOT NULL,
	acceleration     REAL NOT NULL,
	contributors     TEXT,
	anomaly_flags    TEXT,
	deviation_score  REAL NOT NULL,
	anomaly_score    REAL NOT NULL,
	changepoint_prob REAL NOT NULL,
	created_at       TEXT NOT NULL,
	PRIMARY KEY (employee_id, day)
);

CREATE TABLE IF NOT EXISTS forecasts (
	forecast_id   TEXT PRIMARY KEY,
	employee_id   TEXT NOT NULL,
	day           INTEGER NOT NULL,
	horizon_days  INTEGER NOT NULL,
	curve         BLOB NOT NULL,
	lower_band    BLOB NOT NULL,
	upper_band    BLOB NOT NULL,
	tipping_day   INTEGER NOT NULL,
	peak_day      INTEGER NOT NULL,
	peak_value    REAL NOT NULL,
	model_type    TEXT NOT NULL,
	model_version TEXT NOT NULL,
	created_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_forecasts_employee ON forecasts(employee_id, day);

CREATE TABLE IF NOT EXISTS interventions (
	intervention_id TEXT PRIMARY KEY,
	employee_id     TEXT NOT NULL,
	day             INTEGER NOT NULL,
	triggered_at    TEXT NOT NULL,
	action_type     TEXT NOT NULL,
	params_json     TEXT NOT NULL,
	risk_score      REAL NOT NULL,
	risk_level      TEXT NOT NULL,
	pre_stability   REAL NOT NULL,
	pre_volatility  REAL NOT NULL,
	post_stability  REAL,
	outcome_label   TEXT NOT NULL DEFAULT 'pending',
	effectiveness   REAL,
	dispatch_failed INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_interventions_employee ON interventions(employee_id, day);
CREATE INDEX IF NOT EXISTS idx_interventions_pending ON interventions(outcome_label) WHERE outcome_label = 'pending';

CREATE TABLE IF NOT EXISTS profiles (
	employee_id          TEXT PRIMARY KEY,
	buffer_threshold     REAL NOT NULL,
	redistribute_threshold REAL NOT NULL,
	alert_threshold      REAL NOT NULL,
	engine_state         TEXT NOT NULL,
	used_today           INTEGER NOT NULL,
	counter_day          INTEGER NOT NULL,
	recent_effectiveness REAL NOT NULL,
	intervention_total   INTEGER NOT NULL,
	updated_at           TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct
// Store holds the pipeline's durable state in SQLite: snapshots,
// assessments, forecasts, interventions, and resilience profiles.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages (e.g. the
// provenance log).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion db-accessor

// #region snapshots
// PutSnapshot persists one day's raw signals. Re-delivery of the same
// (employee, day) is a no-op; the first write wins. Returns whether the
// row was new.
func (s *Store) PutSnapshot(snap snapshot.Snapshot) (bool, error) {
	sigJSON, err := json.Marshal(snap.Signals)
	if err != nil {
		return false, fmt.Errorf("marshal signals: %w", err)
	}
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO snapshots (employee_id, day, signals_json, created_at)
		 VALUES (?, ?, ?, ?)`,
		snap.EmployeeID, snap.Day, string(sigJSON), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return false, fmt.Errorf("insert snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// GetSnapshot reads one day's signals back.
func (s *Store) GetSnapshot(employee string, day int) (snapshot.Snapshot, error) {
	var sigJSON string
	err := s.db.QueryRow(
		`SELECT signals_json FROM snapshots WHERE employee_id = ? AND day = ?`,
		employee, day,
	).Scan(&sigJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return snapshot.Snapshot{}, fmt.Errorf("snapshot %s/%d: %w", employee, day, ErrNotFound)
	}
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("get snapshot: %w", err)
	}
	snap := snapshot.Snapshot{EmployeeID: employee, Day: day}
	if err := json.Unmarshal([]byte(sigJSON), &snap.Signals); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("unmarshal signals: %w", err)
	}
	return snap, nil
}

// Snapshots returns one employee's snapshots in day order, for rebuilding
// in-memory baselines after a restart.
func (s *Store) Snapshots(employee string) ([]snapshot.Snapshot, error) {
	rows, err := s.db.Query(
		`SELECT day, signals_json FROM snapshots WHERE employee_id = ? ORDER BY day`, employee)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []snapshot.Snapshot
	for rows.Next() {
		snap := snapshot.Snapshot{EmployeeID: employee}
		var sigJSON string
		if err := rows.Scan(&snap.Day, &sigJSON); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		if err := json.Unmarshal([]byte(sigJSON), &snap.Signals); err != nil {
			return nil, fmt.Errorf("unmarshal signals: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// ListEmployees returns every employee known to the store, via snapshot
// or assessment.
func (s *Store) ListEmployees() ([]string, error) {
	rows, err := s.db.Query(
		`SELECT employee_id FROM snapshots
		 UNION SELECT employee_id FROM assessments
		 ORDER BY employee_id`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// #endregion snapshots

// #region assessments
// PutAssessment commits one cycle's assessment. A retried cycle re-inserts
// the same (employee, day); the first committed row wins.
func (s *Store) PutAssessment(a detect.Assessment) error {
	contribJSON, err := json.Marshal(a.TopContributors)
	if err != nil {
		return fmt.Errorf("marshal contributors: %w", err)
	}
	flagsJSON, err := json.Marshal(a.AnomalyFlags)
	if err != nil {
		return fmt.Errorf("marshal flags: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT OR IGNORE INTO assessments
		 (employee_id, day, stability, risk, risk_level, volatility, acceleration,
		  contributors, anomaly_flags, deviation_score, anomaly_score, changepoint_prob, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.EmployeeID, a.Day, a.StabilityIndex, a.RiskProbability, string(a.RiskLevel),
		a.Volatility, a.Acceleration, string(contribJSON), string(flagsJSON),
		a.DeviationScore, a.AnomalyScore, a.ChangePointProb,
		a.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	return nil
}

// AssessmentHistory returns the employee's assessments in day order. A
// limit > 0 keeps only the most recent rows.
func (s *Store) AssessmentHistory(employee string, limit int) ([]detect.Assessment, error) {
	q := `SELECT employee_id, day, stability, risk, risk_level, volatility, acceleration,
	             contributors, anomaly_flags, deviation_score, anomaly_score, changepoint_prob, created_at
	      FROM assessments WHERE employee_id = ? ORDER BY day`
	args := []interface{}{employee}
	if limit > 0 {
		// Tail of the series: newest N, re-sorted ascending.
		q = `SELECT * FROM (` + q + ` DESC LIMIT ?) ORDER BY day`
		args = append(args, limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []detect.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// LatestAssessment returns the newest assessment, or ErrNotFound when the
// employee has none: absence is distinguishable from a low-risk day.
func (s *Store) LatestAssessment(employee string) (detect.Assessment, error) {
	row := s.db.QueryRow(
		`SELECT employee_id, day, stability, risk, risk_level, volatility, acceleration,
		        contributors, anomaly_flags, deviation_score, anomaly_score, changepoint_prob, created_at
		 FROM assessments WHERE employee_id = ? ORDER BY day DESC LIMIT 1`, employee)
	a, err := scanAssessment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return detect.Assessment{}, fmt.Errorf("assessment for %s: %w", employee, ErrNotFound)
	}
	return a, err
}

// AssessmentAt returns the assessment for an exact day, or ErrNotFound.
func (s *Store) AssessmentAt(employee string, day int) (detect.Assessment, error) {
	row := s.db.QueryRow(
		`SELECT employee_id, day, stability, risk, risk_level, volatility, acceleration,
		        contributors, anomaly_flags, deviation_score, anomaly_score, changepoint_prob, created_at
		 FROM assessments WHERE employee_id = ? AND day = ?`, employee, day)
	a, err := scanAssessment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return detect.Assessment{}, fmt.Errorf("assessment %s/%d: %w", employee, day, ErrNotFound)
	}
	return a, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAssessment(r rowScanner) (detect.Assessment, error) {
	var a detect.Assessment
	var level, contribJSON, flagsJSON, createdStr string
	err := r.Scan(&a.EmployeeID, &a.Day, &a.StabilityIndex, &a.RiskProbability, &level,
		&a.Volatility, &a.Acceleration, &contribJSON, &flagsJSON,
		&a.DeviationScore, &a.AnomalyScore, &a.ChangePointProb, &createdStr)
	if err != nil {
		return detect.Assessment{}, err
	}
	a.RiskLevel = detect.RiskLevel(level)
	if err := json.Unmarshal([]byte(contribJSON), &a.TopContributors); err != nil {
		return detect.Assessment{}, fmt.Errorf("unmarshal contributors: %w", err)
	}
	if err := json.Unmarshal([]byte(flagsJSON), &a.AnomalyFlags); err != nil {
		return detect.Assessment{}, fmt.Errorf("unmarshal flags: %w", err)
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return a, nil
}

// #endregion assessments

// #region forecasts
// PutForecast persists a forecast; forecasts are append-only and newer
// ones supersede older by day order, never by mutation.
func (s *Store) PutForecast(f forecast.Forecast) error {
	_, err := s.db.Exec(
		`INSERT INTO forecasts
		 (forecast_id, employee_id, day, horizon_days, curve, lower_band, upper_band,
		  tipping_day, peak_day, peak_value, model_type, model_version, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.EmployeeID, f.Day, f.HorizonDays,
		encodeCurve(f.Curve), encodeCurve(f.Lower), encodeCurve(f.Upper),
		f.TippingDay, f.PeakDay, f.PeakValue, f.ModelType, f.ModelVersion,
		f.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert forecast: %w", err)
	}
	return nil
}

// LatestForecast returns the newest forecast for an employee, or ErrNotFound.
func (s *Store) LatestForecast(employee string) (forecast.Forecast, error) {
	var f forecast.Forecast
	var curve, lower, upper []byte
	var createdStr string
	err := s.db.QueryRow(
		`SELECT forecast_id, employee_id, day, horizon_days, curve, lower_band, upper_band,
		        tipping_day, peak_day, peak_value, model_type, model_version, created_at
		 FROM forecasts WHERE employee_id = ? ORDER BY day DESC, created_at DESC LIMIT 1`,
		employee,
	).Scan(&f.ID, &f.EmployeeID, &f.Day, &f.HorizonDays, &curve, &lower, &upper,
		&f.TippingDay, &f.PeakDay, &f.PeakValue, &f.ModelType, &f.ModelVersion, &createdStr)
	if errors.Is(err, sql.ErrNoRows) {
		return forecast.Forecast{}, fmt.Errorf("forecast for %s: %w", employee, ErrNotFound)
	}
	if err != nil {
		return forecast.Forecast{}, fmt.Errorf("get forecast: %w", err)
	}
	f.Curve = decodeCurve(curve)
	f.Lower = decodeCurve(lower)
	f.Upper = decodeCurve(upper)
	f.TippingDetected = f.TippingDay >= 0
	f.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return f, nil
}

// #endregion forecasts

// #region interventions
// PutIntervention records a freshly triggered intervention with a pending
// outcome.
func (s *Store) PutIntervention(iv decide.Intervention) error {
	paramsJSON, err := json.Marshal(iv.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO interventions
		 (intervention_id, employee_id, day, triggered_at, action_type, params_json,
		  risk_score, risk_level, pre_stability, pre_volatility, outcome_label, dispatch_failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		iv.ID, iv.EmployeeID, iv.Day, iv.TriggeredAt.Format(time.RFC3339Nano),
		string(iv.ActionType), string(paramsJSON),
		iv.RiskScoreAtTrigger, string(iv.RiskLevelAtTrigger),
		iv.PreStability, iv.PreVolatility, string(decide.OutcomePending), boolInt(iv.DispatchFailed),
	)
	if err != nil {
		return fmt.Errorf("insert intervention: %w", err)
	}
	return nil
}

// MarkDispatchFailed flags an intervention whose external hand-off failed.
// The record itself stands; only outcome evaluation treats it normally.
func (s *Store) MarkDispatchFailed(id string) error {
	_, err := s.db.Exec(`UPDATE interventions SET dispatch_failed = 1 WHERE intervention_id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark dispatch failed: %w", err)
	}
	return nil
}

// RecordOutcome writes the terminal outcome exactly once. A second write
// finds no pending row and fails with ErrOutcomeFinal.
func (s *Store) RecordOutcome(id string, label decide.OutcomeLabel, postStability, effectiveness float64) error {
	if !label.Terminal() {
		return fmt.Errorf("label %q is not terminal", label)
	}
	res, err := s.db.Exec(
		`UPDATE interventions
		 SET outcome_label = ?, post_stability = ?, effectiveness = ?
		 WHERE intervention_id = ? AND outcome_label = 'pending'`,
		string(label), postStability, effectiveness, id,
	)
	if err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		var exists int
		if err := s.db.QueryRow(
			`SELECT COUNT(*) FROM interventions WHERE intervention_id = ?`, id,
		).Scan(&exists); err != nil {
			return fmt.Errorf("check intervention: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("intervention %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("intervention %s: %w", id, ErrOutcomeFinal)
	}
	return nil
}

// PendingInterventions returns pending interventions triggered on or
// before maxDay, oldest first. The caller applies the evaluation lag.
func (s *Store) PendingInterventions(employee string, maxDay int) ([]decide.Intervention, error) {
	rows, err := s.db.Query(
		`SELECT intervention_id, employee_id, day, triggered_at, action_type, params_json,
		        risk_score, risk_level, pre_stability, pre_volatility,
		        post_stability, outcome_label, effectiveness, dispatch_failed
		 FROM interventions
		 WHERE employee_id = ? AND outcome_label = 'pending' AND day <= ?
		 ORDER BY day`, employee, maxDay,
	)
	if err != nil {
		return nil, fmt.Errorf("query pending: %w", err)
	}
	defer rows.Close()
	return scanInterventions(rows)
}

// Interventions returns the employee's interventions, newest first, up to
// limit (0 means all).
func (s *Store) Interventions(employee string, limit int) ([]decide.Intervention, error) {
	q := `SELECT intervention_id, employee_id, day, triggered_at, action_type, params_json,
	             risk_score, risk_level, pre_stability, pre_volatility,
	             post_stability, outcome_label, effectiveness, dispatch_failed
	      FROM interventions WHERE employee_id = ? ORDER BY day DESC, triggered_at DESC`
	args := []interface{}{employee}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query interventions: %w", err)
	}
	defer rows.Close()
	return scanInterventions(rows)
}

func scanInterventions(rows *sql.Rows) ([]decide.Intervention, error) {
	var out []decide.Intervention
	for rows.Next() {
		var iv decide.Intervention
		var triggeredStr, action, paramsJSON, level, label string
		var post, eff sql.NullFloat64
		var dispatchFailed int
		if err := rows.Scan(&iv.ID, &iv.EmployeeID, &iv.Day, &triggeredStr, &action, &paramsJSON,
			&iv.RiskScoreAtTrigger, &level, &iv.PreStability, &iv.PreVolatility,
			&post, &label, &eff, &dispatchFailed); err != nil {
			return nil, fmt.Errorf("scan intervention: %w", err)
		}
		iv.TriggeredAt, _ = time.Parse(time.RFC3339Nano, triggeredStr)
		iv.ActionType = decide.ActionType(action)
		iv.RiskLevelAtTrigger = detect.RiskLevel(level)
		iv.OutcomeLabel = decide.OutcomeLabel(label)
		iv.DispatchFailed = dispatchFailed != 0
		if post.Valid {
			iv.PostStability = post.Float64
		}
		if eff.Valid {
			iv.EffectivenessScore = eff.Float64
		}
		if err := json.Unmarshal([]byte(paramsJSON), &iv.Params); err != nil {
			return nil, fmt.Errorf("unmarshal params: %w", err)
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

// DecayedEffectiveness returns the half-life-weighted mean effectiveness of
// the employee's evaluated interventions as of a day. Older outcomes count
// for less; an employee with no evaluated interventions scores zero.
func (s *Store) DecayedEffectiveness(employee string, asOfDay int, halfLifeDays float64) (float64, error) {
	rows, err := s.db.Query(
		`SELECT day, effectiveness FROM interventions
		 WHERE employee_id = ? AND outcome_label != 'pending' AND effectiveness IS NOT NULL`,
		employee,
	)
	if err != nil {
		return 0, fmt.Errorf("query effectiveness: %w", err)
	}
	defer rows.Close()

	var weighted, weights float64
	for rows.Next() {
		var day int
		var eff float64
		if err := rows.Scan(&day, &eff); err != nil {
			return 0, fmt.Errorf("scan effectiveness: %w", err)
		}
		age := float64(asOfDay - day)
		if age < 0 {
			age = 0
		}
		w := math.Exp(-age * math.Ln2 / halfLifeDays)
		weighted += w * eff
		weights += w
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if weights == 0 {
		return 0, nil
	}
	return weighted / weights, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// #endregion interventions

// #region profiles
// GetProfile loads the employee's resilience profile, creating the default
// one on first sight.
func (s *Store) GetProfile(employee string) (profile.Profile, error) {
	var p profile.Profile
	var state, updatedStr string
	err := s.db.QueryRow(
		`SELECT employee_id, buffer_threshold, redistribute_threshold, alert_threshold,
		        engine_state, used_today, counter_day, recent_effectiveness, intervention_total, updated_at
		 FROM profiles WHERE employee_id = ?`, employee,
	).Scan(&p.EmployeeID, &p.Thresholds.Buffer, &p.Thresholds.Redistribute, &p.Thresholds.Alert,
		&state, &p.UsedToday, &p.CounterDay, &p.RecentEffectiveness, &p.InterventionTotal, &updatedStr)
	if errors.Is(err, sql.ErrNoRows) {
		return profile.NewProfile(employee), nil
	}
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	p.State = decide.EngineState(state)
	p.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedStr)
	return p, nil
}

// SaveProfile upserts the profile row.
func (s *Store) SaveProfile(p profile.Profile) error {
	_, err := s.db.Exec(
		`INSERT INTO profiles
		 (employee_id, buffer_threshold, redistribute_threshold, alert_threshold,
		  engine_state, used_today, counter_day, recent_effectiveness, intervention_total, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(employee_id) DO UPDATE SET
		   buffer_threshold = excluded.buffer_threshold,
		   redistribute_threshold = excluded.redistribute_threshold,
		   alert_threshold = excluded.alert_threshold,
		   engine_state = excluded.engine_state,
		   used_today = excluded.used_today,
		   counter_day = excluded.counter_day,
		   recent_effectiveness = excluded.recent_effectiveness,
		   intervention_total = excluded.intervention_total,
		   updated_at = excluded.updated_at`,
		p.EmployeeID, p.Thresholds.Buffer, p.Thresholds.Redistribute, p.Thresholds.Alert,
		string(p.State), p.UsedToday, p.CounterDay, p.RecentEffectiveness, p.InterventionTotal,
		p.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// #endregion profiles
