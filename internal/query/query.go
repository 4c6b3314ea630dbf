package query

import (
	"errors"
	"fmt"

	"github.com/danielpatrickdp/burnout-guardian/internal/decide"
	"github.com/danielpatrickdp/burnout-guardian/internal/detect"
	"github.com/danielpatrickdp/burnout-guardian/internal/forecast"
	"github.com/danielpatrickdp/burnout-guardian/internal/store"
)

// ErrUnauthorized is returned when the actor's role does not cover the
// requested employee's data.
var ErrUnauthorized = errors.New("actor not authorized for this employee")

// #region roles

// Role gates what an actor may read.
type Role string

const (
	RoleEmployee Role = "employee" // own data only
	RoleManager  Role = "manager"  // direct reports plus aggregates
	RoleAdmin    Role = "admin"    // everything
)

// Actor is the caller identity attached to every query.
type Actor struct {
	ID      string
	Role    Role
	Reports []string // employee IDs this manager covers
}

func (a Actor) mayRead(employee string) bool {
	switch a.Role {
	case RoleAdmin:
		return true
	case RoleManager:
		if a.ID == employee {
			return true
		}
		for _, r := range a.Reports {
			if r == employee {
				return true
			}
		}
		return false
	case RoleEmployee:
		return a.ID == employee
	}
	return false
}

// #endregion roles

// #region service

// Service is the read surface over the store. Absence is reported as
// store.ErrNotFound, never as a synthetic low-risk record: a day with no
// assessment is a skipped day, not a calm one.
type Service struct {
	store *store.Store
}

// NewService wires the read path.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// LatestAssessment returns the employee's newest assessment.
func (s *Service) LatestAssessment(actor Actor, employee string) (detect.Assessment, error) {
	if !actor.mayRead(employee) {
		return detect.Assessment{}, fmt.Errorf("%s reading %s: %w", actor.ID, employee, ErrUnauthorized)
	}
	return s.store.LatestAssessment(employee)
}

// LatestForecast returns the employee's newest forecast.
func (s *Service) LatestForecast(actor Actor, employee string) (forecast.Forecast, error) {
	if !actor.mayRead(employee) {
		return forecast.Forecast{}, fmt.Errorf("%s reading %s: %w", actor.ID, employee, ErrUnauthorized)
	}
	return s.store.LatestForecast(employee)
}

// Interventions returns the employee's intervention history, newest first.
func (s *Service) Interventions(actor Actor, employee string, limit int) ([]decide.Intervention, error) {
	if !actor.mayRead(employee) {
		return nil, fmt.Errorf("%s reading %s: %w", actor.ID, employee, ErrUnauthorized)
	}
	return s.store.Interventions(employee, limit)
}

// #endregion service

// #region aggregates

// FleetReport is the derived, on-demand aggregate view. Computed fresh on
// every call; no cache, no global state.
type FleetReport struct {
	Employees        int
	RiskDistribution map[detect.RiskLevel]int
	AverageRisk      float64
	AverageStability float64
	Escalated        []string // employees whose latest risk is critical
	Interventions    int      // total interventions across covered employees
	Effectiveness    float64  // mean effectiveness of evaluated interventions
}

// FleetReport aggregates over the employees the actor may see: a manager's
// reports, or the whole fleet for an admin. Employee actors get only
// themselves, which is a degenerate but valid report.
func (s *Service) FleetReport(actor Actor) (FleetReport, error) {
	var covered []string
	switch actor.Role {
	case RoleAdmin:
		all, err := s.store.ListEmployees()
		if err != nil {
			return FleetReport{}, err
		}
		covered = all
	case RoleManager:
		covered = actor.Reports
	case RoleEmployee:
		covered = []string{actor.ID}
	default:
		return FleetReport{}, fmt.Errorf("role %q: %w", actor.Role, ErrUnauthorized)
	}

	report := FleetReport{RiskDistribution: make(map[detect.RiskLevel]int)}
	var riskSum, stabilitySum float64
	var assessed int
	var effSum float64
	var effCount int

	for _, emp := range covered {
		a, err := s.store.LatestAssessment(emp)
		if errors.Is(err, store.ErrNotFound) {
			continue // never assessed, not a low-risk employee
		}
		if err != nil {
			return FleetReport{}, err
		}
		assessed++
		riskSum += a.RiskProbability
		stabilitySum += a.StabilityIndex
		report.RiskDistribution[a.RiskLevel]++
		if a.RiskLevel == detect.RiskCritical {
			report.Escalated = append(report.Escalated, emp)
		}

		ivs, err := s.store.Interventions(emp, 0)
		if err != nil {
			return FleetReport{}, err
		}
		report.Interventions += len(ivs)
		for _, iv := range ivs {
			if iv.OutcomeLabel.Terminal() {
				effSum += iv.EffectivenessScore
				effCount++
			}
		}
	}

	report.Employees = assessed
	if assessed > 0 {
		report.AverageRisk = riskSum / float64(assessed)
		report.AverageStability = stabilitySum / float64(assessed)
	}
	if effCount > 0 {
		report.Effectiveness = effSum / float64(effCount)
	}
	return report, nil
}

// #endregion aggregates
