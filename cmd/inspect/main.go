package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/danielpatrickdp/burnout-guardian/internal/decide"
	"github.com/danielpatrickdp/burnout-guardian/internal/detect"
	"github.com/danielpatrickdp/burnout-guardian/internal/query"
	"github.com/danielpatrickdp/burnout-guardian/internal/store"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to guardian.db")
	employee := flag.String("employee", "", "show single employee detail")
	last := flag.Int("last", 10, "interventions to show in detail mode")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/guardian.db [--employee id] [--last N] [--json]")
		os.Exit(2)
	}

	st, err := store.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	svc := query.NewService(st)
	admin := query.Actor{ID: "inspect", Role: query.RoleAdmin}

	if *employee != "" {
		err = runDetailMode(svc, admin, *employee, *last, *jsonOut)
	} else {
		err = runFleetMode(st, svc, admin, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region fleet-mode

type fleetRow struct {
	EmployeeID string  `json:"employee_id"`
	Day        int     `json:"day"`
	Risk       float64 `json:"risk"`
	Level      string  `json:"level"`
	Stability  float64 `json:"stability"`
	Volatility float64 `json:"volatility"`
}

type fleetOutput struct {
	Rows   []fleetRow        `json:"rows"`
	Report query.FleetReport `json:"report"`
}

func runFleetMode(st *store.Store, svc *query.Service, actor query.Actor, jsonOut bool) error {
	employees, err := st.ListEmployees()
	if err != nil {
		return err
	}
	if len(employees) == 0 {
		fmt.Fprintln(os.Stderr, "no employees found")
		return nil
	}

	var rows []fleetRow
	for _, emp := range employees {
		a, err := svc.LatestAssessment(actor, emp)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		rows = append(rows, fleetRow{
			EmployeeID: emp,
			Day:        a.Day,
			Risk:       a.RiskProbability,
			Level:      string(a.RiskLevel),
			Stability:  a.StabilityIndex,
			Volatility: a.Volatility,
		})
	}

	report, err := svc.FleetReport(actor)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(fleetOutput{Rows: rows, Report: report})
	}

	fmt.Printf("%-16s  %5s  %8s  %-10s  %10s  %10s\n",
		"Employee", "Day", "Risk", "Level", "Stability", "Volatility")
	fmt.Printf("%-16s+-%5s+-%8s+-%-10s+-%10s+-%10s\n",
		"----------------", "-----", "--------", "----------", "----------", "----------")
	for _, r := range rows {
		fmt.Printf("%-16s  %5d  %8.4f  %-10s  %10.4f  %10.4f\n",
			r.EmployeeID, r.Day, r.Risk, r.Level, r.Stability, r.Volatility)
	}

	fmt.Printf("\nFleet report:\n")
	fmt.Printf("  Assessed:       %d\n", report.Employees)
	fmt.Printf("  Average risk:   %.4f\n", report.AverageRisk)
	fmt.Printf("  Avg stability:  %.4f\n", report.AverageStability)
	fmt.Printf("  Interventions:  %d\n", report.Interventions)
	fmt.Printf("  Effectiveness:  %.4f\n", report.Effectiveness)
	printDistribution(report.RiskDistribution)
	if len(report.Escalated) > 0 {
		fmt.Printf("  Escalated:      %s\n", strings.Join(report.Escalated, ", "))
	}
	return nil
}

func printDistribution(dist map[detect.RiskLevel]int) {
	order := []detect.RiskLevel{detect.RiskLow, detect.RiskModerate, detect.RiskHigh, detect.RiskCritical}
	parts := make([]string, 0, len(order))
	for _, level := range order {
		parts = append(parts, fmt.Sprintf("%s=%d", level, dist[level]))
	}
	fmt.Printf("  Distribution:   %s\n", strings.Join(parts, " "))
}

// #endregion fleet-mode

// #region detail-mode

type detailOutput struct {
	Assessment    detect.Assessment     `json:"assessment"`
	Forecast      *forecastSummary      `json:"forecast,omitempty"`
	Interventions []decide.Intervention `json:"interventions"`
}

type forecastSummary struct {
	Day             int       `json:"day"`
	Curve           []float64 `json:"curve"`
	TippingDetected bool      `json:"tipping_detected"`
	TippingDay      int       `json:"tipping_day"`
	PeakDay         int       `json:"peak_day"`
	PeakValue       float64   `json:"peak_value"`
	ModelVersion    string    `json:"model_version,omitempty"`
}

func runDetailMode(svc *query.Service, actor query.Actor, employee string, last int, jsonOut bool) error {
	a, err := svc.LatestAssessment(actor, employee)
	if err != nil {
		return err
	}

	out := detailOutput{Assessment: a}
	if fc, err := svc.LatestForecast(actor, employee); err == nil {
		out.Forecast = &forecastSummary{
			Day:             fc.Day,
			Curve:           fc.Curve,
			TippingDetected: fc.TippingDetected,
			TippingDay:      fc.TippingDay,
			PeakDay:         fc.PeakDay,
			PeakValue:       fc.PeakValue,
			ModelVersion:    fc.ModelVersion,
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	ivs, err := svc.Interventions(actor, employee, last)
	if err != nil {
		return err
	}
	out.Interventions = ivs

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Employee:    %s\n", a.EmployeeID)
	fmt.Printf("Day:         %d\n", a.Day)
	fmt.Printf("Risk:        %.4f (%s)\n", a.RiskProbability, a.RiskLevel)
	fmt.Printf("Stability:   %.4f\n", a.StabilityIndex)
	fmt.Printf("Volatility:  %.4f (accel %.4f)\n", a.Volatility, a.Acceleration)
	fmt.Printf("Components:  dev=%.4f anomaly=%.4f change=%.4f\n",
		a.DeviationScore, a.AnomalyScore, a.ChangePointProb)
	if len(a.TopContributors) > 0 {
		fmt.Printf("Contributors: %s\n", strings.Join(a.TopContributors, ", "))
	}
	if len(a.AnomalyFlags) > 0 {
		fmt.Printf("Flags:       %s\n", strings.Join(a.AnomalyFlags, ", "))
	}

	if out.Forecast != nil {
		fmt.Printf("\nForecast (day %d):\n", out.Forecast.Day)
		for i, v := range out.Forecast.Curve {
			marker := ""
			if out.Forecast.TippingDetected && i == out.Forecast.TippingDay {
				marker = "  <- tipping"
			}
			fmt.Printf("  +%dd  %.4f%s\n", i+1, v, marker)
		}
		fmt.Printf("  Peak %.4f at +%dd\n", out.Forecast.PeakValue, out.Forecast.PeakDay+1)
	}

	if len(ivs) > 0 {
		fmt.Printf("\nInterventions (newest first):\n")
		fmt.Printf("  %-5s  %-34s  %-10s  %8s\n", "Day", "Action", "Outcome", "Effect")
		for _, iv := range ivs {
			effect := "—"
			if iv.OutcomeLabel.Terminal() {
				effect = fmt.Sprintf("%+.3f", iv.EffectivenessScore)
			}
			fmt.Printf("  %-5d  %-34s  %-10s  %8s\n",
				iv.Day, iv.ActionType, iv.OutcomeLabel, effect)
		}
	}
	return nil
}

// #endregion detail-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// #endregion output
