package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"student_manager/config"
	"student_manager/models"

	"gorm.io/gorm"
)

const (
	overallStatusOK       = "ok"
	overallStatusDegraded = "degraded"
	overallStatusCritical = "critical"

	checkStatusUp   = "up"
	checkStatusDown = "down"

	defaultTimeout = 1500 * time.Millisecond
)

// HealthService inspects the store for the status command.
type HealthService struct {
	db      *gorm.DB
	timeout time.Duration
}

// HealthReport is the result of a status check.
type HealthReport struct {
	Status      string           `json:"status"`
	Environment string           `json:"environment"`
	Time        time.Time        `json:"time"`
	Checks      []CheckStatus    `json:"checks"`
	Records     map[string]int64 `json:"records"`
}

// CheckStatus captures one probe of the store.
type CheckStatus struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

func NewHealthService(db *gorm.DB) *HealthService {
	return &HealthService{db: db, timeout: defaultTimeout}
}

// SetTimeout overrides the timeout used when probing the store.
func (s *HealthService) SetTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

// countedTables lists the tables reported in the record counts, in print order
var countedTables = []struct {
	name  string
	model interface{}
}{
	{"students", &models.Student{}},
	{"teachers", &models.Teacher{}},
	{"groups", &models.Group{}},
	{"enrollments", &models.Enrollment{}},
	{"payments", &models.Payment{}},
	{"attendance", &models.Attendance{}},
	{"notifications", &models.Notification{}},
}

// CountedTables returns the record count keys in display order.
func CountedTables() []string {
	names := make([]string, len(countedTables))
	for i, t := range countedTables {
		names[i] = t.name
	}
	return names
}

// Report collects the current state of the store.
func (s *HealthService) Report() HealthReport {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	report := HealthReport{
		Status:      overallStatusOK,
		Environment: currentEnvironment(),
		Time:        time.Now().UTC(),
		Records:     map[string]int64{},
	}

	ping := s.checkConnection(ctx)
	report.Checks = append(report.Checks, ping)
	if ping.Status == checkStatusDown {
		report.Status = overallStatusCritical
		return report
	}

	for _, check := range []CheckStatus{s.checkForeignKeys(ctx), s.checkIntegrity(ctx)} {
		report.Checks = append(report.Checks, check)
		if check.Status == checkStatusDown {
			report.Status = combineStatus(report.Status, overallStatusDegraded)
		}
	}

	for _, t := range countedTables {
		var n int64
		if err := s.db.WithContext(ctx).Model(t.model).Count(&n).Error; err != nil {
			report.Status = combineStatus(report.Status, overallStatusDegraded)
			continue
		}
		report.Records[t.name] = n
	}

	return report
}

func (s *HealthService) checkConnection(ctx context.Context) CheckStatus {
	dep := CheckStatus{Name: "database"}
	if s.db == nil {
		dep.Status = checkStatusDown
		dep.Error = "database connection not initialised"
		return dep
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		dep.Status = checkStatusDown
		dep.Error = fmt.Sprintf("sql DB handle error: %v", err)
		return dep
	}

	start := time.Now()
	err = sqlDB.PingContext(ctx)
	dep.LatencyMs = time.Since(start).Milliseconds()
	if err != nil {
		dep.Status = checkStatusDown
		dep.Error = err.Error()
		return dep
	}
	dep.Status = checkStatusUp
	return dep
}

func (s *HealthService) checkForeignKeys(ctx context.Context) CheckStatus {
	dep := CheckStatus{Name: "foreign_keys", Status: checkStatusUp}
	var on int
	if err := s.db.WithContext(ctx).Raw("PRAGMA foreign_keys").Scan(&on).Error; err != nil {
		dep.Status = checkStatusDown
		dep.Error = err.Error()
	} else if on != 1 {
		dep.Status = checkStatusDown
		dep.Error = "foreign key enforcement is off"
	}
	return dep
}

func (s *HealthService) checkIntegrity(ctx context.Context) CheckStatus {
	dep := CheckStatus{Name: "integrity", Status: checkStatusUp}
	start := time.Now()
	var result string
	err := s.db.WithContext(ctx).Raw("PRAGMA quick_check").Scan(&result).Error
	dep.LatencyMs = time.Since(start).Milliseconds()
	switch {
	case err != nil:
		dep.Status = checkStatusDown
		dep.Error = err.Error()
	case result != "ok":
		dep.Status = checkStatusDown
		dep.Error = result
	}
	return dep
}

func currentEnvironment() string {
	if config.AppConfig == nil {
		return "unknown"
	}
	env := strings.TrimSpace(config.AppConfig.AppEnv)
	if env == "" {
		return "unknown"
	}
	return env
}

func combineStatus(current, candidate string) string {
	order := map[string]int{
		overallStatusOK:       0,
		overallStatusDegraded: 1,
		overallStatusCritical: 2,
	}

	if _, ok := order[current]; !ok {
		current = overallStatusOK
	}

	if v, ok := order[candidate]; ok && v > order[current] {
		return candidate
	}
	return current
}
