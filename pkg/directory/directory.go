// Package directory is the employee data provider: it serves candidate and
// manager records the way the HR system would, from a seeded in-memory
// dataset. The scheduling engine never talks to it directly; callers fetch
// records here and hand them to the engine as plain values.
package directory

import (
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/korjavin/introscheduler/pkg/logger"
	"github.com/korjavin/introscheduler/pkg/models"
)

// ErrNotFound is returned when no record matches the requested id.
var ErrNotFound = errors.New("directory: record not found")

// Service provides candidate and manager lookups.
type Service struct {
	candidates map[string]models.Candidate
	managers   map[string]models.Manager
	logger     *logger.Logger
}

// New creates a directory service seeded with the demo dataset.
func New() *Service {
	s := &Service{
		candidates: make(map[string]models.Candidate),
		managers:   make(map[string]models.Manager),
		logger:     logger.New("directory"),
	}
	s.seed()
	return s
}

// CandidateByID returns the candidate with the given id.
func (s *Service) CandidateByID(id string) (models.Candidate, error) {
	c, ok := s.candidates[id]
	if !ok {
		return models.Candidate{}, errors.Wrapf(ErrNotFound, "candidate %s", id)
	}
	return c, nil
}

// CandidateByName returns the candidate whose name matches case-insensitively.
func (s *Service) CandidateByName(name string) (models.Candidate, error) {
	for _, c := range s.ListCandidates() {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return models.Candidate{}, errors.Wrapf(ErrNotFound, "candidate named %q", name)
}

// ListCandidates returns all candidates ordered by start date, then id.
func (s *Service) ListCandidates() []models.Candidate {
	out := make([]models.Candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out
}

// ManagerByID returns the manager with the given id.
func (s *Service) ManagerByID(id string) (models.Manager, error) {
	m, ok := s.managers[id]
	if !ok {
		return models.Manager{}, errors.Wrapf(ErrNotFound, "manager %s", id)
	}
	return m, nil
}

// ListManagers returns all managers ordered by id.
func (s *Service) ListManagers() []models.Manager {
	out := make([]models.Manager, 0, len(s.managers))
	for _, m := range s.managers {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RelatedPersonas resolves the managers a candidate must meet during
// onboarding, keyed by their role.
func (s *Service) RelatedPersonas(candidateID string) (map[models.Role]models.Manager, error) {
	c, err := s.CandidateByID(candidateID)
	if err != nil {
		return nil, err
	}

	personas := make(map[models.Role]models.Manager)
	for role, id := range map[models.Role]string{
		models.RoleHiringManager:    c.HiringManagerID,
		models.RoleReportingManager: c.ReportingManagerID,
		models.RoleHRBP:             c.HRBPID,
	} {
		if id == "" {
			continue
		}
		m, ok := s.managers[id]
		if !ok {
			s.logger.Warn("Candidate %s references unknown manager %s (%s)", candidateID, id, role)
			continue
		}
		personas[role] = m
	}

	return personas, nil
}

// seed loads the demo dataset. Start dates are relative to the current day
// so the scheduling window always lands in the near future.
func (s *Service) seed() {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	managers := []models.Manager{
		{
			ID: "mgr_001", Name: "Rajesh Kumar", Email: "rajesh.kumar@example.com",
			Role: models.RoleHiringManager, Timezone: "Asia/Kolkata",
			CalendarIDs: map[string]string{"primary": "cal_primary_mgr_001", "client": "cal_client_mgr_001"},
		},
		{
			ID: "mgr_002", Name: "Sarah Mitchell", Email: "sarah.mitchell@example.com",
			Role: models.RoleReportingManager, Timezone: "America/New_York",
			CalendarIDs: map[string]string{"primary": "cal_primary_mgr_002", "client": "cal_client_mgr_002"},
		},
		{
			ID: "mgr_003", Name: "Priya Sharma", Email: "priya.sharma@example.com",
			Role: models.RoleHRBP, Timezone: "Asia/Kolkata",
			CalendarIDs: map[string]string{"primary": "cal_primary_mgr_003"},
		},
		{
			ID: "mgr_004", Name: "James Wong", Email: "james.wong@example.com",
			Role: models.RoleHiringManager, Timezone: "Europe/London",
			CalendarIDs: map[string]string{"primary": "cal_primary_mgr_004", "client": "cal_client_mgr_004"},
		},
		{
			ID: "mgr_005", Name: "Elena Petrova", Email: "elena.petrova@example.com",
			Role: models.RoleReportingManager, Timezone: "Europe/London",
			CalendarIDs: map[string]string{"primary": "cal_primary_mgr_005"},
		},
	}
	for _, m := range managers {
		s.managers[m.ID] = m
	}

	candidates := []models.Candidate{
		{
			ID: "cand_001", Name: "Aisha Patel", Email: "aisha.patel@example.com",
			RoleTitle: "Senior Software Engineer", Timezone: "Asia/Kolkata",
			StartDate:       today.AddDate(0, 0, 7),
			HiringManagerID: "mgr_001", ReportingManagerID: "mgr_002", HRBPID: "mgr_003",
		},
		{
			ID: "cand_002", Name: "Tom Becker", Email: "tom.becker@example.com",
			RoleTitle: "Product Designer", Timezone: "Europe/London",
			StartDate:       today.AddDate(0, 0, 10),
			HiringManagerID: "mgr_004", ReportingManagerID: "mgr_005", HRBPID: "mgr_003",
		},
		{
			ID: "cand_003", Name: "Mei Lin", Email: "mei.lin@example.com",
			RoleTitle: "Data Analyst", Timezone: "America/New_York",
			StartDate:       today.AddDate(0, 0, 14),
			HiringManagerID: "mgr_002", ReportingManagerID: "mgr_002", HRBPID: "mgr_003",
		},
	}
	for _, c := range candidates {
		s.candidates[c.ID] = c
	}

	s.logger.Info("Seeded directory with %d candidates and %d managers", len(candidates), len(managers))
}
