package helper

import (
	"context"
	"errors"
	"fmt"
	"os"
	catalogModel "salon/internal/domains/catalog/model"
	catalogRepository "salon/internal/domains/catalog/repository"
	scheduleModel "salon/internal/domains/schedule/model"
	scheduleRepository "salon/internal/domains/schedule/repository"
	staffModel "salon/internal/domains/staff/model"
	staffRepository "salon/internal/domains/staff/repository"
	"salon/shared"
	"salon/shared/clock"
	gModel "salon/shared/model"
	"salon/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const seedUser = "seed"

// seedNamespace derives stable ids from fixture keys so a second run finds the rows of the first.
var seedNamespace = uuid.MustParse("8f7c2b4e-7d0a-4f55-9a26-3c1d8e0b6a11")

type Fixture struct {
	Services []ServiceFixture `yaml:"services"`
	Staff    []StaffFixture   `yaml:"staff"`
}

type ServiceFixture struct {
	Key             string `yaml:"key"`
	Name            string `yaml:"name"`
	Category        string `yaml:"category"`
	CashPriceCents  int64  `yaml:"cash_price_cents"`
	CardPriceCents  int64  `yaml:"card_price_cents"`
	DurationMinutes int    `yaml:"duration_minutes"`
}

type StaffFixture struct {
	Key             string         `yaml:"key"`
	DisplayName     string         `yaml:"display_name"`
	Specialty       string         `yaml:"specialty"`
	ExperienceYears int            `yaml:"experience_years"`
	Services        []string       `yaml:"services"`
	Hours           []HoursFixture `yaml:"hours"`
}

type HoursFixture struct {
	Day   int    `yaml:"day"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed fixture: %w", err)
	}

	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parse seed fixture: %w", err)
	}

	if err := fixture.Validate(); err != nil {
		return nil, fmt.Errorf("validate seed fixture: %w", err)
	}

	return &fixture, nil
}

// Validate checks references between staff and services and every working-hours window.
func (f *Fixture) Validate() error {
	services := make(map[string]bool, len(f.Services))

	for _, s := range f.Services {
		if s.Key == "" || s.Name == "" {
			return errors.New("service key and name are required")
		}

		if s.DurationMinutes <= 0 {
			return fmt.Errorf("service %s: duration_minutes must be positive", s.Key)
		}

		services[s.Key] = true
	}

	for _, st := range f.Staff {
		if st.Key == "" || st.DisplayName == "" {
			return errors.New("staff key and display_name are required")
		}

		for _, key := range st.Services {
			if !services[key] {
				return fmt.Errorf("staff %s: unknown service %s", st.Key, key)
			}
		}

		for _, h := range st.Hours {
			if h.Day < 0 || h.Day > 6 {
				return fmt.Errorf("staff %s: day %d out of range", st.Key, h.Day)
			}

			if _, err := clock.ParseInterval(h.Start, h.End); err != nil {
				return fmt.Errorf("staff %s day %d: %w", st.Key, h.Day, err)
			}
		}
	}

	return nil
}

func SeedID(key string) string {
	return uuid.NewSHA1(seedNamespace, []byte(key)).String()
}

type Seeder struct {
	Catalog  catalogRepository.Service
	Staff    staffRepository.Staff
	Schedule scheduleRepository.WorkingHours
}

// Seed inserts missing services and staff, then replaces assignments and upserts hours.
func (s Seeder) Seed(ctx context.Context, fixture *Fixture) error {
	now := timezone.Now()
	meta := gModel.Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: seedUser, ModifiedBy: seedUser}

	for _, svc := range fixture.Services {
		id := SeedID("service:" + svc.Key)

		exists, err := s.Catalog.Exist(ctx, shared.FilterByID(id, catalogModel.FieldID, catalogModel.TableName))
		if err != nil {
			return fmt.Errorf("check service %s: %w", svc.Key, err)
		}

		if exists {
			continue
		}

		err = s.Catalog.Insert(ctx, catalogModel.Service{
			ID:              id,
			Name:            svc.Name,
			Category:        svc.Category,
			CashPriceCents:  svc.CashPriceCents,
			CardPriceCents:  svc.CardPriceCents,
			DurationMinutes: svc.DurationMinutes,
			IsActive:        true,
			Metadata:        meta,
		})
		if err != nil {
			return fmt.Errorf("insert service %s: %w", svc.Key, err)
		}

		log.Info().Str("service", svc.Name).Str("id", id).Msg("seeded service")
	}

	for _, st := range fixture.Staff {
		id := SeedID("staff:" + st.Key)

		exists, err := s.Staff.Exist(ctx, shared.FilterByID(id, staffModel.FieldID, staffModel.TableName))
		if err != nil {
			return fmt.Errorf("check staff %s: %w", st.Key, err)
		}

		if !exists {
			err = s.Staff.Insert(ctx, staffModel.Staff{
				ID:              id,
				DisplayName:     st.DisplayName,
				Specialty:       st.Specialty,
				ExperienceYears: st.ExperienceYears,
				IsActive:        true,
				Metadata:        meta,
			})
			if err != nil {
				return fmt.Errorf("insert staff %s: %w", st.Key, err)
			}

			log.Info().Str("staff", st.DisplayName).Str("id", id).Msg("seeded staff")
		}

		serviceIDs := make([]string, 0, len(st.Services))
		for _, key := range st.Services {
			serviceIDs = append(serviceIDs, SeedID("service:"+key))
		}

		if err := s.Staff.ReplaceServices(ctx, id, serviceIDs); err != nil {
			return fmt.Errorf("assign services to %s: %w", st.Key, err)
		}

		for _, h := range st.Hours {
			window, _ := clock.ParseInterval(h.Start, h.End)

			err := s.Schedule.Upsert(ctx, scheduleModel.WorkingHours{
				ID:        SeedID(fmt.Sprintf("hours:%s:%d", st.Key, h.Day)),
				StaffID:   id,
				DayOfWeek: h.Day,
				StartTime: window.Start,
				EndTime:   window.End,
				IsActive:  true,
				Metadata:  meta,
			})
			if err != nil {
				return fmt.Errorf("upsert hours of %s day %d: %w", st.Key, h.Day, err)
			}
		}
	}

	return nil
}
