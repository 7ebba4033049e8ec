// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/olegiv/portfolio-go/internal/auth"
)

// SeedParams controls initial data creation at startup.
type SeedParams struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string
	DemoData      bool
}

// Seed prepares a fresh database for first use: creates the admin
// account if no admin exists, fills in missing default settings, and
// optionally imports demo content. Safe to call on every startup.
func (s *Store) Seed(ctx context.Context, p SeedParams) error {
	exists, err := s.AdminExists(ctx)
	if err != nil {
		return fmt.Errorf("checking for admin account: %w", err)
	}

	if !exists {
		hash, err := auth.HashPassword(p.AdminPassword)
		if err != nil {
			return fmt.Errorf("hashing admin password: %w", err)
		}
		if _, err := s.CreateUser(ctx, p.AdminUsername, p.AdminEmail, hash, "admin"); err != nil {
			return fmt.Errorf("creating admin account: %w", err)
		}
		s.logger.Info("admin account created", "username", p.AdminUsername)
	}

	if err := s.SeedDefaultSettings(ctx, nil); err != nil {
		return fmt.Errorf("seeding default settings: %w", err)
	}

	if p.DemoData {
		if err := s.seedDemoData(ctx); err != nil {
			return fmt.Errorf("importing demo data: %w", err)
		}
	}

	return nil
}

// seedDemoData imports example content so a fresh install has something
// to show. Skipped entirely when any experience already exists.
func (s *Store) seedDemoData(ctx context.Context) error {
	existing, err := s.ListExperiences(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	experiences := []CreateExperienceParams{
		{
			Period:      "2025 - present",
			Company:     "Acme Labs",
			Role:        "Backend Engineer",
			Description: "Design and operation of content APIs and internal tooling.",
			Tech:        []string{"Go", "SQLite"},
			IsCurrent:   true,
		},
		{
			Period:       "2023 - 2025",
			Company:      "Rail Systems Inc",
			Role:         "Software Engineering Apprentice",
			Description:  "Built CAD automation tools and cost analysis dashboards.",
			Tech:         []string{"C#", "Python", "AutoCAD"},
			IsInternship: true,
		},
		{
			Period:       "2022 - 2023",
			Company:      "Digital Partners",
			Role:         "Apprentice Developer",
			Description:  "Developed productivity applications for partner companies.",
			Tech:         []string{"PHP", "NodeJS", "MySQL"},
			IsInternship: true,
		},
	}
	for _, exp := range experiences {
		if _, err := s.CreateExperience(ctx, exp); err != nil {
			return err
		}
	}

	projects := []CreateProjectParams{
		{
			ProjectID:   "001",
			Title:       "Robozzle",
			Description: "Recreation of the Robozzle puzzle game as a technical exercise.",
			Tech:        []string{"Rust", "Bevy"},
			Year:        "2025",
			Link:        "https://github.com/example/robozzle",
		},
		{
			ProjectID:   "002",
			Title:       "Particle Life Simulator",
			Description: "3D particle life simulator searching for the fittest population.",
			Tech:        []string{"Rust", "Bevy", "Genetic algorithms"},
			Year:        "2025",
			Link:        "https://github.com/example/particle-life",
		},
		{
			ProjectID:   "003",
			Title:       "Machine Learning Playground",
			Description: "Testbed for learning algorithms on simple case studies.",
			Tech:        []string{"Rust", "Bevy"},
			Year:        "2025",
			Link:        "https://github.com/example/machine-learning",
		},
	}
	for _, proj := range projects {
		if _, err := s.CreateProject(ctx, proj); err != nil {
			// Demo content may partially exist from an earlier run.
			if errors.Is(err, ErrConstraint) {
				continue
			}
			return err
		}
	}

	skills := map[string][]string{
		"languages": {"Go", "Rust", "C#"},
		"libraries": {"chi", "bevy", "tokio"},
		"tools":     {"Docker", "SQLite", "Unity"},
	}
	for category, names := range skills {
		if _, err := s.ReplaceSkillCategory(ctx, category, names); err != nil {
			return err
		}
	}

	s.logger.Info("demo data imported",
		"experiences", len(experiences),
		"projects", len(projects),
		"skill_categories", len(skills))
	return nil
}
