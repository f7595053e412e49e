package seeder

import (
	"context"

	"devjobs/internal/database"
	"devjobs/internal/pkg/hash"
)

// DemoSeeder populates a recruiter account and a handful of vacancies for
// local development. Every insert is idempotent, so rerunning on boot is
// safe.
type DemoSeeder struct {
	Hasher hash.Hasher
}

func (DemoSeeder) Name() string { return "demo" }

const demoUserID = "7f1c1ad2-0a53-4aef-9a6a-2a20f2f3a001"

func (s DemoSeeder) Run(ctx context.Context, db database.DB) error {
	pwHash, err := s.Hasher.Hash("devjobs123")
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx,
		`INSERT INTO users (id, email, display_name, password_hash)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT DO NOTHING`,
		demoUserID, "reclutador@devjobs.local", "Reclutador Demo", pwHash,
	)
	if err != nil {
		return err
	}

	vacancies := []struct {
		Title    string
		Company  string
		Location string
		Salary   string
		Contract string
		Slug     string
		Skills   []string
	}{
		{
			Title: "Desarrollador Backend Go", Company: "devJobs", Location: "Remoto",
			Salary: "40000", Contract: "Indefinido", Slug: "desarrollador-backend-go-demo1",
			Skills: []string{"Go", "PostgreSQL", "Redis"},
		},
		{
			Title: "Frontend Developer", Company: "devJobs", Location: "CDMX",
			Salary: "35000", Contract: "Por Proyecto", Slug: "frontend-developer-demo2",
			Skills: []string{"JavaScript", "React", "CSS"},
		},
		{
			Title: "Diseñador UX", Company: "devJobs", Location: "Madrid",
			Salary: "30000", Contract: "Freelance", Slug: "disenador-ux-demo3",
			Skills: []string{"Figma", "Prototipado"},
		},
	}

	for _, v := range vacancies {
		_, err := db.Exec(ctx,
			`INSERT INTO vacancies (id, author_id, title, company, location, salary, contract, description, slug, skills)
			 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, '', $7, $8)
			 ON CONFLICT DO NOTHING`,
			demoUserID, v.Title, v.Company, v.Location, v.Salary, v.Contract, v.Slug, v.Skills,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
