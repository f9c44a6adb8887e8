// seed provisions the default admin (DEFAULT_ADMIN_EMAIL) and, in
// development, a few sample identities and student records for local testing.
// Idempotent: existing rows are left alone.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"aims/backend/internal/config"
	"aims/backend/internal/db"
	studentdomain "aims/backend/internal/student/domain"
	studentrepo "aims/backend/internal/student/repository"
	userdomain "aims/backend/internal/user/domain"
	userrepo "aims/backend/internal/user/repository"
)

var sampleUsers = []struct {
	email string
	role  userdomain.Role
}{
	{"advisor@example.edu", userdomain.RoleAdvisor},
	{"faculty@example.edu", userdomain.RoleFaculty},
	{"student@example.edu", userdomain.RoleStudent},
}

var sampleStudents = []struct {
	name    string
	email   string
	program string
}{
	{"Dana Lee", "dana@example.edu", "Computer Science"},
	{"Ravi Narang", "ravi@example.edu", "Mathematics"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	users := userrepo.NewPostgresRepository(conn)
	students := studentrepo.NewPostgresRepository(conn)

	if cfg.DefaultAdminEmail != "" {
		ensureUser(ctx, users, cfg.DefaultAdminEmail, userdomain.RoleAdmin)
	} else {
		log.Println("DEFAULT_ADMIN_EMAIL not set, skipping admin seed")
	}

	if cfg.Env == "production" {
		log.Println("production environment, skipping sample data")
		return
	}

	for _, s := range sampleUsers {
		ensureUser(ctx, users, s.email, s.role)
	}

	existing, err := students.List(ctx)
	if err != nil {
		log.Fatalf("list students: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("students table already has %d rows, skipping sample students", len(existing))
		return
	}
	for _, s := range sampleStudents {
		st := &studentdomain.Student{
			ID:        uuid.NewString(),
			Name:      s.name,
			Email:     s.email,
			Program:   s.program,
			CreatedAt: time.Now().UTC(),
		}
		if err := students.Create(ctx, st); err != nil {
			log.Fatalf("create student %s: %v", s.email, err)
		}
		log.Printf("created student %s", s.email)
	}
}

func ensureUser(ctx context.Context, users *userrepo.PostgresRepository, email string, role userdomain.Role) {
	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		log.Fatalf("get user %s: %v", email, err)
	}
	if existing != nil {
		log.Printf("user %s already exists, skipping", email)
		return
	}
	u := &userdomain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Role:      role,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("create user %s: %v", email, err)
	}
	log.Printf("created %s user %s", role, email)
}
