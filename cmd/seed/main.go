package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/scheduling/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	professionals, err := seedProfessionals(context.Background(), pool)
	if err != nil {
		log.Fatalf("seed professionals: %v", err)
	}
	if err := seedAppointmentTypes(context.Background(), pool); err != nil {
		log.Fatalf("seed appointment types: %v", err)
	}
	if err := seedServiceSchedules(context.Background(), pool, professionals); err != nil {
		log.Fatalf("seed service schedules: %v", err)
	}
	if err := seedPatients(context.Background(), pool, 500); err != nil {
		log.Fatalf("seed patients: %v", err)
	}

	log.Println("seed complete")
}

type seededProfessional struct {
	id   uuid.UUID
	role string
}

func seedProfessionals(ctx context.Context, pool *pgxpool.Pool) ([]seededProfessional, error) {
	roles := []struct {
		role      string
		specialty string
		count     int
	}{
		{role: "doctor", specialty: "Clinica Geral", count: 2},
		{role: "doctor", specialty: "Endocrinologia", count: 1},
		{role: "nurse", specialty: "", count: 2},
	}

	log.Println("seeding professionals")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var out []seededProfessional
	for _, r := range roles {
		for i := 0; i < r.count; i++ {
			id := uuid.New()
			name := gofakeit.Name()

			var specialty *string
			if r.specialty != "" {
				specialty = &r.specialty
			}

			_, err := tx.Exec(ctx, `
				INSERT INTO professionals (id, name, role, specialty, status, created_at, updated_at)
				VALUES ($1, $2, $3, $4, 'active', now(), now())
			`, id, name, r.role, specialty)
			if err != nil {
				return nil, err
			}
			out = append(out, seededProfessional{id: id, role: r.role})
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Printf("professionals seeded: %d", len(out))
	return out, nil
}

func seedAppointmentTypes(ctx context.Context, pool *pgxpool.Pool) error {
	types := []struct {
		name     string
		slug     string
		duration int
	}{
		{name: "Consulta", slug: "consulta", duration: 30},
		{name: "Retorno", slug: "retorno", duration: 30},
		{name: "Aplicação", slug: "aplicacao", duration: 15},
		{name: "Aplicação Tirzepatida", slug: "aplicacao_tirzepatida", duration: 15},
	}

	log.Println("seeding appointment types")

	for _, t := range types {
		_, err := pool.Exec(ctx, `
			INSERT INTO appointment_types (id, name, slug, duration_minutes, default_professional_id, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NULL, true, now(), now())
			ON CONFLICT (slug) DO NOTHING
		`, uuid.New(), t.name, t.slug, t.duration)
		if err != nil {
			return err
		}
	}

	log.Println("appointment types seeded")
	return nil
}

func seedServiceSchedules(ctx context.Context, pool *pgxpool.Pool, professionals []seededProfessional) error {
	log.Println("seeding service schedules")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, p := range professionals {
		// Monday through Thursday full day, Friday mornings only.
		for weekday := 1; weekday <= 5; weekday++ {
			start, end := "09:00", "18:00"
			if weekday == 5 {
				end = "13:00"
			}

			_, err := tx.Exec(ctx, `
				INSERT INTO service_schedules (id, professional_id, weekday, start_time, end_time, is_active, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, true, now(), now())
			`, uuid.New(), p.id, weekday, start, end)
			if err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("service schedules seeded")
	return nil
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d patients", count)

	const batchSize = 100

	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}

		for i := offset; i < end; i++ {
			id := uuid.New()
			name := gofakeit.Name()
			phone := gofakeit.Phone()

			_, err := tx.Exec(ctx, `
				INSERT INTO patients (id, name, phone, created_at, updated_at)
				VALUES ($1, $2, $3, now(), now())
			`, id, name, phone)
			if err != nil {
				_ = tx.Rollback(ctx)
				return err
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		log.Printf("patients seeded: %d/%d", end, count)
	}

	log.Println("patients seeded")
	return nil
}
