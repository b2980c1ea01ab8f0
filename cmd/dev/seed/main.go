package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/MS0C54073/CarWashApp-sub001/internal/service"
	"github.com/MS0C54073/CarWashApp-sub001/internal/user"
	"github.com/MS0C54073/CarWashApp-sub001/internal/vehicle"
	"github.com/MS0C54073/CarWashApp-sub001/pkg/config"
	"github.com/MS0C54073/CarWashApp-sub001/pkg/db"
)

// Seeds a dev database with one account per role plus a small catalog.
// Idempotent: re-runs skip anything whose email already exists.
func main() {
	var (
		adminEmail = flag.String("admin-email", "admin@carwash.local", "seeded admin login")
		password   = flag.String("password", "changeme123", "password for every seeded account")
	)
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "db open: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	users := user.NewRepository(pool)
	services := service.NewRepository(pool)
	vehicles := vehicle.NewRepository(pool)

	hash, err := user.HashPassword(*password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}

	ensure := func(p user.CreateParams) *user.User {
		if existing, err := users.GetByEmail(ctx, p.Email); err == nil {
			fmt.Printf("exists  %-8s %s\n", p.Role, p.Email)
			return existing
		}
		p.PasswordHash = hash
		u, err := users.Create(ctx, p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create %s: %v\n", p.Email, err)
			os.Exit(1)
		}
		fmt.Printf("created %-8s %s\n", p.Role, p.Email)
		return u
	}

	ensure(user.CreateParams{
		Name: "Admin", Email: *adminEmail,
		Role: user.RoleAdmin, ApprovalStatus: user.ApprovalApproved,
	})

	carwash := ensure(user.CreateParams{
		Name: "Sparkle Wash", Email: "carwash@carwash.local",
		Role: user.RoleCarwash, ApprovalStatus: user.ApprovalApproved,
		CarWashName: "Sparkle Wash", Location: "Cairo Road, Lusaka", Bays: 4,
	})

	client := ensure(user.CreateParams{
		Name: "Demo Client", Email: "client@carwash.local",
		Role: user.RoleClient, ApprovalStatus: user.ApprovalApproved,
	})

	ensure(user.CreateParams{
		Name: "Demo Driver", Email: "driver@carwash.local",
		Role: user.RoleDriver, ApprovalStatus: user.ApprovalApproved,
		LicenseNo: "DL-2024-0042",
	})

	existing, err := services.ListByCarWash(ctx, carwash.ID, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list services: %v\n", err)
		os.Exit(1)
	}
	if len(existing) == 0 {
		for _, s := range []service.CreateParams{
			{CarWashID: carwash.ID, Name: "Exterior Wash", Price: decimal.RequireFromString("80.00")},
			{CarWashID: carwash.ID, Name: "Full Valet", Description: "Exterior, interior and engine bay", Price: decimal.RequireFromString("250.00")},
		} {
			if _, err := services.Create(ctx, s); err != nil {
				fmt.Fprintf(os.Stderr, "create service %q: %v\n", s.Name, err)
				os.Exit(1)
			}
			fmt.Printf("created service  %s\n", s.Name)
		}
	}

	if vs, err := vehicles.ListByClient(ctx, client.ID); err == nil && len(vs) == 0 {
		if _, err := vehicles.Create(ctx, vehicle.CreateParams{
			ClientID: client.ID, Make: "Toyota", Model: "Corolla", PlateNo: "ABC1234", Color: "Silver",
		}); err != nil {
			fmt.Fprintf(os.Stderr, "create vehicle: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("created vehicle  ABC1234")
	}

	fmt.Println("seed complete")
}
