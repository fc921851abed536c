package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

type seedEmployee struct {
	Name       string  `db:"name"`
	Email      string  `db:"email"`
	Department *string `db:"department"`
	Role       *string `db:"role"`
}

func ptr(s string) *string { return &s }

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample employee records for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, _, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			if _, err := db.Exec("DELETE FROM employees"); err != nil {
				log.Fatalf("failed to clear employees: %v", err)
			}
			fmt.Println("Cleared existing employee records")
		}

		employees := []seedEmployee{
			{Name: "Aisyah Putri", Email: "aisyah.putri@example.com", Department: ptr("HR"), Role: ptr("Manager")},
			{Name: "Budi Santoso", Email: "budi.santoso@example.com", Department: ptr("Engineering"), Role: ptr("Developer")},
			{Name: "Citra Dewi", Email: "citra.dewi@example.com", Department: ptr("Engineering"), Role: ptr("Analyst")},
			{Name: "Dimas Pratama", Email: "dimas.pratama@example.com", Department: ptr("Sales"), Role: ptr("Manager")},
			{Name: "Eka Wijaya", Email: "eka.wijaya@example.com", Department: nil, Role: nil},
		}

		inserted := 0
		for _, emp := range employees {
			res, err := db.NamedExec(`
				INSERT INTO employees (name, email, department, role, date_joined)
				VALUES (:name, :email, :department, :role, CURRENT_DATE)
				ON CONFLICT (email) DO NOTHING`, emp)
			if err != nil {
				log.Fatalf("failed to seed employee %s: %v", emp.Email, err)
			}
			if rows, _ := res.RowsAffected(); rows > 0 {
				inserted++
			}
		}

		fmt.Printf("Seeded %d employee records\n", inserted)
	},
}
