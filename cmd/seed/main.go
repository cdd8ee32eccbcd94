package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type dbKeyType struct{}

var dbKey dbKeyType

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func contextDB(c *cli.Context) *sql.DB {
	db, _ := c.Context.Value(dbKey).(*sql.DB)
	return db
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the database with catalog and expense data",
		Commands: []*cli.Command{
			{
				Name:  "products",
				Usage: "Import products from a CSV export (name,price,buyingPrice,stock,category)",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path to the products CSV",
						Required: true,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: seedProducts,
			},
			{
				Name:  "expenses",
				Usage: "Import expenses from a CSV export (date,description,category,amount,status)",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path to the expenses CSV",
						Required: true,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: seedExpenses,
			},
			newLegacyCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openCSV(path string) (*csv.Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r, f, nil
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func seedProducts(c *cli.Context) error {
	r, f, err := openCSV(c.String("file"))
	if err != nil {
		return err
	}
	defer f.Close()

	db := contextDB(c)
	inserted := 0
	header := true
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read csv: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(record) < 4 || record[0] == "" {
			continue
		}

		stock := 0
		if len(record) > 3 {
			stock, _ = strconv.Atoi(record[3])
		}
		category := ""
		if len(record) > 4 {
			category = record[4]
		}

		_, err = db.ExecContext(c.Context, `
			INSERT INTO products (id, name, price, buying_price, stock, category)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING
		`, uuid.NewString(), record[0], parseFloat(record[1]), parseFloat(record[2]), stock, category)
		if err != nil {
			return fmt.Errorf("failed to insert product %s: %w", record[0], err)
		}
		inserted++
	}

	log.Printf("seeded %d products", inserted)
	return nil
}

func seedExpenses(c *cli.Context) error {
	r, f, err := openCSV(c.String("file"))
	if err != nil {
		return err
	}
	defer f.Close()

	db := contextDB(c)
	inserted := 0
	header := true
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read csv: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(record) < 4 || record[0] == "" {
			continue
		}

		status := "paid"
		if len(record) > 4 && record[4] != "" {
			status = record[4]
		}

		_, err = db.ExecContext(c.Context, `
			INSERT INTO expenses (id, expense_date, description, category, amount, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING
		`, uuid.NewString(), record[0], record[1], record[2], parseFloat(record[3]), status)
		if err != nil {
			return fmt.Errorf("failed to insert expense %s: %w", record[1], err)
		}
		inserted++
	}

	log.Printf("seeded %d expenses", inserted)
	return nil
}
