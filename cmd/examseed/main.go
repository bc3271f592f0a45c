// Command examseed loads a YAML fixture of users and exams.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/mobildev/online-exam/internal/config"
	"github.com/mobildev/online-exam/internal/db"
	"github.com/mobildev/online-exam/internal/seed"
)

func main() {
	file := flag.String("file", "fixtures/demo.yaml", "YAML fixture to load")
	cost := flag.Int("bcrypt-cost", 0, "bcrypt cost for seeded passwords (0 = library default)")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("env: %v", err)
	}
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	driver, err := db.ParseDriver(cfg.DBDriver)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	f, err := seed.ParseFile(*file)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	dbh, err := db.Open(ctx, driver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer dbh.Close()

	var opts []seed.LoaderOption
	if *cost > 0 {
		opts = append(opts, seed.WithBcryptCost(*cost))
	}
	rep, err := seed.NewLoader(dbh, opts...).Load(ctx, f)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("seeded %d users, %d exams\n", len(rep.UserIDs), len(rep.ExamIDs))
	for i, id := range rep.ExamIDs {
		fmt.Printf("  exam %d: %s (%d questions)\n", id, f.Exams[i].Title, len(rep.QuestionIDs[i]))
	}
}
