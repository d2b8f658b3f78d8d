// Command mou-reminder sends the monthly MOU reminder emails once and exits.
//
// It is meant to be invoked by an external scheduler such as cron:
//
//	0 9 1 * * mou-reminder -dsn "$MOU_DB_DSN"
//
// A database-backed task lock guarantees at most one concurrent run across
// every worker host; losing the race is a normal skip, not an error. The
// process exits zero on normal completion regardless of individual delivery
// failures, which are reported in the summary and in the audit table.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"github.com/mousuite/remind"
	remindmysql "github.com/mousuite/remind/mysql"
	"github.com/mousuite/remind/smtpmail"
)

const exitUsage = 2

type stdLogger struct {
	logger  *log.Logger
	verbose bool
}

func (l stdLogger) Debug(msg string, args ...any) {
	if !l.verbose {
		return
	}
	l.logger.Printf("DEBUG %s %s", msg, formatArgs(args))
}

func (l stdLogger) Info(msg string, args ...any) {
	l.logger.Printf("INFO %s %s", msg, formatArgs(args))
}

func (l stdLogger) Warn(msg string, args ...any) {
	l.logger.Printf("WARN %s %s", msg, formatArgs(args))
}

func (l stdLogger) Error(msg string, args ...any) {
	l.logger.Printf("ERROR %s %s", msg, formatArgs(args))
}

func formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(args))
	for i := 0; i < len(args); i += 2 {
		key := args[i]
		val := any("<missing>")
		if i+1 < len(args) {
			val = args[i+1]
		}
		pairs = append(pairs, fmt.Sprintf("%v=%v", key, val))
	}

	return strings.Join(pairs, " ")
}

func main() {
	// Missing .env is fine; system environment variables still apply.
	_ = godotenv.Load()

	var (
		dsn         string
		task        string
		lockTimeout int
		force       bool
		dryRun      bool
		verbose     bool
	)

	flag.StringVar(&dsn, "dsn", os.Getenv("MOU_DB_DSN"), "MySQL DSN, e.g. user:pass@tcp(host:3306)/db?parseTime=true")
	flag.StringVar(&task, "task", remind.DefaultTaskName, "Task name used for the lock and audit rows")
	flag.IntVar(&lockTimeout, "lock-timeout", 30, "Lock timeout in minutes")
	flag.BoolVar(&force, "force", false, "Force execution even if a lock exists (use with caution)")
	flag.BoolVar(&dryRun, "dry-run", false, "Simulate email sending without sending or writing audit rows")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging")
	flag.Parse()

	if dsn == "" {
		fmt.Fprintln(os.Stderr, "dsn is required (flag -dsn or MOU_DB_DSN)")
		flag.Usage()
		os.Exit(exitUsage)
	}

	logger := stdLogger{logger: log.New(os.Stdout, "", log.LstdFlags), verbose: verbose}
	if err := run(logger, dsn, task, lockTimeout, force, dryRun); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func run(logger stdLogger, dsn, task string, lockTimeout int, force, dryRun bool) error {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	store, err := remindmysql.NewStore(db)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	mailer, err := buildMailer(dryRun)
	if err != nil {
		return fmt.Errorf("init mailer: %w", err)
	}

	if dryRun {
		logger.Warn("DRY RUN MODE - no emails will be sent")
	}

	job := remind.NewJob(store, store, mailer, store,
		remind.WithTaskName(task),
		remind.WithLockTTL(time.Duration(lockTimeout)*time.Minute),
		remind.WithForce(force),
		remind.WithDryRun(dryRun),
		remind.WithLogger(logger),
	)

	summary, err := job.Run(context.Background())
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if summary.Skipped {
		holder := summary.HeldBy
		if holder == "" {
			holder = "another worker"
		}
		fmt.Printf("Task %q is already running or locked by %s. Skipping execution.\n", task, holder)

		return nil
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Monthly MOU Email Summary:")
	fmt.Printf("Total Active MOUs: %d\n", summary.Total)
	fmt.Printf("Emails Sent: %d\n", summary.Sent)
	if summary.Failed > 0 {
		fmt.Printf("Emails Failed: %d\n", summary.Failed)
	}
	fmt.Println(strings.Repeat("=", 60))

	return nil
}

// buildMailer assembles the SMTP transport from the environment. In dry-run
// mode the transport is never invoked, so missing SMTP settings degrade to a
// stub instead of blocking the simulation.
func buildMailer(dryRun bool) (remind.Mailer, error) {
	cfg := smtpmail.Config{
		Host:     os.Getenv("SMTP_HOST"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
	if port := os.Getenv("SMTP_PORT"); port != "" {
		parsed, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
		}
		cfg.Port = parsed
	}

	mailer, err := smtpmail.New(cfg)
	if err != nil {
		if dryRun {
			return remind.MailerFunc(func(context.Context, []string, string, string) error {
				return fmt.Errorf("mail transport not configured: %w", err)
			}), nil
		}

		return nil, err
	}

	return mailer, nil
}
